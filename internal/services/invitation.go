package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/traitscan/backend/internal/apierr"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/repos"
  "github.com/traitscan/backend/internal/types"
  "github.com/traitscan/backend/internal/utils"
)

// Invitations are valid for seven days from creation, fixed policy.
const invitationTTL = 7 * 24 * time.Hour

type CreateInvitationInput struct {
  InviteeName    string
  Email          *string
  Role           string
  InvitedBy      uuid.UUID
  CompanyID      *uuid.UUID
  PsychologistID *uuid.UUID
}

type AcceptResult struct {
  Role string `json:"role"`
}

type InvitationService interface {
  Create(ctx context.Context, input CreateInvitationInput) (*types.Invitation, error)
  // GetByToken classifies the invitation for the signup page: a non-nil
  // error carries reason not_found, used or expired.
  GetByToken(ctx context.Context, token string) (*types.Invitation, error)
  // Accept provisions the tenant records for the freshly created identity.
  // All steps run in one transaction; re-running a failed acceptance is
  // safe because provisioning is keyed on natural ids.
  Accept(ctx context.Context, token string, userID uuid.UUID) (*AcceptResult, error)
  ListByInviter(ctx context.Context, inviterID uuid.UUID) ([]*types.Invitation, error)
}

type invitationService struct {
  db               *gorm.DB
  log              *logger.Logger
  invitationRepo   repos.InvitationRepo
  profileRepo      repos.ProfileRepo
  psychologistRepo repos.PsychologistRepo
  companyRepo      repos.CompanyRepo
  now              func() time.Time
}

func NewInvitationService(
  db *gorm.DB,
  log *logger.Logger,
  invitationRepo repos.InvitationRepo,
  profileRepo repos.ProfileRepo,
  psychologistRepo repos.PsychologistRepo,
  companyRepo repos.CompanyRepo,
) InvitationService {
  serviceLog := log.With("service", "InvitationService")
  return &invitationService{
    db:               db,
    log:              serviceLog,
    invitationRepo:   invitationRepo,
    profileRepo:      profileRepo,
    psychologistRepo: psychologistRepo,
    companyRepo:      companyRepo,
    now:              time.Now,
  }
}

func (s *invitationService) Create(ctx context.Context, input CreateInvitationInput) (*types.Invitation, error) {
  name := strings.TrimSpace(input.InviteeName)
  if name == "" {
    return nil, apierr.Validation(fmt.Errorf("invitee name is required"))
  }
  if input.Role != types.RoleCompany && input.Role != types.RolePsychologist {
    return nil, apierr.Validation(fmt.Errorf("role must be company or psychologist"))
  }
  expiresAt := s.now().Add(invitationTTL)
  invitation := &types.Invitation{
    ID:             uuid.New(),
    InviteeName:    name,
    Email:          input.Email,
    Role:           input.Role,
    Token:          utils.IssueToken(),
    InvitedBy:      input.InvitedBy,
    CompanyID:      input.CompanyID,
    PsychologistID: input.PsychologistID,
    Status:         types.InvitationPending,
    ExpiresAt:      &expiresAt,
  }
  created, err := s.invitationRepo.Create(ctx, nil, invitation)
  if err != nil {
    return nil, fmt.Errorf("Failed to create invitation: %w", err)
  }
  return created, nil
}

func (s *invitationService) GetByToken(ctx context.Context, token string) (*types.Invitation, error) {
  invitation, err := s.invitationRepo.GetByToken(ctx, nil, token)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("invitation")
    }
    return nil, fmt.Errorf("Failed to load invitation: %w", err)
  }
  if invitation.Status != types.InvitationPending {
    return nil, apierr.Used("invitation")
  }
  if invitation.IsExpired(s.now()) {
    return nil, apierr.Expired("invitation")
  }
  return invitation, nil
}

func (s *invitationService) Accept(ctx context.Context, token string, userID uuid.UUID) (*AcceptResult, error) {
  invitation, err := s.GetByToken(ctx, token)
  if err != nil {
    return nil, err
  }
  now := s.now()

  apply := func(tx *gorm.DB) error {
    switch invitation.Role {
    case types.RolePsychologist:
      if err := s.provisionPsychologist(ctx, tx, invitation, userID); err != nil {
        return err
      }
    case types.RoleCompany:
      if err := s.provisionCompany(ctx, tx, invitation, userID); err != nil {
        return err
      }
    }
    if err := s.profileRepo.UpdateRole(ctx, tx, userID, invitation.Role); err != nil {
      return fmt.Errorf("Failed to update profile role: %w", err)
    }
    claimed, err := s.invitationRepo.MarkAccepted(ctx, tx, invitation.ID, now)
    if err != nil {
      return fmt.Errorf("Failed to mark invitation accepted: %w", err)
    }
    if !claimed {
      // a concurrent acceptance won the conditional update; roll back
      return apierr.Used("invitation")
    }
    return nil
  }

  if s.db == nil {
    err = apply(nil)
  } else {
    err = s.db.WithContext(ctx).Transaction(apply)
  }
  if err != nil {
    return nil, err
  }
  return &AcceptResult{Role: invitation.Role}, nil
}

func (s *invitationService) ListByInviter(ctx context.Context, inviterID uuid.UUID) ([]*types.Invitation, error) {
  return s.invitationRepo.ListByInviter(ctx, nil, inviterID)
}

func (s *invitationService) provisionPsychologist(ctx context.Context, tx *gorm.DB, invitation *types.Invitation, userID uuid.UUID) error {
  createdBy := invitation.InvitedBy
  psychologist := &types.Psychologist{
    ID:        userID,
    CreatedBy: &createdBy,
    IsActive:  true,
  }
  if _, err := s.psychologistRepo.Upsert(ctx, tx, psychologist); err != nil {
    return fmt.Errorf("Failed to provision psychologist: %w", err)
  }
  return nil
}

// provisionCompany builds the company row from the invitation, falling back
// to the new profile's name/email, and attributes it to the invitation's
// psychologist or else the inviter.
func (s *invitationService) provisionCompany(ctx context.Context, tx *gorm.DB, invitation *types.Invitation, userID uuid.UUID) error {
  profile, err := s.profileRepo.GetByID(ctx, tx, userID)
  if err != nil {
    return fmt.Errorf("Failed to load profile for company provisioning: %w", err)
  }

  name := strings.TrimSpace(invitation.InviteeName)
  if name == "" && profile.FullName != nil {
    name = strings.TrimSpace(*profile.FullName)
  }
  if name == "" {
    return apierr.Validation(fmt.Errorf("company name is required"))
  }
  email := invitation.Email
  if email == nil || strings.TrimSpace(*email) == "" {
    email = &profile.Email
  }
  psychologistID := invitation.PsychologistID
  if psychologistID == nil {
    inviter := invitation.InvitedBy
    psychologistID = &inviter
  }

  if invitation.CompanyID != nil {
    fields := map[string]interface{}{
      "profile_id":      userID,
      "name":            name,
      "email":           *email,
      "psychologist_id": *psychologistID,
    }
    if err := s.companyRepo.Update(ctx, tx, *invitation.CompanyID, fields); err != nil {
      return fmt.Errorf("Failed to link invited company: %w", err)
    }
    return nil
  }

  profileID := userID
  company := &types.Company{
    ID:                 uuid.New(),
    ProfileID:          &profileID,
    Name:               name,
    Email:              email,
    PsychologistID:     psychologistID,
    SubscriptionStatus: types.SubscriptionTrial,
    IsActive:           true,
  }
  if _, err := s.companyRepo.Create(ctx, tx, company); err != nil {
    return fmt.Errorf("Failed to create company: %w", err)
  }
  return nil
}
