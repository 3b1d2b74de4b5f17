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
)

type ProfileService interface {
  GetByID(ctx context.Context, id uuid.UUID) (*types.Profile, error)
  Update(ctx context.Context, id uuid.UUID, fullName, language *string) error
  // UpdateRole reassigns a profile's role. Reserved for superadmins; the
  // route guard enforces who may call it.
  UpdateRole(ctx context.Context, id uuid.UUID, role string) error
}

type profileService struct {
  log         *logger.Logger
  profileRepo repos.ProfileRepo
}

func NewProfileService(log *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
  serviceLog := log.With("service", "ProfileService")
  return &profileService{log: serviceLog, profileRepo: profileRepo}
}

func (s *profileService) GetByID(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
  profile, err := s.profileRepo.GetByID(ctx, nil, id)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("profile")
    }
    return nil, fmt.Errorf("Failed to load profile: %w", err)
  }
  return profile, nil
}

func (s *profileService) Update(ctx context.Context, id uuid.UUID, fullName, language *string) error {
  fields := map[string]interface{}{"updated_at": time.Now()}
  if fullName != nil {
    trimmed := strings.TrimSpace(*fullName)
    if trimmed == "" {
      return apierr.Validation(fmt.Errorf("full name cannot be empty"))
    }
    fields["full_name"] = trimmed
  }
  if language != nil {
    if *language != "pt" && *language != "en" {
      return apierr.Validation(fmt.Errorf("unsupported language"))
    }
    fields["language"] = *language
  }
  if err := s.profileRepo.Update(ctx, nil, id, fields); err != nil {
    return fmt.Errorf("Failed to update profile: %w", err)
  }
  return nil
}

func (s *profileService) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
  switch role {
  case types.RoleSuperadmin, types.RolePsychologist, types.RoleCompany:
  default:
    return apierr.Validation(fmt.Errorf("unknown role %q", role))
  }
  if _, err := s.profileRepo.GetByID(ctx, nil, id); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return apierr.NotFound("profile")
    }
    return fmt.Errorf("Failed to load profile: %w", err)
  }
  if err := s.profileRepo.UpdateRole(ctx, nil, id, role); err != nil {
    return fmt.Errorf("Failed to update profile role: %w", err)
  }
  s.log.Info("Profile role updated", "profile_id", id, "role", role)
  return nil
}
