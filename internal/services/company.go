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

type CompanyService interface {
  Create(ctx context.Context, psychologistID uuid.UUID, name string, email, phone, address *string) (*types.Company, error)
  GetByID(ctx context.Context, id uuid.UUID) (*types.Company, error)
  // GetByProfile resolves the tenant for a company-role login.
  GetByProfile(ctx context.Context, profileID uuid.UUID) (*types.Company, error)
  Update(ctx context.Context, id uuid.UUID, name, email, phone, address *string) error
  ListByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*types.Company, error)
}

type companyService struct {
  log         *logger.Logger
  companyRepo repos.CompanyRepo
}

func NewCompanyService(log *logger.Logger, companyRepo repos.CompanyRepo) CompanyService {
  serviceLog := log.With("service", "CompanyService")
  return &companyService{log: serviceLog, companyRepo: companyRepo}
}

func (s *companyService) Create(ctx context.Context, psychologistID uuid.UUID, name string, email, phone, address *string) (*types.Company, error) {
  name = strings.TrimSpace(name)
  if name == "" {
    return nil, apierr.Validation(fmt.Errorf("company name is required"))
  }
  company := &types.Company{
    ID:                 uuid.New(),
    Name:               name,
    Email:              email,
    Phone:              phone,
    Address:            address,
    PsychologistID:     &psychologistID,
    SubscriptionStatus: types.SubscriptionTrial,
    IsActive:           true,
  }
  created, err := s.companyRepo.Create(ctx, nil, company)
  if err != nil {
    return nil, fmt.Errorf("Failed to create company: %w", err)
  }
  return created, nil
}

func (s *companyService) GetByID(ctx context.Context, id uuid.UUID) (*types.Company, error) {
  company, err := s.companyRepo.GetByID(ctx, nil, id)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("company")
    }
    return nil, fmt.Errorf("Failed to load company: %w", err)
  }
  return company, nil
}

func (s *companyService) GetByProfile(ctx context.Context, profileID uuid.UUID) (*types.Company, error) {
  company, err := s.companyRepo.GetByProfileID(ctx, nil, profileID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("company")
    }
    return nil, fmt.Errorf("Failed to load company: %w", err)
  }
  return company, nil
}

func (s *companyService) Update(ctx context.Context, id uuid.UUID, name, email, phone, address *string) error {
  fields := map[string]interface{}{"updated_at": time.Now()}
  if name != nil {
    trimmed := strings.TrimSpace(*name)
    if trimmed == "" {
      return apierr.Validation(fmt.Errorf("company name cannot be empty"))
    }
    fields["name"] = trimmed
  }
  if email != nil {
    fields["email"] = *email
  }
  if phone != nil {
    fields["phone"] = *phone
  }
  if address != nil {
    fields["address"] = *address
  }
  if err := s.companyRepo.Update(ctx, nil, id, fields); err != nil {
    return fmt.Errorf("Failed to update company: %w", err)
  }
  return nil
}

func (s *companyService) ListByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*types.Company, error) {
  return s.companyRepo.ListByPsychologist(ctx, nil, psychologistID)
}
