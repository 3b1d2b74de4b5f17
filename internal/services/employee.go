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

type EmployeeInput struct {
  FullName   string  `json:"full_name"`
  Email      *string `json:"email,omitempty"`
  Position   *string `json:"position,omitempty"`
  Department *string `json:"department,omitempty"`
}

type EmployeeService interface {
  Create(ctx context.Context, companyID uuid.UUID, input EmployeeInput) (*types.Employee, error)
  GetByID(ctx context.Context, id uuid.UUID) (*types.Employee, error)
  Update(ctx context.Context, id uuid.UUID, input EmployeeInput) error
  Delete(ctx context.Context, id uuid.UUID) error
  ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*types.Employee, error)
}

type employeeService struct {
  log          *logger.Logger
  employeeRepo repos.EmployeeRepo
}

func NewEmployeeService(log *logger.Logger, employeeRepo repos.EmployeeRepo) EmployeeService {
  serviceLog := log.With("service", "EmployeeService")
  return &employeeService{log: serviceLog, employeeRepo: employeeRepo}
}

func (s *employeeService) Create(ctx context.Context, companyID uuid.UUID, input EmployeeInput) (*types.Employee, error) {
  fullName := strings.TrimSpace(input.FullName)
  if fullName == "" {
    return nil, apierr.Validation(fmt.Errorf("employee name is required"))
  }
  employee := &types.Employee{
    ID:         uuid.New(),
    CompanyID:  companyID,
    FullName:   fullName,
    Email:      input.Email,
    Position:   input.Position,
    Department: input.Department,
    IsActive:   true,
  }
  created, err := s.employeeRepo.Create(ctx, nil, employee)
  if err != nil {
    return nil, fmt.Errorf("Failed to create employee: %w", err)
  }
  return created, nil
}

func (s *employeeService) GetByID(ctx context.Context, id uuid.UUID) (*types.Employee, error) {
  employee, err := s.employeeRepo.GetByID(ctx, nil, id)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("employee")
    }
    return nil, fmt.Errorf("Failed to load employee: %w", err)
  }
  return employee, nil
}

func (s *employeeService) Update(ctx context.Context, id uuid.UUID, input EmployeeInput) error {
  fields := map[string]interface{}{"updated_at": time.Now()}
  if fullName := strings.TrimSpace(input.FullName); fullName != "" {
    fields["full_name"] = fullName
  }
  if input.Email != nil {
    fields["email"] = *input.Email
  }
  if input.Position != nil {
    fields["position"] = *input.Position
  }
  if input.Department != nil {
    fields["department"] = *input.Department
  }
  if err := s.employeeRepo.Update(ctx, nil, id, fields); err != nil {
    return fmt.Errorf("Failed to update employee: %w", err)
  }
  return nil
}

func (s *employeeService) Delete(ctx context.Context, id uuid.UUID) error {
  if err := s.employeeRepo.Delete(ctx, nil, id); err != nil {
    return fmt.Errorf("Failed to delete employee: %w", err)
  }
  return nil
}

func (s *employeeService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*types.Employee, error) {
  return s.employeeRepo.ListByCompany(ctx, nil, companyID)
}
