package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type EmployeeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, employee *types.Employee) (*types.Employee, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Employee, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
  ListByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.Employee, error)
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type employeeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
  repoLog := baseLog.With("repo", "EmployeeRepo")
  return &employeeRepo{db: db, log: repoLog}
}

func (er *employeeRepo) Create(ctx context.Context, tx *gorm.DB, employee *types.Employee) (*types.Employee, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  if err := transaction.WithContext(ctx).Create(employee).Error; err != nil {
    return nil, err
  }
  return employee, nil
}

func (er *employeeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Employee, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  var result types.Employee
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (er *employeeRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Employee{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (er *employeeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.Employee{}).Error
}

func (er *employeeRepo) ListByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.Employee, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  var results []*types.Employee
  if err := transaction.WithContext(ctx).
    Where("company_id = ?", companyID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (er *employeeRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = er.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Employee{}).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
