package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type CompanyRepo interface {
  Create(ctx context.Context, tx *gorm.DB, company *types.Company) (*types.Company, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Company, error)
  GetByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.Company, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
  ListByPsychologist(ctx context.Context, tx *gorm.DB, psychologistID uuid.UUID) ([]*types.Company, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Company, error)
  SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error
  CountActive(ctx context.Context, tx *gorm.DB) (int64, error)
  // ListExpiringTrials returns trial companies by soonest trial end.
  ListExpiringTrials(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Company, error)
}

type companyRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCompanyRepo(db *gorm.DB, baseLog *logger.Logger) CompanyRepo {
  repoLog := baseLog.With("repo", "CompanyRepo")
  return &companyRepo{db: db, log: repoLog}
}

func (cr *companyRepo) Create(ctx context.Context, tx *gorm.DB, company *types.Company) (*types.Company, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if err := transaction.WithContext(ctx).Create(company).Error; err != nil {
    return nil, err
  }
  return company, nil
}

func (cr *companyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Company, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var result types.Company
  if err := transaction.WithContext(ctx).
    Preload("Psychologist").
    Preload("Psychologist.Profile").
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *companyRepo) GetByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.Company, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var result types.Company
  if err := transaction.WithContext(ctx).
    Where("profile_id = ?", profileID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *companyRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Company{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (cr *companyRepo) ListByPsychologist(ctx context.Context, tx *gorm.DB, psychologistID uuid.UUID) ([]*types.Company, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Company
  if err := transaction.WithContext(ctx).
    Where("psychologist_id = ?", psychologistID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *companyRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Company, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Company
  if err := transaction.WithContext(ctx).
    Preload("Psychologist").
    Preload("Psychologist.Profile").
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *companyRepo) SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Company{}).
    Where("id = ?", id).
    Update("is_active", active).Error
}

func (cr *companyRepo) ListExpiringTrials(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Company, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Company
  if err := transaction.WithContext(ctx).
    Where("subscription_status = ? AND trial_ends_at IS NOT NULL", types.SubscriptionTrial).
    Order("trial_ends_at ASC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *companyRepo) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Company{}).
    Where("is_active = ?", true).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
