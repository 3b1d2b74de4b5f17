package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type ApplicationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, application *types.AssessmentApplication) (*types.AssessmentApplication, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentApplication, error)
  GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.AssessmentApplication, error)
  UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, startedAt, completedAt *time.Time) error
  ListByPsychologist(ctx context.Context, tx *gorm.DB, psychologistID uuid.UUID) ([]*types.AssessmentApplication, error)
  ListByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.AssessmentApplication, error)
  Count(ctx context.Context, tx *gorm.DB) (int64, error)
  CountByStatus(ctx context.Context, tx *gorm.DB, status string) (int64, error)
}

type applicationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewApplicationRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationRepo {
  repoLog := baseLog.With("repo", "ApplicationRepo")
  return &applicationRepo{db: db, log: repoLog}
}

func (ar *applicationRepo) Create(ctx context.Context, tx *gorm.DB, application *types.AssessmentApplication) (*types.AssessmentApplication, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  if err := transaction.WithContext(ctx).Create(application).Error; err != nil {
    return nil, err
  }
  return application, nil
}

func (ar *applicationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentApplication, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var result types.AssessmentApplication
  if err := transaction.WithContext(ctx).
    Preload("Assessment").
    Preload("Employee").
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ar *applicationRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.AssessmentApplication, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var result types.AssessmentApplication
  if err := transaction.WithContext(ctx).
    Preload("Assessment").
    Preload("Employee").
    Where("unique_token = ?", token).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ar *applicationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, startedAt, completedAt *time.Time) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  fields := map[string]interface{}{"status": status}
  if startedAt != nil {
    fields["started_at"] = *startedAt
  }
  if completedAt != nil {
    fields["completed_at"] = *completedAt
  }
  return transaction.WithContext(ctx).
    Model(&types.AssessmentApplication{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (ar *applicationRepo) ListByPsychologist(ctx context.Context, tx *gorm.DB, psychologistID uuid.UUID) ([]*types.AssessmentApplication, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.AssessmentApplication
  if err := transaction.WithContext(ctx).
    Preload("Assessment").
    Preload("Employee").
    Where("psychologist_id = ?", psychologistID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *applicationRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.AssessmentApplication{}).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (ar *applicationRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.AssessmentApplication{}).
    Where("status = ?", status).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (ar *applicationRepo) ListByCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.AssessmentApplication, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.AssessmentApplication
  if err := transaction.WithContext(ctx).
    Preload("Assessment").
    Preload("Employee").
    Where("company_id = ?", companyID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
