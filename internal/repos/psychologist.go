package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type PsychologistRepo interface {
  // Upsert keys on the profile id so a retried invitation acceptance is safe.
  Upsert(ctx context.Context, tx *gorm.DB, psychologist *types.Psychologist) (*types.Psychologist, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Psychologist, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
  List(ctx context.Context, tx *gorm.DB) ([]*types.Psychologist, error)
  SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error
  CountActive(ctx context.Context, tx *gorm.DB) (int64, error)
}

type psychologistRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPsychologistRepo(db *gorm.DB, baseLog *logger.Logger) PsychologistRepo {
  repoLog := baseLog.With("repo", "PsychologistRepo")
  return &psychologistRepo{db: db, log: repoLog}
}

func (pr *psychologistRepo) Upsert(ctx context.Context, tx *gorm.DB, psychologist *types.Psychologist) (*types.Psychologist, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "id"}},
      DoUpdates: clause.AssignmentColumns([]string{"is_active", "updated_at"}),
    }).
    Create(psychologist).Error; err != nil {
    return nil, err
  }
  return psychologist, nil
}

func (pr *psychologistRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Psychologist, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var result types.Psychologist
  if err := transaction.WithContext(ctx).
    Preload("Profile").
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *psychologistRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Psychologist{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (pr *psychologistRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Psychologist, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Psychologist
  if err := transaction.WithContext(ctx).
    Preload("Profile").
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *psychologistRepo) SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Psychologist{}).
    Where("id = ?", id).
    Update("is_active", active).Error
}

func (pr *psychologistRepo) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Psychologist{}).
    Where("is_active = ?", true).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
