package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type AlternativeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, alternatives []*types.Alternative) ([]*types.Alternative, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Alternative, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type alternativeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAlternativeRepo(db *gorm.DB, baseLog *logger.Logger) AlternativeRepo {
  repoLog := baseLog.With("repo", "AlternativeRepo")
  return &alternativeRepo{db: db, log: repoLog}
}

func (ar *alternativeRepo) Create(ctx context.Context, tx *gorm.DB, alternatives []*types.Alternative) ([]*types.Alternative, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  if len(alternatives) == 0 {
    return []*types.Alternative{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&alternatives).Error; err != nil {
    return nil, err
  }
  return alternatives, nil
}

func (ar *alternativeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Alternative, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var result types.Alternative
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ar *alternativeRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Alternative{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (ar *alternativeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.Alternative{}).Error
}
