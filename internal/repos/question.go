package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type QuestionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Question, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type questionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
  repoLog := baseLog.With("repo", "QuestionRepo")
  return &questionRepo{db: db, log: repoLog}
}

func (qr *questionRepo) Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }
  if err := transaction.WithContext(ctx).Create(question).Error; err != nil {
    return nil, err
  }
  return question, nil
}

func (qr *questionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Question, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }
  var result types.Question
  if err := transaction.WithContext(ctx).
    Preload("Alternatives", func(db *gorm.DB) *gorm.DB {
      return db.Order("alternatives.order_number ASC")
    }).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (qr *questionRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Question{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (qr *questionRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.Question{}).Error
}
