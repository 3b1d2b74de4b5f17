package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type QuizRepo interface {
  Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Quiz, error)
  // GetWithQuestions preloads questions and alternatives in their
  // order_number order; storage must not rely on insertion order.
  GetWithQuestions(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Quiz, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
  ListByPsychologist(ctx context.Context, tx *gorm.DB, psychologistID uuid.UUID, includeArchived bool) ([]*types.Quiz, error)
}

type quizRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
  repoLog := baseLog.With("repo", "QuizRepo")
  return &quizRepo{db: db, log: repoLog}
}

func (qr *quizRepo) Create(ctx context.Context, tx *gorm.DB, quiz *types.Quiz) (*types.Quiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }
  if err := transaction.WithContext(ctx).Create(quiz).Error; err != nil {
    return nil, err
  }
  return quiz, nil
}

func (qr *quizRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Quiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }
  var result types.Quiz
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (qr *quizRepo) GetWithQuestions(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Quiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }
  var result types.Quiz
  if err := transaction.WithContext(ctx).
    Preload("Questions", func(db *gorm.DB) *gorm.DB {
      return db.Order("questions.order_number ASC")
    }).
    Preload("Questions.Alternatives", func(db *gorm.DB) *gorm.DB {
      return db.Order("alternatives.order_number ASC")
    }).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (qr *quizRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Quiz{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (qr *quizRepo) ListByPsychologist(ctx context.Context, tx *gorm.DB, psychologistID uuid.UUID, includeArchived bool) ([]*types.Quiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = qr.db
  }
  query := transaction.WithContext(ctx).
    Where("psychologist_id = ?", psychologistID)
  if !includeArchived {
    query = query.Where("is_archived = ?", false)
  }
  var results []*types.Quiz
  if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
