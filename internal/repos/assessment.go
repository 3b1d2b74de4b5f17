package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type AssessmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, assessment *types.Assessment) (*types.Assessment, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Assessment, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
  ListByPsychologist(ctx context.Context, tx *gorm.DB, psychologistID uuid.UUID, includeArchived bool) ([]*types.Assessment, error)
  AddQuiz(ctx context.Context, tx *gorm.DB, join *types.AssessmentQuiz) (*types.AssessmentQuiz, error)
  RemoveQuiz(ctx context.Context, tx *gorm.DB, assessmentID, quizID uuid.UUID) error
  // GetQuizzesOrdered returns the join rows by ascending order_number with
  // quizzes, questions and alternatives preloaded in presentation order.
  GetQuizzesOrdered(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.AssessmentQuiz, error)
}

type assessmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
  repoLog := baseLog.With("repo", "AssessmentRepo")
  return &assessmentRepo{db: db, log: repoLog}
}

func (ar *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessment *types.Assessment) (*types.Assessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  if err := transaction.WithContext(ctx).Create(assessment).Error; err != nil {
    return nil, err
  }
  return assessment, nil
}

func (ar *assessmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Assessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var result types.Assessment
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ar *assessmentRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Assessment{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (ar *assessmentRepo) ListByPsychologist(ctx context.Context, tx *gorm.DB, psychologistID uuid.UUID, includeArchived bool) ([]*types.Assessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  query := transaction.WithContext(ctx).
    Where("psychologist_id = ?", psychologistID)
  if !includeArchived {
    query = query.Where("is_archived = ?", false)
  }
  var results []*types.Assessment
  if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *assessmentRepo) AddQuiz(ctx context.Context, tx *gorm.DB, join *types.AssessmentQuiz) (*types.AssessmentQuiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  if err := transaction.WithContext(ctx).Create(join).Error; err != nil {
    return nil, err
  }
  return join, nil
}

func (ar *assessmentRepo) RemoveQuiz(ctx context.Context, tx *gorm.DB, assessmentID, quizID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  return transaction.WithContext(ctx).
    Where("assessment_id = ? AND quiz_id = ?", assessmentID, quizID).
    Delete(&types.AssessmentQuiz{}).Error
}

func (ar *assessmentRepo) GetQuizzesOrdered(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.AssessmentQuiz, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.AssessmentQuiz
  if err := transaction.WithContext(ctx).
    Preload("Quiz").
    Preload("Quiz.Questions", func(db *gorm.DB) *gorm.DB {
      return db.Order("questions.order_number ASC")
    }).
    Preload("Quiz.Questions.Alternatives", func(db *gorm.DB) *gorm.DB {
      return db.Order("alternatives.order_number ASC")
    }).
    Where("assessment_id = ?", assessmentID).
    Order("order_number ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
