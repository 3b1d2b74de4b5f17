package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type ResponseRepo interface {
  // Upsert is keyed by (application_id, question_id): a resubmitted answer
  // overwrites the chosen alternative. Concurrent duplicate submissions
  // converge to one row via the unique constraint.
  Upsert(ctx context.Context, tx *gorm.DB, response *types.Response) (*types.Response, error)
  ListByApplication(ctx context.Context, tx *gorm.DB, applicationID uuid.UUID) ([]*types.Response, error)
}

type responseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
  repoLog := baseLog.With("repo", "ResponseRepo")
  return &responseRepo{db: db, log: repoLog}
}

func (rr *responseRepo) Upsert(ctx context.Context, tx *gorm.DB, response *types.Response) (*types.Response, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "application_id"}, {Name: "question_id"}},
      DoUpdates: clause.AssignmentColumns([]string{"alternative_id"}),
    }).
    Create(response).Error; err != nil {
    return nil, err
  }
  return response, nil
}

func (rr *responseRepo) ListByApplication(ctx context.Context, tx *gorm.DB, applicationID uuid.UUID) ([]*types.Response, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.Response
  if err := transaction.WithContext(ctx).
    Preload("Question").
    Preload("Alternative").
    Where("application_id = ?", applicationID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
