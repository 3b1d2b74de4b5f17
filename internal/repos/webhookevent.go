package repos

import (
  "context"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type WebhookEventRepo interface {
  // Record logs one row per provider event id; replayed deliveries are
  // no-ops here while the handler still re-applies the payload.
  Record(ctx context.Context, tx *gorm.DB, event *types.WebhookEvent) error
}

type webhookEventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWebhookEventRepo(db *gorm.DB, baseLog *logger.Logger) WebhookEventRepo {
  repoLog := baseLog.With("repo", "WebhookEventRepo")
  return &webhookEventRepo{db: db, log: repoLog}
}

func (wr *webhookEventRepo) Record(ctx context.Context, tx *gorm.DB, event *types.WebhookEvent) error {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "provider_event_id"}},
      DoNothing: true,
    }).
    Create(event).Error
}
