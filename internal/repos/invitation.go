package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type InvitationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, invitation *types.Invitation) (*types.Invitation, error)
  GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.Invitation, error)
  ListByInviter(ctx context.Context, tx *gorm.DB, inviterID uuid.UUID) ([]*types.Invitation, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Invitation, error)
  // MarkAccepted is a conditional update guarding the double-accept race:
  // it only fires while status is still pending and reports whether a row
  // was actually claimed.
  MarkAccepted(ctx context.Context, tx *gorm.DB, id uuid.UUID, acceptedAt time.Time) (bool, error)
  CountPending(ctx context.Context, tx *gorm.DB) (int64, error)
}

type invitationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInvitationRepo(db *gorm.DB, baseLog *logger.Logger) InvitationRepo {
  repoLog := baseLog.With("repo", "InvitationRepo")
  return &invitationRepo{db: db, log: repoLog}
}

func (ir *invitationRepo) Create(ctx context.Context, tx *gorm.DB, invitation *types.Invitation) (*types.Invitation, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  if err := transaction.WithContext(ctx).Create(invitation).Error; err != nil {
    return nil, err
  }
  return invitation, nil
}

func (ir *invitationRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.Invitation, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var result types.Invitation
  if err := transaction.WithContext(ctx).
    Where("token = ?", token).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ir *invitationRepo) ListByInviter(ctx context.Context, tx *gorm.DB, inviterID uuid.UUID) ([]*types.Invitation, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.Invitation
  if err := transaction.WithContext(ctx).
    Where("invited_by = ?", inviterID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *invitationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Invitation, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var results []*types.Invitation
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *invitationRepo) MarkAccepted(ctx context.Context, tx *gorm.DB, id uuid.UUID, acceptedAt time.Time) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  result := transaction.WithContext(ctx).
    Model(&types.Invitation{}).
    Where("id = ? AND status = ?", id, types.InvitationPending).
    Updates(map[string]interface{}{
      "status":      types.InvitationAccepted,
      "accepted_at": acceptedAt,
    })
  if result.Error != nil {
    return false, result.Error
  }
  return result.RowsAffected > 0, nil
}

func (ir *invitationRepo) CountPending(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Invitation{}).
    Where("status = ?", types.InvitationPending).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
