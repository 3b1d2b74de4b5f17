package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

type ProfileRepo interface {
  Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Profile, error)
  GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Profile, error)
  EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
  UpdateRole(ctx context.Context, tx *gorm.DB, id uuid.UUID, role string) error
  List(ctx context.Context, tx *gorm.DB) ([]*types.Profile, error)
  CountByRole(ctx context.Context, tx *gorm.DB, role string) (int64, error)
}

type profileRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
  repoLog := baseLog.With("repo", "ProfileRepo")
  return &profileRepo{db: db, log: repoLog}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
    return nil, err
  }
  return profile, nil
}

func (pr *profileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Profile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var result types.Profile
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *profileRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Profile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var result types.Profile
  if err := transaction.WithContext(ctx).
    Where("email = ?", email).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *profileRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Profile{}).
    Where("email = ?", email).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (pr *profileRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Profile{}).
    Where("id = ?", id).
    Updates(fields).Error
}

func (pr *profileRepo) UpdateRole(ctx context.Context, tx *gorm.DB, id uuid.UUID, role string) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Profile{}).
    Where("id = ?", id).
    Update("role", role).Error
}

func (pr *profileRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Profile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Profile
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *profileRepo) CountByRole(ctx context.Context, tx *gorm.DB, role string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Profile{}).
    Where("role = ?", role).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
