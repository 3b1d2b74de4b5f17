package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/traitscan/backend/internal/apierr"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/repos"
  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/types"
  "github.com/traitscan/backend/internal/utils"
)

type TokenPair struct {
  AccessToken  string `json:"access_token"`
  RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
  Register(ctx context.Context, email, fullName, password string) (*types.Profile, error)
  Login(ctx context.Context, email, password string) (*TokenPair, error)
  Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
  Logout(ctx context.Context, userID uuid.UUID) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  profileRepo   repos.ProfileRepo
  userTokenRepo repos.UserTokenRepo
  jwtSecretKey  string
  accessTTL     time.Duration
  refreshTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  profileRepo repos.ProfileRepo,
  userTokenRepo repos.UserTokenRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:            db,
    log:           serviceLog,
    profileRepo:   profileRepo,
    userTokenRepo: userTokenRepo,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
    refreshTTL:    refreshTTL,
  }
}

func (as *authService) Register(ctx context.Context, email, fullName, password string) (*types.Profile, error) {
  email = strings.ToLower(strings.TrimSpace(email))
  fullName = strings.TrimSpace(fullName)
  if email == "" || !strings.Contains(email, "@") {
    return nil, apierr.Validation(fmt.Errorf("a valid email is required"))
  }
  if len(password) < 6 {
    return nil, apierr.Validation(fmt.Errorf("password must have at least 6 characters"))
  }
  exists, err := as.profileRepo.EmailExists(ctx, nil, email)
  if err != nil {
    return nil, fmt.Errorf("Failed to check email: %w", err)
  }
  if exists {
    return nil, apierr.Validation(fmt.Errorf("email already registered"))
  }
  hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return nil, fmt.Errorf("Failed to hash password: %w", err)
  }
  profile := &types.Profile{
    ID:           uuid.New(),
    Email:        email,
    PasswordHash: string(hash),
    Role:         types.RoleCompany,
    Language:     "pt",
  }
  if fullName != "" {
    profile.FullName = &fullName
  }
  if _, err := as.profileRepo.Create(ctx, nil, profile); err != nil {
    return nil, fmt.Errorf("Failed to create profile: %w", err)
  }
  return profile, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
  email = strings.ToLower(strings.TrimSpace(email))
  profile, err := as.profileRepo.GetByEmail(ctx, nil, email)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.New(401, "invalid_credentials", fmt.Errorf("invalid email or password"))
    }
    return nil, fmt.Errorf("Failed to load profile: %w", err)
  }
  if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
    return nil, apierr.New(401, "invalid_credentials", fmt.Errorf("invalid email or password"))
  }
  return as.issuePair(ctx, profile)
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
  stored, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.New(401, "invalid_refresh", fmt.Errorf("unknown refresh token"))
    }
    return nil, fmt.Errorf("Failed to load refresh token: %w", err)
  }
  if stored.ExpiresAt.Before(time.Now()) {
    return nil, apierr.New(401, "invalid_refresh", fmt.Errorf("refresh token expired"))
  }
  profile, err := as.profileRepo.GetByID(ctx, nil, stored.UserID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load profile: %w", err)
  }
  // rotate: old refresh tokens for the user are dropped
  if err := as.userTokenRepo.DeleteByUserID(ctx, nil, stored.UserID); err != nil {
    return nil, fmt.Errorf("Failed to rotate refresh token: %w", err)
  }
  return as.issuePair(ctx, profile)
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
  return as.userTokenRepo.DeleteByUserID(ctx, nil, userID)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil || !parsed.Valid {
    return ctx, fmt.Errorf("invalid token")
  }
  claims, ok := parsed.Claims.(jwt.MapClaims)
  if !ok {
    return ctx, fmt.Errorf("invalid token claims")
  }
  sub, _ := claims["sub"].(string)
  userID, err := uuid.Parse(sub)
  if err != nil {
    return ctx, fmt.Errorf("invalid token subject")
  }
  role, _ := claims["role"].(string)
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
    Role:        role,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}

func (as *authService) issuePair(ctx context.Context, profile *types.Profile) (*TokenPair, error) {
  now := time.Now()
  claims := jwt.MapClaims{
    "sub":  profile.ID.String(),
    "role": profile.Role,
    "iat":  now.Unix(),
    "exp":  now.Add(as.accessTTL).Unix(),
  }
  access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
  if err != nil {
    return nil, fmt.Errorf("Failed to sign access token: %w", err)
  }
  refresh := utils.IssueToken()
  _, err = as.userTokenRepo.Create(ctx, nil, &types.UserToken{
    ID:           uuid.New(),
    UserID:       profile.ID,
    RefreshToken: refresh,
    ExpiresAt:    now.Add(as.refreshTTL),
  })
  if err != nil {
    return nil, fmt.Errorf("Failed to store refresh token: %w", err)
  }
  return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
