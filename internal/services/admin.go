package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "github.com/redis/go-redis/v9"

  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/repos"
  "github.com/traitscan/backend/internal/types"
)

const (
  overviewCacheKey = "admin:overview"
  overviewCacheTTL = 60 * time.Second
)

type Overview struct {
  Psychologists         int64 `json:"psychologists"`
  Companies             int64 `json:"companies"`
  Employees             int64 `json:"employees"`
  Applications          int64 `json:"applications"`
  CompletedApplications int64 `json:"completed_applications"`
  PendingInvitations    int64 `json:"pending_invitations"`
}

type BillingSummary struct {
  ActiveCompanies int64            `json:"active_companies"`
  ByStatus        map[string]int64 `json:"by_status"`
  ExpiringTrials  []*types.Company `json:"expiring_trials"`
}

type AdminService interface {
  // GetOverview serves the dashboard counters, cached briefly in redis.
  // Cache failures degrade to a direct read, never to an error.
  GetOverview(ctx context.Context) (*Overview, error)
  GetBillingSummary(ctx context.Context) (*BillingSummary, error)
  ListPsychologists(ctx context.Context) ([]*types.Psychologist, error)
  ListCompanies(ctx context.Context) ([]*types.Company, error)
  ListInvitations(ctx context.Context) ([]*types.Invitation, error)
  SetPsychologistActive(ctx context.Context, id uuid.UUID, active bool) error
  SetCompanyActive(ctx context.Context, id uuid.UUID, active bool) error
}

type adminService struct {
  log              *logger.Logger
  cache            *redis.Client
  psychologistRepo repos.PsychologistRepo
  companyRepo      repos.CompanyRepo
  employeeRepo     repos.EmployeeRepo
  applicationRepo  repos.ApplicationRepo
  invitationRepo   repos.InvitationRepo
}

func NewAdminService(
  log *logger.Logger,
  cache *redis.Client,
  psychologistRepo repos.PsychologistRepo,
  companyRepo repos.CompanyRepo,
  employeeRepo repos.EmployeeRepo,
  applicationRepo repos.ApplicationRepo,
  invitationRepo repos.InvitationRepo,
) AdminService {
  serviceLog := log.With("service", "AdminService")
  return &adminService{
    log:              serviceLog,
    cache:            cache,
    psychologistRepo: psychologistRepo,
    companyRepo:      companyRepo,
    employeeRepo:     employeeRepo,
    applicationRepo:  applicationRepo,
    invitationRepo:   invitationRepo,
  }
}

func (s *adminService) GetOverview(ctx context.Context) (*Overview, error) {
  if s.cache != nil {
    cached, err := s.cache.Get(ctx, overviewCacheKey).Bytes()
    if err == nil {
      var overview Overview
      if json.Unmarshal(cached, &overview) == nil {
        return &overview, nil
      }
    } else if err != redis.Nil {
      s.log.Warn("Overview cache read failed", "error", err)
    }
  }

  overview := &Overview{}
  var err error
  if overview.Psychologists, err = s.psychologistRepo.CountActive(ctx, nil); err != nil {
    return nil, fmt.Errorf("Failed to count psychologists: %w", err)
  }
  if overview.Companies, err = s.companyRepo.CountActive(ctx, nil); err != nil {
    return nil, fmt.Errorf("Failed to count companies: %w", err)
  }
  if overview.Employees, err = s.employeeRepo.Count(ctx, nil); err != nil {
    return nil, fmt.Errorf("Failed to count employees: %w", err)
  }
  if overview.Applications, err = s.applicationRepo.Count(ctx, nil); err != nil {
    return nil, fmt.Errorf("Failed to count applications: %w", err)
  }
  if overview.CompletedApplications, err = s.applicationRepo.CountByStatus(ctx, nil, types.ApplicationCompleted); err != nil {
    return nil, fmt.Errorf("Failed to count completed applications: %w", err)
  }
  if overview.PendingInvitations, err = s.invitationRepo.CountPending(ctx, nil); err != nil {
    return nil, fmt.Errorf("Failed to count pending invitations: %w", err)
  }

  if s.cache != nil {
    if encoded, err := json.Marshal(overview); err == nil {
      if err := s.cache.Set(ctx, overviewCacheKey, encoded, overviewCacheTTL).Err(); err != nil {
        s.log.Warn("Overview cache write failed", "error", err)
      }
    }
  }
  return overview, nil
}

func (s *adminService) GetBillingSummary(ctx context.Context) (*BillingSummary, error) {
  companies, err := s.companyRepo.List(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list companies: %w", err)
  }
  summary := &BillingSummary{ByStatus: map[string]int64{}}
  for _, company := range companies {
    summary.ByStatus[company.SubscriptionStatus]++
    if company.IsActive {
      summary.ActiveCompanies++
    }
  }
  trials, err := s.companyRepo.ListExpiringTrials(ctx, nil, 5)
  if err != nil {
    return nil, fmt.Errorf("Failed to list expiring trials: %w", err)
  }
  summary.ExpiringTrials = trials
  return summary, nil
}

func (s *adminService) ListPsychologists(ctx context.Context) ([]*types.Psychologist, error) {
  return s.psychologistRepo.List(ctx, nil)
}

func (s *adminService) ListCompanies(ctx context.Context) ([]*types.Company, error) {
  return s.companyRepo.List(ctx, nil)
}

func (s *adminService) ListInvitations(ctx context.Context) ([]*types.Invitation, error) {
  return s.invitationRepo.List(ctx, nil)
}

func (s *adminService) SetPsychologistActive(ctx context.Context, id uuid.UUID, active bool) error {
  if err := s.psychologistRepo.SetActive(ctx, nil, id, active); err != nil {
    return fmt.Errorf("Failed to toggle psychologist: %w", err)
  }
  s.invalidateOverview(ctx)
  return nil
}

func (s *adminService) SetCompanyActive(ctx context.Context, id uuid.UUID, active bool) error {
  if err := s.companyRepo.SetActive(ctx, nil, id, active); err != nil {
    return fmt.Errorf("Failed to toggle company: %w", err)
  }
  s.invalidateOverview(ctx)
  return nil
}

func (s *adminService) invalidateOverview(ctx context.Context) {
  if s.cache == nil {
    return
  }
  if err := s.cache.Del(ctx, overviewCacheKey).Err(); err != nil {
    s.log.Warn("Overview cache invalidation failed", "error", err)
  }
}
