package services

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/traitscan/backend/internal/apierr"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/repos"
  "github.com/traitscan/backend/internal/types"
  "github.com/traitscan/backend/internal/utils"
)

// Application links stay answerable for 30 days after generation.
const applicationTokenTTL = 30 * 24 * time.Hour

// OpenedApplication is what the respondent sees behind the token URL: the
// application plus the assessment's quizzes in presentation order.
type OpenedApplication struct {
  Application *types.AssessmentApplication `json:"application"`
  Quizzes     []*types.AssessmentQuiz      `json:"quizzes"`
}

// SubmitResult reports where the respondent stands after a quiz page.
type SubmitResult struct {
  Completed     bool `json:"completed"`
  NextQuizIndex int  `json:"next_quiz_index"`
}

type ApplicationService interface {
  Create(ctx context.Context, assessmentID, employeeID, companyID, psychologistID uuid.UUID) (*types.AssessmentApplication, error)
  OpenByToken(ctx context.Context, token string) (*OpenedApplication, error)
  SubmitQuizAnswers(ctx context.Context, token string, quizID uuid.UUID, answers map[uuid.UUID]uuid.UUID) (*SubmitResult, error)
  GetByID(ctx context.Context, id uuid.UUID) (*types.AssessmentApplication, error)
  ListByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*types.AssessmentApplication, error)
  ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*types.AssessmentApplication, error)
}

type applicationService struct {
  db              *gorm.DB
  log             *logger.Logger
  applicationRepo repos.ApplicationRepo
  assessmentRepo  repos.AssessmentRepo
  responseRepo    repos.ResponseRepo
  now             func() time.Time
}

func NewApplicationService(
  db *gorm.DB,
  log *logger.Logger,
  applicationRepo repos.ApplicationRepo,
  assessmentRepo repos.AssessmentRepo,
  responseRepo repos.ResponseRepo,
) ApplicationService {
  serviceLog := log.With("service", "ApplicationService")
  return &applicationService{
    db:              db,
    log:             serviceLog,
    applicationRepo: applicationRepo,
    assessmentRepo:  assessmentRepo,
    responseRepo:    responseRepo,
    now:             time.Now,
  }
}

func (s *applicationService) Create(ctx context.Context, assessmentID, employeeID, companyID, psychologistID uuid.UUID) (*types.AssessmentApplication, error) {
  expiresAt := s.now().Add(applicationTokenTTL)
  // the unique constraint on unique_token decides collisions; retry once
  // with a fresh token before giving up
  var lastErr error
  for attempt := 0; attempt < 2; attempt++ {
    application := &types.AssessmentApplication{
      ID:             uuid.New(),
      AssessmentID:   assessmentID,
      EmployeeID:     employeeID,
      CompanyID:      companyID,
      PsychologistID: psychologistID,
      UniqueToken:    utils.IssueToken(),
      Status:         types.ApplicationPending,
      ExpiresAt:      &expiresAt,
    }
    created, err := s.applicationRepo.Create(ctx, nil, application)
    if err == nil {
      return created, nil
    }
    lastErr = err
    if !errors.Is(err, gorm.ErrDuplicatedKey) {
      break
    }
    s.log.Warn("Token collision on application create, retrying", "attempt", attempt)
  }
  return nil, fmt.Errorf("Failed to create assessment application: %w", lastErr)
}

func (s *applicationService) OpenByToken(ctx context.Context, token string) (*OpenedApplication, error) {
  application, err := s.applicationRepo.GetByToken(ctx, nil, token)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("application")
    }
    return nil, fmt.Errorf("Failed to load application: %w", err)
  }

  now := s.now()
  switch {
  case application.Status == types.ApplicationCompleted:
    // idempotent re-open: the respondent sees the thank-you state
  case application.IsExpired(now):
    // lazy expiry: classified against the clock, stored status untouched
    return nil, apierr.Expired("application")
  case application.Status == types.ApplicationPending:
    startedAt := now
    if err := s.applicationRepo.UpdateStatus(ctx, nil, application.ID, types.ApplicationInProgress, &startedAt, nil); err != nil {
      return nil, fmt.Errorf("Failed to start application: %w", err)
    }
    application.Status = types.ApplicationInProgress
    application.StartedAt = &startedAt
  }

  quizzes, err := s.assessmentRepo.GetQuizzesOrdered(ctx, nil, application.AssessmentID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load assessment quizzes: %w", err)
  }
  return &OpenedApplication{Application: application, Quizzes: quizzes}, nil
}

func (s *applicationService) SubmitQuizAnswers(ctx context.Context, token string, quizID uuid.UUID, answers map[uuid.UUID]uuid.UUID) (*SubmitResult, error) {
  application, err := s.applicationRepo.GetByToken(ctx, nil, token)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("application")
    }
    return nil, fmt.Errorf("Failed to load application: %w", err)
  }
  now := s.now()
  if application.Status == types.ApplicationCompleted {
    return nil, apierr.New(409, "completed", fmt.Errorf("application already completed"))
  }
  if application.IsExpired(now) {
    return nil, apierr.Expired("application")
  }
  // a submit on a never-opened link still starts the application, so
  // started_at is set before any answer or completion is recorded
  if application.Status == types.ApplicationPending {
    startedAt := now
    if err := s.applicationRepo.UpdateStatus(ctx, nil, application.ID, types.ApplicationInProgress, &startedAt, nil); err != nil {
      return nil, fmt.Errorf("Failed to start application: %w", err)
    }
    application.Status = types.ApplicationInProgress
    application.StartedAt = &startedAt
  }

  quizzes, err := s.assessmentRepo.GetQuizzesOrdered(ctx, nil, application.AssessmentID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load assessment quizzes: %w", err)
  }
  quizIndex := -1
  var quiz *types.Quiz
  for i, aq := range quizzes {
    if aq.QuizID == quizID {
      quizIndex = i
      quiz = aq.Quiz
      break
    }
  }
  if quizIndex == -1 || quiz == nil {
    return nil, apierr.NotFound("quiz")
  }
  if err := validateQuizAnswers(quiz.Questions, answers); err != nil {
    return nil, err
  }

  isLast := quizIndex == len(quizzes)-1
  apply := func(tx *gorm.DB) error {
    for _, question := range quiz.Questions {
      response := &types.Response{
        ID:            uuid.New(),
        ApplicationID: application.ID,
        QuestionID:    question.ID,
        AlternativeID: answers[question.ID],
      }
      if _, err := s.responseRepo.Upsert(ctx, tx, response); err != nil {
        return fmt.Errorf("Failed to record response: %w", err)
      }
    }
    if isLast {
      completedAt := now
      if err := s.applicationRepo.UpdateStatus(ctx, tx, application.ID, types.ApplicationCompleted, nil, &completedAt); err != nil {
        return fmt.Errorf("Failed to complete application: %w", err)
      }
    }
    return nil
  }
  if s.db == nil {
    if err := apply(nil); err != nil {
      return nil, err
    }
  } else if err := s.db.WithContext(ctx).Transaction(apply); err != nil {
    return nil, err
  }

  result := &SubmitResult{Completed: isLast}
  if !isLast {
    result.NextQuizIndex = quizIndex + 1
  }
  return result, nil
}

func (s *applicationService) GetByID(ctx context.Context, id uuid.UUID) (*types.AssessmentApplication, error) {
  application, err := s.applicationRepo.GetByID(ctx, nil, id)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("application")
    }
    return nil, fmt.Errorf("Failed to load application: %w", err)
  }
  return application, nil
}

func (s *applicationService) ListByPsychologist(ctx context.Context, psychologistID uuid.UUID) ([]*types.AssessmentApplication, error) {
  return s.applicationRepo.ListByPsychologist(ctx, nil, psychologistID)
}

func (s *applicationService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*types.AssessmentApplication, error) {
  return s.applicationRepo.ListByCompany(ctx, nil, companyID)
}

// validateQuizAnswers rejects a partial quiz page (reporting how many
// questions are still unanswered) and answers pointing at an alternative
// that does not belong to the question.
func validateQuizAnswers(questions []types.Question, answers map[uuid.UUID]uuid.UUID) error {
  unanswered := 0
  for _, question := range questions {
    if _, ok := answers[question.ID]; !ok {
      unanswered++
    }
  }
  if unanswered > 0 {
    return apierr.Validation(fmt.Errorf("%d questions unanswered", unanswered))
  }
  for _, question := range questions {
    alternativeID := answers[question.ID]
    found := false
    for _, alt := range question.Alternatives {
      if alt.ID == alternativeID {
        found = true
        break
      }
    }
    if !found {
      return apierr.Validation(fmt.Errorf("alternative does not belong to question %d", question.OrderNumber))
    }
  }
  return nil
}
