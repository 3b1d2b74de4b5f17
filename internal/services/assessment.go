package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/traitscan/backend/internal/apierr"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/repos"
  "github.com/traitscan/backend/internal/types"
)

type AssessmentWithQuizzes struct {
  Assessment *types.Assessment        `json:"assessment"`
  Quizzes    []*types.AssessmentQuiz  `json:"quizzes"`
}

type AssessmentService interface {
  Create(ctx context.Context, psychologistID uuid.UUID, name string, description *string) (*types.Assessment, error)
  GetWithQuizzes(ctx context.Context, id uuid.UUID) (*AssessmentWithQuizzes, error)
  Update(ctx context.Context, id uuid.UUID, name *string, description *string) error
  Archive(ctx context.Context, id uuid.UUID, archived bool) error
  ListByPsychologist(ctx context.Context, psychologistID uuid.UUID, includeArchived bool) ([]*types.Assessment, error)
  AddQuiz(ctx context.Context, assessmentID, quizID uuid.UUID, orderNumber int) (*types.AssessmentQuiz, error)
  RemoveQuiz(ctx context.Context, assessmentID, quizID uuid.UUID) error
}

type assessmentService struct {
  log            *logger.Logger
  assessmentRepo repos.AssessmentRepo
  quizRepo       repos.QuizRepo
}

func NewAssessmentService(
  log *logger.Logger,
  assessmentRepo repos.AssessmentRepo,
  quizRepo repos.QuizRepo,
) AssessmentService {
  serviceLog := log.With("service", "AssessmentService")
  return &assessmentService{
    log:            serviceLog,
    assessmentRepo: assessmentRepo,
    quizRepo:       quizRepo,
  }
}

func (s *assessmentService) Create(ctx context.Context, psychologistID uuid.UUID, name string, description *string) (*types.Assessment, error) {
  name = strings.TrimSpace(name)
  if name == "" {
    return nil, apierr.Validation(fmt.Errorf("assessment name is required"))
  }
  assessment := &types.Assessment{
    ID:             uuid.New(),
    PsychologistID: psychologistID,
    Name:           name,
    Description:    description,
  }
  created, err := s.assessmentRepo.Create(ctx, nil, assessment)
  if err != nil {
    return nil, fmt.Errorf("Failed to create assessment: %w", err)
  }
  return created, nil
}

func (s *assessmentService) GetWithQuizzes(ctx context.Context, id uuid.UUID) (*AssessmentWithQuizzes, error) {
  assessment, err := s.assessmentRepo.GetByID(ctx, nil, id)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("assessment")
    }
    return nil, fmt.Errorf("Failed to load assessment: %w", err)
  }
  quizzes, err := s.assessmentRepo.GetQuizzesOrdered(ctx, nil, id)
  if err != nil {
    return nil, fmt.Errorf("Failed to load assessment quizzes: %w", err)
  }
  return &AssessmentWithQuizzes{Assessment: assessment, Quizzes: quizzes}, nil
}

func (s *assessmentService) Update(ctx context.Context, id uuid.UUID, name *string, description *string) error {
  fields := map[string]interface{}{"updated_at": time.Now()}
  if name != nil {
    trimmed := strings.TrimSpace(*name)
    if trimmed == "" {
      return apierr.Validation(fmt.Errorf("assessment name cannot be empty"))
    }
    fields["name"] = trimmed
  }
  if description != nil {
    fields["description"] = *description
  }
  if err := s.assessmentRepo.Update(ctx, nil, id, fields); err != nil {
    return fmt.Errorf("Failed to update assessment: %w", err)
  }
  return nil
}

func (s *assessmentService) Archive(ctx context.Context, id uuid.UUID, archived bool) error {
  fields := map[string]interface{}{
    "is_archived": archived,
    "updated_at":  time.Now(),
  }
  if err := s.assessmentRepo.Update(ctx, nil, id, fields); err != nil {
    return fmt.Errorf("Failed to archive assessment: %w", err)
  }
  return nil
}

func (s *assessmentService) ListByPsychologist(ctx context.Context, psychologistID uuid.UUID, includeArchived bool) ([]*types.Assessment, error) {
  return s.assessmentRepo.ListByPsychologist(ctx, nil, psychologistID, includeArchived)
}

func (s *assessmentService) AddQuiz(ctx context.Context, assessmentID, quizID uuid.UUID, orderNumber int) (*types.AssessmentQuiz, error) {
  if orderNumber < 1 {
    return nil, apierr.Validation(fmt.Errorf("order number must be positive"))
  }
  if _, err := s.quizRepo.GetByID(ctx, nil, quizID); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("quiz")
    }
    return nil, fmt.Errorf("Failed to load quiz: %w", err)
  }
  join := &types.AssessmentQuiz{
    ID:           uuid.New(),
    AssessmentID: assessmentID,
    QuizID:       quizID,
    OrderNumber:  orderNumber,
  }
  created, err := s.assessmentRepo.AddQuiz(ctx, nil, join)
  if err != nil {
    if errors.Is(err, gorm.ErrDuplicatedKey) {
      return nil, apierr.Validation(fmt.Errorf("quiz already attached to assessment"))
    }
    return nil, fmt.Errorf("Failed to attach quiz: %w", err)
  }
  return created, nil
}

func (s *assessmentService) RemoveQuiz(ctx context.Context, assessmentID, quizID uuid.UUID) error {
  if err := s.assessmentRepo.RemoveQuiz(ctx, nil, assessmentID, quizID); err != nil {
    return fmt.Errorf("Failed to detach quiz: %w", err)
  }
  return nil
}
