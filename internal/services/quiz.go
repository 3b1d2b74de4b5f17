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

// duplicateSuffix is appended to a duplicated quiz name, matching what the
// web client has always shown.
const duplicateSuffix = " (Cópia)"

type AlternativeInput struct {
  Text        string `json:"alternative_text"`
  Weight      int    `json:"weight"`
  OrderNumber int    `json:"order_number"`
}

type QuestionInput struct {
  Text         string             `json:"question_text"`
  OrderNumber  int                `json:"order_number"`
  Alternatives []AlternativeInput `json:"alternatives"`
}

type QuizService interface {
  Create(ctx context.Context, psychologistID uuid.UUID, name string, description *string) (*types.Quiz, error)
  GetWithQuestions(ctx context.Context, id uuid.UUID) (*types.Quiz, error)
  Update(ctx context.Context, id uuid.UUID, name *string, description *string) error
  Archive(ctx context.Context, id uuid.UUID, archived bool) error
  // Duplicate deep-copies the quiz with all questions and alternatives
  // under a new name; the copy belongs to the requesting psychologist.
  Duplicate(ctx context.Context, id uuid.UUID, psychologistID uuid.UUID) (*types.Quiz, error)
  ListByPsychologist(ctx context.Context, psychologistID uuid.UUID, includeArchived bool) ([]*types.Quiz, error)
  AddQuestion(ctx context.Context, quizID uuid.UUID, input QuestionInput) (*types.Question, error)
  UpdateQuestion(ctx context.Context, questionID uuid.UUID, text *string, orderNumber *int) error
  DeleteQuestion(ctx context.Context, questionID uuid.UUID) error
}

type quizService struct {
  db              *gorm.DB
  log             *logger.Logger
  quizRepo        repos.QuizRepo
  questionRepo    repos.QuestionRepo
  alternativeRepo repos.AlternativeRepo
}

func NewQuizService(
  db *gorm.DB,
  log *logger.Logger,
  quizRepo repos.QuizRepo,
  questionRepo repos.QuestionRepo,
  alternativeRepo repos.AlternativeRepo,
) QuizService {
  serviceLog := log.With("service", "QuizService")
  return &quizService{
    db:              db,
    log:             serviceLog,
    quizRepo:        quizRepo,
    questionRepo:    questionRepo,
    alternativeRepo: alternativeRepo,
  }
}

func (s *quizService) Create(ctx context.Context, psychologistID uuid.UUID, name string, description *string) (*types.Quiz, error) {
  name = strings.TrimSpace(name)
  if name == "" {
    return nil, apierr.Validation(fmt.Errorf("quiz name is required"))
  }
  quiz := &types.Quiz{
    ID:             uuid.New(),
    PsychologistID: psychologistID,
    Name:           name,
    Description:    description,
  }
  created, err := s.quizRepo.Create(ctx, nil, quiz)
  if err != nil {
    return nil, fmt.Errorf("Failed to create quiz: %w", err)
  }
  return created, nil
}

func (s *quizService) GetWithQuestions(ctx context.Context, id uuid.UUID) (*types.Quiz, error) {
  quiz, err := s.quizRepo.GetWithQuestions(ctx, nil, id)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("quiz")
    }
    return nil, fmt.Errorf("Failed to load quiz: %w", err)
  }
  return quiz, nil
}

func (s *quizService) Update(ctx context.Context, id uuid.UUID, name *string, description *string) error {
  fields := map[string]interface{}{"updated_at": time.Now()}
  if name != nil {
    trimmed := strings.TrimSpace(*name)
    if trimmed == "" {
      return apierr.Validation(fmt.Errorf("quiz name cannot be empty"))
    }
    fields["name"] = trimmed
  }
  if description != nil {
    fields["description"] = *description
  }
  if err := s.quizRepo.Update(ctx, nil, id, fields); err != nil {
    return fmt.Errorf("Failed to update quiz: %w", err)
  }
  return nil
}

func (s *quizService) Archive(ctx context.Context, id uuid.UUID, archived bool) error {
  fields := map[string]interface{}{
    "is_archived": archived,
    "updated_at":  time.Now(),
  }
  if err := s.quizRepo.Update(ctx, nil, id, fields); err != nil {
    return fmt.Errorf("Failed to archive quiz: %w", err)
  }
  return nil
}

func (s *quizService) Duplicate(ctx context.Context, id uuid.UUID, psychologistID uuid.UUID) (*types.Quiz, error) {
  source, err := s.GetWithQuestions(ctx, id)
  if err != nil {
    return nil, err
  }

  copyQuiz := &types.Quiz{
    ID:             uuid.New(),
    PsychologistID: psychologistID,
    Name:           source.Name + duplicateSuffix,
    Description:    source.Description,
  }
  apply := func(tx *gorm.DB) error {
    if _, err := s.quizRepo.Create(ctx, tx, copyQuiz); err != nil {
      return fmt.Errorf("Failed to create quiz copy: %w", err)
    }
    for _, question := range source.Questions {
      copyQuestion := &types.Question{
        ID:           uuid.New(),
        QuizID:       copyQuiz.ID,
        QuestionText: question.QuestionText,
        OrderNumber:  question.OrderNumber,
      }
      if _, err := s.questionRepo.Create(ctx, tx, copyQuestion); err != nil {
        return fmt.Errorf("Failed to copy question: %w", err)
      }
      copies := make([]*types.Alternative, 0, len(question.Alternatives))
      for _, alt := range question.Alternatives {
        copies = append(copies, &types.Alternative{
          ID:              uuid.New(),
          QuestionID:      copyQuestion.ID,
          AlternativeText: alt.AlternativeText,
          Weight:          alt.Weight,
          OrderNumber:     alt.OrderNumber,
        })
      }
      if _, err := s.alternativeRepo.Create(ctx, tx, copies); err != nil {
        return fmt.Errorf("Failed to copy alternatives: %w", err)
      }
    }
    return nil
  }
  if s.db == nil {
    err = apply(nil)
  } else {
    err = s.db.WithContext(ctx).Transaction(apply)
  }
  if err != nil {
    return nil, err
  }
  return copyQuiz, nil
}

func (s *quizService) ListByPsychologist(ctx context.Context, psychologistID uuid.UUID, includeArchived bool) ([]*types.Quiz, error) {
  return s.quizRepo.ListByPsychologist(ctx, nil, psychologistID, includeArchived)
}

func (s *quizService) AddQuestion(ctx context.Context, quizID uuid.UUID, input QuestionInput) (*types.Question, error) {
  if err := validateQuestionInput(input); err != nil {
    return nil, err
  }
  question := &types.Question{
    ID:           uuid.New(),
    QuizID:       quizID,
    QuestionText: strings.TrimSpace(input.Text),
    OrderNumber:  input.OrderNumber,
  }
  apply := func(tx *gorm.DB) error {
    if _, err := s.questionRepo.Create(ctx, tx, question); err != nil {
      return fmt.Errorf("Failed to create question: %w", err)
    }
    alternatives := make([]*types.Alternative, 0, len(input.Alternatives))
    for _, alt := range input.Alternatives {
      alternatives = append(alternatives, &types.Alternative{
        ID:              uuid.New(),
        QuestionID:      question.ID,
        AlternativeText: strings.TrimSpace(alt.Text),
        Weight:          alt.Weight,
        OrderNumber:     alt.OrderNumber,
      })
    }
    if _, err := s.alternativeRepo.Create(ctx, tx, alternatives); err != nil {
      return fmt.Errorf("Failed to create alternatives: %w", err)
    }
    question.Alternatives = make([]types.Alternative, 0, len(alternatives))
    for _, alt := range alternatives {
      question.Alternatives = append(question.Alternatives, *alt)
    }
    return nil
  }
  var err error
  if s.db == nil {
    err = apply(nil)
  } else {
    err = s.db.WithContext(ctx).Transaction(apply)
  }
  if err != nil {
    return nil, err
  }
  return question, nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, questionID uuid.UUID, text *string, orderNumber *int) error {
  fields := map[string]interface{}{}
  if text != nil {
    trimmed := strings.TrimSpace(*text)
    if trimmed == "" {
      return apierr.Validation(fmt.Errorf("question text cannot be empty"))
    }
    fields["question_text"] = trimmed
  }
  if orderNumber != nil {
    if *orderNumber < 1 {
      return apierr.Validation(fmt.Errorf("order number must be positive"))
    }
    fields["order_number"] = *orderNumber
  }
  if len(fields) == 0 {
    return nil
  }
  if err := s.questionRepo.Update(ctx, nil, questionID, fields); err != nil {
    return fmt.Errorf("Failed to update question: %w", err)
  }
  return nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
  if err := s.questionRepo.Delete(ctx, nil, questionID); err != nil {
    return fmt.Errorf("Failed to delete question: %w", err)
  }
  return nil
}

func validateQuestionInput(input QuestionInput) error {
  if strings.TrimSpace(input.Text) == "" {
    return apierr.Validation(fmt.Errorf("question text is required"))
  }
  if input.OrderNumber < 1 {
    return apierr.Validation(fmt.Errorf("order number must be positive"))
  }
  if len(input.Alternatives) < 2 {
    return apierr.Validation(fmt.Errorf("a question needs at least 2 alternatives"))
  }
  for _, alt := range input.Alternatives {
    if strings.TrimSpace(alt.Text) == "" {
      return apierr.Validation(fmt.Errorf("alternative text is required"))
    }
    if alt.Weight < types.AlternativeMinWeight || alt.Weight > types.AlternativeMaxWeight {
      return apierr.Validation(fmt.Errorf("alternative weight must be between %d and %d", types.AlternativeMinWeight, types.AlternativeMaxWeight))
    }
  }
  return nil
}
