package services

import (
  "context"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/traitscan/backend/internal/apierr"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/repos"
  "github.com/traitscan/backend/internal/types"
)

// maxWeightPerQuestion matches the canonical four-alternatives template.
// max_score is answered-count * 4 regardless of how many alternatives a
// question actually has, for compatibility with historical reports.
const maxWeightPerQuestion = 4

const (
  BandVeryHigh = "Very High"
  BandHigh     = "High"
  BandModerate = "Moderate"
  BandLow      = "Low"
  BandVeryLow  = "Very Low"
)

type QuizScore struct {
  QuizID         uuid.UUID `json:"quiz_id"`
  QuizName       string    `json:"quiz_name"`
  TotalScore     int       `json:"total_score"`
  MaxScore       int       `json:"max_score"`
  Percentage     float64   `json:"percentage"`
  Interpretation string    `json:"interpretation"`
  // HasData is false when no question of the quiz was answered; percentage
  // and interpretation are meaningless then.
  HasData bool `json:"has_data"`
}

type AssessmentReport struct {
  ApplicationID     uuid.UUID   `json:"application_id"`
  EmployeeName      string      `json:"employee_name"`
  AssessmentName    string      `json:"assessment_name"`
  CompletedAt       *string     `json:"completed_at,omitempty"`
  QuizScores        []QuizScore `json:"quiz_scores"`
  OverallPercentage float64     `json:"overall_percentage"`
}

type ScoringService interface {
  ScoreApplication(ctx context.Context, applicationID uuid.UUID) (*AssessmentReport, error)
}

type scoringService struct {
  log             *logger.Logger
  applicationRepo repos.ApplicationRepo
  assessmentRepo  repos.AssessmentRepo
  responseRepo    repos.ResponseRepo
}

func NewScoringService(
  log *logger.Logger,
  applicationRepo repos.ApplicationRepo,
  assessmentRepo repos.AssessmentRepo,
  responseRepo repos.ResponseRepo,
) ScoringService {
  serviceLog := log.With("service", "ScoringService")
  return &scoringService{
    log:             serviceLog,
    applicationRepo: applicationRepo,
    assessmentRepo:  assessmentRepo,
    responseRepo:    responseRepo,
  }
}

func (s *scoringService) ScoreApplication(ctx context.Context, applicationID uuid.UUID) (*AssessmentReport, error) {
  application, err := s.applicationRepo.GetByID(ctx, nil, applicationID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound("application")
    }
    return nil, fmt.Errorf("Failed to load application: %w", err)
  }
  quizzes, err := s.assessmentRepo.GetQuizzesOrdered(ctx, nil, application.AssessmentID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load assessment quizzes: %w", err)
  }
  responses, err := s.responseRepo.ListByApplication(ctx, nil, applicationID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load responses: %w", err)
  }

  report := &AssessmentReport{
    ApplicationID: applicationID,
    QuizScores:    ScoreQuizzes(quizzes, responses),
  }
  if application.Assessment != nil {
    report.AssessmentName = application.Assessment.Name
  }
  if application.Employee != nil {
    report.EmployeeName = application.Employee.FullName
  }
  if application.CompletedAt != nil {
    formatted := application.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
    report.CompletedAt = &formatted
  }

  totalScore, totalMax := 0, 0
  for _, qs := range report.QuizScores {
    totalScore += qs.TotalScore
    totalMax += qs.MaxScore
  }
  if totalMax > 0 {
    report.OverallPercentage = float64(totalScore) / float64(totalMax) * 100
  }
  return report, nil
}

// ScoreQuizzes aggregates recorded responses per quiz in assessment order.
// total = sum of chosen alternative weights, max = answered * 4; a quiz
// nobody answered gets HasData=false instead of a divide-by-zero.
func ScoreQuizzes(quizzes []*types.AssessmentQuiz, responses []*types.Response) []QuizScore {
  totals := make(map[uuid.UUID]int)
  counts := make(map[uuid.UUID]int)
  for _, response := range responses {
    if response.Question == nil || response.Alternative == nil {
      continue
    }
    quizID := response.Question.QuizID
    totals[quizID] += response.Alternative.Weight
    counts[quizID]++
  }

  scores := make([]QuizScore, 0, len(quizzes))
  for _, aq := range quizzes {
    score := QuizScore{QuizID: aq.QuizID}
    if aq.Quiz != nil {
      score.QuizName = aq.Quiz.Name
    }
    answered := counts[aq.QuizID]
    if answered == 0 {
      scores = append(scores, score)
      continue
    }
    score.HasData = true
    score.TotalScore = totals[aq.QuizID]
    score.MaxScore = answered * maxWeightPerQuestion
    score.Percentage = float64(score.TotalScore) / float64(score.MaxScore) * 100
    score.Interpretation = Interpret(score.Percentage)
    scores = append(scores, score)
  }
  return scores
}

// Interpret maps a percentage onto its qualitative band. Lower bounds are
// inclusive: 80 is already Very High, 79.9 still High.
func Interpret(percentage float64) string {
  switch {
  case percentage >= 80:
    return BandVeryHigh
  case percentage >= 60:
    return BandHigh
  case percentage >= 40:
    return BandModerate
  case percentage >= 20:
    return BandLow
  default:
    return BandVeryLow
  }
}
