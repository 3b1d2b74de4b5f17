package services

import (
  "testing"

  "github.com/google/uuid"

  "github.com/traitscan/backend/internal/types"
)

func TestInterpretBands(t *testing.T) {
  cases := []struct {
    percentage float64
    want       string
  }{
    {100, BandVeryHigh},
    {80, BandVeryHigh},
    {79.9, BandHigh},
    {60, BandHigh},
    {59.9, BandModerate},
    {40, BandModerate},
    {39.9, BandLow},
    {20, BandLow},
    {19.9, BandVeryLow},
    {0, BandVeryLow},
  }
  for _, c := range cases {
    if got := Interpret(c.percentage); got != c.want {
      t.Fatalf("Interpret(%v): want=%s got=%s", c.percentage, c.want, got)
    }
  }
}

func makeResponses(applicationID uuid.UUID, quiz *types.Quiz, weights []int) []*types.Response {
  responses := make([]*types.Response, 0, len(weights))
  for i, w := range weights {
    question := quiz.Questions[i]
    alt := question.Alternatives[w-1]
    responses = append(responses, &types.Response{
      ID:            uuid.New(),
      ApplicationID: applicationID,
      QuestionID:    question.ID,
      AlternativeID: alt.ID,
      Question:      &question,
      Alternative:   &alt,
    })
  }
  return responses
}

func TestScoreQuizzesFullMarks(t *testing.T) {
  quiz := buildQuiz("Burnout", 3)
  applicationID := uuid.New()
  joins := []*types.AssessmentQuiz{
    {QuizID: quiz.ID, Quiz: quiz, OrderNumber: 1},
  }
  responses := makeResponses(applicationID, quiz, []int{4, 4, 4})

  scores := ScoreQuizzes(joins, responses)
  if len(scores) != 1 {
    t.Fatalf("scores: want=1 got=%d", len(scores))
  }
  s := scores[0]
  if !s.HasData {
    t.Fatalf("HasData: want=true got=false")
  }
  if s.TotalScore != 12 || s.MaxScore != 12 {
    t.Fatalf("score: want=12/12 got=%d/%d", s.TotalScore, s.MaxScore)
  }
  if s.Percentage != 100 {
    t.Fatalf("percentage: want=100 got=%v", s.Percentage)
  }
  if s.Interpretation != BandVeryHigh {
    t.Fatalf("interpretation: want=%s got=%s", BandVeryHigh, s.Interpretation)
  }
}

func TestScoreQuizzesMinimumWeights(t *testing.T) {
  quiz := buildQuiz("Stress", 4)
  applicationID := uuid.New()
  joins := []*types.AssessmentQuiz{
    {QuizID: quiz.ID, Quiz: quiz, OrderNumber: 1},
  }
  responses := makeResponses(applicationID, quiz, []int{1, 1, 1, 1})

  scores := ScoreQuizzes(joins, responses)
  s := scores[0]
  if s.TotalScore != 4 || s.MaxScore != 16 {
    t.Fatalf("score: want=4/16 got=%d/%d", s.TotalScore, s.MaxScore)
  }
  if s.Percentage != 25 {
    t.Fatalf("percentage: want=25 got=%v", s.Percentage)
  }
  if s.Interpretation != BandLow {
    t.Fatalf("interpretation: want=%s got=%s", BandLow, s.Interpretation)
  }
}

func TestScoreQuizzesNoDataQuizStaysInOrder(t *testing.T) {
  answered := buildQuiz("Answered", 2)
  skipped := buildQuiz("Skipped", 2)
  applicationID := uuid.New()
  joins := []*types.AssessmentQuiz{
    {QuizID: answered.ID, Quiz: answered, OrderNumber: 1},
    {QuizID: skipped.ID, Quiz: skipped, OrderNumber: 2},
  }
  responses := makeResponses(applicationID, answered, []int{2, 3})

  scores := ScoreQuizzes(joins, responses)
  if len(scores) != 2 {
    t.Fatalf("scores: want=2 got=%d", len(scores))
  }
  if !scores[0].HasData {
    t.Fatalf("answered quiz HasData: want=true got=false")
  }
  if scores[1].HasData {
    t.Fatalf("skipped quiz HasData: want=false got=true")
  }
  if scores[1].QuizName != "Skipped" {
    t.Fatalf("skipped quiz name: want=Skipped got=%s", scores[1].QuizName)
  }
  if scores[1].Percentage != 0 || scores[1].Interpretation != "" {
    t.Fatalf("skipped quiz must carry no score, got %v %q", scores[1].Percentage, scores[1].Interpretation)
  }
}

func TestScoreQuizzesPartialAnswers(t *testing.T) {
  quiz := buildQuiz("Partial", 4)
  applicationID := uuid.New()
  joins := []*types.AssessmentQuiz{
    {QuizID: quiz.ID, Quiz: quiz, OrderNumber: 1},
  }
  // only two of four questions answered: max counts answered questions only
  responses := makeResponses(applicationID, quiz, []int{3, 4})

  scores := ScoreQuizzes(joins, responses)
  s := scores[0]
  if s.TotalScore != 7 || s.MaxScore != 8 {
    t.Fatalf("score: want=7/8 got=%d/%d", s.TotalScore, s.MaxScore)
  }
}
