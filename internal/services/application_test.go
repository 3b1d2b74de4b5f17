package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/traitscan/backend/internal/apierr"
  "github.com/traitscan/backend/internal/types"
)

func newApplicationFixture(t *testing.T) (*applicationService, *fakeApplicationRepo, *fakeAssessmentRepo, *fakeResponseRepo) {
  t.Helper()
  applications := newFakeApplicationRepo()
  assessments := newFakeAssessmentRepo()
  responses := newFakeResponseRepo()
  svc := NewApplicationService(nil, testLogger(), applications, assessments, responses).(*applicationService)
  return svc, applications, assessments, responses
}

func seedApplication(applications *fakeApplicationRepo, status string, expiresAt *time.Time) *types.AssessmentApplication {
  application := &types.AssessmentApplication{
    ID:           uuid.New(),
    AssessmentID: uuid.New(),
    EmployeeID:   uuid.New(),
    UniqueToken:  "tok-" + uuid.NewString(),
    Status:       status,
    ExpiresAt:    expiresAt,
  }
  applications.add(application)
  return application
}

func TestOpenByTokenStartsPendingApplication(t *testing.T) {
  svc, applications, assessments, _ := newApplicationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  svc.now = func() time.Time { return frozen }

  future := frozen.Add(24 * time.Hour)
  application := seedApplication(applications, types.ApplicationPending, &future)
  quiz := buildQuiz("Q1", 2)
  assessments.quizzes[application.AssessmentID] = []*types.AssessmentQuiz{
    {QuizID: quiz.ID, Quiz: quiz, OrderNumber: 1},
  }

  opened, err := svc.OpenByToken(context.Background(), application.UniqueToken)
  if err != nil {
    t.Fatalf("OpenByToken: %v", err)
  }
  if opened.Application.Status != types.ApplicationInProgress {
    t.Fatalf("status: want=%s got=%s", types.ApplicationInProgress, opened.Application.Status)
  }
  if opened.Application.StartedAt == nil || !opened.Application.StartedAt.Equal(frozen) {
    t.Fatalf("started_at: want=%v got=%v", frozen, opened.Application.StartedAt)
  }
  if len(opened.Quizzes) != 1 {
    t.Fatalf("quizzes: want=1 got=%d", len(opened.Quizzes))
  }
}

func TestOpenByTokenIsIdempotentForInProgress(t *testing.T) {
  svc, applications, assessments, _ := newApplicationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  svc.now = func() time.Time { return frozen }

  future := frozen.Add(24 * time.Hour)
  started := frozen.Add(-time.Hour)
  application := seedApplication(applications, types.ApplicationInProgress, &future)
  application.StartedAt = &started
  assessments.quizzes[application.AssessmentID] = []*types.AssessmentQuiz{}

  opened, err := svc.OpenByToken(context.Background(), application.UniqueToken)
  if err != nil {
    t.Fatalf("OpenByToken: %v", err)
  }
  if !opened.Application.StartedAt.Equal(started) {
    t.Fatalf("started_at rewritten: want=%v got=%v", started, opened.Application.StartedAt)
  }
  if len(applications.statusUpdates) != 0 {
    t.Fatalf("status updates: want=0 got=%d", len(applications.statusUpdates))
  }
}

func TestOpenByTokenExpiredIsNotWrittenBack(t *testing.T) {
  svc, applications, _, _ := newApplicationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  svc.now = func() time.Time { return frozen }

  past := frozen.Add(-time.Hour)
  application := seedApplication(applications, types.ApplicationPending, &past)

  _, err := svc.OpenByToken(context.Background(), application.UniqueToken)
  if apierr.CodeOf(err) != apierr.CodeExpired {
    t.Fatalf("code: want=%s got=%s (%v)", apierr.CodeExpired, apierr.CodeOf(err), err)
  }
  if application.Status != types.ApplicationPending {
    t.Fatalf("stored status mutated: want=%s got=%s", types.ApplicationPending, application.Status)
  }
}

func TestOpenByTokenUnknownToken(t *testing.T) {
  svc, _, _, _ := newApplicationFixture(t)
  _, err := svc.OpenByToken(context.Background(), "no-such-token")
  if apierr.CodeOf(err) != apierr.CodeNotFound {
    t.Fatalf("code: want=%s got=%s", apierr.CodeNotFound, apierr.CodeOf(err))
  }
}

func answersFor(quiz *types.Quiz, weight int) map[uuid.UUID]uuid.UUID {
  answers := map[uuid.UUID]uuid.UUID{}
  for _, q := range quiz.Questions {
    answers[q.ID] = q.Alternatives[weight-1].ID
  }
  return answers
}

func TestSubmitQuizAnswersCompletesOnLastQuiz(t *testing.T) {
  svc, applications, assessments, responses := newApplicationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  svc.now = func() time.Time { return frozen }

  future := frozen.Add(24 * time.Hour)
  application := seedApplication(applications, types.ApplicationInProgress, &future)
  first := buildQuiz("First", 2)
  second := buildQuiz("Second", 2)
  assessments.quizzes[application.AssessmentID] = []*types.AssessmentQuiz{
    {QuizID: first.ID, Quiz: first, OrderNumber: 1},
    {QuizID: second.ID, Quiz: second, OrderNumber: 2},
  }

  result, err := svc.SubmitQuizAnswers(context.Background(), application.UniqueToken, first.ID, answersFor(first, 3))
  if err != nil {
    t.Fatalf("submit first: %v", err)
  }
  if result.Completed {
    t.Fatalf("completed after first quiz: want=false got=true")
  }
  if result.NextQuizIndex != 1 {
    t.Fatalf("next index: want=1 got=%d", result.NextQuizIndex)
  }

  result, err = svc.SubmitQuizAnswers(context.Background(), application.UniqueToken, second.ID, answersFor(second, 2))
  if err != nil {
    t.Fatalf("submit second: %v", err)
  }
  if !result.Completed {
    t.Fatalf("completed after last quiz: want=true got=false")
  }
  if application.Status != types.ApplicationCompleted {
    t.Fatalf("status: want=%s got=%s", types.ApplicationCompleted, application.Status)
  }
  if application.CompletedAt == nil || !application.CompletedAt.Equal(frozen) {
    t.Fatalf("completed_at: want=%v got=%v", frozen, application.CompletedAt)
  }
  if len(responses.rows) != 4 {
    t.Fatalf("responses: want=4 got=%d", len(responses.rows))
  }
}

func TestSubmitQuizAnswersStartsPendingApplication(t *testing.T) {
  svc, applications, assessments, _ := newApplicationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  svc.now = func() time.Time { return frozen }

  future := frozen.Add(24 * time.Hour)
  application := seedApplication(applications, types.ApplicationPending, &future)
  quiz := buildQuiz("Only", 2)
  assessments.quizzes[application.AssessmentID] = []*types.AssessmentQuiz{
    {QuizID: quiz.ID, Quiz: quiz, OrderNumber: 1},
  }

  result, err := svc.SubmitQuizAnswers(context.Background(), application.UniqueToken, quiz.ID, answersFor(quiz, 2))
  if err != nil {
    t.Fatalf("submit: %v", err)
  }
  if !result.Completed {
    t.Fatalf("completed: want=true got=false")
  }
  if application.StartedAt == nil || !application.StartedAt.Equal(frozen) {
    t.Fatalf("started_at: want=%v got=%v", frozen, application.StartedAt)
  }
  if application.Status != types.ApplicationCompleted {
    t.Fatalf("status: want=%s got=%s", types.ApplicationCompleted, application.Status)
  }
  want := []string{types.ApplicationInProgress, types.ApplicationCompleted}
  if len(applications.statusUpdates) != len(want) {
    t.Fatalf("status updates: want=%v got=%v", want, applications.statusUpdates)
  }
  for i := range want {
    if applications.statusUpdates[i] != want[i] {
      t.Fatalf("status updates: want=%v got=%v", want, applications.statusUpdates)
    }
  }
}

func TestSubmitQuizAnswersRejectsPartialPage(t *testing.T) {
  svc, applications, assessments, _ := newApplicationFixture(t)
  future := time.Now().Add(24 * time.Hour)
  application := seedApplication(applications, types.ApplicationInProgress, &future)
  quiz := buildQuiz("Quiz", 3)
  assessments.quizzes[application.AssessmentID] = []*types.AssessmentQuiz{
    {QuizID: quiz.ID, Quiz: quiz, OrderNumber: 1},
  }

  answers := answersFor(quiz, 1)
  delete(answers, quiz.Questions[0].ID)
  delete(answers, quiz.Questions[2].ID)

  _, err := svc.SubmitQuizAnswers(context.Background(), application.UniqueToken, quiz.ID, answers)
  if apierr.CodeOf(err) != apierr.CodeValidation {
    t.Fatalf("code: want=%s got=%s", apierr.CodeValidation, apierr.CodeOf(err))
  }
  if want := "2 questions unanswered"; err.Error() != want {
    t.Fatalf("message: want=%q got=%q", want, err.Error())
  }
}

func TestSubmitQuizAnswersRejectsForeignAlternative(t *testing.T) {
  svc, applications, assessments, _ := newApplicationFixture(t)
  future := time.Now().Add(24 * time.Hour)
  application := seedApplication(applications, types.ApplicationInProgress, &future)
  quiz := buildQuiz("Quiz", 2)
  assessments.quizzes[application.AssessmentID] = []*types.AssessmentQuiz{
    {QuizID: quiz.ID, Quiz: quiz, OrderNumber: 1},
  }

  answers := answersFor(quiz, 1)
  answers[quiz.Questions[1].ID] = uuid.New()

  _, err := svc.SubmitQuizAnswers(context.Background(), application.UniqueToken, quiz.ID, answers)
  if apierr.CodeOf(err) != apierr.CodeValidation {
    t.Fatalf("code: want=%s got=%s", apierr.CodeValidation, apierr.CodeOf(err))
  }
}

func TestSubmitQuizAnswersOverwritesPreviousAnswer(t *testing.T) {
  svc, applications, assessments, responses := newApplicationFixture(t)
  future := time.Now().Add(24 * time.Hour)
  application := seedApplication(applications, types.ApplicationInProgress, &future)
  first := buildQuiz("First", 1)
  second := buildQuiz("Second", 1)
  assessments.quizzes[application.AssessmentID] = []*types.AssessmentQuiz{
    {QuizID: first.ID, Quiz: first, OrderNumber: 1},
    {QuizID: second.ID, Quiz: second, OrderNumber: 2},
  }

  if _, err := svc.SubmitQuizAnswers(context.Background(), application.UniqueToken, first.ID, answersFor(first, 1)); err != nil {
    t.Fatalf("first submit: %v", err)
  }
  if _, err := svc.SubmitQuizAnswers(context.Background(), application.UniqueToken, first.ID, answersFor(first, 4)); err != nil {
    t.Fatalf("resubmit: %v", err)
  }

  if len(responses.rows) != 1 {
    t.Fatalf("rows: want=1 got=%d", len(responses.rows))
  }
  key := responseKey{applicationID: application.ID, questionID: first.Questions[0].ID}
  got := responses.rows[key].AlternativeID
  want := first.Questions[0].Alternatives[3].ID
  if got != want {
    t.Fatalf("alternative after resubmit: want=%v got=%v", want, got)
  }
}

func TestSubmitQuizAnswersRejectsCompletedApplication(t *testing.T) {
  svc, applications, _, _ := newApplicationFixture(t)
  future := time.Now().Add(24 * time.Hour)
  application := seedApplication(applications, types.ApplicationCompleted, &future)

  _, err := svc.SubmitQuizAnswers(context.Background(), application.UniqueToken, uuid.New(), nil)
  if apierr.StatusOf(err) != 409 {
    t.Fatalf("status: want=409 got=%d", apierr.StatusOf(err))
  }
}

func TestCreateApplicationSetsTokenAndExpiry(t *testing.T) {
  svc, applications, _, _ := newApplicationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  svc.now = func() time.Time { return frozen }

  created, err := svc.Create(context.Background(), uuid.New(), uuid.New(), uuid.New(), uuid.New())
  if err != nil {
    t.Fatalf("Create: %v", err)
  }
  if len(created.UniqueToken) != 48 {
    t.Fatalf("token length: want=48 got=%d", len(created.UniqueToken))
  }
  if created.Status != types.ApplicationPending {
    t.Fatalf("status: want=%s got=%s", types.ApplicationPending, created.Status)
  }
  wantExpiry := frozen.Add(30 * 24 * time.Hour)
  if created.ExpiresAt == nil || !created.ExpiresAt.Equal(wantExpiry) {
    t.Fatalf("expires_at: want=%v got=%v", wantExpiry, created.ExpiresAt)
  }
  if len(applications.created) != 1 {
    t.Fatalf("created rows: want=1 got=%d", len(applications.created))
  }
}
