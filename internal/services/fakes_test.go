package services

import (
  "context"
  "time"

  "github.com/google/uuid"
  "github.com/stripe/stripe-go/v76"
  "go.uber.org/zap"
  "gorm.io/gorm"

  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
)

func testLogger() *logger.Logger {
  return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeApplicationRepo struct {
  byToken map[string]*types.AssessmentApplication
  byID    map[uuid.UUID]*types.AssessmentApplication

  statusUpdates []string
  createErr     error
  created       []*types.AssessmentApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
  return &fakeApplicationRepo{
    byToken: map[string]*types.AssessmentApplication{},
    byID:    map[uuid.UUID]*types.AssessmentApplication{},
  }
}

func (f *fakeApplicationRepo) add(a *types.AssessmentApplication) {
  f.byToken[a.UniqueToken] = a
  f.byID[a.ID] = a
}

func (f *fakeApplicationRepo) Create(ctx context.Context, tx *gorm.DB, a *types.AssessmentApplication) (*types.AssessmentApplication, error) {
  if f.createErr != nil {
    return nil, f.createErr
  }
  f.add(a)
  f.created = append(f.created, a)
  return a, nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentApplication, error) {
  a, ok := f.byID[id]
  if !ok {
    return nil, gorm.ErrRecordNotFound
  }
  return a, nil
}

func (f *fakeApplicationRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.AssessmentApplication, error) {
  a, ok := f.byToken[token]
  if !ok {
    return nil, gorm.ErrRecordNotFound
  }
  return a, nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, startedAt, completedAt *time.Time) error {
  a, ok := f.byID[id]
  if !ok {
    return gorm.ErrRecordNotFound
  }
  a.Status = status
  if startedAt != nil {
    a.StartedAt = startedAt
  }
  if completedAt != nil {
    a.CompletedAt = completedAt
  }
  f.statusUpdates = append(f.statusUpdates, status)
  return nil
}

func (f *fakeApplicationRepo) ListByPsychologist(ctx context.Context, tx *gorm.DB, id uuid.UUID) ([]*types.AssessmentApplication, error) {
  var out []*types.AssessmentApplication
  for _, a := range f.byID {
    if a.PsychologistID == id {
      out = append(out, a)
    }
  }
  return out, nil
}

func (f *fakeApplicationRepo) ListByCompany(ctx context.Context, tx *gorm.DB, id uuid.UUID) ([]*types.AssessmentApplication, error) {
  var out []*types.AssessmentApplication
  for _, a := range f.byID {
    if a.CompanyID == id {
      out = append(out, a)
    }
  }
  return out, nil
}

func (f *fakeApplicationRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
  return int64(len(f.byID)), nil
}

func (f *fakeApplicationRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status string) (int64, error) {
  var n int64
  for _, a := range f.byID {
    if a.Status == status {
      n++
    }
  }
  return n, nil
}

type fakeAssessmentRepo struct {
  assessments map[uuid.UUID]*types.Assessment
  quizzes     map[uuid.UUID][]*types.AssessmentQuiz
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
  return &fakeAssessmentRepo{
    assessments: map[uuid.UUID]*types.Assessment{},
    quizzes:     map[uuid.UUID][]*types.AssessmentQuiz{},
  }
}

func (f *fakeAssessmentRepo) Create(ctx context.Context, tx *gorm.DB, a *types.Assessment) (*types.Assessment, error) {
  f.assessments[a.ID] = a
  return a, nil
}

func (f *fakeAssessmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Assessment, error) {
  a, ok := f.assessments[id]
  if !ok {
    return nil, gorm.ErrRecordNotFound
  }
  return a, nil
}

func (f *fakeAssessmentRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  return nil
}

func (f *fakeAssessmentRepo) ListByPsychologist(ctx context.Context, tx *gorm.DB, id uuid.UUID, includeArchived bool) ([]*types.Assessment, error) {
  return nil, nil
}

func (f *fakeAssessmentRepo) AddQuiz(ctx context.Context, tx *gorm.DB, join *types.AssessmentQuiz) (*types.AssessmentQuiz, error) {
  f.quizzes[join.AssessmentID] = append(f.quizzes[join.AssessmentID], join)
  return join, nil
}

func (f *fakeAssessmentRepo) RemoveQuiz(ctx context.Context, tx *gorm.DB, assessmentID, quizID uuid.UUID) error {
  kept := f.quizzes[assessmentID][:0]
  for _, aq := range f.quizzes[assessmentID] {
    if aq.QuizID != quizID {
      kept = append(kept, aq)
    }
  }
  f.quizzes[assessmentID] = kept
  return nil
}

func (f *fakeAssessmentRepo) GetQuizzesOrdered(ctx context.Context, tx *gorm.DB, assessmentID uuid.UUID) ([]*types.AssessmentQuiz, error) {
  return f.quizzes[assessmentID], nil
}

type responseKey struct {
  applicationID uuid.UUID
  questionID    uuid.UUID
}

type fakeResponseRepo struct {
  rows map[responseKey]*types.Response
}

func newFakeResponseRepo() *fakeResponseRepo {
  return &fakeResponseRepo{rows: map[responseKey]*types.Response{}}
}

func (f *fakeResponseRepo) Upsert(ctx context.Context, tx *gorm.DB, r *types.Response) (*types.Response, error) {
  key := responseKey{applicationID: r.ApplicationID, questionID: r.QuestionID}
  if existing, ok := f.rows[key]; ok {
    existing.AlternativeID = r.AlternativeID
    return existing, nil
  }
  f.rows[key] = r
  return r, nil
}

func (f *fakeResponseRepo) ListByApplication(ctx context.Context, tx *gorm.DB, applicationID uuid.UUID) ([]*types.Response, error) {
  var out []*types.Response
  for key, r := range f.rows {
    if key.applicationID == applicationID {
      out = append(out, r)
    }
  }
  return out, nil
}

type fakeInvitationRepo struct {
  byToken map[string]*types.Invitation
  byID    map[uuid.UUID]*types.Invitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
  return &fakeInvitationRepo{
    byToken: map[string]*types.Invitation{},
    byID:    map[uuid.UUID]*types.Invitation{},
  }
}

func (f *fakeInvitationRepo) add(i *types.Invitation) {
  f.byToken[i.Token] = i
  f.byID[i.ID] = i
}

func (f *fakeInvitationRepo) Create(ctx context.Context, tx *gorm.DB, i *types.Invitation) (*types.Invitation, error) {
  f.add(i)
  return i, nil
}

func (f *fakeInvitationRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.Invitation, error) {
  i, ok := f.byToken[token]
  if !ok {
    return nil, gorm.ErrRecordNotFound
  }
  return i, nil
}

func (f *fakeInvitationRepo) ListByInviter(ctx context.Context, tx *gorm.DB, inviterID uuid.UUID) ([]*types.Invitation, error) {
  return nil, nil
}

func (f *fakeInvitationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Invitation, error) {
  var out []*types.Invitation
  for _, i := range f.byID {
    out = append(out, i)
  }
  return out, nil
}

func (f *fakeInvitationRepo) MarkAccepted(ctx context.Context, tx *gorm.DB, id uuid.UUID, acceptedAt time.Time) (bool, error) {
  i, ok := f.byID[id]
  if !ok || i.Status != types.InvitationPending {
    return false, nil
  }
  i.Status = types.InvitationAccepted
  i.AcceptedAt = &acceptedAt
  return true, nil
}

func (f *fakeInvitationRepo) CountPending(ctx context.Context, tx *gorm.DB) (int64, error) {
  var n int64
  for _, i := range f.byID {
    if i.Status == types.InvitationPending {
      n++
    }
  }
  return n, nil
}

type fakeProfileRepo struct {
  byID    map[uuid.UUID]*types.Profile
  byEmail map[string]*types.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
  return &fakeProfileRepo{
    byID:    map[uuid.UUID]*types.Profile{},
    byEmail: map[string]*types.Profile{},
  }
}

func (f *fakeProfileRepo) add(p *types.Profile) {
  f.byID[p.ID] = p
  f.byEmail[p.Email] = p
}

func (f *fakeProfileRepo) Create(ctx context.Context, tx *gorm.DB, p *types.Profile) (*types.Profile, error) {
  f.add(p)
  return p, nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Profile, error) {
  p, ok := f.byID[id]
  if !ok {
    return nil, gorm.ErrRecordNotFound
  }
  return p, nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Profile, error) {
  p, ok := f.byEmail[email]
  if !ok {
    return nil, gorm.ErrRecordNotFound
  }
  return p, nil
}

func (f *fakeProfileRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
  _, ok := f.byEmail[email]
  return ok, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  return nil
}

func (f *fakeProfileRepo) UpdateRole(ctx context.Context, tx *gorm.DB, id uuid.UUID, role string) error {
  p, ok := f.byID[id]
  if !ok {
    return gorm.ErrRecordNotFound
  }
  p.Role = role
  return nil
}

func (f *fakeProfileRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Profile, error) {
  return nil, nil
}

func (f *fakeProfileRepo) CountByRole(ctx context.Context, tx *gorm.DB, role string) (int64, error) {
  var n int64
  for _, p := range f.byID {
    if p.Role == role {
      n++
    }
  }
  return n, nil
}

type fakePsychologistRepo struct {
  byID map[uuid.UUID]*types.Psychologist
}

func newFakePsychologistRepo() *fakePsychologistRepo {
  return &fakePsychologistRepo{byID: map[uuid.UUID]*types.Psychologist{}}
}

func (f *fakePsychologistRepo) Upsert(ctx context.Context, tx *gorm.DB, p *types.Psychologist) (*types.Psychologist, error) {
  if existing, ok := f.byID[p.ID]; ok {
    existing.IsActive = p.IsActive
    return existing, nil
  }
  f.byID[p.ID] = p
  return p, nil
}

func (f *fakePsychologistRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Psychologist, error) {
  p, ok := f.byID[id]
  if !ok {
    return nil, gorm.ErrRecordNotFound
  }
  return p, nil
}

func (f *fakePsychologistRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  return nil
}

func (f *fakePsychologistRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Psychologist, error) {
  return nil, nil
}

func (f *fakePsychologistRepo) SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
  p, ok := f.byID[id]
  if !ok {
    return gorm.ErrRecordNotFound
  }
  p.IsActive = active
  return nil
}

func (f *fakePsychologistRepo) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
  var n int64
  for _, p := range f.byID {
    if p.IsActive {
      n++
    }
  }
  return n, nil
}

type fakeCompanyRepo struct {
  byID      map[uuid.UUID]*types.Company
  byProfile map[uuid.UUID]*types.Company
  updates   map[uuid.UUID]map[string]interface{}
}

func newFakeCompanyRepo() *fakeCompanyRepo {
  return &fakeCompanyRepo{
    byID:      map[uuid.UUID]*types.Company{},
    byProfile: map[uuid.UUID]*types.Company{},
    updates:   map[uuid.UUID]map[string]interface{}{},
  }
}

func (f *fakeCompanyRepo) add(c *types.Company) {
  f.byID[c.ID] = c
  if c.ProfileID != nil {
    f.byProfile[*c.ProfileID] = c
  }
}

func (f *fakeCompanyRepo) Create(ctx context.Context, tx *gorm.DB, c *types.Company) (*types.Company, error) {
  f.add(c)
  return c, nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Company, error) {
  c, ok := f.byID[id]
  if !ok {
    return nil, gorm.ErrRecordNotFound
  }
  return c, nil
}

func (f *fakeCompanyRepo) GetByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) (*types.Company, error) {
  c, ok := f.byProfile[profileID]
  if !ok {
    return nil, gorm.ErrRecordNotFound
  }
  return c, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
  if _, ok := f.byID[id]; !ok {
    return gorm.ErrRecordNotFound
  }
  merged := f.updates[id]
  if merged == nil {
    merged = map[string]interface{}{}
    f.updates[id] = merged
  }
  for k, v := range fields {
    merged[k] = v
  }
  return nil
}

func (f *fakeCompanyRepo) ListByPsychologist(ctx context.Context, tx *gorm.DB, id uuid.UUID) ([]*types.Company, error) {
  return nil, nil
}

func (f *fakeCompanyRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Company, error) {
  var out []*types.Company
  for _, c := range f.byID {
    out = append(out, c)
  }
  return out, nil
}

func (f *fakeCompanyRepo) SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
  c, ok := f.byID[id]
  if !ok {
    return gorm.ErrRecordNotFound
  }
  c.IsActive = active
  return nil
}

func (f *fakeCompanyRepo) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
  var n int64
  for _, c := range f.byID {
    if c.IsActive {
      n++
    }
  }
  return n, nil
}

func (f *fakeCompanyRepo) ListExpiringTrials(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Company, error) {
  var out []*types.Company
  for _, c := range f.byID {
    if c.SubscriptionStatus == types.SubscriptionTrial && c.TrialEndsAt != nil {
      out = append(out, c)
    }
  }
  if len(out) > limit {
    out = out[:limit]
  }
  return out, nil
}

type fakeWebhookEventRepo struct {
  seen map[string]bool
}

func newFakeWebhookEventRepo() *fakeWebhookEventRepo {
  return &fakeWebhookEventRepo{seen: map[string]bool{}}
}

func (f *fakeWebhookEventRepo) Record(ctx context.Context, tx *gorm.DB, event *types.WebhookEvent) error {
  f.seen[event.ProviderEventID] = true
  return nil
}

type fakeStripeClient struct {
  checkoutURL   string
  checkoutCalls []CheckoutParams
  subscription  *stripe.Subscription
  event         stripe.Event
  eventErr      error
}

func (f *fakeStripeClient) CreateCheckoutSession(params CheckoutParams) (string, error) {
  f.checkoutCalls = append(f.checkoutCalls, params)
  return f.checkoutURL, nil
}

func (f *fakeStripeClient) GetSubscription(subscriptionID string) (*stripe.Subscription, error) {
  return f.subscription, nil
}

func (f *fakeStripeClient) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
  if f.eventErr != nil {
    return stripe.Event{}, f.eventErr
  }
  return f.event, nil
}

// buildQuiz assembles a quiz with n questions, each carrying alternatives
// weighted 1..4 in order.
func buildQuiz(name string, questionCount int) *types.Quiz {
  quiz := &types.Quiz{ID: uuid.New(), Name: name}
  for i := 0; i < questionCount; i++ {
    question := types.Question{
      ID:          uuid.New(),
      QuizID:      quiz.ID,
      OrderNumber: i + 1,
    }
    for w := 1; w <= 4; w++ {
      question.Alternatives = append(question.Alternatives, types.Alternative{
        ID:         uuid.New(),
        QuestionID: question.ID,
        Weight:     w,
      })
    }
    quiz.Questions = append(quiz.Questions, question)
  }
  return quiz
}
