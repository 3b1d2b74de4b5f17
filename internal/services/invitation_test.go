package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/traitscan/backend/internal/apierr"
  "github.com/traitscan/backend/internal/types"
)

type invitationFixture struct {
  svc           *invitationService
  invitations   *fakeInvitationRepo
  profiles      *fakeProfileRepo
  psychologists *fakePsychologistRepo
  companies     *fakeCompanyRepo
}

func newInvitationFixture(t *testing.T) *invitationFixture {
  t.Helper()
  f := &invitationFixture{
    invitations:   newFakeInvitationRepo(),
    profiles:      newFakeProfileRepo(),
    psychologists: newFakePsychologistRepo(),
    companies:     newFakeCompanyRepo(),
  }
  f.svc = NewInvitationService(nil, testLogger(), f.invitations, f.profiles, f.psychologists, f.companies).(*invitationService)
  return f
}

func (f *invitationFixture) seedInvitation(role string, expiresAt time.Time) *types.Invitation {
  invitation := &types.Invitation{
    ID:          uuid.New(),
    InviteeName: "Dr. Example",
    Role:        role,
    Token:       "invite-" + uuid.NewString(),
    InvitedBy:   uuid.New(),
    Status:      types.InvitationPending,
    ExpiresAt:   &expiresAt,
  }
  f.invitations.add(invitation)
  return invitation
}

func TestCreateInvitationSetsSevenDayExpiry(t *testing.T) {
  f := newInvitationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  f.svc.now = func() time.Time { return frozen }

  created, err := f.svc.Create(context.Background(), CreateInvitationInput{
    InviteeName: "Acme Ltda",
    Role:        types.RoleCompany,
    InvitedBy:   uuid.New(),
  })
  if err != nil {
    t.Fatalf("Create: %v", err)
  }
  want := frozen.Add(7 * 24 * time.Hour)
  if created.ExpiresAt == nil || !created.ExpiresAt.Equal(want) {
    t.Fatalf("expires_at: want=%v got=%v", want, created.ExpiresAt)
  }
  if len(created.Token) != 48 {
    t.Fatalf("token length: want=48 got=%d", len(created.Token))
  }
}

func TestCreateInvitationRejectsSuperadminRole(t *testing.T) {
  f := newInvitationFixture(t)
  _, err := f.svc.Create(context.Background(), CreateInvitationInput{
    InviteeName: "Nope",
    Role:        types.RoleSuperadmin,
    InvitedBy:   uuid.New(),
  })
  if apierr.CodeOf(err) != apierr.CodeValidation {
    t.Fatalf("code: want=%s got=%s", apierr.CodeValidation, apierr.CodeOf(err))
  }
}

func TestGetByTokenClassifiesReason(t *testing.T) {
  f := newInvitationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  f.svc.now = func() time.Time { return frozen }

  if _, err := f.svc.GetByToken(context.Background(), "missing"); apierr.CodeOf(err) != apierr.CodeNotFound {
    t.Fatalf("missing: want=%s got=%s", apierr.CodeNotFound, apierr.CodeOf(err))
  }

  used := f.seedInvitation(types.RoleCompany, frozen.Add(time.Hour))
  used.Status = types.InvitationAccepted
  if _, err := f.svc.GetByToken(context.Background(), used.Token); apierr.CodeOf(err) != apierr.CodeUsed {
    t.Fatalf("used: want=%s got=%s", apierr.CodeUsed, apierr.CodeOf(err))
  }

  expired := f.seedInvitation(types.RoleCompany, frozen.Add(-time.Hour))
  if _, err := f.svc.GetByToken(context.Background(), expired.Token); apierr.CodeOf(err) != apierr.CodeExpired {
    t.Fatalf("expired: want=%s got=%s", apierr.CodeExpired, apierr.CodeOf(err))
  }

  valid := f.seedInvitation(types.RoleCompany, frozen.Add(time.Hour))
  if _, err := f.svc.GetByToken(context.Background(), valid.Token); err != nil {
    t.Fatalf("valid invitation: %v", err)
  }
}

func TestAcceptProvisionsPsychologist(t *testing.T) {
  f := newInvitationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  f.svc.now = func() time.Time { return frozen }

  invitation := f.seedInvitation(types.RolePsychologist, frozen.Add(time.Hour))
  userID := uuid.New()
  f.profiles.add(&types.Profile{ID: userID, Email: "psy@example.com", Role: types.RoleCompany})

  result, err := f.svc.Accept(context.Background(), invitation.Token, userID)
  if err != nil {
    t.Fatalf("Accept: %v", err)
  }
  if result.Role != types.RolePsychologist {
    t.Fatalf("role: want=%s got=%s", types.RolePsychologist, result.Role)
  }
  psychologist, ok := f.psychologists.byID[userID]
  if !ok {
    t.Fatalf("psychologist row not created")
  }
  if psychologist.CreatedBy == nil || *psychologist.CreatedBy != invitation.InvitedBy {
    t.Fatalf("created_by: want=%v got=%v", invitation.InvitedBy, psychologist.CreatedBy)
  }
  if f.profiles.byID[userID].Role != types.RolePsychologist {
    t.Fatalf("profile role: want=%s got=%s", types.RolePsychologist, f.profiles.byID[userID].Role)
  }
  if invitation.Status != types.InvitationAccepted {
    t.Fatalf("invitation status: want=%s got=%s", types.InvitationAccepted, invitation.Status)
  }
}

func TestAcceptProvisionsCompanyWithProfileFallbacks(t *testing.T) {
  f := newInvitationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  f.svc.now = func() time.Time { return frozen }

  invitation := f.seedInvitation(types.RoleCompany, frozen.Add(time.Hour))
  invitation.InviteeName = ""

  userID := uuid.New()
  fullName := "Fallback Corp"
  f.profiles.add(&types.Profile{ID: userID, Email: "contact@fallback.com", FullName: &fullName, Role: types.RoleCompany})

  if _, err := f.svc.Accept(context.Background(), invitation.Token, userID); err != nil {
    t.Fatalf("Accept: %v", err)
  }

  var company *types.Company
  for _, c := range f.companies.byID {
    company = c
  }
  if company == nil {
    t.Fatalf("company row not created")
  }
  if company.Name != "Fallback Corp" {
    t.Fatalf("name fallback: want=Fallback Corp got=%s", company.Name)
  }
  if company.Email == nil || *company.Email != "contact@fallback.com" {
    t.Fatalf("email fallback: want=contact@fallback.com got=%v", company.Email)
  }
  if company.PsychologistID == nil || *company.PsychologistID != invitation.InvitedBy {
    t.Fatalf("psychologist fallback: want=%v got=%v", invitation.InvitedBy, company.PsychologistID)
  }
  if company.ProfileID == nil || *company.ProfileID != userID {
    t.Fatalf("profile link: want=%v got=%v", userID, company.ProfileID)
  }
  if company.SubscriptionStatus != types.SubscriptionTrial {
    t.Fatalf("subscription: want=%s got=%s", types.SubscriptionTrial, company.SubscriptionStatus)
  }
}

func TestAcceptLinksExistingCompanyInsteadOfCreating(t *testing.T) {
  f := newInvitationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  f.svc.now = func() time.Time { return frozen }

  existing := &types.Company{ID: uuid.New(), Name: "Pre-seeded"}
  f.companies.add(existing)

  invitation := f.seedInvitation(types.RoleCompany, frozen.Add(time.Hour))
  invitation.CompanyID = &existing.ID

  userID := uuid.New()
  f.profiles.add(&types.Profile{ID: userID, Email: "owner@seeded.com", Role: types.RoleCompany})

  if _, err := f.svc.Accept(context.Background(), invitation.Token, userID); err != nil {
    t.Fatalf("Accept: %v", err)
  }
  if len(f.companies.byID) != 1 {
    t.Fatalf("companies: want=1 got=%d", len(f.companies.byID))
  }
  updates := f.companies.updates[existing.ID]
  if updates == nil {
    t.Fatalf("existing company was not updated")
  }
  if updates["profile_id"] != userID {
    t.Fatalf("profile_id update: want=%v got=%v", userID, updates["profile_id"])
  }
}

func TestAcceptTwiceReportsUsed(t *testing.T) {
  f := newInvitationFixture(t)
  frozen := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
  f.svc.now = func() time.Time { return frozen }

  invitation := f.seedInvitation(types.RolePsychologist, frozen.Add(time.Hour))
  userID := uuid.New()
  f.profiles.add(&types.Profile{ID: userID, Email: "psy@example.com", Role: types.RoleCompany})

  if _, err := f.svc.Accept(context.Background(), invitation.Token, userID); err != nil {
    t.Fatalf("first accept: %v", err)
  }
  _, err := f.svc.Accept(context.Background(), invitation.Token, uuid.New())
  if apierr.CodeOf(err) != apierr.CodeUsed {
    t.Fatalf("second accept: want=%s got=%s (%v)", apierr.CodeUsed, apierr.CodeOf(err), err)
  }
  if len(f.psychologists.byID) != 1 {
    t.Fatalf("psychologists: want=1 got=%d", len(f.psychologists.byID))
  }
}
