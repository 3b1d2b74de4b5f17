package services

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/traitscan/backend/internal/apierr"
  "github.com/traitscan/backend/internal/types"
)

func newProfileFixture() (*profileService, *fakeProfileRepo) {
  profiles := newFakeProfileRepo()
  svc := NewProfileService(testLogger(), profiles).(*profileService)
  return svc, profiles
}

func TestUpdateRoleReassignsProfile(t *testing.T) {
  svc, profiles := newProfileFixture()
  profile := &types.Profile{ID: uuid.New(), Email: "user@example.com", Role: types.RoleCompany}
  profiles.add(profile)

  if err := svc.UpdateRole(context.Background(), profile.ID, types.RolePsychologist); err != nil {
    t.Fatalf("UpdateRole: %v", err)
  }
  if profiles.byID[profile.ID].Role != types.RolePsychologist {
    t.Fatalf("role: want=%s got=%s", types.RolePsychologist, profiles.byID[profile.ID].Role)
  }
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
  svc, profiles := newProfileFixture()
  profile := &types.Profile{ID: uuid.New(), Email: "user@example.com", Role: types.RoleCompany}
  profiles.add(profile)

  err := svc.UpdateRole(context.Background(), profile.ID, "owner")
  if apierr.CodeOf(err) != apierr.CodeValidation {
    t.Fatalf("code: want=%s got=%s (%v)", apierr.CodeValidation, apierr.CodeOf(err), err)
  }
  if profiles.byID[profile.ID].Role != types.RoleCompany {
    t.Fatalf("role mutated: want=%s got=%s", types.RoleCompany, profiles.byID[profile.ID].Role)
  }
}

func TestUpdateRoleUnknownProfile(t *testing.T) {
  svc, _ := newProfileFixture()
  err := svc.UpdateRole(context.Background(), uuid.New(), types.RoleSuperadmin)
  if apierr.CodeOf(err) != apierr.CodeNotFound {
    t.Fatalf("code: want=%s got=%s (%v)", apierr.CodeNotFound, apierr.CodeOf(err), err)
  }
}
