package services

import (
  "testing"

  "github.com/traitscan/backend/internal/types"
)

func TestCapabilitiesForRole(t *testing.T) {
  cases := []struct {
    role     string
    wantHome string
  }{
    {types.RoleSuperadmin, "/admin/dashboard"},
    {types.RolePsychologist, "/psychologist/quizzes"},
    {types.RoleCompany, "/company/employees"},
  }
  for _, c := range cases {
    nav := CapabilitiesForRole(c.role)
    if nav.Home != c.wantHome {
      t.Fatalf("home for %s: want=%s got=%s", c.role, c.wantHome, nav.Home)
    }
    if len(nav.Sections) == 0 {
      t.Fatalf("sections for %s: want>0 got=0", c.role)
    }
  }
}

func TestCapabilitiesForUnknownRole(t *testing.T) {
  nav := CapabilitiesForRole("intern")
  if nav.Home != "" || len(nav.Sections) != 0 {
    t.Fatalf("unknown role must map to empty descriptor, got %+v", nav)
  }
}
