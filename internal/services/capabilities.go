package services

import (
  "github.com/traitscan/backend/internal/types"
)

// NavDescriptor tells the client where a freshly authenticated user lands
// and which sections the role unlocks.
type NavDescriptor struct {
  Home     string   `json:"home"`
  Sections []string `json:"sections"`
}

// CapabilitiesForRole is the single source of truth for role-based
// navigation. Unknown roles get an empty descriptor rather than an error
// so a stale client cannot lock a user out entirely.
func CapabilitiesForRole(role string) NavDescriptor {
  switch role {
  case types.RoleSuperadmin:
    return NavDescriptor{
      Home: "/admin/dashboard",
      Sections: []string{
        "dashboard", "psychologists", "companies", "invitations", "billing",
      },
    }
  case types.RolePsychologist:
    return NavDescriptor{
      Home: "/psychologist/quizzes",
      Sections: []string{
        "quizzes", "assessments", "companies", "applications", "reports",
      },
    }
  case types.RoleCompany:
    return NavDescriptor{
      Home: "/company/employees",
      Sections: []string{
        "employees", "applications", "reports", "billing",
      },
    }
  default:
    return NavDescriptor{}
  }
}
