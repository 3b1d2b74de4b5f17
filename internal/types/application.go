package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  ApplicationPending    = "pending"
  ApplicationInProgress = "in_progress"
  ApplicationCompleted  = "completed"
  ApplicationExpired    = "expired"
)

// AssessmentApplication binds one employee to one assessment behind an
// unguessable token. Status moves pending → in_progress → completed and
// never backwards; "expired" is derived from ExpiresAt at read time and is
// not written back.
type AssessmentApplication struct {
  ID             uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  AssessmentID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"assessment_id"`
  Assessment     *Assessment `gorm:"foreignKey:AssessmentID;references:ID" json:"assessment,omitempty"`
  EmployeeID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"employee_id"`
  Employee       *Employee   `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
  CompanyID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"company_id"`
  PsychologistID uuid.UUID   `gorm:"type:uuid;not null;index" json:"psychologist_id"`
  UniqueToken    string      `gorm:"column:unique_token;not null;uniqueIndex" json:"unique_token"`
  Status         string      `gorm:"column:status;not null;default:'pending'" json:"status"`
  StartedAt      *time.Time  `gorm:"column:started_at" json:"started_at,omitempty"`
  CompletedAt    *time.Time  `gorm:"column:completed_at" json:"completed_at,omitempty"`
  ExpiresAt      *time.Time  `gorm:"column:expires_at" json:"expires_at,omitempty"`
  CreatedAt      time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (AssessmentApplication) TableName() string { return "assessment_applications" }

// IsExpired classifies the application against the clock without mutating
// stored status.
func (a *AssessmentApplication) IsExpired(now time.Time) bool {
  if a.Status == ApplicationExpired {
    return true
  }
  return a.ExpiresAt != nil && a.ExpiresAt.Before(now)
}
