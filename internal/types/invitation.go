package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  InvitationPending  = "pending"
  InvitationAccepted = "accepted"
  InvitationExpired  = "expired"
)

// Invitation onboards a company contact or a psychologist outside normal
// signup. The only stored transition is pending → accepted; expiry is
// computed from ExpiresAt when the invitation is read.
type Invitation struct {
  ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  InviteeName    string     `gorm:"column:invitee_name;not null" json:"invitee_name"`
  Email          *string    `gorm:"column:email" json:"email,omitempty"`
  Role           string     `gorm:"column:role;not null" json:"role"`
  Token          string     `gorm:"column:token;not null;uniqueIndex" json:"token"`
  InvitedBy      uuid.UUID  `gorm:"type:uuid;not null;index" json:"invited_by"`
  CompanyID      *uuid.UUID `gorm:"type:uuid" json:"company_id,omitempty"`
  PsychologistID *uuid.UUID `gorm:"type:uuid" json:"psychologist_id,omitempty"`
  Status         string     `gorm:"column:status;not null;default:'pending'" json:"status"`
  ExpiresAt      *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
  AcceptedAt     *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
  CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (Invitation) TableName() string { return "invitations" }

func (i *Invitation) IsExpired(now time.Time) bool {
  if i.Status == InvitationExpired {
    return true
  }
  return i.ExpiresAt != nil && i.ExpiresAt.Before(now)
}
