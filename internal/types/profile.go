package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  RoleSuperadmin   = "superadmin"
  RolePsychologist = "psychologist"
  RoleCompany      = "company"
)

// Profile is the identity row behind every authenticated user. Role decides
// which part of the platform the user sees.
type Profile struct {
  ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Email        string     `gorm:"column:email;not null;uniqueIndex" json:"email"`
  FullName     *string    `gorm:"column:full_name" json:"full_name,omitempty"`
  PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
  Role         string     `gorm:"column:role;not null;default:'company';index" json:"role"`
  Language     string     `gorm:"column:language;not null;default:'pt'" json:"language"`
  CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
