package types

import (
  "time"
  "github.com/google/uuid"
)

// Psychologist shares its primary key with the owning Profile row.
type Psychologist struct {
  ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Profile        *Profile   `gorm:"foreignKey:ID;references:ID" json:"profile,omitempty"`
  LicenseNumber  *string    `gorm:"column:license_number" json:"license_number,omitempty"`
  Specialization *string    `gorm:"column:specialization" json:"specialization,omitempty"`
  Bio            *string    `gorm:"column:bio" json:"bio,omitempty"`
  CreatedBy      *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
  IsActive       bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
  CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Psychologist) TableName() string { return "psychologists" }
