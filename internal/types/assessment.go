package types

import (
  "time"
  "github.com/google/uuid"
)

type Assessment struct {
  ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  PsychologistID uuid.UUID `gorm:"type:uuid;not null;index" json:"psychologist_id"`
  Name           string    `gorm:"column:name;not null" json:"name"`
  Description    *string   `gorm:"column:description" json:"description,omitempty"`
  IsArchived     bool      `gorm:"column:is_archived;not null;default:false" json:"is_archived"`
  CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt      time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assessment) TableName() string { return "assessments" }
