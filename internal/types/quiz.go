package types

import (
  "time"
  "github.com/google/uuid"
)

type Quiz struct {
  ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  PsychologistID uuid.UUID  `gorm:"type:uuid;not null;index" json:"psychologist_id"`
  Name           string     `gorm:"column:name;not null" json:"name"`
  Description    *string    `gorm:"column:description" json:"description,omitempty"`
  IsArchived     bool       `gorm:"column:is_archived;not null;default:false" json:"is_archived"`
  CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
  Questions      []Question `gorm:"foreignKey:QuizID;references:ID" json:"questions,omitempty"`
}

func (Quiz) TableName() string { return "quizzes" }
