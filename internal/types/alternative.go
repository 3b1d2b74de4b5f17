package types

import (
  "time"
  "github.com/google/uuid"
)

// Weight domain is [1,4]; the canonical template has exactly four
// alternatives per question and scoring assumes the 4 maximum.
const (
  AlternativeMinWeight = 1
  AlternativeMaxWeight = 4
)

type Alternative struct {
  ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  QuestionID      uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
  AlternativeText string    `gorm:"column:alternative_text;not null" json:"alternative_text"`
  Weight          int       `gorm:"column:weight;not null" json:"weight"`
  OrderNumber     int       `gorm:"column:order_number;not null" json:"order_number"`
  CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Alternative) TableName() string { return "alternatives" }
