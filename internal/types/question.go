package types

import (
  "time"
  "github.com/google/uuid"
)

// OrderNumber is 1-based and unique within a quiz; respondents always see
// questions in ascending order.
type Question struct {
  ID           uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  QuizID       uuid.UUID     `gorm:"type:uuid;not null;index:idx_question_order,unique,priority:1" json:"quiz_id"`
  QuestionText string        `gorm:"column:question_text;not null" json:"question_text"`
  OrderNumber  int           `gorm:"column:order_number;not null;index:idx_question_order,unique,priority:2" json:"order_number"`
  CreatedAt    time.Time     `gorm:"not null;default:now()" json:"created_at"`
  Alternatives []Alternative `gorm:"foreignKey:QuestionID;references:ID" json:"alternatives,omitempty"`
}

func (Question) TableName() string { return "questions" }
