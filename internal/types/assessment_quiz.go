package types

import (
  "time"
  "github.com/google/uuid"
)

// AssessmentQuiz orders quizzes inside an assessment. The order is
// load-bearing: respondents walk quizzes strictly by ascending OrderNumber.
type AssessmentQuiz struct {
  ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  AssessmentID uuid.UUID   `gorm:"type:uuid;not null;index:idx_assessment_quiz,unique,priority:1" json:"assessment_id"`
  Assessment   *Assessment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"assessment,omitempty"`
  QuizID       uuid.UUID   `gorm:"type:uuid;not null;index:idx_assessment_quiz,unique,priority:2" json:"quiz_id"`
  Quiz         *Quiz       `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
  OrderNumber  int         `gorm:"column:order_number;not null" json:"order_number"`
  CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (AssessmentQuiz) TableName() string { return "assessment_quizzes" }
