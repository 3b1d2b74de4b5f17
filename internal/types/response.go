package types

import (
  "time"
  "github.com/google/uuid"
)

// Response holds one answer per (application, question); resubmits overwrite
// the chosen alternative instead of adding rows.
type Response struct {
  ID            uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  ApplicationID uuid.UUID    `gorm:"type:uuid;not null;index:idx_response_question,unique,priority:1" json:"application_id"`
  QuestionID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_response_question,unique,priority:2" json:"question_id"`
  Question      *Question    `gorm:"foreignKey:QuestionID;references:ID" json:"question,omitempty"`
  AlternativeID uuid.UUID    `gorm:"type:uuid;not null" json:"alternative_id"`
  Alternative   *Alternative `gorm:"foreignKey:AlternativeID;references:ID" json:"alternative,omitempty"`
  CreatedAt     time.Time    `gorm:"not null;default:now()" json:"created_at"`
}

func (Response) TableName() string { return "responses" }
