package types

import (
  "time"
  "github.com/google/uuid"
)

type Employee struct {
  ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  CompanyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
  Company    *Company  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CompanyID;references:ID" json:"company,omitempty"`
  FullName   string    `gorm:"column:full_name;not null" json:"full_name"`
  Email      *string   `gorm:"column:email" json:"email,omitempty"`
  Position   *string   `gorm:"column:position" json:"position,omitempty"`
  Department *string   `gorm:"column:department" json:"department,omitempty"`
  IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
  CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }
