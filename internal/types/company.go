package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  SubscriptionTrial     = "trial"
  SubscriptionActive    = "active"
  SubscriptionPastDue   = "past_due"
  SubscriptionCancelled = "cancelled"
  SubscriptionInactive  = "inactive"
)

// Company is the billable tenant. ProfileID stays null until an invitation
// is accepted and the contact gets a login.
type Company struct {
  ID                   uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  ProfileID            *uuid.UUID    `gorm:"type:uuid;uniqueIndex" json:"profile_id,omitempty"`
  Name                 string        `gorm:"column:name;not null" json:"name"`
  Email                *string       `gorm:"column:email" json:"email,omitempty"`
  Phone                *string       `gorm:"column:phone" json:"phone,omitempty"`
  Address              *string       `gorm:"column:address" json:"address,omitempty"`
  PsychologistID       *uuid.UUID    `gorm:"type:uuid;index" json:"psychologist_id,omitempty"`
  Psychologist         *Psychologist `gorm:"foreignKey:PsychologistID;references:ID" json:"psychologist,omitempty"`
  SubscriptionStatus   string        `gorm:"column:subscription_status;not null;default:'trial'" json:"subscription_status"`
  TrialEndsAt          *time.Time    `gorm:"column:trial_ends_at" json:"trial_ends_at,omitempty"`
  StripeCustomerID     *string       `gorm:"column:stripe_customer_id" json:"stripe_customer_id,omitempty"`
  StripeSubscriptionID *string       `gorm:"column:stripe_subscription_id" json:"stripe_subscription_id,omitempty"`
  IsActive             bool          `gorm:"column:is_active;not null;default:true" json:"is_active"`
  CreatedAt            time.Time     `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt            time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }
