package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// WebhookEvent is an audit row per received payment-provider event. The
// unique provider event id lets replayed deliveries be recognized; replays
// are still applied (pure overwrite), the log only records them once.
type WebhookEvent struct {
  ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  ProviderEventID string         `gorm:"column:provider_event_id;not null;uniqueIndex" json:"provider_event_id"`
  EventType       string         `gorm:"column:event_type;not null;index" json:"event_type"`
  Payload         datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload"`
  Error           string         `gorm:"column:error" json:"error,omitempty"`
  CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (WebhookEvent) TableName() string { return "webhook_events" }
