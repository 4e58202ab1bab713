package models

import (
	"encoding/json"
	"time"
)

// ActivityLog — append-only аудит; пишется вебхук-пайплайном.
type ActivityLog struct {
	ID         int64           `json:"id"`
	TenantID   int64           `json:"tenant_id"`
	EntityType string          `json:"entity_type"`
	EntityID   int64           `json:"entity_id"`
	Action     string          `json:"action"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	CreatedAt  time.Time       `json:"created_at"`
}
