package models

import (
	"encoding/json"
	"time"
)

type InteractionChannel string

const (
	ChannelChat     InteractionChannel = "chat"
	ChannelEmail    InteractionChannel = "email"
	ChannelSMS      InteractionChannel = "sms"
	ChannelWhatsapp InteractionChannel = "whatsapp"
	ChannelCall     InteractionChannel = "call"
	ChannelMeeting  InteractionChannel = "meeting"
	ChannelNote     InteractionChannel = "note"
)

type InteractionDirection string

const (
	DirectionIn  InteractionDirection = "in"
	DirectionOut InteractionDirection = "out"
)

// Interaction неизменяема после создания: операции update нет нигде выше.
type Interaction struct {
	ID         int64                `json:"id"`
	TenantID   int64                `json:"tenant_id"`
	ContactID  *int64               `json:"contact_id,omitempty"`
	LeadID     *int64               `json:"lead_id,omitempty"`
	Channel    InteractionChannel   `json:"channel"`
	Direction  InteractionDirection `json:"direction"`
	Subject    string               `json:"subject"`
	Body       string               `json:"body"`
	Metadata   json.RawMessage      `json:"metadata,omitempty"`
	OccurredAt time.Time            `json:"occurred_at"`
	CreatedBy  *int64               `json:"created_by,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`

	// denormalized при выборке
	ContactName string `json:"contact_name,omitempty"`
}

type InteractionFilter struct {
	Channel      *InteractionChannel
	Direction    *InteractionDirection
	ContactID    *int64
	LeadID       *int64
	OccurredFrom *time.Time
	OccurredTo   *time.Time
	Search       string
}
