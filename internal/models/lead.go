package models

import "time"

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusWorking     LeadStatus = "working"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusUnqualified LeadStatus = "unqualified"
	LeadStatusConverted   LeadStatus = "converted"
)

type LeadStage string

const (
	LeadStageLead LeadStage = "lead"
	LeadStageMQL  LeadStage = "mql"
	LeadStageSQL  LeadStage = "sql"
)

type Lead struct {
	ID           int64         `json:"id"`
	TenantID     int64         `json:"tenant_id"`
	ContactID    *int64        `json:"contact_id,omitempty"`
	OwnerID      *int64        `json:"owner_id,omitempty"`
	Title        string        `json:"title"`
	Status       LeadStatus    `json:"status"`
	Stage        LeadStage     `json:"stage"`
	Score        int           `json:"score"`
	Source       ContactSource `json:"source"`
	ExhibitionID *int64        `json:"exhibition_id,omitempty"`
	JoinID       *int64        `json:"join_id,omitempty"`
	UTMSource    string        `json:"utm_source,omitempty"`
	UTMMedium    string        `json:"utm_medium,omitempty"`
	UTMCampaign  string        `json:"utm_campaign,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// denormalized при выборке
	ContactName string   `json:"contact_name,omitempty"`
	OwnerName   string   `json:"owner_name,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type LeadFilter struct {
	Status      *LeadStatus
	Stage       *LeadStage
	Source      *ContactSource
	OwnerID     *int64
	ContactID   *int64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Search      string
}

type LeadUpdate struct {
	ContactID   *int64      `json:"contact_id"`
	OwnerID     *int64      `json:"owner_id"`
	Title       *string     `json:"title"`
	Status      *LeadStatus `json:"status"`
	Stage       *LeadStage  `json:"stage"`
	Score       *int        `json:"score"`
	UTMSource   *string     `json:"utm_source"`
	UTMMedium   *string     `json:"utm_medium"`
	UTMCampaign *string     `json:"utm_campaign"`
	Notes       *string     `json:"notes"`
}
