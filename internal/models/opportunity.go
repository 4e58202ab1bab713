package models

import "time"

type OpportunityStatus string

const (
	OpportunityOpen      OpportunityStatus = "open"
	OpportunityWon       OpportunityStatus = "won"
	OpportunityLost      OpportunityStatus = "lost"
	OpportunityAbandoned OpportunityStatus = "abandoned"
)

const DefaultCurrency = "USD"

type Opportunity struct {
	ID         int64             `json:"id"`
	TenantID   int64             `json:"tenant_id"`
	Name       string            `json:"name"`
	LeadID     *int64            `json:"lead_id,omitempty"`
	ContactID  *int64            `json:"contact_id,omitempty"`
	CompanyID  *int64            `json:"company_id,omitempty"`
	PipelineID int64             `json:"pipeline_id"`
	StageID    int64             `json:"stage_id"`
	Amount     float64           `json:"amount"`
	Currency   string            `json:"currency"`
	Status     OpportunityStatus `json:"status"`
	CloseDate  *time.Time        `json:"close_date,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// denormalized при выборке
	PipelineName string `json:"pipeline_name,omitempty"`
	StageName    string `json:"stage_name,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
}

type OpportunityFilter struct {
	Status     *OpportunityStatus
	PipelineID *int64
	StageID    *int64
	CompanyID  *int64
	CloseFrom  *time.Time
	CloseTo    *time.Time
	Search     string
}

type OpportunityUpdate struct {
	Name       *string            `json:"name"`
	LeadID     *int64             `json:"lead_id"`
	ContactID  *int64             `json:"contact_id"`
	CompanyID  *int64             `json:"company_id"`
	PipelineID *int64             `json:"pipeline_id"`
	StageID    *int64             `json:"stage_id"`
	Amount     *float64           `json:"amount"`
	Currency   *string            `json:"currency"`
	Status     *OpportunityStatus `json:"status"`
	CloseDate  *time.Time         `json:"close_date"`
}

// OpportunityStats — агрегаты одним проходом (conditional aggregation).
type OpportunityStats struct {
	OpenCount     int     `json:"open_count"`
	WonCount      int     `json:"won_count"`
	LostCount     int     `json:"lost_count"`
	OpenAmount    float64 `json:"open_amount"`
	WonAmount     float64 `json:"won_amount"`
	LostAmount    float64 `json:"lost_amount"`
	CreatedLast7  int     `json:"created_last_7"`
	CreatedLast30 int     `json:"created_last_30"`
}
