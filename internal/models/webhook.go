package models

import (
	"encoding/json"
	"time"
)

// LeadCapturedPayload — входящее событие сканирования посетителя на
// выставке (FairEx). Путь неаутентифицированный: доверие держится на
// валидном tenant_id (плюс подпись на уровне выше этого ядра).
type LeadCapturedPayload struct {
	TenantID     int64           `json:"tenant_id" binding:"required"`
	Visitor      VisitorPayload  `json:"visitor"`
	ExhibitionID *int64          `json:"exhibition_id"`
	JoinID       *int64          `json:"join_id"`
	ScanTime     *time.Time      `json:"scan_time"`
	Context      json.RawMessage `json:"context"`
	Notes        string          `json:"notes"`
	UTMSource    string          `json:"utm_source"`
	UTMMedium    string          `json:"utm_medium"`
	UTMCampaign  string          `json:"utm_campaign"`
}

type VisitorPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	KfVisitorID string `json:"kf_visitor_id"`
	Dob         string `json:"dob"` // "2006-01-02", необязательно
}

type LeadCapturedResult struct {
	LeadID    int64  `json:"lead_id"`
	ContactID *int64 `json:"contact_id"`
	Message   string `json:"message"`
}
