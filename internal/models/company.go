package models

import "time"

// Company represents a counterparty organization.
type Company struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Name      string    `json:"name"`
	Website   string    `json:"website"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CompanyFilter struct {
	Search string
}

type CompanyUpdate struct {
	Name    *string `json:"name"`
	Website *string `json:"website"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}
