package models

import "time"

type ContactSource string

const (
	ContactSourceManual ContactSource = "manual"
	ContactSourceImport ContactSource = "import"
	ContactSourceAPI    ContactSource = "api"
	ContactSourceFairex ContactSource = "fairex"
)

type Contact struct {
	ID          int64         `json:"id"`
	TenantID    int64         `json:"tenant_id"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Dob         *time.Time    `json:"dob,omitempty"`
	CompanyID   *int64        `json:"company_id,omitempty"`
	KfVisitorID string        `json:"kf_visitor_id,omitempty"`
	Source      ContactSource `json:"source"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// denormalized при выборке, не хранится
	CompanyName string `json:"company_name,omitempty"`
}

type ContactFilter struct {
	CompanyID   *int64
	Source      *ContactSource
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Search      string
}

type ContactUpdate struct {
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Email     *string    `json:"email"`
	Phone     *string    `json:"phone"`
	Dob       *time.Time `json:"dob"`
	CompanyID *int64     `json:"company_id"`
}
