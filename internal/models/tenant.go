package models

import "time"

// Tenant — корень изоляции; все остальные таблицы несут tenant_id.
type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
