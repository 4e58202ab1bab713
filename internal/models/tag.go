package models

import "time"

// Tag — имя уникально в пределах tenant (tenant_id, name).
type Tag struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
