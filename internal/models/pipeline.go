package models

import "time"

type Pipeline struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Stages []PipelineStage `json:"stages,omitempty"`
}

// PipelineStage — position плотная, append-only (max+1 при создании,
// при удалении не перенумеровывается).
type PipelineStage struct {
	ID             int64     `json:"id"`
	TenantID       int64     `json:"tenant_id"`
	PipelineID     int64     `json:"pipeline_id"`
	Name           string    `json:"name"`
	Position       int       `json:"position"`
	WinProbability int       `json:"win_probability"`
	CreatedAt      time.Time `json:"created_at"`
}
