package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCanceled   TaskStatus = "canceled"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

type Task struct {
	ID         int64        `json:"id"`
	TenantID   int64        `json:"tenant_id"`
	Title      string       `json:"title"`
	LeadID     *int64       `json:"lead_id,omitempty"`
	ContactID  *int64       `json:"contact_id,omitempty"`
	AssigneeID *int64       `json:"assignee_id,omitempty"`
	DueAt      *time.Time   `json:"due_at,omitempty"`
	Priority   TaskPriority `json:"priority"`
	Status     TaskStatus   `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	// denormalized при выборке
	AssigneeName string `json:"assignee_name,omitempty"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	Status     *TaskStatus
	Priority   *TaskPriority
	AssigneeID *int64
	LeadID     *int64
	DueFrom    *time.Time
	DueTo      *time.Time
	Search     string
}

type TaskUpdate struct {
	Title      *string       `json:"title"`
	LeadID     *int64        `json:"lead_id"`
	ContactID  *int64        `json:"contact_id"`
	AssigneeID *int64        `json:"assignee_id"`
	DueAt      *time.Time    `json:"due_at"`
	Priority   *TaskPriority `json:"priority"`
	Status     *TaskStatus   `json:"status"`
}
