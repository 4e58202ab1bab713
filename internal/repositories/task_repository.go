package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
)

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &TaskRepository{db: db}
}

func (r *TaskRepository) WithTx(tx *sql.Tx) *TaskRepository {
	return &TaskRepository{db: tx}
}

const taskCols = `t.id, t.tenant_id, t.title, t.lead_id, t.contact_id, t.assignee_id, t.due_at,
       t.priority, t.status, t.created_at, t.updated_at`

// taskOrder — фиксированное правило сортировки задач: ранг приоритета
// (urgent < high < normal < low), потом due_at ASC NULLS LAST, потом
// created_at DESC. Клиентский sort-параметр для задач не применяется.
const taskOrder = ` ORDER BY CASE t.priority
		WHEN 'urgent' THEN 0
		WHEN 'high' THEN 1
		WHEN 'normal' THEN 2
		ELSE 3
	END ASC, t.due_at ASC NULLS LAST, t.created_at DESC`

func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	const query = `
		INSERT INTO tasks (tenant_id, title, lead_id, contact_id, assignee_id, due_at,
		                   priority, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		t.TenantID, t.Title, t.LeadID, t.ContactID, t.AssigneeID, t.DueAt, t.Priority, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Validation("", "referenced lead, contact or assignee does not exist")
		}
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, tenantID, id int64) (*models.Task, error) {
	const query = `
		SELECT ` + taskCols + `, COALESCE(u.name, '')
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee_id AND u.tenant_id = t.tenant_id
		WHERE t.id = $1 AND t.tenant_id = $2`
	var t models.Task
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&t.ID, &t.TenantID, &t.Title, &t.LeadID, &t.ContactID, &t.AssigneeID, &t.DueAt,
		&t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt, &t.AssigneeName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, tenantID int64, f models.TaskFilter, p models.PageParams) ([]models.Task, int, error) {
	qb := newListQuery("t.tenant_id", tenantID)
	if f.Status != nil {
		qb.Eq("t.status", string(*f.Status))
	}
	if f.Priority != nil {
		qb.Eq("t.priority", string(*f.Priority))
	}
	qb.Eq("t.assignee_id", f.AssigneeID)
	qb.Eq("t.lead_id", f.LeadID)
	qb.Range("t.due_at", f.DueFrom, f.DueTo)
	qb.Search(f.Search, "t.title")

	where := qb.Where()
	limit := qb.Limit(p.Limit, p.Offset())

	const from = ` FROM tasks t
		LEFT JOIN users u ON u.id = t.assignee_id AND u.tenant_id = t.tenant_id`

	query := `SELECT ` + taskCols + `, COALESCE(u.name, '')` + from + where + taskOrder + limit
	rows, err := r.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.TenantID, &t.Title, &t.LeadID, &t.ContactID, &t.AssigneeID, &t.DueAt,
			&t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt, &t.AssigneeName); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}
	return out, total, nil
}

func (r *TaskRepository) Update(ctx context.Context, tenantID, id int64, u models.TaskUpdate) (*models.Task, error) {
	const query = `
		UPDATE tasks SET
			title       = COALESCE($1, title),
			lead_id     = COALESCE($2, lead_id),
			contact_id  = COALESCE($3, contact_id),
			assignee_id = COALESCE($4, assignee_id),
			due_at      = COALESCE($5, due_at),
			priority    = COALESCE($6, priority),
			status      = COALESCE($7, status),
			updated_at  = NOW()
		WHERE id = $8 AND tenant_id = $9`
	res, err := r.db.ExecContext(ctx, query,
		u.Title, u.LeadID, u.ContactID, u.AssigneeID, u.DueAt, u.Priority, u.Status, id, tenantID)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, tenantID, id)
}

func (r *TaskRepository) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
