package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/models"
)

// ActivityRepository — append-only аудит; update/delete нет намеренно.
type ActivityRepository struct {
	db DBTX
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) WithTx(tx *sql.Tx) *ActivityRepository {
	return &ActivityRepository{db: tx}
}

func (r *ActivityRepository) Append(ctx context.Context, a *models.ActivityLog) error {
	const query = `
		INSERT INTO activity_logs (tenant_id, entity_type, entity_id, action, before, after, occurred_at, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		a.TenantID, a.EntityType, a.EntityID, a.Action, a.Before, a.After, a.OccurredAt,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, tenantID int64, entityType string, p models.PageParams) ([]models.ActivityLog, int, error) {
	qb := newListQuery("tenant_id", tenantID)
	if entityType != "" {
		qb.Eq("entity_type", entityType)
	}
	where := qb.Where()
	limit := qb.Limit(p.Limit, p.Offset())

	query := `SELECT id, tenant_id, entity_type, entity_id, action, before, after, occurred_at, created_at
		FROM activity_logs` + where + ` ORDER BY occurred_at DESC` + limit

	rows, err := r.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var out []models.ActivityLog
	for rows.Next() {
		var a models.ActivityLog
		if err := rows.Scan(&a.ID, &a.TenantID, &a.EntityType, &a.EntityID, &a.Action,
			&a.Before, &a.After, &a.OccurredAt, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_logs`+where, qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}
	return out, total, nil
}
