package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/models"
)

type PipelineRepository struct {
	db DBTX
}

func NewPipelineRepository(db *sql.DB) *PipelineRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &PipelineRepository{db: db}
}

func (r *PipelineRepository) WithTx(tx *sql.Tx) *PipelineRepository {
	return &PipelineRepository{db: tx}
}

func (r *PipelineRepository) Create(ctx context.Context, p *models.Pipeline) error {
	const query = `
		INSERT INTO pipelines (tenant_id, name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, query, p.TenantID, p.Name).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	return nil
}

func (r *PipelineRepository) GetByID(ctx context.Context, tenantID, id int64) (*models.Pipeline, error) {
	const query = `SELECT id, tenant_id, name, created_at FROM pipelines WHERE id = $1 AND tenant_id = $2`
	var p models.Pipeline
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(&p.ID, &p.TenantID, &p.Name, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pipeline: %w", err)
	}
	stages, err := r.ListStages(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	p.Stages = stages
	return &p, nil
}

func (r *PipelineRepository) List(ctx context.Context, tenantID int64) ([]models.Pipeline, error) {
	const query = `SELECT id, tenant_id, name, created_at FROM pipelines WHERE tenant_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()

	var out []models.Pipeline
	for rows.Next() {
		var p models.Pipeline
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PipelineRepository) Rename(ctx context.Context, tenantID, id int64, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pipelines SET name = $1 WHERE id = $2 AND tenant_id = $3`, name, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("rename pipeline: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PipelineRepository) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pipelines WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete pipeline: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddStage назначает position = max(position)+1 в том же стейтменте:
// плотная, append-only последовательность, при удалении не перенумеровывается.
func (r *PipelineRepository) AddStage(ctx context.Context, s *models.PipelineStage) error {
	const query = `
		INSERT INTO pipeline_stages (tenant_id, pipeline_id, name, position, win_probability, created_at)
		SELECT $1, $2, $3, COALESCE(MAX(position), 0) + 1, $4, NOW()
		FROM pipeline_stages
		WHERE pipeline_id = $2 AND tenant_id = $1
		RETURNING id, position, created_at`
	err := r.db.QueryRowContext(ctx, query, s.TenantID, s.PipelineID, s.Name, s.WinProbability).
		Scan(&s.ID, &s.Position, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("add pipeline stage: %w", err)
	}
	return nil
}

func (r *PipelineRepository) ListStages(ctx context.Context, tenantID, pipelineID int64) ([]models.PipelineStage, error) {
	const query = `
		SELECT id, tenant_id, pipeline_id, name, position, win_probability, created_at
		FROM pipeline_stages
		WHERE pipeline_id = $1 AND tenant_id = $2
		ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, pipelineID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list pipeline stages: %w", err)
	}
	defer rows.Close()

	var out []models.PipelineStage
	for rows.Next() {
		var s models.PipelineStage
		if err := rows.Scan(&s.ID, &s.TenantID, &s.PipelineID, &s.Name, &s.Position, &s.WinProbability, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PipelineRepository) DeleteStage(ctx context.Context, tenantID, pipelineID, stageID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pipeline_stages WHERE id = $1 AND pipeline_id = $2 AND tenant_id = $3`,
		stageID, pipelineID, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete pipeline stage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
