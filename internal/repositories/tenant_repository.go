package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/models"
)

type TenantRepository struct {
	db DBTX
}

func NewTenantRepository(db *sql.DB) *TenantRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	const query = `SELECT id, name, created_at FROM tenants WHERE id = $1`
	var t models.Tenant
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}
