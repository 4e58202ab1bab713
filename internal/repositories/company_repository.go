package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
)

type CompanyRepository struct {
	db DBTX
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) WithTx(tx *sql.Tx) *CompanyRepository {
	return &CompanyRepository{db: tx}
}

const companyCols = `id, tenant_id, name, website, phone, address, created_at, updated_at`

func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	const query = `
		INSERT INTO companies (tenant_id, name, website, phone, address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, c.TenantID, c.Name, c.Website, c.Phone, c.Address).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("name", "company with this name already exists")
		}
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, tenantID, id int64) (*models.Company, error) {
	const query = `SELECT ` + companyCols + ` FROM companies WHERE id = $1 AND tenant_id = $2`
	var c models.Company
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Website, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

var companySortFields = map[string]string{
	"created_at": "created_at",
	"name":       "name",
}

func (r *CompanyRepository) List(ctx context.Context, tenantID int64, f models.CompanyFilter, sortBy, order string, p models.PageParams) ([]models.Company, int, error) {
	qb := newListQuery("tenant_id", tenantID)
	qb.Search(f.Search, "name", "website", "phone")

	where := qb.Where()
	orderBy := qb.OrderBy(companySortFields, sortBy, order, "created_at")
	limit := qb.Limit(p.Limit, p.Offset())

	query := `SELECT ` + companyCols + ` FROM companies` + where + orderBy + limit
	rows, err := r.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Website, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`+where, qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}
	return out, total, nil
}

func (r *CompanyRepository) Update(ctx context.Context, tenantID, id int64, u models.CompanyUpdate) (*models.Company, error) {
	const query = `
		UPDATE companies SET
			name       = COALESCE($1, name),
			website    = COALESCE($2, website),
			phone      = COALESCE($3, phone),
			address    = COALESCE($4, address),
			updated_at = NOW()
		WHERE id = $5 AND tenant_id = $6`
	res, err := r.db.ExecContext(ctx, query, u.Name, u.Website, u.Phone, u.Address, id, tenantID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("name", "company with this name already exists")
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, tenantID, id)
}

func (r *CompanyRepository) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete company: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
