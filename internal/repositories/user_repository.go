package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db *sql.DB) *UserRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &UserRepository{db: db}
}

func (r *UserRepository) WithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{db: tx}
}

const userCols = `id, tenant_id, name, email, password_hash, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }, u *models.User) error {
	return row.Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	const query = `
		INSERT INTO users (tenant_id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		u.TenantID, u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("email", "user with this email already exists")
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT ` + userCols + ` FROM users WHERE id = $1`
	var u models.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), &u); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByEmailAndTenant — логин всегда в паре (email, tenant): один и тот же
// email может существовать в разных tenant'ах.
func (r *UserRepository) GetByEmailAndTenant(ctx context.Context, email string, tenantID int64) (*models.User, error) {
	const query = `SELECT ` + userCols + ` FROM users WHERE LOWER(email) = LOWER($1) AND tenant_id = $2`
	var u models.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, email, tenantID), &u); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, tenantID int64, p models.PageParams) ([]models.User, int, error) {
	const query = `SELECT ` + userCols + ` FROM users WHERE tenant_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, tenantID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return out, total, nil
}

func (r *UserRepository) Update(ctx context.Context, tenantID, id int64, u models.UserUpdate, passwordHash *string) (*models.User, error) {
	const query = `
		UPDATE users SET
			name          = COALESCE($1, name),
			email         = COALESCE($2, email),
			role          = COALESCE($3, role),
			is_active     = COALESCE($4, is_active),
			password_hash = COALESCE($5, password_hash),
			updated_at    = NOW()
		WHERE id = $6 AND tenant_id = $7`
	res, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.Role, u.IsActive, passwordHash, id, tenantID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("email", "user with this email already exists")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	const sel = `SELECT ` + userCols + ` FROM users WHERE id = $1 AND tenant_id = $2`
	var out models.User
	if err := scanUser(r.db.QueryRowContext(ctx, sel, id, tenantID), &out); err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return &out, nil
}
