package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"github.com/garvthakre/kf12/internal/models"
)

type TagRepository struct {
	db DBTX
}

func NewTagRepository(db *sql.DB) *TagRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &TagRepository{db: db}
}

func (r *TagRepository) WithTx(tx *sql.Tx) *TagRepository {
	return &TagRepository{db: tx}
}

// UpsertByName — insert-or-fetch по (tenant_id, trimmed name). Гонка двух
// одинаковых вставок разруливается уникальным индексом: конфликт — это
// "уже существует, читаем", а не ошибка.
func (r *TagRepository) UpsertByName(ctx context.Context, tenantID int64, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is empty")
	}

	tag := &models.Tag{TenantID: tenantID, Name: name}
	const ins = `
		INSERT INTO tags (tenant_id, name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (tenant_id, name) DO NOTHING
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, ins, tenantID, name).Scan(&tag.ID, &tag.CreatedAt)
	if err == nil {
		return tag, nil
	}
	if err != sql.ErrNoRows && !isUniqueViolation(err) {
		return nil, fmt.Errorf("upsert tag: %w", err)
	}

	// DO NOTHING не вернул строку — тег уже есть, забираем его
	const sel = `SELECT id, tenant_id, name, created_at FROM tags WHERE tenant_id = $1 AND name = $2`
	if err := r.db.QueryRowContext(ctx, sel, tenantID, name).Scan(&tag.ID, &tag.TenantID, &tag.Name, &tag.CreatedAt); err != nil {
		return nil, fmt.Errorf("fetch tag after conflict: %w", err)
	}
	return tag, nil
}

// Link — идемпотентная связка (lead, tag): повтор — no-op, не ошибка.
func (r *TagRepository) Link(ctx context.Context, tenantID, leadID, tagID int64) error {
	const query = `
		INSERT INTO lead_tags (tenant_id, lead_id, tag_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (lead_id, tag_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, tenantID, leadID, tagID); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("link tag: %w", err)
	}
	return nil
}

// Unlink возвращает false, если связки не было.
func (r *TagRepository) Unlink(ctx context.Context, tenantID, leadID int64, tagName string) (bool, error) {
	const query = `
		DELETE FROM lead_tags lt
		USING tags t
		WHERE lt.tag_id = t.id
		  AND lt.tenant_id = $1 AND lt.lead_id = $2
		  AND t.tenant_id = $1 AND t.name = $3`
	res, err := r.db.ExecContext(ctx, query, tenantID, leadID, strings.TrimSpace(tagName))
	if err != nil {
		return false, fmt.Errorf("unlink tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *TagRepository) ListForLead(ctx context.Context, tenantID, leadID int64) ([]string, error) {
	const query = `
		SELECT t.name
		FROM lead_tags lt
		JOIN tags t ON t.id = lt.tag_id
		WHERE lt.tenant_id = $1 AND lt.lead_id = $2
		ORDER BY t.name ASC`
	rows, err := r.db.QueryContext(ctx, query, tenantID, leadID)
	if err != nil {
		return nil, fmt.Errorf("list lead tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// isUniqueViolation — pq 23505 (unique_violation).
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation — pq 23503: ссылка на несуществующую запись.
func isForeignKeyViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23503"
	}
	return false
}
