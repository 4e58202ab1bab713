package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
)

// InteractionRepository — записи неизменяемы: Update отсутствует намеренно.
type InteractionRepository struct {
	db DBTX
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) WithTx(tx *sql.Tx) *InteractionRepository {
	return &InteractionRepository{db: tx}
}

const interactionCols = `i.id, i.tenant_id, i.contact_id, i.lead_id, i.channel, i.direction,
       i.subject, i.body, i.metadata, i.occurred_at, i.created_by, i.created_at`

func (r *InteractionRepository) Create(ctx context.Context, in *models.Interaction) error {
	const query = `
		INSERT INTO interactions (tenant_id, contact_id, lead_id, channel, direction,
		                          subject, body, metadata, occurred_at, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW())
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		in.TenantID, in.ContactID, in.LeadID, in.Channel, in.Direction,
		in.Subject, in.Body, in.Metadata, in.OccurredAt, in.CreatedBy,
	).Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Validation("", "referenced contact or lead does not exist")
		}
		return fmt.Errorf("create interaction: %w", err)
	}
	return nil
}

func (r *InteractionRepository) GetByID(ctx context.Context, tenantID, id int64) (*models.Interaction, error) {
	const query = `
		SELECT ` + interactionCols + `, COALESCE(TRIM(c.first_name || ' ' || c.last_name), '')
		FROM interactions i
		LEFT JOIN contacts c ON c.id = i.contact_id AND c.tenant_id = i.tenant_id
		WHERE i.id = $1 AND i.tenant_id = $2`
	var in models.Interaction
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&in.ID, &in.TenantID, &in.ContactID, &in.LeadID, &in.Channel, &in.Direction,
		&in.Subject, &in.Body, &in.Metadata, &in.OccurredAt, &in.CreatedBy, &in.CreatedAt,
		&in.ContactName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get interaction: %w", err)
	}
	return &in, nil
}

var interactionSortFields = map[string]string{
	"occurred_at": "i.occurred_at",
	"created_at":  "i.created_at",
}

func (r *InteractionRepository) List(ctx context.Context, tenantID int64, f models.InteractionFilter, sortBy, order string, p models.PageParams) ([]models.Interaction, int, error) {
	qb := newListQuery("i.tenant_id", tenantID)
	if f.Channel != nil {
		qb.Eq("i.channel", string(*f.Channel))
	}
	if f.Direction != nil {
		qb.Eq("i.direction", string(*f.Direction))
	}
	qb.Eq("i.contact_id", f.ContactID)
	qb.Eq("i.lead_id", f.LeadID)
	qb.Range("i.occurred_at", f.OccurredFrom, f.OccurredTo)
	qb.Search(f.Search, "i.subject", "i.body")

	where := qb.Where()
	orderBy := qb.OrderBy(interactionSortFields, sortBy, order, "occurred_at")
	limit := qb.Limit(p.Limit, p.Offset())

	const from = ` FROM interactions i
		LEFT JOIN contacts c ON c.id = i.contact_id AND c.tenant_id = i.tenant_id`

	query := `SELECT ` + interactionCols + `, COALESCE(TRIM(c.first_name || ' ' || c.last_name), '')` +
		from + where + orderBy + limit

	rows, err := r.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var out []models.Interaction
	for rows.Next() {
		var in models.Interaction
		if err := rows.Scan(
			&in.ID, &in.TenantID, &in.ContactID, &in.LeadID, &in.Channel, &in.Direction,
			&in.Subject, &in.Body, &in.Metadata, &in.OccurredAt, &in.CreatedBy, &in.CreatedAt,
			&in.ContactName); err != nil {
			return nil, 0, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count interactions: %w", err)
	}
	return out, total, nil
}

func (r *InteractionRepository) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete interaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
