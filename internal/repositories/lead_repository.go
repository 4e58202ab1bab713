package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
)

type LeadRepository struct {
	db DBTX
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadRepository{db: db}
}

func (r *LeadRepository) WithTx(tx *sql.Tx) *LeadRepository {
	return &LeadRepository{db: tx}
}

const leadCols = `l.id, l.tenant_id, l.contact_id, l.owner_id, l.title, l.status, l.stage, l.score,
       l.source, l.exhibition_id, l.join_id, l.utm_source, l.utm_medium, l.utm_campaign,
       l.notes, l.created_at, l.updated_at`

func (r *LeadRepository) Create(ctx context.Context, l *models.Lead) error {
	const query = `
		INSERT INTO leads (tenant_id, contact_id, owner_id, title, status, stage, score, source,
		                   exhibition_id, join_id, utm_source, utm_medium, utm_campaign, notes,
		                   created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		l.TenantID, l.ContactID, l.OwnerID, l.Title, l.Status, l.Stage, l.Score, l.Source,
		l.ExhibitionID, l.JoinID, l.UTMSource, l.UTMMedium, l.UTMCampaign, l.Notes,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Validation("", "referenced contact or owner does not exist")
		}
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, tenantID, id int64) (*models.Lead, error) {
	const query = `
		SELECT ` + leadCols + `,
		       COALESCE(TRIM(c.first_name || ' ' || c.last_name), ''),
		       COALESCE(u.name, '')
		FROM leads l
		LEFT JOIN contacts c ON c.id = l.contact_id AND c.tenant_id = l.tenant_id
		LEFT JOIN users u ON u.id = l.owner_id AND u.tenant_id = l.tenant_id
		WHERE l.id = $1 AND l.tenant_id = $2`
	var l models.Lead
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&l.ID, &l.TenantID, &l.ContactID, &l.OwnerID, &l.Title, &l.Status, &l.Stage,
		&l.Score, &l.Source, &l.ExhibitionID, &l.JoinID, &l.UTMSource, &l.UTMMedium,
		&l.UTMCampaign, &l.Notes, &l.CreatedAt, &l.UpdatedAt, &l.ContactName, &l.OwnerName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return &l, nil
}

var leadSortFields = map[string]string{
	"created_at": "l.created_at",
	"updated_at": "l.updated_at",
	"score":      "l.score",
	"status":     "l.status",
	"title":      "l.title",
}

func (r *LeadRepository) List(ctx context.Context, tenantID int64, f models.LeadFilter, sortBy, order string, p models.PageParams) ([]models.Lead, int, error) {
	qb := newListQuery("l.tenant_id", tenantID)
	if f.Status != nil {
		qb.Eq("l.status", string(*f.Status))
	}
	if f.Stage != nil {
		qb.Eq("l.stage", string(*f.Stage))
	}
	if f.Source != nil {
		qb.Eq("l.source", string(*f.Source))
	}
	qb.Eq("l.owner_id", f.OwnerID)
	qb.Eq("l.contact_id", f.ContactID)
	qb.Range("l.created_at", f.CreatedFrom, f.CreatedTo)
	qb.Search(f.Search, "l.title", "l.notes", "c.first_name", "c.last_name")

	where := qb.Where()
	orderBy := qb.OrderBy(leadSortFields, sortBy, order, "created_at")
	limit := qb.Limit(p.Limit, p.Offset())

	const from = ` FROM leads l
		LEFT JOIN contacts c ON c.id = l.contact_id AND c.tenant_id = l.tenant_id
		LEFT JOIN users u ON u.id = l.owner_id AND u.tenant_id = l.tenant_id`

	query := `SELECT ` + leadCols + `,
	       COALESCE(TRIM(c.first_name || ' ' || c.last_name), ''),
	       COALESCE(u.name, '')` + from + where + orderBy + limit

	rows, err := r.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(
			&l.ID, &l.TenantID, &l.ContactID, &l.OwnerID, &l.Title, &l.Status, &l.Stage,
			&l.Score, &l.Source, &l.ExhibitionID, &l.JoinID, &l.UTMSource, &l.UTMMedium,
			&l.UTMCampaign, &l.Notes, &l.CreatedAt, &l.UpdatedAt, &l.ContactName, &l.OwnerName); err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}
	return out, total, nil
}

// Update — coalesce-merge: отсутствующее поле сохраняет старое значение.
func (r *LeadRepository) Update(ctx context.Context, tenantID, id int64, u models.LeadUpdate) (*models.Lead, error) {
	const query = `
		UPDATE leads SET
			contact_id   = COALESCE($1, contact_id),
			owner_id     = COALESCE($2, owner_id),
			title        = COALESCE($3, title),
			status       = COALESCE($4, status),
			stage        = COALESCE($5, stage),
			score        = COALESCE($6, score),
			utm_source   = COALESCE($7, utm_source),
			utm_medium   = COALESCE($8, utm_medium),
			utm_campaign = COALESCE($9, utm_campaign),
			notes        = COALESCE($10, notes),
			updated_at   = NOW()
		WHERE id = $11 AND tenant_id = $12`
	res, err := r.db.ExecContext(ctx, query,
		u.ContactID, u.OwnerID, u.Title, u.Status, u.Stage, u.Score,
		u.UTMSource, u.UTMMedium, u.UTMCampaign, u.Notes, id, tenantID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.Validation("", "referenced contact or owner does not exist")
		}
		return nil, fmt.Errorf("update lead: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, tenantID, id)
}

func (r *LeadRepository) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete lead: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, tenantID, id int64, to models.LeadStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`,
		to, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("update lead status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LeadRepository) UpdateOwner(ctx context.Context, tenantID, id, ownerID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE leads SET owner_id = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`,
		ownerID, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("update lead owner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// LeadStats — счётчики одним проходом: статусы + created за 7/30 дней
// через conditional aggregation, без отдельных запросов.
type LeadStats struct {
	Total         int `json:"total"`
	New           int `json:"new"`
	Working       int `json:"working"`
	Qualified     int `json:"qualified"`
	Converted     int `json:"converted"`
	CreatedLast7  int `json:"created_last_7"`
	CreatedLast30 int `json:"created_last_30"`
}

func (r *LeadRepository) Stats(ctx context.Context, tenantID int64) (*LeadStats, error) {
	const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'new'),
		       COUNT(*) FILTER (WHERE status = 'working'),
		       COUNT(*) FILTER (WHERE status = 'qualified'),
		       COUNT(*) FILTER (WHERE status = 'converted'),
		       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days'),
		       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days')
		FROM leads WHERE tenant_id = $1`
	var s LeadStats
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(
		&s.Total, &s.New, &s.Working, &s.Qualified, &s.Converted, &s.CreatedLast7, &s.CreatedLast30)
	if err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}
	return &s, nil
}
