package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
)

type OpportunityRepository struct {
	db DBTX
}

func NewOpportunityRepository(db *sql.DB) *OpportunityRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) WithTx(tx *sql.Tx) *OpportunityRepository {
	return &OpportunityRepository{db: tx}
}

const oppCols = `o.id, o.tenant_id, o.name, o.lead_id, o.contact_id, o.company_id, o.pipeline_id,
       o.stage_id, o.amount, o.currency, o.status, o.close_date, o.created_at, o.updated_at`

func (r *OpportunityRepository) Create(ctx context.Context, o *models.Opportunity) error {
	const query = `
		INSERT INTO opportunities (tenant_id, name, lead_id, contact_id, company_id, pipeline_id,
		                           stage_id, amount, currency, status, close_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		o.TenantID, o.Name, o.LeadID, o.ContactID, o.CompanyID, o.PipelineID,
		o.StageID, o.Amount, o.Currency, o.Status, o.CloseDate,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Validation("", "referenced lead, contact, company, pipeline or stage does not exist")
		}
		return fmt.Errorf("create opportunity: %w", err)
	}
	return nil
}

func (r *OpportunityRepository) GetByID(ctx context.Context, tenantID, id int64) (*models.Opportunity, error) {
	const query = `
		SELECT ` + oppCols + `, COALESCE(p.name, ''), COALESCE(s.name, ''), COALESCE(co.name, '')
		FROM opportunities o
		LEFT JOIN pipelines p ON p.id = o.pipeline_id AND p.tenant_id = o.tenant_id
		LEFT JOIN pipeline_stages s ON s.id = o.stage_id AND s.tenant_id = o.tenant_id
		LEFT JOIN companies co ON co.id = o.company_id AND co.tenant_id = o.tenant_id
		WHERE o.id = $1 AND o.tenant_id = $2`
	var o models.Opportunity
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&o.ID, &o.TenantID, &o.Name, &o.LeadID, &o.ContactID, &o.CompanyID, &o.PipelineID,
		&o.StageID, &o.Amount, &o.Currency, &o.Status, &o.CloseDate, &o.CreatedAt, &o.UpdatedAt,
		&o.PipelineName, &o.StageName, &o.CompanyName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get opportunity: %w", err)
	}
	return &o, nil
}

var oppSortFields = map[string]string{
	"created_at": "o.created_at",
	"amount":     "o.amount",
	"close_date": "o.close_date",
	"name":       "o.name",
}

func (r *OpportunityRepository) List(ctx context.Context, tenantID int64, f models.OpportunityFilter, sortBy, order string, p models.PageParams) ([]models.Opportunity, int, error) {
	qb := newListQuery("o.tenant_id", tenantID)
	if f.Status != nil {
		qb.Eq("o.status", string(*f.Status))
	}
	qb.Eq("o.pipeline_id", f.PipelineID)
	qb.Eq("o.stage_id", f.StageID)
	qb.Eq("o.company_id", f.CompanyID)
	qb.Range("o.close_date", f.CloseFrom, f.CloseTo)
	qb.Search(f.Search, "o.name")

	where := qb.Where()
	orderBy := qb.OrderBy(oppSortFields, sortBy, order, "created_at")
	limit := qb.Limit(p.Limit, p.Offset())

	const from = ` FROM opportunities o
		LEFT JOIN pipelines p ON p.id = o.pipeline_id AND p.tenant_id = o.tenant_id
		LEFT JOIN pipeline_stages s ON s.id = o.stage_id AND s.tenant_id = o.tenant_id
		LEFT JOIN companies co ON co.id = o.company_id AND co.tenant_id = o.tenant_id`

	query := `SELECT ` + oppCols + `, COALESCE(p.name, ''), COALESCE(s.name, ''), COALESCE(co.name, '')` +
		from + where + orderBy + limit

	rows, err := r.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()

	var out []models.Opportunity
	for rows.Next() {
		var o models.Opportunity
		if err := rows.Scan(
			&o.ID, &o.TenantID, &o.Name, &o.LeadID, &o.ContactID, &o.CompanyID, &o.PipelineID,
			&o.StageID, &o.Amount, &o.Currency, &o.Status, &o.CloseDate, &o.CreatedAt, &o.UpdatedAt,
			&o.PipelineName, &o.StageName, &o.CompanyName); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count opportunities: %w", err)
	}
	return out, total, nil
}

func (r *OpportunityRepository) Update(ctx context.Context, tenantID, id int64, u models.OpportunityUpdate) (*models.Opportunity, error) {
	const query = `
		UPDATE opportunities SET
			name        = COALESCE($1, name),
			lead_id     = COALESCE($2, lead_id),
			contact_id  = COALESCE($3, contact_id),
			company_id  = COALESCE($4, company_id),
			pipeline_id = COALESCE($5, pipeline_id),
			stage_id    = COALESCE($6, stage_id),
			amount      = COALESCE($7, amount),
			currency    = COALESCE($8, currency),
			status      = COALESCE($9, status),
			close_date  = COALESCE($10, close_date),
			updated_at  = NOW()
		WHERE id = $11 AND tenant_id = $12`
	res, err := r.db.ExecContext(ctx, query,
		u.Name, u.LeadID, u.ContactID, u.CompanyID, u.PipelineID, u.StageID,
		u.Amount, u.Currency, u.Status, u.CloseDate, id, tenantID)
	if err != nil {
		return nil, fmt.Errorf("update opportunity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, tenantID, id)
}

func (r *OpportunityRepository) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM opportunities WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete opportunity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Stats — open/won/lost счётчики и суммы + created за 7/30 дней, одним
// проходом через conditional aggregation.
func (r *OpportunityRepository) Stats(ctx context.Context, tenantID int64) (*models.OpportunityStats, error) {
	const query = `
		SELECT COUNT(*) FILTER (WHERE status = 'open'),
		       COUNT(*) FILTER (WHERE status = 'won'),
		       COUNT(*) FILTER (WHERE status = 'lost'),
		       COALESCE(SUM(amount) FILTER (WHERE status = 'open'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE status = 'won'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE status = 'lost'), 0),
		       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days'),
		       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days')
		FROM opportunities WHERE tenant_id = $1`
	var s models.OpportunityStats
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(
		&s.OpenCount, &s.WonCount, &s.LostCount,
		&s.OpenAmount, &s.WonAmount, &s.LostAmount,
		&s.CreatedLast7, &s.CreatedLast30)
	if err != nil {
		return nil, fmt.Errorf("opportunity stats: %w", err)
	}
	return &s, nil
}
