package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
)

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &ContactRepository{db: db}
}

// WithTx — копия репозитория, работающая внутри транзакции.
func (r *ContactRepository) WithTx(tx *sql.Tx) *ContactRepository {
	return &ContactRepository{db: tx}
}

const contactCols = `c.id, c.tenant_id, c.first_name, c.last_name, c.email, c.phone, c.dob,
       c.company_id, c.kf_visitor_id, c.source, c.created_at, c.updated_at`

func scanContact(row interface{ Scan(...interface{}) error }, c *models.Contact) error {
	return row.Scan(&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Dob,
		&c.CompanyID, &c.KfVisitorID, &c.Source, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	const query = `
		INSERT INTO contacts (tenant_id, first_name, last_name, email, phone, dob,
		                      company_id, kf_visitor_id, source, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		c.TenantID, c.FirstName, c.LastName, c.Email, c.Phone, c.Dob,
		c.CompanyID, c.KfVisitorID, c.Source,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Validation("company_id", "referenced company does not exist")
		}
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, tenantID, id int64) (*models.Contact, error) {
	const query = `
		SELECT ` + contactCols + `, COALESCE(co.name, '')
		FROM contacts c
		LEFT JOIN companies co ON co.id = c.company_id AND co.tenant_id = c.tenant_id
		WHERE c.id = $1 AND c.tenant_id = $2`
	var c models.Contact
	row := r.db.QueryRowContext(ctx, query, id, tenantID)
	err := row.Scan(&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Dob,
		&c.CompanyID, &c.KfVisitorID, &c.Source, &c.CreatedAt, &c.UpdatedAt, &c.CompanyName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

var contactSortFields = map[string]string{
	"created_at": "c.created_at",
	"first_name": "c.first_name",
	"last_name":  "c.last_name",
	"email":      "c.email",
}

func (r *ContactRepository) List(ctx context.Context, tenantID int64, f models.ContactFilter, sortBy, order string, p models.PageParams) ([]models.Contact, int, error) {
	qb := newListQuery("c.tenant_id", tenantID)
	qb.Eq("c.company_id", f.CompanyID)
	if f.Source != nil {
		qb.Eq("c.source", string(*f.Source))
	}
	qb.Range("c.created_at", f.CreatedFrom, f.CreatedTo)
	qb.Search(f.Search, "c.first_name", "c.last_name", "c.email", "c.phone")

	where := qb.Where()
	orderBy := qb.OrderBy(contactSortFields, sortBy, order, "created_at")
	limit := qb.Limit(p.Limit, p.Offset())

	query := `SELECT ` + contactCols + `, COALESCE(co.name, '')
		FROM contacts c
		LEFT JOIN companies co ON co.id = c.company_id AND co.tenant_id = c.tenant_id` +
		where + orderBy + limit

	rows, err := r.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Dob,
			&c.CompanyID, &c.KfVisitorID, &c.Source, &c.CreatedAt, &c.UpdatedAt, &c.CompanyName); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts c`+where, qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}
	return out, total, nil
}

// Update — coalesce-merge: отсутствующее поле сохраняет старое значение.
// Пустой апдейт безопасен, обновляется только updated_at.
func (r *ContactRepository) Update(ctx context.Context, tenantID, id int64, u models.ContactUpdate) (*models.Contact, error) {
	const query = `
		UPDATE contacts SET
			first_name = COALESCE($1, first_name),
			last_name  = COALESCE($2, last_name),
			email      = COALESCE($3, email),
			phone      = COALESCE($4, phone),
			dob        = COALESCE($5, dob),
			company_id = COALESCE($6, company_id),
			updated_at = NOW()
		WHERE id = $7 AND tenant_id = $8`
	res, err := r.db.ExecContext(ctx, query,
		u.FirstName, u.LastName, u.Email, u.Phone, u.Dob, u.CompanyID, id, tenantID)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, tenantID, id)
}

// Delete возвращает false, если строки не было (идемпотентно, не ошибка).
func (r *ContactRepository) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByEmailOrPhone — дедуп-поиск: совпадение по email ИЛИ phone в пределах
// tenant. Оба значения опциональны; без обоих матчиться нечему — nil.
func (r *ContactRepository) FindByEmailOrPhone(ctx context.Context, tenantID int64, email, phone string) (*models.Contact, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return nil, nil
	}

	conds := []string{}
	args := []interface{}{tenantID}
	i := 2
	if email != "" {
		conds = append(conds, fmt.Sprintf("LOWER(c.email) = LOWER($%d)", i))
		args = append(args, email)
		i++
	}
	if phone != "" {
		conds = append(conds, fmt.Sprintf("c.phone = $%d", i))
		args = append(args, phone)
	}

	query := `SELECT ` + contactCols + ` FROM contacts c
		WHERE c.tenant_id = $1 AND (` + strings.Join(conds, " OR ") + `)
		ORDER BY c.created_at ASC LIMIT 1`

	var c models.Contact
	err := scanContact(r.db.QueryRowContext(ctx, query, args...), &c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find contact by email/phone: %w", err)
	}
	return &c, nil
}

// Backfill дозаполняет только пустые first/last name и kf_visitor_id;
// заполненные поля никогда не перезаписываются.
func (r *ContactRepository) Backfill(ctx context.Context, tenantID, id int64, firstName, lastName, kfVisitorID string) error {
	const query = `
		UPDATE contacts SET
			first_name    = COALESCE(NULLIF(first_name, ''), $1),
			last_name     = COALESCE(NULLIF(last_name, ''), $2),
			kf_visitor_id = COALESCE(NULLIF(kf_visitor_id, ''), $3),
			updated_at    = NOW()
		WHERE id = $4 AND tenant_id = $5`
	if _, err := r.db.ExecContext(ctx, query, firstName, lastName, kfVisitorID, id, tenantID); err != nil {
		return fmt.Errorf("backfill contact: %w", err)
	}
	return nil
}
