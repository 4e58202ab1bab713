package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListQueryStartsWithTenantFilter(t *testing.T) {
	qb := newListQuery("c.tenant_id", 7)
	assert.Equal(t, " WHERE c.tenant_id = $1", qb.Where())
	assert.Equal(t, []interface{}{int64(7)}, qb.Args())
}

func TestEqSkipsNilPointer(t *testing.T) {
	qb := newListQuery("tenant_id", 1)
	var companyID *int64
	qb.Eq("company_id", companyID)
	assert.Equal(t, " WHERE tenant_id = $1", qb.Where())

	id := int64(5)
	qb.Eq("company_id", &id)
	assert.Equal(t, " WHERE tenant_id = $1 AND company_id = $2", qb.Where())
	assert.Equal(t, []interface{}{int64(1), int64(5)}, qb.Args())
}

func TestRangeInclusiveBounds(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	qb := newListQuery("tenant_id", 1)
	qb.Range("created_at", &from, &to)
	assert.Equal(t, " WHERE tenant_id = $1 AND created_at >= $2 AND created_at <= $3", qb.Where())

	qb = newListQuery("tenant_id", 1)
	qb.Range("created_at", nil, &to)
	assert.Equal(t, " WHERE tenant_id = $1 AND created_at <= $2", qb.Where())
}

func TestSearchSharesOneWildcardParam(t *testing.T) {
	qb := newListQuery("tenant_id", 1)
	qb.Search("ivan", "first_name", "last_name", "email")
	assert.Equal(t,
		" WHERE tenant_id = $1 AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2)",
		qb.Where())
	assert.Equal(t, []interface{}{int64(1), "%ivan%"}, qb.Args())
}

func TestSearchIgnoresBlankTerm(t *testing.T) {
	qb := newListQuery("tenant_id", 1)
	qb.Search("   ", "first_name")
	assert.Equal(t, " WHERE tenant_id = $1", qb.Where())
}

func TestOrderByRejectsUnknownField(t *testing.T) {
	allowed := map[string]string{
		"created_at": "c.created_at",
		"email":      "c.email",
	}
	qb := &queryBuilder{}

	// незнакомое поле заменяется дефолтным, в текст запроса не попадает
	assert.Equal(t, " ORDER BY c.created_at desc",
		qb.OrderBy(allowed, "id; DROP TABLE contacts", "desc", "created_at"))
	assert.Equal(t, " ORDER BY c.email asc",
		qb.OrderBy(allowed, "email", "asc", "created_at"))
	// неизвестный order сводится к desc
	assert.Equal(t, " ORDER BY c.email desc",
		qb.OrderBy(allowed, "email", "sideways", "created_at"))
}

func TestCountArgsStripsLimitOffset(t *testing.T) {
	qb := newListQuery("tenant_id", 3)
	qb.Eq("status", "new")
	limit := qb.Limit(20, 40)

	assert.Equal(t, " LIMIT $3 OFFSET $4", limit)
	assert.Equal(t, []interface{}{int64(3), "new", 20, 40}, qb.Args())
	assert.Equal(t, []interface{}{int64(3), "new"}, qb.CountArgs())
}
