package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvthakre/kf12/internal/models"
)

func newTestContactRepo(t *testing.T) (*ContactRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &ContactRepository{db: db}, mock
}

func contactRows(id int64, email, phone string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "first_name", "last_name", "email", "phone", "dob",
		"company_id", "kf_visitor_id", "source", "created_at", "updated_at",
	}).AddRow(id, 1, "", "", email, phone, nil, nil, "", "fairex", now, now)
}

func TestFindByEmailOrPhone_EmailOnly(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(c.email) = LOWER($2)`)).
		WithArgs(int64(1), "a@x.com").
		WillReturnRows(contactRows(42, "a@x.com", ""))

	c, err := repo.FindByEmailOrPhone(context.Background(), 1, "a@x.com", "")
	assert.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(42), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailOrPhone_BothFields(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	// email ИЛИ phone — оба уходят параметрами в один запрос
	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(c.email) = LOWER($2) OR c.phone = $3`)).
		WithArgs(int64(1), "a@x.com", "+777").
		WillReturnRows(contactRows(42, "b@y.com", "+777"))

	c, err := repo.FindByEmailOrPhone(context.Background(), 1, "a@x.com", "+777")
	assert.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(42), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailOrPhone_NeitherField(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	// без email и phone матчиться нечему: запрос вообще не выполняется
	c, err := repo.FindByEmailOrPhone(context.Background(), 1, "  ", "")
	assert.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailOrPhone_NoMatch(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(c.email) = LOWER($2)`)).
		WithArgs(int64(1), "new@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, err := repo.FindByEmailOrPhone(context.Background(), 1, "new@x.com", "")
	assert.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackfillOnlyFillsEmptyFields(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	// COALESCE(NULLIF(col,''), $n): заполненные поля не перезаписываются
	mock.ExpectExec(regexp.QuoteMeta(`first_name    = COALESCE(NULLIF(first_name, ''), $1)`)).
		WithArgs("Ivan", "Petrov", "KF-9", int64(42), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Backfill(context.Background(), 1, 42, "Ivan", "Petrov", "KF-9")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactUpdate_EmptyBagIsNoOpSafe(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	// все поля nil → каждая колонка COALESCE'ится в своё старое значение
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE contacts SET`)).
		WithArgs(nil, nil, nil, nil, nil, nil, int64(42), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.id = $1 AND c.tenant_id = $2`)).
		WithArgs(int64(42), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "first_name", "last_name", "email", "phone", "dob",
			"company_id", "kf_visitor_id", "source", "created_at", "updated_at", "company_name",
		}).AddRow(42, 1, "Ivan", "", "a@x.com", "", nil, nil, "", "manual", time.Now(), time.Now(), ""))

	c, err := repo.Update(context.Background(), 1, 42, models.ContactUpdate{})
	assert.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Ivan", c.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactDelete_MissingRowReturnsFalse(t *testing.T) {
	repo, mock := newTestContactRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM contacts WHERE id = $1 AND tenant_id = $2`)).
		WithArgs(int64(99), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 1, 99)
	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
