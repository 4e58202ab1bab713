package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

func newTestContactService(t *testing.T) (*ContactService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContactService(db, repositories.NewContactRepository(db)), mock
}

// Прямое создание: дубликат по email — конфликт с именем поля,
// а не тихое слияние.
func TestContactCreate_DuplicateEmailIsConflict(t *testing.T) {
	svc, mock := newTestContactService(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`set_config`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(c.email) = LOWER($2)`)).
		WithArgs(int64(1), "a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "first_name", "last_name", "email", "phone", "dob",
			"company_id", "kf_visitor_id", "source", "created_at", "updated_at",
		}).AddRow(42, 1, "Old", "", "a@x.com", "", nil, nil, "", "manual", now, now))
	mock.ExpectRollback()

	err := svc.Create(context.Background(), 1, &models.Contact{Email: "a@x.com"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, "email", apperrors.FieldOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactCreate_NoDuplicateInserts(t *testing.T) {
	svc, mock := newTestContactService(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`set_config`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(c.email) = LOWER($2)`)).
		WithArgs(int64(1), "new@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO contacts`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(7, now, now))
	mock.ExpectCommit()

	c := &models.Contact{Email: "new@x.com"}
	err := svc.Create(context.Background(), 1, c)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, models.ContactSourceManual, c.Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNeedsBackfill(t *testing.T) {
	existing := &models.Contact{FirstName: "Ivan", LastName: "", KfVisitorID: ""}

	assert.True(t, needsBackfill(existing, &models.Contact{LastName: "Petrov"}))
	assert.True(t, needsBackfill(existing, &models.Contact{KfVisitorID: "KF-1"}))
	// заполненное first_name не считается кандидатом на перезапись
	assert.False(t, needsBackfill(existing, &models.Contact{FirstName: "Other"}))
	assert.False(t, needsBackfill(existing, &models.Contact{}))
}
