package services

import (
	"context"
	"errors"
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

func newTestWebhookService(t *testing.T) (*WebhookService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	contacts := NewContactService(db, repositories.NewContactRepository(db))
	svc := NewWebhookService(
		db,
		repositories.NewTenantRepository(db),
		contacts,
		repositories.NewLeadRepository(db),
		repositories.NewActivityRepository(db),
		nil, // почта в тестах не нужна
		"",
		NewTelegramService("", 0), // no-op
	)
	return svc, mock
}

type recordingEmail struct {
	to    string
	title string
	sent  int
}

func (r *recordingEmail) SendLeadCaptured(to, leadTitle, contactName string) error {
	r.to = to
	r.title = leadTitle
	r.sent++
	return nil
}

func (r *recordingEmail) SendTaskAssigned(string, string, *time.Time) error { return nil }

func leadCapturedPayload(tenantID int64) *models.LeadCapturedPayload {
	scan := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	return &models.LeadCapturedPayload{
		TenantID: tenantID,
		Visitor: models.VisitorPayload{
			FirstName: "Aruzhan",
			LastName:  "Seitova",
			Email:     "aruzhan@x.kz",
		},
		ExhibitionID: ptr(int64(55)),
		JoinID:       ptr(int64(900)),
		ScanTime:     &scan,
	}
}

func ptr[T any](v T) *T { return &v }

func expectTenantLookup(mock sqlmock.Sqlmock, tenantID int64, found bool) {
	q := mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, created_at FROM tenants WHERE id = $1`)).
		WithArgs(tenantID)
	if found {
		q.WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(tenantID, "Expo Org", time.Now()))
	} else {
		q.WillReturnRows(sqlmock.NewRows([]string{"id"}))
	}
}

func TestHandleLeadCaptured_UnknownTenant_NoWrites(t *testing.T) {
	svc, mock := newTestWebhookService(t)

	expectTenantLookup(mock, 404, false)
	// никаких Begin/INSERT: отказ до любых записей

	_, err := svc.HandleLeadCaptured(context.Background(), leadCapturedPayload(404))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "tenant_id", apperrors.FieldOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleLeadCaptured_NewContact_CommitsAll(t *testing.T) {
	svc, mock := newTestWebhookService(t)
	now := time.Now()

	expectTenantLookup(mock, 1, true)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`set_config('app.current_tenant', $1::text, true)`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// дедуп: матча нет
	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(c.email) = LOWER($2)`)).
		WithArgs(int64(1), "aruzhan@x.kz").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// создаётся контакт с source=fairex
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO contacts`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(42, now, now))
	// лид
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO leads`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(100, now, now))
	// аудит
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO activity_logs`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))
	mock.ExpectCommit()

	res, err := svc.HandleLeadCaptured(context.Background(), leadCapturedPayload(1))
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.LeadID)
	require.NotNil(t, res.ContactID)
	assert.Equal(t, int64(42), *res.ContactID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleLeadCaptured_ExistingContact_IsReused(t *testing.T) {
	svc, mock := newTestWebhookService(t)
	now := time.Now()

	expectTenantLookup(mock, 1, true)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`set_config`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// матч по email: контакт 42 переиспользуется, INSERT contacts не будет
	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(c.email) = LOWER($2)`)).
		WithArgs(int64(1), "aruzhan@x.kz").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "first_name", "last_name", "email", "phone", "dob",
			"company_id", "kf_visitor_id", "source", "created_at", "updated_at",
		}).AddRow(42, 1, "", "", "aruzhan@x.kz", "", nil, nil, "", "fairex", now, now))
	// пустые имена дозаполняются
	mock.ExpectExec(regexp.QuoteMeta(`COALESCE(NULLIF(first_name, ''), $1)`)).
		WithArgs("Aruzhan", "Seitova", "", int64(42), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO leads`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(101, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO activity_logs`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, now))
	mock.ExpectCommit()

	res, err := svc.HandleLeadCaptured(context.Background(), leadCapturedPayload(1))
	require.NoError(t, err)
	require.NotNil(t, res.ContactID)
	assert.Equal(t, int64(42), *res.ContactID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Любой сбой внутри пайплайна откатывает всё: состояние
// "контакт без лида" или "лид без записи в журнале" не наблюдаемо.
func TestHandleLeadCaptured_ActivityFailure_RollsBackEverything(t *testing.T) {
	svc, mock := newTestWebhookService(t)
	now := time.Now()

	expectTenantLookup(mock, 1, true)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`set_config`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(c.email) = LOWER($2)`)).
		WithArgs(int64(1), "aruzhan@x.kz").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO contacts`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(42, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO leads`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(100, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO activity_logs`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.HandleLeadCaptured(context.Background(), leadCapturedPayload(1))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Письмо уходит на сконфигурированный notify-адрес (owner на этом пути
// ещё не назначен); без адреса — тишина.
func TestNotify_SendsToConfiguredAddress(t *testing.T) {
	rec := &recordingEmail{}
	svc := &WebhookService{email: rec, notifyTo: "sales@x.kz", telegram: NewTelegramService("", 0)}

	lead := &models.Lead{Title: "Aruzhan Seitova"}
	svc.notify(lead, leadCapturedPayload(1))

	assert.Equal(t, 1, rec.sent)
	assert.Equal(t, "sales@x.kz", rec.to)
	assert.Equal(t, "Aruzhan Seitova", rec.title)
}

func TestNotify_NoAddressNoEmail(t *testing.T) {
	rec := &recordingEmail{}
	svc := &WebhookService{email: rec, telegram: NewTelegramService("", 0)}

	svc.notify(&models.Lead{Title: "x"}, leadCapturedPayload(1))
	assert.Equal(t, 0, rec.sent)
}

func TestVisitorTitleFallback(t *testing.T) {
	assert.Equal(t, "Aruzhan Seitova", visitorTitle(models.VisitorPayload{FirstName: "Aruzhan", LastName: "Seitova"}))
	assert.Equal(t, "Aruzhan", visitorTitle(models.VisitorPayload{FirstName: " Aruzhan "}))
	assert.Equal(t, "FairEx visitor", visitorTitle(models.VisitorPayload{}))
}

func TestParseDob(t *testing.T) {
	got := parseDob("1994-06-02")
	require.NotNil(t, got)
	assert.Equal(t, 1994, got.Year())

	assert.Nil(t, parseDob(""))
	assert.Nil(t, parseDob("not-a-date"))
}
