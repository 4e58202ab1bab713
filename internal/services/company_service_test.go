package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvthakre/kf12/internal/apperrors"
	"github.com/garvthakre/kf12/internal/models"
	"github.com/garvthakre/kf12/internal/repositories"
)

func newTestCompanyService(t *testing.T) (*CompanyService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCompanyService(repositories.NewCompanyRepository(db)), mock
}

// Пустое имя — ошибка валидации (422 с полем), не internal,
// и до БД дело не доходит.
func TestCompanyCreate_BlankNameIsValidation(t *testing.T) {
	svc, mock := newTestCompanyService(t)

	for _, name := range []string{"", "   "} {
		err := svc.Create(context.Background(), 1, &models.Company{Name: name})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		assert.Equal(t, "name", apperrors.FieldOf(err))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
