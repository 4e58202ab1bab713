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

func newTestUserService(t *testing.T) (UserService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserService(repositories.NewUserRepository(db), NewAuthService()), mock
}

func TestUserCreate_BlankPasswordIsValidation(t *testing.T) {
	svc, mock := newTestUserService(t)

	err := svc.Create(context.Background(), 1, &models.User{Email: "a@x.kz"}, "  ")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "password", apperrors.FieldOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
