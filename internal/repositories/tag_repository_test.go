package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTagRepo(t *testing.T) (*TagRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &TagRepository{db: db}, mock
}

func TestUpsertByName_InsertsNewTag(t *testing.T) {
	repo, mock := newTestTagRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (tenant_id, name) DO NOTHING`)).
		WithArgs(int64(1), "hot").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, time.Now()))

	tag, err := repo.UpsertByName(context.Background(), 1, "  hot  ")
	assert.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, int64(10), tag.ID)
	assert.Equal(t, "hot", tag.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertByName_ExistingTagIsFetched(t *testing.T) {
	repo, mock := newTestTagRepo(t)

	// DO NOTHING не вернул строку — повтор не ошибка, тег читается
	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (tenant_id, name) DO NOTHING`)).
		WithArgs(int64(1), "hot").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, tenant_id, name, created_at FROM tags`)).
		WithArgs(int64(1), "hot").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "created_at"}).
			AddRow(10, 1, "hot", time.Now()))

	tag, err := repo.UpsertByName(context.Background(), 1, "hot")
	assert.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, int64(10), tag.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertByName_RejectsEmptyName(t *testing.T) {
	repo, mock := newTestTagRepo(t)

	_, err := repo.UpsertByName(context.Background(), 1, "   ")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLink_RepeatIsNoOp(t *testing.T) {
	repo, mock := newTestTagRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (lead_id, tag_id) DO NOTHING`)).
		WithArgs(int64(1), int64(5), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// вторая связка того же (lead, tag): 0 строк, но тоже не ошибка
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (lead_id, tag_id) DO NOTHING`)).
		WithArgs(int64(1), int64(5), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Link(context.Background(), 1, 5, 10))
	assert.NoError(t, repo.Link(context.Background(), 1, 5, 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnlink_MissingLinkReturnsFalse(t *testing.T) {
	repo, mock := newTestTagRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM lead_tags lt`)).
		WithArgs(int64(1), int64(5), "cold").
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Unlink(context.Background(), 1, 5, "cold")
	assert.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
