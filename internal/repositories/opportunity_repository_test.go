package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpportunityRepo(t *testing.T) (*OpportunityRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &OpportunityRepository{db: db}, mock
}

// Все агрегаты считаются одним запросом (conditional aggregation),
// а не серией отдельных COUNT'ов.
func TestOpportunityStats_SinglePass(t *testing.T) {
	repo, mock := newTestOpportunityRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`COUNT(*) FILTER (WHERE status = 'open')`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"open_count", "won_count", "lost_count",
			"open_amount", "won_amount", "lost_amount",
			"last7", "last30",
		}).AddRow(4, 2, 1, 120000.50, 45000.0, 9000.0, 3, 7))

	s, err := repo.Stats(context.Background(), 1)
	assert.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 4, s.OpenCount)
	assert.Equal(t, 2, s.WonCount)
	assert.Equal(t, 1, s.LostCount)
	assert.InDelta(t, 120000.50, s.OpenAmount, 0.001)
	assert.Equal(t, 3, s.CreatedLast7)
	assert.Equal(t, 7, s.CreatedLast30)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityDelete_MissingRowReturnsFalse(t *testing.T) {
	repo, mock := newTestOpportunityRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM opportunities WHERE id = $1 AND tenant_id = $2`)).
		WithArgs(int64(99), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 1, 99)
	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
