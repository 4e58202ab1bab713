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

func newTestPipelineRepo(t *testing.T) (*PipelineRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PipelineRepository{db: db}, mock
}

// position = max+1 считается в том же стейтменте, поэтому три
// последовательных добавления дают 1, 2, 3.
func TestAddStage_PositionsAreSequential(t *testing.T) {
	repo, mock := newTestPipelineRepo(t)
	now := time.Now()
	insert := regexp.QuoteMeta(`SELECT $1, $2, $3, COALESCE(MAX(position), 0) + 1, $4, NOW()`)

	for i, name := range []string{"Qualify", "Proposal", "Close"} {
		mock.ExpectQuery(insert).
			WithArgs(int64(1), int64(7), name, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "position", "created_at"}).
				AddRow(int64(i+1), i+1, now))
	}

	for i, name := range []string{"Qualify", "Proposal", "Close"} {
		st := &models.PipelineStage{TenantID: 1, PipelineID: 7, Name: name}
		require.NoError(t, repo.AddStage(context.Background(), st))
		assert.Equal(t, i+1, st.Position)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPipeline_LoadsStagesInPositionOrder(t *testing.T) {
	repo, mock := newTestPipelineRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM pipelines WHERE id = $1 AND tenant_id = $2`)).
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "created_at"}).
			AddRow(7, 1, "Sales", now))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY position ASC`)).
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "pipeline_id", "name", "position", "win_probability", "created_at"}).
			AddRow(1, 1, 7, "Qualify", 1, 10, now).
			AddRow(2, 1, 7, "Close", 2, 90, now))

	p, err := repo.GetByID(context.Background(), 1, 7)
	assert.NoError(t, err)
	require.NotNil(t, p)
	require.Len(t, p.Stages, 2)
	assert.Equal(t, 1, p.Stages[0].Position)
	assert.Equal(t, 2, p.Stages[1].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStage_ScopedByPipelineAndTenant(t *testing.T) {
	repo, mock := newTestPipelineRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM pipeline_stages WHERE id = $1 AND pipeline_id = $2 AND tenant_id = $3`)).
		WithArgs(int64(2), int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteStage(context.Background(), 1, 7, 2)
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
