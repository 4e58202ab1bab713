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

func newTestTaskRepo(t *testing.T) (*TaskRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &TaskRepository{db: db}, mock
}

var taskRowCols = []string{
	"id", "tenant_id", "title", "lead_id", "contact_id", "assignee_id", "due_at",
	"priority", "status", "created_at", "updated_at", "assignee_name",
}

// Сортировка задач фиксированная: ранг приоритета, потом due_at ASC NULLS
// LAST, потом created_at DESC — и она должна присутствовать в запросе.
func TestTaskList_UsesFixedPriorityOrdering(t *testing.T) {
	repo, mock := newTestTaskRepo(t)
	now := time.Now()

	orderClause := regexp.QuoteMeta(`ORDER BY CASE t.priority`) + `[\s\S]*` +
		regexp.QuoteMeta(`END ASC, t.due_at ASC NULLS LAST, t.created_at DESC`)

	mock.ExpectQuery(orderClause).
		WithArgs(int64(1), 20, 0).
		WillReturnRows(sqlmock.NewRows(taskRowCols).
			AddRow(3, 1, "call back", nil, nil, nil, nil, "urgent", "open", now, now, "").
			AddRow(1, 1, "send quote", nil, nil, nil, now.Add(time.Hour), "high", "open", now, now, "").
			AddRow(2, 1, "archive", nil, nil, nil, nil, "low", "open", now, now, ""))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*)`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	tasks, total, err := repo.List(context.Background(), 1, models.TaskFilter{}, models.PageParams{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, tasks, 3)
	assert.Equal(t, models.PriorityUrgent, tasks[0].Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskUpdate_MissingRowReturnsNil(t *testing.T) {
	repo, mock := newTestTaskRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tasks SET`)).
		WithArgs(nil, nil, nil, nil, nil, nil, nil, int64(99), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	task, err := repo.Update(context.Background(), 1, 99, models.TaskUpdate{})
	assert.NoError(t, err)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}
