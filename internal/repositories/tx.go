package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// DBTX покрывает *sql.DB и *sql.Tx: репозитории работают одинаково и в
// транзакции, и вне её.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// WithTenantTx выполняет fn в одной транзакции, предварительно привязав
// tenant к ней через set_config(..., true) — SET LOCAL живёт только до
// COMMIT/ROLLBACK, поэтому привязка не может протечь в другой запрос,
// получивший то же соединение из пула. Row-level policy стора опирается
// на app.current_tenant; приложение всё равно фильтрует по tenant_id явно.
func WithTenantTx(ctx context.Context, db *sql.DB, tenantID int64, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				log.Printf("[tx][rollback] err=%v", rbErr)
			}
		}
	}()

	if _, err := tx.ExecContext(ctx, `SELECT set_config('app.current_tenant', $1::text, true)`, tenantID); err != nil {
		return fmt.Errorf("bind tenant: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
