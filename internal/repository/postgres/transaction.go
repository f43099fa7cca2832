package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"planforge/internal/domain/repositories"
)

// TransactionManager runs units of work in a pgx transaction
type TransactionManager struct {
	pool    *pgxpool.Pool
	options pgx.TxOptions
	logger  *slog.Logger
}

// NewTransactionManager creates a transaction manager at READ COMMITTED.
// Document rows are locked with SELECT ... FOR UPDATE inside the transaction.
func NewTransactionManager(pool *pgxpool.Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{
		pool:    pool,
		options: pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
		logger:  logger,
	}
}

// ExecTx runs fn in a transaction, committing if fn returns nil.
// A call made inside an existing transaction joins it.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) (err error) {
	if _, ok := repositories.TxFrom(ctx); ok {
		return fn(ctx)
	}

	tx, err := tm.pool.BeginTx(ctx, tm.options)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tm.rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			tm.rollback(ctx, tx)
		}
	}()

	if err = fn(repositories.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (tm *TransactionManager) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		tm.logger.Error("rollback failed", "error", err)
	}
}
