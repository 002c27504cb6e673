package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgateway/pkg/logger"
	"foodgateway/storage"
)

type ledgerRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewLedgerRepo(db *pgxpool.Pool, log logger.ILogger) storage.ILedgerStorage {
	return &ledgerRepo{db: db, log: log}
}

// Update holds a row lock on the account for the duration of fn.
func (r *ledgerRepo) Update(ctx context.Context, accountID string, fn storage.LedgerUpdate) (float64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance float64
	err = tx.QueryRow(ctx, `
		SELECT balance
		FROM ledger_accounts
		WHERE account_id = $1
		FOR UPDATE`,
		accountID,
	).Scan(&balance)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("failed to lock ledger account", logger.String("account", accountID), logger.Error(err))
		return 0, fmt.Errorf("select balance: %w", err)
	}

	next, commit := fn(balance)
	if !commit {
		return balance, nil
	}

	if err := upsertBalance(ctx, tx, accountID, next); err != nil {
		r.log.Error("failed to update ledger account", logger.String("account", accountID), logger.Error(err))
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func (r *ledgerRepo) Balance(ctx context.Context, accountID string) (float64, error) {
	var balance float64
	err := r.db.QueryRow(ctx, `SELECT balance FROM ledger_accounts WHERE account_id = $1`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("select balance: %w", err)
	}
	return balance, nil
}

func (r *ledgerRepo) Set(ctx context.Context, accountID string, balance float64) error {
	return upsertBalance(ctx, r.db, accountID, balance)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsertBalance(ctx context.Context, db execer, accountID string, balance float64) error {
	_, err := db.Exec(ctx, `
		INSERT INTO ledger_accounts (account_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (account_id) DO UPDATE
		SET balance = EXCLUDED.balance, updated_at = NOW()`,
		accountID, balance,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}
