package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes reported as conflicts.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the Postgres storage backend. Transactions run at READ COMMITTED
// and rely on row locks (FOR UPDATE) and a table lock on gold for
// ledger-wide operations.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps a connected pool. Migrations must already be applied.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ portsrepo.Store = (*Store)(nil)

func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return newProvider(s.pool)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err, "failed to begin transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if err := fn(ctx, newProvider(tx)); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, wrapErr(rbErr, "failed to rollback transaction"))
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr(err, "failed to commit transaction")
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func newProvider(q dbtx) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LootRepo:           &lootRepository{q: q},
		LedgerRepo:         &ledgerRepository{q: q},
		ConsumableRepo:     &consumableRepository{q: q},
		SaleRepo:           &saleRepository{q: q},
		IdentificationRepo: &identificationRepository{q: q},
		CharacterRepo:      &characterRepository{q: q},
		CatalogRepo:        &catalogRepository{q: q},
		CalendarRepo:       &calendarRepository{q: q},
	}
}

// wrapErr turns a driver error into an application error. Serialization
// failures, deadlocks and lock timeouts are reported as conflicts.
func wrapErr(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return fmt.Errorf("%w: %s: %v", apperrors.ErrConflict, msg, err)
		}
	}
	return apperrors.NewAppError(500, msg, err)
}
