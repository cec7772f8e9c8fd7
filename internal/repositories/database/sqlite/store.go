package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite storage backend. Transactions are opened with
// BEGIN IMMEDIATE (see db.Open), which takes the database write lock at the
// start of every unit of work.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database whose schema is already in place.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ portsrepo.Store = (*Store)(nil)

func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return newProvider(s.db)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr(err, "failed to begin transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, newProvider(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, wrapErr(rbErr, "failed to rollback transaction"))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapErr(err, "failed to commit transaction")
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
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

// wrapErr turns a driver error into an application error. A busy or locked
// database means another writer holds the lock and is reported as a conflict.
func wrapErr(err error, msg string) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %s: %v", apperrors.ErrConflict, msg, err)
		}
	}
	return apperrors.NewAppError(500, msg, err)
}

// inClause returns "?, ?, ?" for n placeholders and the ids as arguments.
func inClause(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}
