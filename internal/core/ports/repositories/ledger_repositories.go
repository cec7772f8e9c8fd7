package repositories

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// LedgerReader defines read operations for the currency ledger
type LedgerReader interface {
	// Totals sums every denomination across all entries.
	Totals(ctx context.Context) (domain.Coins, error)

	// ListEntries returns entries newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, *string, error)

	// ListLooseChangeEntries returns every entry holding silver or copper, by id.
	ListLooseChangeEntries(ctx context.Context) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for the currency ledger
type LedgerWriter interface {
	// LockLedger serialises ledger-wide operations (balancing, distribution)
	// for the rest of the transaction.
	LockLedger(ctx context.Context) error

	// InsertEntry appends an entry and returns it with its id.
	InsertEntry(ctx context.Context, entry domain.LedgerEntry) (domain.LedgerEntry, error)

	// DeleteEntries removes entries by id. Only balancing may call it.
	DeleteEntries(ctx context.Context, ids []int64) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
