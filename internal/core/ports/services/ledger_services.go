package services

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations for the currency ledger
type LedgerReaderSvc interface {
	// Totals returns the current sum of every denomination.
	Totals(ctx context.Context) (domain.Coins, error)

	// ListEntries retrieves a page of entries and the token for the next page.
	ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriterSvc defines write operations for the currency ledger
type LedgerWriterSvc interface {
	// RecordEntry appends one entry. The sign is taken from the transaction type.
	RecordEntry(ctx context.Context, entry domain.LedgerEntry, actor domain.Actor) (*domain.LedgerEntry, error)

	// Balance converts loose copper and silver upward. Returns nil when nothing needed converting.
	Balance(ctx context.Context, actor domain.Actor) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}

// DistributionSvcFacade pays the party's funds out to active characters.
type DistributionSvcFacade interface {
	DistributeAll(ctx context.Context, actor domain.Actor) (*domain.DistributionResult, error)
	DistributePlusPartyLoot(ctx context.Context, actor domain.Actor) (*domain.DistributionResult, error)
	DefinePartyLootDistribute(ctx context.Context, amount decimal.Decimal, actor domain.Actor) (*domain.DistributionResult, error)
	DefineCharacterDistribute(ctx context.Context, amount decimal.Decimal, actor domain.Actor) (*domain.DistributionResult, error)
}
