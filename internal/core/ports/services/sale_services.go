package services

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleReaderSvc defines read operations for sales
type SaleReaderSvc interface {
	// PendingSaleSummary lists pending items with their sale values.
	PendingSaleSummary(ctx context.Context) (*domain.PendingSaleSummary, error)

	// SaleHistory lists sold records, newest first.
	SaleHistory(ctx context.Context, limit, offset int) ([]domain.SoldRecord, error)
}

// SaleWriterSvc defines the batch sale operations. Each runs in one transaction
// and writes a single Sale ledger entry.
type SaleWriterSvc interface {
	SellAll(ctx context.Context, actor domain.Actor) (*domain.SaleResult, error)
	SellUpTo(ctx context.Context, amount decimal.Decimal, actor domain.Actor) (*domain.SaleResult, error)
	SellSelected(ctx context.Context, itemIDs []int64, actor domain.Actor) (*domain.SaleResult, error)
	SellAllExcept(ctx context.Context, keepIDs []int64, actor domain.Actor) (*domain.SaleResult, error)
}

// SaleSvcFacade combines all sale service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}
