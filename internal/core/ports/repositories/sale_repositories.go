package repositories

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// SaleRepositoryFacade defines persistence for sold records
type SaleRepositoryFacade interface {
	// InsertSold appends one sold record.
	InsertSold(ctx context.Context, record domain.SoldRecord) (domain.SoldRecord, error)

	// ListSold returns sold records, newest first.
	ListSold(ctx context.Context, limit, offset int) ([]domain.SoldRecord, error)
}
