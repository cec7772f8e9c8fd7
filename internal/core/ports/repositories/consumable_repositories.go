package repositories

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// ConsumableRepositoryFacade defines persistence for consumable use
type ConsumableRepositoryFacade interface {
	// InsertUse appends one use record.
	InsertUse(ctx context.Context, record domain.ConsumableUseRecord) (domain.ConsumableUseRecord, error)

	// ListUses returns the most recent use records, newest first.
	ListUses(ctx context.Context, limit int) ([]domain.ConsumableUseRecord, error)

	// ListWands returns party-kept items that carry charges.
	ListWands(ctx context.Context) ([]domain.LootItem, error)

	// ListPools returns party-kept potion and scroll quantities grouped by catalog item.
	ListPools(ctx context.Context) ([]domain.ConsumablePool, error)
}
