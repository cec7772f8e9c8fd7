package repositories

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// LootReader defines read operations for loot items
type LootReader interface {
	// FindLootByID retrieves an item without locking it.
	FindLootByID(ctx context.Context, id int64) (*domain.LootItem, error)

	// ListLoot returns items matching the filter ordered by session date then id.
	ListLoot(ctx context.Context, filter domain.LootFilter) ([]domain.LootItem, error)
}

// LootLocker defines row-locking reads. They must be called inside WithinTx;
// the locks are held until the transaction ends.
type LootLocker interface {
	// LockLootByIDs locks and returns the existing items among ids, in ascending id order.
	LockLootByIDs(ctx context.Context, ids []int64) ([]domain.LootItem, error)

	// LockLootByStatus locks and returns every item in status, in ascending id order.
	LockLootByStatus(ctx context.Context, status domain.LootStatus) ([]domain.LootItem, error)

	// LockNextConsumable locks the lowest-id item of the catalog item that has
	// quantity left and a non-terminal status. Returns apperrors.ErrNotFound when
	// there is none.
	LockNextConsumable(ctx context.Context, catalogItemID int64) (*domain.LootItem, error)
}

// LootWriter defines write operations for loot items
type LootWriter interface {
	// CreateLoot inserts the item and returns it with its new id.
	CreateLoot(ctx context.Context, item domain.LootItem) (domain.LootItem, error)

	// UpdateLoot overwrites every mutable column of the item.
	UpdateLoot(ctx context.Context, item domain.LootItem) error
}

// LootRepositoryFacade combines all loot repository interfaces
type LootRepositoryFacade interface {
	LootReader
	LootLocker
	LootWriter
}
