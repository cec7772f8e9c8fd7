package services

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// LootReaderSvc defines read operations for loot
type LootReaderSvc interface {
	// GetLoot retrieves one item by id.
	GetLoot(ctx context.Context, id int64) (*domain.LootItem, error)

	// ListLoot lists items matching the filter.
	ListLoot(ctx context.Context, filter domain.LootFilter) ([]domain.LootItem, error)
}

// LootWriterSvc defines the loot lifecycle operations
type LootWriterSvc interface {
	// CreateLoot records newly found loot as Unprocessed.
	CreateLoot(ctx context.Context, items []domain.LootItem, actor domain.Actor) ([]domain.LootItem, error)

	// Transition moves every listed item to a new status, or none of them.
	Transition(ctx context.Context, req domain.TransitionRequest, actor domain.Actor) ([]domain.LootItem, error)

	// Split partitions an item's quantity into several records. The source is returned first.
	Split(ctx context.Context, itemID int64, partition []int, actor domain.Actor) ([]domain.LootItem, error)
}

// LootSvcFacade combines all loot service interfaces
type LootSvcFacade interface {
	LootReaderSvc
	LootWriterSvc
}
