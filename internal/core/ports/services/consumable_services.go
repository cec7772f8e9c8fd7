package services

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// ConsumableSvcFacade defines consumable charge tracking
type ConsumableSvcFacade interface {
	// UseConsumable spends one charge or one unit and logs the use.
	UseConsumable(ctx context.Context, req domain.UseConsumableRequest, actor domain.Actor) (*domain.LootItem, error)

	// SetCharges sets an absolute charge count on a party-kept item.
	SetCharges(ctx context.Context, itemID int64, charges int, actor domain.Actor) (*domain.LootItem, error)

	// ListConsumables lists the party's wands and potion/scroll pools.
	ListConsumables(ctx context.Context) (*domain.ConsumableSummary, error)

	// UseHistory lists recent uses.
	UseHistory(ctx context.Context, limit int) ([]domain.ConsumableUseRecord, error)
}
