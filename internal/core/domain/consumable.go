package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
)

// ConsumeMode selects how a consumable is depleted.
type ConsumeMode string

const (
	ConsumeCharges  ConsumeMode = "charges"  // wand-like: one item, a charge counter
	ConsumeQuantity ConsumeMode = "quantity" // potion/scroll-like: a pool of units across rows
)

// Charge bounds accepted by SetCharges.
const (
	MinCharges = 1
	MaxCharges = 50
)

// UseConsumableRequest identifies the consumable to use. Charge mode needs
// LootItemID; quantity mode needs CatalogItemID.
type UseConsumableRequest struct {
	Mode          ConsumeMode
	LootItemID    int64
	CatalogItemID int64
}

// Validate checks that the identifier required by the mode is present.
func (r UseConsumableRequest) Validate() error {
	switch r.Mode {
	case ConsumeCharges:
		if r.LootItemID <= 0 {
			return fmt.Errorf("%w: lootItemId is required for charge use", apperrors.ErrValidation)
		}
	case ConsumeQuantity:
		if r.CatalogItemID <= 0 {
			return fmt.Errorf("%w: itemId is required for quantity use", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown consume mode %q", apperrors.ErrValidation, r.Mode)
	}
	return nil
}

// ValidateCharges checks an absolute charge count.
func ValidateCharges(charges int) error {
	if charges < MinCharges || charges > MaxCharges {
		return fmt.Errorf("%w: charges must be between %d and %d", apperrors.ErrValidation, MinCharges, MaxCharges)
	}
	return nil
}

// ConsumableUseRecord logs one successful use.
type ConsumableUseRecord struct {
	ID          int64     `json:"id"`
	LootItemID  int64     `json:"lootItemId"`
	CharacterID *int64    `json:"characterId,omitempty"`
	UsedBy      string    `json:"usedBy"`
	UsedAt      time.Time `json:"usedAt"`
	ItemName    string    `json:"itemName,omitempty"` // filled by history queries
}

// ConsumablePool is the party's remaining units of one quantity-based consumable.
type ConsumablePool struct {
	CatalogItemID int64  `json:"itemId"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
}

// ConsumableSummary is the party's usable consumables.
type ConsumableSummary struct {
	Wands []LootItem       `json:"wands"`
	Pools []ConsumablePool `json:"pools"`
}
