package dto

import (
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLootItemRequest describes one newly found item.
type CreateLootItemRequest struct {
	SessionDate  *time.Time       `json:"sessionDate"` // Optional, defaults to today
	Name         string           `json:"name" binding:"required,max=255"`
	Quantity     int              `json:"quantity" binding:"required,gte=1"`
	ItemID       *int64           `json:"itemId"`
	ModIDs       []int64          `json:"modIds"`
	Charges      *int             `json:"charges" binding:"omitempty,min=1,max=50"`
	Value        *decimal.Decimal `json:"value"`
	Unidentified bool             `json:"unidentified"`
	Masterwork   bool             `json:"masterwork"`
	Type         string           `json:"type" binding:"max=64"`
	Size         string           `json:"size" binding:"max=32"`
	Cursed       bool             `json:"cursed"`
	Notes        string           `json:"notes"`
}

// CreateLootRequest records a batch of loot from one session.
type CreateLootRequest struct {
	Items []CreateLootItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToDomain converts the request into unsaved loot items.
func (r CreateLootRequest) ToDomain() []domain.LootItem {
	items := make([]domain.LootItem, 0, len(r.Items))
	for _, in := range r.Items {
		item := domain.LootItem{
			Name:         in.Name,
			Quantity:     in.Quantity,
			ItemID:       in.ItemID,
			ModIDs:       in.ModIDs,
			Charges:      in.Charges,
			Value:        in.Value,
			Unidentified: in.Unidentified,
			Masterwork:   in.Masterwork,
			Type:         in.Type,
			Size:         in.Size,
			Cursed:       in.Cursed,
			Notes:        in.Notes,
		}
		if in.SessionDate != nil {
			item.SessionDate = *in.SessionDate
		}
		items = append(items, item)
	}
	return items
}

// TransitionLootRequest moves items to a new status.
type TransitionLootRequest struct {
	ItemIDs  []int64 `json:"itemIds" binding:"required,min=1"`
	Status   string  `json:"status" binding:"required,loot_status"`
	WhoHas   *int64  `json:"whoHas"`   // Required for "Kept Self"
	Override bool    `json:"override"` // DM only
}

// SplitLootRequest partitions an item's quantity.
type SplitLootRequest struct {
	Quantities []int `json:"quantities" binding:"required,min=1,dive,gt=0"`
}

// ListLootQuery filters the loot list.
type ListLootQuery struct {
	Status  []string `form:"status" binding:"omitempty,dive,loot_status"`
	WhoHas  *int64   `form:"whoHas"`
	Grouped bool     `form:"grouped"`
}

// ListLootResponse holds either flat items or stacks, depending on the query.
type ListLootResponse struct {
	Items  []domain.LootItem `json:"items,omitempty"`
	Stacks []domain.Stack    `json:"stacks,omitempty"`
}
