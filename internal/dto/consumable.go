package dto

import "github.com/SscSPs/loot_ledger_app/internal/core/domain"

// UseConsumableRequest spends one charge (wands) or one unit (potions, scrolls).
type UseConsumableRequest struct {
	Mode       string `json:"mode" binding:"required,oneof=charges quantity"`
	LootItemID int64  `json:"lootItemId"` // charges mode
	ItemID     int64  `json:"itemId"`     // quantity mode, catalog item id
}

// ToDomain converts the request into a domain request.
func (r UseConsumableRequest) ToDomain() domain.UseConsumableRequest {
	return domain.UseConsumableRequest{
		Mode:          domain.ConsumeMode(r.Mode),
		LootItemID:    r.LootItemID,
		CatalogItemID: r.ItemID,
	}
}

// SetChargesRequest sets an absolute charge count.
type SetChargesRequest struct {
	Charges int `json:"charges" binding:"required,min=1,max=50"`
}

// ListQuery is the common limit/offset query.
type ListQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
