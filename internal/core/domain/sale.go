package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// SaleValue is what an item fetches: trade goods sell at full value, everything
// else at half. Unidentified or unvalued items are worth nothing here.
func SaleValue(item LootItem) decimal.Decimal {
	if !IsSaleCandidate(item) {
		return decimal.Zero
	}
	if item.Type == ItemTypeTradeGood {
		return *item.Value
	}
	return item.Value.Div(two)
}

// IsSaleCandidate reports whether the item can be sold at all.
func IsSaleCandidate(item LootItem) bool {
	return !item.Unidentified && item.Value != nil
}

// Skip reasons reported by batch sales.
const (
	SkipUnidentified = "unidentified"
	SkipNoValue      = "no value"
	SkipNotFound     = "not found"
	SkipAlreadySold  = "already sold"
	SkipTrashed      = "trashed"
	SkipOverCap      = "over cap"
)

// SkipReason explains why an item cannot be sold, or returns "" when it can.
func SkipReason(item LootItem) string {
	switch {
	case item.Status == StatusSold:
		return SkipAlreadySold
	case item.Status == StatusTrashed:
		return SkipTrashed
	case item.Unidentified:
		return SkipUnidentified
	case item.Value == nil:
		return SkipNoValue
	}
	return ""
}

// SoldRecord is the append-only record of one item sale.
type SoldRecord struct {
	ID         int64           `json:"id"`
	LootItemID int64           `json:"lootItemId"`
	SoldFor    decimal.Decimal `json:"soldFor"`
	SoldOn     time.Time       `json:"soldOn"`
	ItemName   string          `json:"itemName,omitempty"` // filled by history queries
}

// SoldItem is one item sold by a batch.
type SoldItem struct {
	LootItemID int64           `json:"lootItemId"`
	Name       string          `json:"name"`
	SoldFor    decimal.Decimal `json:"soldFor"`
}

// SkippedItem is one requested item a batch did not sell.
type SkippedItem struct {
	LootItemID int64  `json:"lootItemId"`
	Name       string `json:"name,omitempty"`
	Reason     string `json:"reason"`
}

// SaleResult summarises a batch sale.
type SaleResult struct {
	Sold         []SoldItem      `json:"sold"`
	SoldCount    int             `json:"soldCount"`
	SoldTotal    decimal.Decimal `json:"soldTotal"`
	Skipped      []SkippedItem   `json:"skipped"`
	SkippedCount int             `json:"skippedCount"`
	KeptCount    int             `json:"keptCount"`
	LedgerEntry  *LedgerEntry    `json:"ledgerEntry"`
}

// PendingSaleItem is a pending item with its computed sale value.
type PendingSaleItem struct {
	LootItem
	SaleValue decimal.Decimal `json:"saleValue"`
	Valid     bool            `json:"valid"`
}

// PendingSaleSummary lists everything marked for sale.
type PendingSaleSummary struct {
	Items      []PendingSaleItem `json:"items"`
	ValidCount int               `json:"validCount"`
	Total      decimal.Decimal   `json:"total"`
}

// SummarizePending computes the sale value of each pending item.
func SummarizePending(items []LootItem) PendingSaleSummary {
	summary := PendingSaleSummary{Items: make([]PendingSaleItem, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		valid := IsSaleCandidate(item)
		value := SaleValue(item)
		summary.Items = append(summary.Items, PendingSaleItem{LootItem: item, SaleValue: value, Valid: valid})
		if valid {
			summary.ValidCount++
			summary.Total = summary.Total.Add(value)
		}
	}
	return summary
}
