package dto

import "github.com/shopspring/decimal"

// SellUpToRequest caps the total value of a sale batch.
type SellUpToRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"150.00"`
}

// SellSelectedRequest names the items to sell.
type SellSelectedRequest struct {
	ItemIDs []int64 `json:"itemIds" binding:"required,min=1"`
}

// SellAllExceptRequest names the pending items to keep.
type SellAllExceptRequest struct {
	KeepIDs []int64 `json:"keepIds"`
}
