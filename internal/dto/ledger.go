package dto

import (
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest records a manual ledger entry. Amounts may be
// given unsigned; the sign follows the transaction type.
type CreateLedgerEntryRequest struct {
	SessionDate     *time.Time      `json:"sessionDate"`
	TransactionType string          `json:"transactionType" binding:"required,transaction_type"`
	Platinum        decimal.Decimal `json:"platinum" swaggertype:"string"`
	Gold            decimal.Decimal `json:"gold" swaggertype:"string"`
	Silver          decimal.Decimal `json:"silver" swaggertype:"string"`
	Copper          decimal.Decimal `json:"copper" swaggertype:"string"`
	Notes           string          `json:"notes"`
}

// ToDomain converts the request into an unsaved entry.
func (r CreateLedgerEntryRequest) ToDomain(txType domain.TransactionType) domain.LedgerEntry {
	entry := domain.LedgerEntry{
		TransactionType: txType,
		Coins: domain.Coins{
			Platinum: r.Platinum,
			Gold:     r.Gold,
			Silver:   r.Silver,
			Copper:   r.Copper,
		},
		Notes: r.Notes,
	}
	if r.SessionDate != nil {
		entry.SessionDate = *r.SessionDate
	}
	return entry
}

// ListLedgerQuery filters and pages ledger entries. Dates are inclusive days.
type ListLedgerQuery struct {
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// ListLedgerResponse is one page of ledger entries.
type ListLedgerResponse struct {
	Entries   []domain.LedgerEntry `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// DistributeAmountRequest carries the amount for the defined-amount policies.
type DistributeAmountRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
}

// BalanceResponse reports whether balancing wrote an entry.
type BalanceResponse struct {
	Balanced bool                `json:"balanced"`
	Entry    *domain.LedgerEntry `json:"entry,omitempty"`
}
