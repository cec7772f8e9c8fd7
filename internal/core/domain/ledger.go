package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry and fixes its sign.
type TransactionType string

const (
	TxDeposit           TransactionType = "Deposit"
	TxWithdrawal        TransactionType = "Withdrawal"
	TxPurchase          TransactionType = "Purchase"
	TxSale              TransactionType = "Sale"
	TxBalance           TransactionType = "Balance"
	TxPartyLootPurchase TransactionType = "Party Loot Purchase"
)

// ParseTransactionType converts a stored or user supplied string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TxDeposit, TxWithdrawal, TxPurchase, TxSale, TxBalance, TxPartyLootPurchase:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, s)
}

// LedgerEntry is one row of the party's currency ledger. Denominations are stored
// signed: withdrawal-class entries hold negative amounts.
type LedgerEntry struct {
	ID              int64           `json:"id"`
	SessionDate     time.Time       `json:"sessionDate"`
	TransactionType TransactionType `json:"transactionType"`
	Coins
	Notes     string    `json:"notes"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// LedgerFilter narrows ledger listings. SessionDate bounds are inclusive.
type LedgerFilter struct {
	From      *time.Time
	To        *time.Time
	Limit     int
	NextToken *string
}

// DistributionPolicy names the way a distribution computed its shares.
type DistributionPolicy string

const (
	PolicyEqualSplit      DistributionPolicy = "equal"
	PolicyPlusPartyLoot   DistributionPolicy = "plus_party_loot"
	PolicyDefinePartyLoot DistributionPolicy = "define_party_loot"
	PolicyDefineCharacter DistributionPolicy = "define_character"
)

// DistributionResult lists the entries one distribution wrote.
type DistributionResult struct {
	Policy     DistributionPolicy `json:"policy"`
	Share      Coins              `json:"share"`
	Recipients []Character        `json:"recipients"`
	Entries    []LedgerEntry      `json:"entries"`
}

// DistributionPlan is a computed distribution that has not been written yet.
type DistributionPlan struct {
	Share Coins
	// Conversion, when set, holds non-gold magnitudes exchanged into gold before
	// the withdrawals: a Withdrawal of these coins and a Deposit of their gold value.
	Conversion *Coins
}

// Notes on the two entries of a party-loot conversion.
const (
	PartyLootExchangeNote = "party loot exchange"
	PartyLootNote         = "party loot share"
)

// GoldAmount is a convenience constructor for whole-gold decimal values.
func GoldAmount(gold int64) decimal.Decimal {
	return decimal.NewFromInt(gold)
}
