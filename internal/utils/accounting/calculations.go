package accounting

import (
	"fmt"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignFor returns the sign stored amounts of the given transaction type carry.
// Every entry constructor goes through it.
func SignFor(t domain.TransactionType) (int, error) {
	switch t {
	case domain.TxWithdrawal, domain.TxPurchase, domain.TxPartyLootPurchase:
		return -1, nil
	case domain.TxDeposit, domain.TxSale, domain.TxBalance:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t)
	}
}

// SignedCoins applies the transaction type's sign to the magnitudes of amount.
func SignedCoins(t domain.TransactionType, amount domain.Coins) (domain.Coins, error) {
	sign, err := SignFor(t)
	if err != nil {
		return domain.Coins{}, err
	}
	signed := amount.Abs()
	if sign < 0 {
		signed = signed.Neg()
	}
	return signed, nil
}

// SumEntries totals each denomination across entries.
func SumEntries(entries []domain.LedgerEntry) domain.Coins {
	total := domain.Coins{}
	for _, e := range entries {
		total = total.Add(e.Coins)
	}
	return total
}

// PlanBalance works out how to normalise loose change. It returns the ids of
// the entries holding silver or copper and the single Balance amount that
// replaces them. A nil amount means nothing needs converting.
func PlanBalance(entries []domain.LedgerEntry) ([]int64, *domain.Coins) {
	ids := make([]int64, 0)
	loose := domain.Coins{}
	for _, e := range entries {
		if !e.HasLooseChange() {
			continue
		}
		ids = append(ids, e.ID)
		loose = loose.Add(e.Coins)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	normalized := loose.Normalize()
	if normalized.Equal(loose) {
		return nil, nil
	}
	return ids, &normalized
}

// EqualShares plans the equal split: each denomination's total is divided by the
// number of characters and floored. Negative totals contribute nothing.
func EqualShares(totals domain.Coins, characters int) (domain.DistributionPlan, error) {
	if err := requireRoster(characters); err != nil {
		return domain.DistributionPlan{}, err
	}
	n := decimal.NewFromInt(int64(characters))
	share := domain.Coins{
		Platinum: floorShare(totals.Platinum, n),
		Gold:     floorShare(totals.Gold, n),
		Silver:   floorShare(totals.Silver, n),
		Copper:   floorShare(totals.Copper, n),
	}
	if share.IsZero() {
		return domain.DistributionPlan{}, fmt.Errorf("%w: no currency to distribute", apperrors.ErrValidation)
	}
	return domain.DistributionPlan{Share: share}, nil
}

// PlusPartyLootShares plans the value-weighted split: the pool's gold value is
// divided into characters+1 equal shares (truncated to copper) paid in gold. The
// party keeps the extra share. When the pool holds platinum, silver or copper the
// plan carries those amounts as a conversion, exchanged into gold before the
// withdrawals are paid from the gold column.
func PlusPartyLootShares(totals domain.Coins, characters int) (domain.DistributionPlan, error) {
	if err := requireRoster(characters); err != nil {
		return domain.DistributionPlan{}, err
	}
	value := totals.GoldValue()
	if !value.IsPositive() {
		return domain.DistributionPlan{}, fmt.Errorf("%w: no currency to distribute", apperrors.ErrValidation)
	}
	share := domain.TruncateToCopper(value.Div(decimal.NewFromInt(int64(characters + 1))))
	if !share.IsPositive() {
		return domain.DistributionPlan{}, fmt.Errorf("%w: no currency to distribute", apperrors.ErrValidation)
	}
	plan := domain.DistributionPlan{Share: domain.GoldCoins(share)}

	nonGold := domain.Coins{
		Platinum: positivePart(totals.Platinum),
		Silver:   positivePart(totals.Silver),
		Copper:   positivePart(totals.Copper),
	}
	if !nonGold.IsZero() {
		plan.Conversion = &nonGold
	}
	return plan, nil
}

// DefinedPartyLootShares reserves amount gold for the party and splits the rest
// of the gold equally, truncated to copper.
func DefinedPartyLootShares(totalGold, amount decimal.Decimal, characters int) (domain.DistributionPlan, error) {
	if err := requireRoster(characters); err != nil {
		return domain.DistributionPlan{}, err
	}
	if amount.IsNegative() {
		return domain.DistributionPlan{}, fmt.Errorf("%w: party loot amount cannot be negative", apperrors.ErrValidation)
	}
	if amount.GreaterThan(totalGold) {
		return domain.DistributionPlan{}, fmt.Errorf("%w: party loot amount %s exceeds total gold %s",
			apperrors.ErrValidation, amount, totalGold)
	}
	share := domain.TruncateToCopper(totalGold.Sub(amount).Div(decimal.NewFromInt(int64(characters))))
	if !share.IsPositive() {
		return domain.DistributionPlan{}, fmt.Errorf("%w: no currency to distribute", apperrors.ErrValidation)
	}
	return domain.DistributionPlan{Share: domain.GoldCoins(share)}, nil
}

// DefinedCharacterShares pays every character the same fixed gold amount.
func DefinedCharacterShares(totalGold, amount decimal.Decimal, characters int) (domain.DistributionPlan, error) {
	if err := requireRoster(characters); err != nil {
		return domain.DistributionPlan{}, err
	}
	if !amount.IsPositive() {
		return domain.DistributionPlan{}, fmt.Errorf("%w: per-character amount must be positive", apperrors.ErrValidation)
	}
	needed := amount.Mul(decimal.NewFromInt(int64(characters)))
	if needed.GreaterThan(totalGold) {
		return domain.DistributionPlan{}, fmt.Errorf("%w: distributing %s to %d characters needs %s gold but only %s is available",
			apperrors.ErrValidation, amount, characters, needed, totalGold)
	}
	return domain.DistributionPlan{Share: domain.GoldCoins(amount)}, nil
}

// SelectUpTo walks items in order and takes each one whose sale value still fits
// under limit. It stops at the first item that would push the total past limit.
func SelectUpTo(items []domain.LootItem, limit decimal.Decimal) (selected []domain.LootItem, rest []domain.LootItem) {
	running := decimal.Zero
	for i, item := range items {
		next := running.Add(domain.SaleValue(item))
		if next.GreaterThan(limit) {
			return selected, items[i:]
		}
		running = next
		selected = append(selected, item)
	}
	return selected, nil
}

func requireRoster(characters int) error {
	if characters <= 0 {
		return fmt.Errorf("%w: no active characters found", apperrors.ErrValidation)
	}
	return nil
}

func floorShare(total, n decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return total.Div(n).Floor()
}

func positivePart(d decimal.Decimal) decimal.Decimal {
	if d.IsPositive() {
		return d
	}
	return decimal.Zero
}
