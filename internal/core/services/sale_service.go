package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type saleService struct {
	BaseService
	store portsrepo.Store
}

// NewSaleService creates a new SaleService.
func NewSaleService(store portsrepo.Store, options ...ServiceOption) portssvc.SaleSvcFacade {
	return &saleService{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// salePick is what a batch variant decided to sell.
type salePick struct {
	toSell  []domain.LootItem
	skipped []domain.SkippedItem
	kept    int
}

type pickFunc func(ctx context.Context, repos portsrepo.RepositoryProvider) (salePick, error)

func (s *saleService) PendingSaleSummary(ctx context.Context) (*domain.PendingSaleSummary, error) {
	items, err := s.store.Repositories().LootRepo.ListLoot(ctx, domain.LootFilter{
		Statuses: []domain.LootStatus{domain.StatusPendingSale},
	})
	if err != nil {
		return nil, err
	}
	summary := domain.SummarizePending(items)
	return &summary, nil
}

func (s *saleService) SaleHistory(ctx context.Context, limit, offset int) ([]domain.SoldRecord, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset cannot be negative", apperrors.ErrValidation)
	}
	return s.store.Repositories().SaleRepo.ListSold(ctx, clampLimit(limit), offset)
}

func (s *saleService) SellAll(ctx context.Context, actor domain.Actor) (*domain.SaleResult, error) {
	return s.sell(ctx, "all", actor, func(ctx context.Context, repos portsrepo.RepositoryProvider) (salePick, error) {
		pending, err := lockPending(ctx, repos)
		if err != nil {
			return salePick{}, err
		}
		pick := salePick{}
		for _, item := range pending {
			if reason := domain.SkipReason(item); reason != "" {
				pick.skipped = append(pick.skipped, skippedItem(item, reason))
				continue
			}
			pick.toSell = append(pick.toSell, item)
		}
		return pick, nil
	})
}

func (s *saleService) SellUpTo(ctx context.Context, amount decimal.Decimal, actor domain.Actor) (*domain.SaleResult, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: sale cap must be positive", apperrors.ErrValidation)
	}
	return s.sell(ctx, "up_to", actor, func(ctx context.Context, repos portsrepo.RepositoryProvider) (salePick, error) {
		pending, err := lockPending(ctx, repos)
		if err != nil {
			return salePick{}, err
		}
		pick := salePick{}
		valid := make([]domain.LootItem, 0, len(pending))
		for _, item := range pending {
			if reason := domain.SkipReason(item); reason != "" {
				pick.skipped = append(pick.skipped, skippedItem(item, reason))
				continue
			}
			valid = append(valid, item)
		}
		selected, rest := accounting.SelectUpTo(valid, amount)
		pick.toSell = selected
		pick.kept = len(rest)
		return pick, nil
	})
}

func (s *saleService) SellSelected(ctx context.Context, itemIDs []int64, actor domain.Actor) (*domain.SaleResult, error) {
	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one item id is required", apperrors.ErrValidation)
	}
	ids := uniqueSortedIDs(itemIDs)
	return s.sell(ctx, "selected", actor, func(ctx context.Context, repos portsrepo.RepositoryProvider) (salePick, error) {
		items, err := repos.LootRepo.LockLootByIDs(ctx, ids)
		if err != nil {
			return salePick{}, err
		}
		byID := make(map[int64]domain.LootItem, len(items))
		for _, item := range items {
			byID[item.ID] = item
		}

		pick := salePick{}
		for _, id := range ids {
			item, ok := byID[id]
			if !ok {
				pick.skipped = append(pick.skipped, domain.SkippedItem{LootItemID: id, Reason: domain.SkipNotFound})
				continue
			}
			if reason := domain.SkipReason(item); reason != "" {
				pick.skipped = append(pick.skipped, skippedItem(item, reason))
				continue
			}
			pick.toSell = append(pick.toSell, item)
		}
		return pick, nil
	})
}

func (s *saleService) SellAllExcept(ctx context.Context, keepIDs []int64, actor domain.Actor) (*domain.SaleResult, error) {
	keep := make(map[int64]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = struct{}{}
	}
	return s.sell(ctx, "all_except", actor, func(ctx context.Context, repos portsrepo.RepositoryProvider) (salePick, error) {
		pending, err := lockPending(ctx, repos)
		if err != nil {
			return salePick{}, err
		}
		pick := salePick{}
		for _, item := range pending {
			if _, ok := keep[item.ID]; ok {
				pick.kept++
				continue
			}
			if reason := domain.SkipReason(item); reason != "" {
				pick.skipped = append(pick.skipped, skippedItem(item, reason))
				continue
			}
			pick.toSell = append(pick.toSell, item)
		}
		return pick, nil
	})
}

// sell runs one batch: pick items, record each sale, mark them Sold and write a
// single Sale ledger entry for the total.
func (s *saleService) sell(ctx context.Context, variant string, actor domain.Actor, pick pickFunc) (*domain.SaleResult, error) {
	now := s.Now()
	var result domain.SaleResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		picked, err := pick(ctx, repos)
		if err != nil {
			return err
		}
		if len(picked.toSell) == 0 {
			return fmt.Errorf("%w: no valid items to sell", apperrors.ErrNotFound)
		}

		result = domain.SaleResult{
			Sold:         make([]domain.SoldItem, 0, len(picked.toSell)),
			SoldTotal:    decimal.Zero,
			Skipped:      picked.skipped,
			SkippedCount: len(picked.skipped),
			KeptCount:    picked.kept,
		}
		if result.Skipped == nil {
			result.Skipped = []domain.SkippedItem{}
		}

		for _, item := range picked.toSell {
			value := domain.SaleValue(item)
			if _, err := repos.SaleRepo.InsertSold(ctx, domain.SoldRecord{
				LootItemID: item.ID,
				SoldFor:    value,
				SoldOn:     now,
			}); err != nil {
				return err
			}
			item.Status = domain.StatusSold
			item.WhoHas = nil
			item.WhoUpdated = actor.UserID
			item.LastUpdate = now
			if err := repos.LootRepo.UpdateLoot(ctx, item); err != nil {
				return err
			}
			result.Sold = append(result.Sold, domain.SoldItem{LootItemID: item.ID, Name: item.Name, SoldFor: value})
			result.SoldTotal = result.SoldTotal.Add(value)
		}
		result.SoldCount = len(result.Sold)

		coins, err := accounting.SignedCoins(domain.TxSale, domain.SplitGold(result.SoldTotal))
		if err != nil {
			return err
		}
		entry, err := repos.LedgerRepo.InsertEntry(ctx, domain.LedgerEntry{
			SessionDate:     domain.GameDay(now),
			TransactionType: domain.TxSale,
			Coins:           coins,
			Notes:           fmt.Sprintf("Sale of %d items", result.SoldCount),
			CreatedBy:       actor.UserID,
			CreatedAt:       now,
		})
		if err != nil {
			return err
		}
		result.LedgerEntry = &entry
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to sell loot", slog.String("variant", variant))
		return nil, err
	}

	s.LogInfo(ctx, "Loot sold",
		slog.String("variant", variant),
		slog.Int("sold_count", result.SoldCount),
		slog.String("sold_total", result.SoldTotal.String()),
		slog.Int("skipped_count", result.SkippedCount))
	s.Publish(ctx, domain.EventLootSold, actor, result)
	return &result, nil
}

func lockPending(ctx context.Context, repos portsrepo.RepositoryProvider) ([]domain.LootItem, error) {
	pending, err := repos.LootRepo.LockLootByStatus(ctx, domain.StatusPendingSale)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, fmt.Errorf("%w: no items pending sale", apperrors.ErrNotFound)
	}
	return pending, nil
}

func skippedItem(item domain.LootItem, reason string) domain.SkippedItem {
	return domain.SkippedItem{LootItemID: item.ID, Name: item.Name, Reason: reason}
}
