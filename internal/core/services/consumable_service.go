package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
)

type consumableService struct {
	BaseService
	store portsrepo.Store
}

// NewConsumableService creates a new ConsumableService.
func NewConsumableService(store portsrepo.Store, options ...ServiceOption) portssvc.ConsumableSvcFacade {
	return &consumableService{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.ConsumableSvcFacade = (*consumableService)(nil)

// UseConsumable locks the candidate row, decrements it and logs the use in one
// transaction, so two concurrent uses can never both take the last unit.
func (s *consumableService) UseConsumable(ctx context.Context, req domain.UseConsumableRequest, actor domain.Actor) (*domain.LootItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.Now()
	var used domain.LootItem
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var item *domain.LootItem
		switch req.Mode {
		case domain.ConsumeCharges:
			items, err := repos.LootRepo.LockLootByIDs(ctx, []int64{req.LootItemID})
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("%w: loot item %d not found", apperrors.ErrNotFound, req.LootItemID)
			}
			item = &items[0]
			if err := item.UseCharge(actor.UserID, now); err != nil {
				return err
			}
		case domain.ConsumeQuantity:
			candidate, err := repos.LootRepo.LockNextConsumable(ctx, req.CatalogItemID)
			if err != nil {
				return err
			}
			item = candidate
			if err := item.UseUnit(actor.UserID, now); err != nil {
				return err
			}
		}

		if err := repos.LootRepo.UpdateLoot(ctx, *item); err != nil {
			return err
		}
		if _, err := repos.ConsumableRepo.InsertUse(ctx, domain.ConsumableUseRecord{
			LootItemID:  item.ID,
			CharacterID: actor.CharacterID,
			UsedBy:      actor.UserID,
			UsedAt:      now,
		}); err != nil {
			return err
		}
		used = *item
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to use consumable",
			slog.String("mode", string(req.Mode)),
			slog.Int64("loot_item_id", req.LootItemID),
			slog.Int64("catalog_item_id", req.CatalogItemID))
		return nil, err
	}

	s.LogInfo(ctx, "Consumable used",
		slog.Int64("loot_item_id", used.ID),
		slog.String("status", string(used.Status)))
	return &used, nil
}

func (s *consumableService) SetCharges(ctx context.Context, itemID int64, charges int, actor domain.Actor) (*domain.LootItem, error) {
	if err := domain.ValidateCharges(charges); err != nil {
		return nil, err
	}

	now := s.Now()
	var updated domain.LootItem
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		items, err := repos.LootRepo.LockLootByIDs(ctx, []int64{itemID})
		if err != nil {
			return err
		}
		if len(items) == 0 || items[0].Status != domain.StatusKeptParty {
			return fmt.Errorf("%w: no party-kept item with id %d", apperrors.ErrNotFound, itemID)
		}
		item := items[0]
		item.Charges = domain.IntPtr(charges)
		item.WhoUpdated = actor.UserID
		item.LastUpdate = now
		if err := repos.LootRepo.UpdateLoot(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to set charges", slog.Int64("item_id", itemID))
		return nil, err
	}
	return &updated, nil
}

func (s *consumableService) ListConsumables(ctx context.Context) (*domain.ConsumableSummary, error) {
	repo := s.store.Repositories().ConsumableRepo
	wands, err := repo.ListWands(ctx)
	if err != nil {
		return nil, err
	}
	pools, err := repo.ListPools(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.ConsumableSummary{Wands: wands, Pools: pools}, nil
}

func (s *consumableService) UseHistory(ctx context.Context, limit int) ([]domain.ConsumableUseRecord, error) {
	return s.store.Repositories().ConsumableRepo.ListUses(ctx, clampLimit(limit))
}
