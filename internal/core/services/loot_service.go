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

// lootService owns the item lifecycle: intake, status transitions and splits.
type lootService struct {
	BaseService
	store portsrepo.Store
}

// NewLootService creates a new LootService.
func NewLootService(store portsrepo.Store, options ...ServiceOption) portssvc.LootSvcFacade {
	return &lootService{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

// Ensure lootService implements the portssvc.LootSvcFacade interface
var _ portssvc.LootSvcFacade = (*lootService)(nil)

func (s *lootService) GetLoot(ctx context.Context, id int64) (*domain.LootItem, error) {
	return s.store.Repositories().LootRepo.FindLootByID(ctx, id)
}

func (s *lootService) ListLoot(ctx context.Context, filter domain.LootFilter) ([]domain.LootItem, error) {
	for _, status := range filter.Statuses {
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown loot status %q", apperrors.ErrValidation, status)
		}
	}
	return s.store.Repositories().LootRepo.ListLoot(ctx, filter)
}

func (s *lootService) CreateLoot(ctx context.Context, items []domain.LootItem, actor domain.Actor) ([]domain.LootItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	for _, item := range items {
		if err := item.ValidateNew(); err != nil {
			return nil, err
		}
	}

	now := s.Now()
	created := make([]domain.LootItem, 0, len(items))
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		for _, item := range items {
			item.ID = 0
			item.Status = domain.StatusUnprocessed
			item.WhoHas = nil
			if item.SessionDate.IsZero() {
				item.SessionDate = domain.GameDay(now)
			}
			if item.ModIDs == nil {
				item.ModIDs = []int64{}
			}
			item.WhoUpdated = actor.UserID
			item.LastUpdate = now

			saved, err := repos.LootRepo.CreateLoot(ctx, item)
			if err != nil {
				return err
			}
			created = append(created, saved)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create loot", slog.Int("count", len(items)))
		return nil, err
	}

	s.LogInfo(ctx, "Loot created", slog.Int("count", len(created)), slog.String("user_id", actor.UserID))
	return created, nil
}

func (s *lootService) Transition(ctx context.Context, req domain.TransitionRequest, actor domain.Actor) ([]domain.LootItem, error) {
	if len(req.ItemIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one item id is required", apperrors.ErrValidation)
	}
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown loot status %q", apperrors.ErrValidation, req.Status)
	}
	if req.Status == domain.StatusKeptSelf && req.WhoHas == nil {
		return nil, fmt.Errorf("%w: whoHas is required when keeping an item for a character", apperrors.ErrValidation)
	}
	if req.Status != domain.StatusKeptSelf && req.WhoHas != nil {
		return nil, fmt.Errorf("%w: whoHas only applies to %q", apperrors.ErrValidation, domain.StatusKeptSelf)
	}
	if req.Override && !actor.IsDM {
		return nil, fmt.Errorf("%w: only the DM can override status rules", apperrors.ErrForbidden)
	}

	ids := uniqueSortedIDs(req.ItemIDs)
	now := s.Now()
	var updated []domain.LootItem
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if req.WhoHas != nil {
			if _, err := repos.CharacterRepo.FindCharacterByID(ctx, *req.WhoHas); err != nil {
				return err
			}
		}

		items, err := repos.LootRepo.LockLootByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if err := requireAllFound(ids, items); err != nil {
			return err
		}

		for i := range items {
			item := &items[i]
			if !domain.CanTransition(item.Status, req.Status, req.Override) {
				return fmt.Errorf("%w: item %d cannot move from %q to %q without a DM override",
					apperrors.ErrValidation, item.ID, item.Status, req.Status)
			}
			item.Status = req.Status
			item.WhoHas = nil
			if req.WhoHas != nil {
				item.WhoHas = domain.Int64Ptr(*req.WhoHas)
			}
			item.WhoUpdated = actor.UserID
			item.LastUpdate = now
			if err := repos.LootRepo.UpdateLoot(ctx, *item); err != nil {
				return err
			}
		}
		updated = items
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to transition loot",
			slog.Any("item_ids", ids), slog.String("status", string(req.Status)))
		return nil, err
	}

	s.LogInfo(ctx, "Loot status updated",
		slog.Int("count", len(updated)),
		slog.String("status", string(req.Status)),
		slog.Bool("override", req.Override))
	return updated, nil
}

func (s *lootService) Split(ctx context.Context, itemID int64, partition []int, actor domain.Actor) ([]domain.LootItem, error) {
	now := s.Now()
	var affected []domain.LootItem
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		items, err := repos.LootRepo.LockLootByIDs(ctx, []int64{itemID})
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: loot item %d not found", apperrors.ErrNotFound, itemID)
		}

		source, copies, err := items[0].Split(partition, actor.UserID, now)
		if err != nil {
			return err
		}
		affected = append(affected, source)
		if len(copies) == 0 {
			return nil
		}
		if err := repos.LootRepo.UpdateLoot(ctx, source); err != nil {
			return err
		}
		for _, c := range copies {
			saved, err := repos.LootRepo.CreateLoot(ctx, c)
			if err != nil {
				return err
			}
			affected = append(affected, saved)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to split loot", slog.Int64("item_id", itemID))
		return nil, err
	}

	s.LogInfo(ctx, "Loot split", slog.Int64("item_id", itemID), slog.Int("parts", len(affected)))
	return affected, nil
}

// requireAllFound fails with ErrNotFound naming the first id missing from items.
func requireAllFound(ids []int64, items []domain.LootItem) error {
	if len(items) == len(ids) {
		return nil
	}
	found := make(map[int64]struct{}, len(items))
	for _, item := range items {
		found[item.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: loot item %d not found", apperrors.ErrNotFound, id)
		}
	}
	return nil
}
