package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
)

// ErrAlreadyAttempted is returned when a character retries an item on the same game day.
var ErrAlreadyAttempted = fmt.Errorf("%w: already attempted today", apperrors.ErrValidation)

type identificationService struct {
	BaseService
	store portsrepo.Store
}

// NewIdentificationService creates a new IdentificationService.
func NewIdentificationService(store portsrepo.Store, options ...ServiceOption) portssvc.IdentificationSvcFacade {
	return &identificationService{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.IdentificationSvcFacade = (*identificationService)(nil)

func (s *identificationService) Identify(ctx context.Context, itemID int64, roll int, actor domain.Actor) (*domain.IdentifyResult, error) {
	if err := requireIdentifier(actor); err != nil {
		return nil, err
	}

	var result domain.IdentifyResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		gameDate, err := s.gameDate(ctx, repos)
		if err != nil {
			return err
		}
		result, err = s.identifyOne(ctx, repos, itemID, roll, actor, gameDate)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to identify item", slog.Int64("item_id", itemID))
		return nil, err
	}

	s.LogInfo(ctx, "Identification attempted",
		slog.Int64("item_id", itemID),
		slog.Bool("success", result.Success),
		slog.Int("roll", result.Roll),
		slog.Int("dc", result.RequiredDC))
	return &result, nil
}

func (s *identificationService) IdentifyMany(ctx context.Context, reqs []domain.IdentifyRequest, actor domain.Actor) ([]domain.IdentifyResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	if err := requireIdentifier(actor); err != nil {
		return nil, err
	}

	results := make([]domain.IdentifyResult, 0, len(reqs))
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		gameDate, err := s.gameDate(ctx, repos)
		if err != nil {
			return err
		}
		for _, req := range reqs {
			result, err := s.identifyOne(ctx, repos, req.LootItemID, req.Roll, actor, gameDate)
			if errors.Is(err, ErrAlreadyAttempted) {
				results = append(results, result)
				continue
			}
			if err != nil {
				return err
			}
			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to identify items", slog.Int("count", len(reqs)))
		return nil, err
	}
	return results, nil
}

// identifyOne resolves a single roll inside the caller's transaction. When the
// character already tried today it returns ErrAlreadyAttempted together with a
// result describing the untouched item.
func (s *identificationService) identifyOne(ctx context.Context, repos portsrepo.RepositoryProvider, itemID int64, roll int, actor domain.Actor, gameDate time.Time) (domain.IdentifyResult, error) {
	items, err := repos.LootRepo.LockLootByIDs(ctx, []int64{itemID})
	if err != nil {
		return domain.IdentifyResult{}, err
	}
	if len(items) == 0 {
		return domain.IdentifyResult{}, fmt.Errorf("%w: loot item %d not found", apperrors.ErrNotFound, itemID)
	}
	item := items[0]
	if !item.Unidentified {
		return domain.IdentifyResult{}, fmt.Errorf("%w: item %d is already identified", apperrors.ErrValidation, itemID)
	}

	catalog, mods, err := s.lookupCatalog(ctx, repos, item)
	if err != nil {
		return domain.IdentifyResult{}, err
	}
	dc := domain.RequiredDC(domain.CasterLevel(item.Type, catalog, mods))

	if !actor.IsDM {
		attempted, err := repos.IdentificationRepo.HasAttempted(ctx, item.ID, *actor.CharacterID, gameDate)
		if err != nil {
			return domain.IdentifyResult{}, err
		}
		if attempted {
			return domain.IdentifyResult{Item: item, RequiredDC: dc, Roll: roll, AlreadyAttempted: true},
				fmt.Errorf("item %d: %w", item.ID, ErrAlreadyAttempted)
		}
	}

	effectiveRoll := roll
	var characterID *int64
	if actor.IsDM {
		effectiveRoll = domain.DMRoll
	} else {
		characterID = actor.CharacterID
	}
	success := effectiveRoll >= dc

	if _, err := repos.IdentificationRepo.InsertAttempt(ctx, domain.IdentificationAttempt{
		LootItemID:  item.ID,
		CharacterID: characterID,
		GameDate:    gameDate,
		Roll:        effectiveRoll,
		Success:     success,
		CreatedAt:   s.Now(),
	}); err != nil {
		return domain.IdentifyResult{}, err
	}

	result := domain.IdentifyResult{Success: success, RequiredDC: dc, Roll: effectiveRoll}
	if success {
		item.Unidentified = false
		item.Name = domain.TrueName(catalog, mods, item.Name)
		if item.Cursed && effectiveRoll >= dc+domain.CurseMargin {
			item.Name += domain.CursedSuffix
			result.CursedDetected = true
		}
		item.WhoUpdated = actor.UserID
		item.LastUpdate = s.Now()
		if err := repos.LootRepo.UpdateLoot(ctx, item); err != nil {
			return domain.IdentifyResult{}, err
		}
	}
	result.Item = item
	return result, nil
}

// lookupCatalog loads the item's catalog entry and mods. A dangling catalog
// reference is treated as no catalog entry.
func (s *identificationService) lookupCatalog(ctx context.Context, repos portsrepo.RepositoryProvider, item domain.LootItem) (*domain.CatalogItem, []domain.CatalogMod, error) {
	var catalog *domain.CatalogItem
	if item.ItemID != nil {
		found, err := repos.CatalogRepo.FindCatalogItemByID(ctx, *item.ItemID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			s.LogDebug(ctx, "Catalog item missing for loot", slog.Int64("item_id", *item.ItemID))
		case err != nil:
			return nil, nil, err
		default:
			catalog = found
		}
	}
	var mods []domain.CatalogMod
	if len(item.ModIDs) > 0 {
		found, err := repos.CatalogRepo.FindModsByIDs(ctx, item.ModIDs)
		if err != nil {
			return nil, nil, err
		}
		mods = found
	}
	return catalog, mods, nil
}

func (s *identificationService) gameDate(ctx context.Context, repos portsrepo.RepositoryProvider) (time.Time, error) {
	date, ok, err := repos.CalendarRepo.CurrentGameDate(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return domain.GameDay(s.Now()), nil
	}
	return domain.GameDay(date), nil
}

func requireIdentifier(actor domain.Actor) error {
	if !actor.IsDM && actor.CharacterID == nil {
		return fmt.Errorf("%w: a character is required to identify items", apperrors.ErrValidation)
	}
	return nil
}
