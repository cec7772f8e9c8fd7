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
)

type ledgerService struct {
	BaseService
	store portsrepo.Store
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store portsrepo.Store, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) RecordEntry(ctx context.Context, entry domain.LedgerEntry, actor domain.Actor) (*domain.LedgerEntry, error) {
	if entry.TransactionType == domain.TxBalance {
		return nil, fmt.Errorf("%w: balance entries are only written by balancing", apperrors.ErrValidation)
	}
	coins, err := accounting.SignedCoins(entry.TransactionType, entry.Coins)
	if err != nil {
		return nil, err
	}
	if coins.IsZero() {
		return nil, fmt.Errorf("%w: an entry needs a non-zero amount", apperrors.ErrValidation)
	}

	now := s.Now()
	entry.ID = 0
	entry.Coins = coins
	entry.CreatedBy = actor.UserID
	entry.CreatedAt = now
	if entry.SessionDate.IsZero() {
		entry.SessionDate = domain.GameDay(now)
	}

	var saved domain.LedgerEntry
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var txErr error
		saved, txErr = repos.LedgerRepo.InsertEntry(ctx, entry)
		return txErr
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record ledger entry", slog.String("type", string(entry.TransactionType)))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry recorded",
		slog.Int64("entry_id", saved.ID),
		slog.String("type", string(saved.TransactionType)))
	return &saved, nil
}

func (s *ledgerService) Totals(ctx context.Context) (domain.Coins, error) {
	return s.store.Repositories().LedgerRepo.Totals(ctx)
}

func (s *ledgerService) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, *string, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, nil, fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
	}
	filter.Limit = clampLimit(filter.Limit)
	return s.store.Repositories().LedgerRepo.ListEntries(ctx, filter)
}

// Balance replaces every entry holding silver or copper with one normalised
// Balance entry. It is the only operation that removes ledger rows.
func (s *ledgerService) Balance(ctx context.Context, actor domain.Actor) (*domain.LedgerEntry, error) {
	now := s.Now()
	var (
		balance *domain.LedgerEntry
		removed int
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if err := repos.LedgerRepo.LockLedger(ctx); err != nil {
			return err
		}
		loose, err := repos.LedgerRepo.ListLooseChangeEntries(ctx)
		if err != nil {
			return err
		}
		ids, amount := accounting.PlanBalance(loose)
		if amount == nil {
			return nil
		}
		if err := repos.LedgerRepo.DeleteEntries(ctx, ids); err != nil {
			return err
		}
		// The replacement row keeps the mixed signs of the rows it replaces. It is
		// the only entry written without SignedCoins.
		saved, err := repos.LedgerRepo.InsertEntry(ctx, domain.LedgerEntry{
			SessionDate:     domain.GameDay(now),
			TransactionType: domain.TxBalance,
			Coins:           *amount,
			Notes:           fmt.Sprintf("Balanced %d entries", len(ids)),
			CreatedBy:       actor.UserID,
			CreatedAt:       now,
		})
		if err != nil {
			return err
		}
		balance = &saved
		removed = len(ids)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to balance ledger")
		return nil, err
	}
	if balance == nil {
		s.LogDebug(ctx, "Ledger already balanced")
		return nil, nil
	}

	s.LogInfo(ctx, "Ledger balanced", slog.Int("entries_replaced", removed), slog.Int64("entry_id", balance.ID))
	s.Publish(ctx, domain.EventGoldBalanced, actor, balance)
	return balance, nil
}
