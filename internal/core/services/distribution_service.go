package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type distributionService struct {
	BaseService
	store portsrepo.Store
}

// NewDistributionService creates a new DistributionService.
func NewDistributionService(store portsrepo.Store, options ...ServiceOption) portssvc.DistributionSvcFacade {
	return &distributionService{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.DistributionSvcFacade = (*distributionService)(nil)

type planFunc func(totals domain.Coins, characters int) (domain.DistributionPlan, error)

func (s *distributionService) DistributeAll(ctx context.Context, actor domain.Actor) (*domain.DistributionResult, error) {
	return s.distribute(ctx, domain.PolicyEqualSplit, actor, accounting.EqualShares)
}

func (s *distributionService) DistributePlusPartyLoot(ctx context.Context, actor domain.Actor) (*domain.DistributionResult, error) {
	return s.distribute(ctx, domain.PolicyPlusPartyLoot, actor, accounting.PlusPartyLootShares)
}

func (s *distributionService) DefinePartyLootDistribute(ctx context.Context, amount decimal.Decimal, actor domain.Actor) (*domain.DistributionResult, error) {
	return s.distribute(ctx, domain.PolicyDefinePartyLoot, actor, func(totals domain.Coins, characters int) (domain.DistributionPlan, error) {
		return accounting.DefinedPartyLootShares(totals.Gold, amount, characters)
	})
}

func (s *distributionService) DefineCharacterDistribute(ctx context.Context, amount decimal.Decimal, actor domain.Actor) (*domain.DistributionResult, error) {
	return s.distribute(ctx, domain.PolicyDefineCharacter, actor, func(totals domain.Coins, characters int) (domain.DistributionPlan, error) {
		return accounting.DefinedCharacterShares(totals.Gold, amount, characters)
	})
}

// distribute locks the ledger, plans against fresh totals and writes one
// Withdrawal per active character, preceded by the conversion pair when the plan has one.
func (s *distributionService) distribute(ctx context.Context, policy domain.DistributionPolicy, actor domain.Actor, plan planFunc) (*domain.DistributionResult, error) {
	now := s.Now()
	var result domain.DistributionResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if err := repos.LedgerRepo.LockLedger(ctx); err != nil {
			return err
		}
		characters, err := repos.CharacterRepo.ListActiveCharacters(ctx)
		if err != nil {
			return err
		}
		totals, err := repos.LedgerRepo.Totals(ctx)
		if err != nil {
			return err
		}
		p, err := plan(totals, len(characters))
		if err != nil {
			return err
		}

		result = domain.DistributionResult{
			Policy:     policy,
			Share:      p.Share,
			Recipients: characters,
			Entries:    make([]domain.LedgerEntry, 0, len(characters)+2),
		}
		base := domain.LedgerEntry{
			SessionDate: domain.GameDay(now),
			CreatedBy:   actor.UserID,
			CreatedAt:   now,
		}

		if p.Conversion != nil {
			exchanged, err := conversionEntries(base, *p.Conversion)
			if err != nil {
				return err
			}
			for _, entry := range exchanged {
				saved, err := repos.LedgerRepo.InsertEntry(ctx, entry)
				if err != nil {
					return err
				}
				result.Entries = append(result.Entries, saved)
			}
		}

		withdrawal, err := accounting.SignedCoins(domain.TxWithdrawal, p.Share)
		if err != nil {
			return err
		}
		for _, c := range characters {
			entry := base
			entry.TransactionType = domain.TxWithdrawal
			entry.Coins = withdrawal
			entry.Notes = fmt.Sprintf("Distribution to %s", c.Name)
			saved, err := repos.LedgerRepo.InsertEntry(ctx, entry)
			if err != nil {
				return err
			}
			result.Entries = append(result.Entries, saved)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to distribute funds", slog.String("policy", string(policy)))
		return nil, err
	}

	s.LogInfo(ctx, "Funds distributed",
		slog.String("policy", string(policy)),
		slog.Int("recipients", len(result.Recipients)),
		slog.String("share_gold", result.Share.Gold.String()))
	s.Publish(ctx, domain.EventGoldDistributed, actor, result)
	return &result, nil
}

// conversionEntries exchanges non-gold coins into gold: a Withdrawal of the
// coins followed by a Deposit of their gold value.
func conversionEntries(base domain.LedgerEntry, coins domain.Coins) ([]domain.LedgerEntry, error) {
	out, err := accounting.SignedCoins(domain.TxWithdrawal, coins)
	if err != nil {
		return nil, err
	}
	in, err := accounting.SignedCoins(domain.TxDeposit, domain.GoldCoins(coins.GoldValue()))
	if err != nil {
		return nil, err
	}

	withdrawal := base
	withdrawal.TransactionType = domain.TxWithdrawal
	withdrawal.Coins = out
	withdrawal.Notes = domain.PartyLootExchangeNote

	deposit := base
	deposit.TransactionType = domain.TxDeposit
	deposit.Coins = in
	deposit.Notes = domain.PartyLootNote
	return []domain.LedgerEntry{withdrawal, deposit}, nil
}
