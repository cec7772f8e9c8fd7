package services_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type ConsumableServiceTestSuite struct {
	storeSuite
	service portssvc.ConsumableSvcFacade
}

func (s *ConsumableServiceTestSuite) SetupTest() {
	s.storeSuite.SetupTest()
	s.service = services.NewConsumableService(s.store, s.options()...)
	s.addCatalogItem(10, "Potion of Cure Light Wounds", "potion", nil)
	s.addCatalogItem(11, "Scroll of Bless", "scroll", nil)
}

func (s *ConsumableServiceTestSuite) TestUseCharge() {
	wand := s.addLoot(domain.LootItem{Name: "Wand of Light", Status: domain.StatusKeptParty, Charges: domain.IntPtr(2)})

	used, err := s.service.UseConsumable(s.ctx, domain.UseConsumableRequest{Mode: domain.ConsumeCharges, LootItemID: wand.ID}, s.player)
	s.Require().NoError(err)
	s.Equal(1, *used.Charges)
	s.Equal(domain.StatusKeptParty, used.Status)

	used, err = s.service.UseConsumable(s.ctx, domain.UseConsumableRequest{Mode: domain.ConsumeCharges, LootItemID: wand.ID}, s.player)
	s.Require().NoError(err)
	s.Equal(0, *used.Charges)
	s.Equal(domain.StatusTrashed, s.loot(wand.ID).Status)

	_, err = s.service.UseConsumable(s.ctx, domain.UseConsumableRequest{Mode: domain.ConsumeCharges, LootItemID: wand.ID}, s.player)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Equal(2, s.count("consumable_use"))
}

func (s *ConsumableServiceTestSuite) TestUseCharge_NoChargesTracked() {
	item := s.addLoot(domain.LootItem{Name: "Staff", Status: domain.StatusKeptParty})

	_, err := s.service.UseConsumable(s.ctx, domain.UseConsumableRequest{Mode: domain.ConsumeCharges, LootItemID: item.ID}, s.player)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Equal(0, s.count("consumable_use"))
}

func (s *ConsumableServiceTestSuite) TestUseCharge_SoldWandHasNoUses() {
	wand := s.addLoot(domain.LootItem{Name: "Wand of Light", Status: domain.StatusSold, Charges: domain.IntPtr(3)})

	_, err := s.service.UseConsumable(s.ctx, domain.UseConsumableRequest{Mode: domain.ConsumeCharges, LootItemID: wand.ID}, s.player)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Equal(3, *s.loot(wand.ID).Charges)
	s.Equal(0, s.count("consumable_use"))
}

func (s *ConsumableServiceTestSuite) TestUseQuantity_DrainsLowestIDFirst() {
	first := s.addLoot(domain.LootItem{Name: "Potion of CLW", ItemID: domain.Int64Ptr(10), Quantity: 1, Status: domain.StatusKeptParty})
	second := s.addLoot(domain.LootItem{Name: "Potion of CLW", ItemID: domain.Int64Ptr(10), Quantity: 2, Status: domain.StatusKeptParty})
	s.addLoot(domain.LootItem{Name: "Potion of CLW", ItemID: domain.Int64Ptr(10), Quantity: 5, Status: domain.StatusSold})

	req := domain.UseConsumableRequest{Mode: domain.ConsumeQuantity, CatalogItemID: 10}
	used, err := s.service.UseConsumable(s.ctx, req, s.player)
	s.Require().NoError(err)
	s.Equal(first.ID, used.ID)
	s.Equal(domain.StatusTrashed, s.loot(first.ID).Status)

	used, err = s.service.UseConsumable(s.ctx, req, s.player)
	s.Require().NoError(err)
	s.Equal(second.ID, used.ID)
	s.Equal(1, s.loot(second.ID).Quantity)
}

func (s *ConsumableServiceTestSuite) TestUseQuantity_LastUnitExactlyOnce() {
	s.addLoot(domain.LootItem{Name: "Scroll of Bless", ItemID: domain.Int64Ptr(11), Quantity: 3, Status: domain.StatusKeptParty})

	const users = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		notFound int
	)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.UseConsumable(s.ctx, domain.UseConsumableRequest{Mode: domain.ConsumeQuantity, CatalogItemID: 11}, s.player)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperrors.ErrNotFound):
				notFound++
			}
		}()
	}
	wg.Wait()

	s.Equal(3, ok)
	s.Equal(users-3, notFound)
	s.Equal(3, s.count("consumable_use"))
}

func (s *ConsumableServiceTestSuite) TestUseConsumable_Validation() {
	_, err := s.service.UseConsumable(s.ctx, domain.UseConsumableRequest{Mode: domain.ConsumeCharges}, s.player)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.UseConsumable(s.ctx, domain.UseConsumableRequest{Mode: "sip", LootItemID: 1}, s.player)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ConsumableServiceTestSuite) TestSetCharges() {
	wand := s.addLoot(domain.LootItem{Name: "Wand of Light", Status: domain.StatusKeptParty, Charges: domain.IntPtr(1)})
	pending := s.addLoot(domain.LootItem{Name: "Wand of Fear", Status: domain.StatusPendingSale, Charges: domain.IntPtr(3)})

	updated, err := s.service.SetCharges(s.ctx, wand.ID, 50, s.player)
	s.Require().NoError(err)
	s.Equal(50, *updated.Charges)
	s.Equal(50, *s.loot(wand.ID).Charges)

	_, err = s.service.SetCharges(s.ctx, wand.ID, 51, s.player)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.SetCharges(s.ctx, pending.ID, 10, s.player)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ConsumableServiceTestSuite) TestListConsumablesAndHistory() {
	wand := s.addLoot(domain.LootItem{Name: "Wand of Light", Status: domain.StatusKeptParty, Charges: domain.IntPtr(5)})
	s.addLoot(domain.LootItem{Name: "Potion of CLW", ItemID: domain.Int64Ptr(10), Quantity: 2, Status: domain.StatusKeptParty})
	s.addLoot(domain.LootItem{Name: "Potion of CLW", ItemID: domain.Int64Ptr(10), Quantity: 3, Status: domain.StatusKeptParty})

	summary, err := s.service.ListConsumables(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summary.Wands, 1)
	s.Equal(wand.ID, summary.Wands[0].ID)
	s.Require().Len(summary.Pools, 1)
	s.Equal(5, summary.Pools[0].Quantity)
	s.Equal(int64(10), summary.Pools[0].CatalogItemID)

	_, err = s.service.UseConsumable(s.ctx, domain.UseConsumableRequest{Mode: domain.ConsumeCharges, LootItemID: wand.ID}, s.player)
	s.Require().NoError(err)

	history, err := s.service.UseHistory(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal("Wand of Light", history[0].ItemName)
	s.Equal(int64(1), *history[0].CharacterID)
}

func TestConsumableService(t *testing.T) {
	suite.Run(t, new(ConsumableServiceTestSuite))
}
