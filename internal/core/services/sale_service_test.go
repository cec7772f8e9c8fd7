package services_test

import (
	"testing"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SaleServiceTestSuite struct {
	storeSuite
	service portssvc.SaleSvcFacade
}

func (s *SaleServiceTestSuite) SetupTest() {
	s.storeSuite.SetupTest()
	s.service = services.NewSaleService(s.store, s.options()...)
}

func (s *SaleServiceTestSuite) pending(name, v string) domain.LootItem {
	return s.addLoot(domain.LootItem{Name: name, Status: domain.StatusPendingSale, Value: value(v)})
}

func (s *SaleServiceTestSuite) TestPendingSaleSummary() {
	s.pending("Longsword", "15")
	s.addLoot(domain.LootItem{Name: "Silk", Status: domain.StatusPendingSale, Value: value("20"), Type: domain.ItemTypeTradeGood})
	s.addLoot(domain.LootItem{Name: "Odd Ring", Status: domain.StatusPendingSale, Value: value("100"), Unidentified: true})

	summary, err := s.service.PendingSaleSummary(s.ctx)

	s.Require().NoError(err)
	s.Len(summary.Items, 3)
	s.Equal(2, summary.ValidCount)
	s.True(summary.Total.Equal(decimal.RequireFromString("27.5")))
}

func (s *SaleServiceTestSuite) TestSellAll() {
	sword := s.pending("Longsword", "15.25")
	silk := s.addLoot(domain.LootItem{Name: "Silk", Status: domain.StatusPendingSale, Value: value("20"), Type: domain.ItemTypeTradeGood})
	ring := s.addLoot(domain.LootItem{Name: "Odd Ring", Status: domain.StatusPendingSale, Value: value("100"), Unidentified: true})
	junk := s.addLoot(domain.LootItem{Name: "Broken Lute", Status: domain.StatusPendingSale})

	result, err := s.service.SellAll(s.ctx, s.player)

	s.Require().NoError(err)
	s.Equal(2, result.SoldCount)
	s.True(result.SoldTotal.Equal(decimal.RequireFromString("27.625")))
	s.Equal(2, result.SkippedCount)
	s.ElementsMatch([]domain.SkippedItem{
		{LootItemID: ring.ID, Name: "Odd Ring", Reason: domain.SkipUnidentified},
		{LootItemID: junk.ID, Name: "Broken Lute", Reason: domain.SkipNoValue},
	}, result.Skipped)

	s.Equal(domain.StatusSold, s.loot(sword.ID).Status)
	s.Equal(domain.StatusSold, s.loot(silk.ID).Status)
	s.Equal(domain.StatusPendingSale, s.loot(ring.ID).Status)
	s.Equal(2, s.count("sold"))

	s.Equal(1, s.count("gold"))
	s.Require().NotNil(result.LedgerEntry)
	s.Equal(domain.TxSale, result.LedgerEntry.TransactionType)
	s.assertCoins(coins("0", "27", "6", "2"), s.totals())
}

func (s *SaleServiceTestSuite) TestSellAll_NothingPending() {
	_, err := s.service.SellAll(s.ctx, s.player)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Equal(0, s.count("gold"))
}

func (s *SaleServiceTestSuite) TestSellAll_OnlyInvalidItems() {
	s.addLoot(domain.LootItem{Name: "Odd Ring", Status: domain.StatusPendingSale, Value: value("100"), Unidentified: true})

	_, err := s.service.SellAll(s.ctx, s.player)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Equal(0, s.count("sold"))
	s.Equal(0, s.count("gold"))
}

func (s *SaleServiceTestSuite) TestSellUpTo_StopsAtFirstItemOverCap() {
	a := s.pending("Axe", "20")    // sells for 10
	b := s.pending("Helm", "30")   // 15
	c := s.pending("Buckler", "2") // 1

	result, err := s.service.SellUpTo(s.ctx, decimal.NewFromInt(20), s.player)

	s.Require().NoError(err)
	s.Equal(1, result.SoldCount)
	s.Equal(2, result.KeptCount)
	s.True(result.SoldTotal.Equal(decimal.NewFromInt(10)))
	s.Equal(domain.StatusSold, s.loot(a.ID).Status)
	s.Equal(domain.StatusPendingSale, s.loot(b.ID).Status)
	s.Equal(domain.StatusPendingSale, s.loot(c.ID).Status)
}

func (s *SaleServiceTestSuite) TestSellUpTo_Rejects() {
	_, err := s.service.SellUpTo(s.ctx, decimal.Zero, s.player)
	s.ErrorIs(err, apperrors.ErrValidation)

	s.pending("Helm", "30")
	_, err = s.service.SellUpTo(s.ctx, decimal.NewFromInt(5), s.player)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SaleServiceTestSuite) TestSellSelected_ReportsSkips() {
	a := s.pending("Axe", "20")
	sold := s.addLoot(domain.LootItem{Name: "Gem", Status: domain.StatusSold, Value: value("50")})
	kept := s.addLoot(domain.LootItem{Name: "Mirror", Status: domain.StatusKeptParty, Value: value("8")})

	result, err := s.service.SellSelected(s.ctx, []int64{a.ID, sold.ID, kept.ID, 999, a.ID}, s.player)

	s.Require().NoError(err)
	s.Equal(2, result.SoldCount)
	s.True(result.SoldTotal.Equal(decimal.NewFromInt(14)))
	s.ElementsMatch([]domain.SkippedItem{
		{LootItemID: sold.ID, Name: "Gem", Reason: domain.SkipAlreadySold},
		{LootItemID: 999, Reason: domain.SkipNotFound},
	}, result.Skipped)
	s.Equal(domain.StatusSold, s.loot(kept.ID).Status)
	s.Equal(2, s.count("sold"))
}

func (s *SaleServiceTestSuite) TestSellAllExcept() {
	a := s.pending("Axe", "20")
	b := s.pending("Helm", "30")

	result, err := s.service.SellAllExcept(s.ctx, []int64{b.ID}, s.player)

	s.Require().NoError(err)
	s.Equal(1, result.SoldCount)
	s.Equal(1, result.KeptCount)
	s.Equal(domain.StatusSold, s.loot(a.ID).Status)
	s.Equal(domain.StatusPendingSale, s.loot(b.ID).Status)

	result, err = s.service.SellAllExcept(s.ctx, nil, s.player)
	s.Require().NoError(err)
	s.Equal(1, result.SoldCount)
	s.Equal(2, s.count("gold"))
}

func (s *SaleServiceTestSuite) TestSaleHistory() {
	s.pending("Axe", "20")
	_, err := s.service.SellAll(s.ctx, s.player)
	s.Require().NoError(err)

	history, err := s.service.SaleHistory(s.ctx, 10, 0)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal("Axe", history[0].ItemName)
	s.True(history[0].SoldFor.Equal(decimal.NewFromInt(10)))

	_, err = s.service.SaleHistory(s.ctx, 10, -1)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestSaleService(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
