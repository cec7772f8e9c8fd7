package services_test

import (
	"testing"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/loot_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/loot_ledger_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type IdentificationServiceTestSuite struct {
	storeSuite
	service portssvc.IdentificationSvcFacade
}

func (s *IdentificationServiceTestSuite) SetupTest() {
	s.storeSuite.SetupTest()
	s.service = services.NewIdentificationService(s.store, s.options()...)
	s.addCatalogItem(20, "Ring of Protection", "ring", domain.IntPtr(5))
	s.addCatalogItem(21, "Longsword", domain.ItemTypeWeapon, nil)
	s.addMod(1, "+1", 3, 1)
	s.addMod(2, "Flaming", 10, 0)
	s.exec(`INSERT INTO game_calendar (id, game_date) VALUES (1, '4712-03-01')`)
}

func (s *IdentificationServiceTestSuite) ring(cursed bool) domain.LootItem {
	return s.addLoot(domain.LootItem{Name: "Strange Ring", ItemID: domain.Int64Ptr(20), Unidentified: true, Cursed: cursed})
}

func (s *IdentificationServiceTestSuite) TestIdentify_OncePerGameDay() {
	item := s.ring(false)

	result, err := s.service.Identify(s.ctx, item.ID, 19, s.player)
	s.Require().NoError(err)
	s.False(result.Success)
	s.Equal(20, result.RequiredDC)
	s.True(s.loot(item.ID).Unidentified)

	_, err = s.service.Identify(s.ctx, item.ID, 25, s.player)
	s.ErrorIs(err, services.ErrAlreadyAttempted)
	s.ErrorIs(err, apperrors.ErrValidation)

	s.exec(`UPDATE game_calendar SET game_date = '4712-03-02' WHERE id = 1`)
	result, err = s.service.Identify(s.ctx, item.ID, 20, s.player)
	s.Require().NoError(err)
	s.True(result.Success)

	stored := s.loot(item.ID)
	s.False(stored.Unidentified)
	s.Equal("Ring of Protection", stored.Name)
	s.Equal(2, s.count("identify"))
}

func (s *IdentificationServiceTestSuite) TestIdentify_DMAlwaysSucceeds() {
	item := s.ring(false)

	result, err := s.service.Identify(s.ctx, item.ID, 1, s.dm)

	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal(domain.DMRoll, result.Roll)
	s.False(s.loot(item.ID).Unidentified)

	var characterID any
	s.Require().NoError(s.db.QueryRowContext(s.ctx, `SELECT character_id FROM identify`).Scan(&characterID))
	s.Nil(characterID)
}

func (s *IdentificationServiceTestSuite) TestIdentify_CurseNeedsMargin() {
	quiet := s.ring(true)
	loud := s.ring(true)

	result, err := s.service.Identify(s.ctx, quiet.ID, 29, s.player)
	s.Require().NoError(err)
	s.True(result.Success)
	s.False(result.CursedDetected)
	s.Equal("Ring of Protection", s.loot(quiet.ID).Name)

	result, err = s.service.Identify(s.ctx, loud.ID, 30, s.player)
	s.Require().NoError(err)
	s.True(result.CursedDetected)
	s.Equal("Ring of Protection"+domain.CursedSuffix, s.loot(loud.ID).Name)
}

func (s *IdentificationServiceTestSuite) TestIdentify_WeaponUsesModCasterLevel() {
	sword := s.addLoot(domain.LootItem{
		Name:         "Glowing Sword",
		ItemID:       domain.Int64Ptr(21),
		ModIDs:       []int64{2, 1},
		Type:         domain.ItemTypeWeapon,
		Unidentified: true,
	})

	result, err := s.service.Identify(s.ctx, sword.ID, 25, s.player)

	s.Require().NoError(err)
	s.Equal(25, result.RequiredDC)
	s.True(result.Success)
	s.Equal("+1 Flaming Longsword", s.loot(sword.ID).Name)
}

func (s *IdentificationServiceTestSuite) TestIdentify_NoCatalogKeepsName() {
	item := s.addLoot(domain.LootItem{Name: "Odd Stone", Unidentified: true})

	result, err := s.service.Identify(s.ctx, item.ID, 16, s.player)

	s.Require().NoError(err)
	s.Equal(domain.RequiredDC(domain.DefaultCasterLevel), result.RequiredDC)
	s.True(result.Success)
	s.Equal("Odd Stone", s.loot(item.ID).Name)
}

func (s *IdentificationServiceTestSuite) TestIdentify_Rejects() {
	known := s.addLoot(domain.LootItem{Name: "Dagger"})
	unknown := s.ring(false)

	_, err := s.service.Identify(s.ctx, known.ID, 30, s.player)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.Identify(s.ctx, 999, 30, s.player)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.service.Identify(s.ctx, unknown.ID, 30, domain.Actor{UserID: "spectator"})
	s.ErrorIs(err, apperrors.ErrValidation)

	s.Equal(0, s.count("identify"))
}

func (s *IdentificationServiceTestSuite) TestIdentifyMany_ReportsPriorAttempts() {
	tried := s.ring(false)
	fresh := s.ring(false)
	_, err := s.service.Identify(s.ctx, tried.ID, 5, s.player)
	s.Require().NoError(err)

	results, err := s.service.IdentifyMany(s.ctx, []domain.IdentifyRequest{
		{LootItemID: tried.ID, Roll: 30},
		{LootItemID: fresh.ID, Roll: 30},
	}, s.player)

	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.True(results[0].AlreadyAttempted)
	s.False(results[0].Success)
	s.True(results[1].Success)
	s.True(s.loot(tried.ID).Unidentified)
	s.False(s.loot(fresh.ID).Unidentified)
	s.Equal(2, s.count("identify"))
}

func (s *IdentificationServiceTestSuite) TestIdentifyMany_FailsAtomically() {
	fresh := s.ring(false)

	_, err := s.service.IdentifyMany(s.ctx, []domain.IdentifyRequest{
		{LootItemID: fresh.ID, Roll: 30},
		{LootItemID: 999, Roll: 30},
	}, s.player)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.True(s.loot(fresh.ID).Unidentified)
	s.Equal(0, s.count("identify"))
}

func TestIdentificationService(t *testing.T) {
	suite.Run(t, new(IdentificationServiceTestSuite))
}
