package services_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/SscSPs/loot_ledger_app/internal/core/services"
	"github.com/SscSPs/loot_ledger_app/internal/db"
	"github.com/SscSPs/loot_ledger_app/internal/repositories/database/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// storeSuite runs services against a fresh in-memory SQLite store per test.
type storeSuite struct {
	suite.Suite
	ctx    context.Context
	db     *sql.DB
	store  *sqlite.Store
	now    time.Time
	player domain.Actor
	dm     domain.Actor
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = db.NewTestDB(s.T())
	s.store = sqlite.NewStore(s.db)
	s.now = time.Date(2024, 5, 10, 18, 30, 0, 0, time.UTC)
	s.player = domain.Actor{UserID: "player-1", CharacterID: domain.Int64Ptr(1)}
	s.dm = domain.Actor{UserID: "dm-1", IsDM: true}
	s.addCharacter(1, "Valeros", true)
}

func (s *storeSuite) options() []services.ServiceOption {
	return []services.ServiceOption{services.WithClock(func() time.Time { return s.now })}
}

func (s *storeSuite) exec(query string, args ...any) {
	_, err := s.db.ExecContext(s.ctx, query, args...)
	s.Require().NoError(err)
}

func (s *storeSuite) addCharacter(id int64, name string, active bool) {
	s.exec(`INSERT INTO characters (id, name, active) VALUES (?, ?, ?)`, id, name, active)
}

func (s *storeSuite) addCatalogItem(id int64, name, itemType string, casterLevel *int) {
	var cl any
	if casterLevel != nil {
		cl = *casterLevel
	}
	s.exec(`INSERT INTO items (id, name, type, subtype, value, caster_level) VALUES (?, ?, ?, '', NULL, ?)`,
		id, name, itemType, cl)
}

func (s *storeSuite) addMod(id int64, name string, casterLevel int, plus int) {
	s.exec(`INSERT INTO mods (id, name, caster_level, plus) VALUES (?, ?, ?, ?)`, id, name, casterLevel, plus)
}

// addLoot stores item as given, filling the bookkeeping fields.
func (s *storeSuite) addLoot(item domain.LootItem) domain.LootItem {
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Status == "" {
		item.Status = domain.StatusUnprocessed
	}
	if item.ModIDs == nil {
		item.ModIDs = []int64{}
	}
	item.SessionDate = domain.GameDay(s.now)
	item.LastUpdate = s.now
	item.WhoUpdated = "seed"
	saved, err := s.store.Repositories().LootRepo.CreateLoot(s.ctx, item)
	s.Require().NoError(err)
	return saved
}

func (s *storeSuite) loot(id int64) domain.LootItem {
	item, err := s.store.Repositories().LootRepo.FindLootByID(s.ctx, id)
	s.Require().NoError(err)
	return *item
}

func (s *storeSuite) addEntry(txType domain.TransactionType, coins domain.Coins) domain.LedgerEntry {
	entry, err := s.store.Repositories().LedgerRepo.InsertEntry(s.ctx, domain.LedgerEntry{
		SessionDate:     domain.GameDay(s.now),
		TransactionType: txType,
		Coins:           coins,
		CreatedBy:       "seed",
		CreatedAt:       s.now,
	})
	s.Require().NoError(err)
	return entry
}

func (s *storeSuite) totals() domain.Coins {
	totals, err := s.store.Repositories().LedgerRepo.Totals(s.ctx)
	s.Require().NoError(err)
	return totals
}

func (s *storeSuite) count(table string) int {
	var n int
	s.Require().NoError(s.db.QueryRowContext(s.ctx, `SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func value(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func coins(p, g, sv, c string) domain.Coins {
	return domain.Coins{
		Platinum: decimal.RequireFromString(p),
		Gold:     decimal.RequireFromString(g),
		Silver:   decimal.RequireFromString(sv),
		Copper:   decimal.RequireFromString(c),
	}
}

// assertCoins compares amounts by value, ignoring decimal exponents.
func (s *storeSuite) assertCoins(expected, actual domain.Coins) {
	s.True(expected.Equal(actual), "expected %+v, got %+v", expected, actual)
}
