package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/loot_ledger_app/internal/db"
	"github.com/SscSPs/loot_ledger_app/internal/repositories/database/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	return sqlite.NewStore(db.NewTestDB(t))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		_, err := repos.LedgerRepo.InsertEntry(ctx, domain.LedgerEntry{
			SessionDate:     now,
			TransactionType: domain.TxDeposit,
			Coins:           domain.GoldCoins(decimal.NewFromInt(5)),
			CreatedAt:       now,
		})
		require.NoError(t, err)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	totals, err := store.Repositories().LedgerRepo.Totals(ctx)
	require.NoError(t, err)
	assert.True(t, totals.IsZero())
}

func TestLootRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	v := decimal.RequireFromString("12.34")
	repo := store.Repositories().LootRepo

	saved, err := repo.CreateLoot(ctx, domain.LootItem{
		SessionDate:  now,
		Name:         "Shortbow",
		Quantity:     1,
		Status:       domain.StatusKeptParty,
		ModIDs:       []int64{3, 1},
		Charges:      domain.IntPtr(7),
		Value:        &v,
		Unidentified: true,
		Masterwork:   true,
		Type:         domain.ItemTypeWeapon,
		Size:         "Small",
		Notes:        "from the goblin chief",
		WhoUpdated:   "u1",
		LastUpdate:   now,
	})
	require.NoError(t, err)

	got, err := repo.FindLootByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, got.ModIDs)
	assert.Equal(t, 7, *got.Charges)
	assert.True(t, got.Value.Equal(v))
	assert.Nil(t, got.ItemID)
	assert.Nil(t, got.WhoHas)
	assert.True(t, got.Unidentified)
	assert.True(t, got.Masterwork)
	assert.Equal(t, "Small", got.Size)
	assert.True(t, got.SessionDate.Equal(now))

	_, err = repo.FindLootByID(ctx, saved.ID+1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = repo.UpdateLoot(ctx, domain.LootItem{ID: saved.ID + 1, Name: "ghost", Status: domain.StatusSold, SessionDate: now, LastUpdate: now})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteEntries_ConflictWhenRowsMissing(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	err := store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		entry, err := repos.LedgerRepo.InsertEntry(ctx, domain.LedgerEntry{
			SessionDate:     now,
			TransactionType: domain.TxDeposit,
			Coins:           domain.Coins{Silver: decimal.NewFromInt(3)},
			CreatedAt:       now,
		})
		require.NoError(t, err)
		return repos.LedgerRepo.DeleteEntries(ctx, []int64{entry.ID, entry.ID + 100})
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	entries, err := store.Repositories().LedgerRepo.ListLooseChangeEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLockNextConsumable_SkipsSpentAndTerminal(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)
	_, err := database.ExecContext(ctx, `INSERT INTO items (id, name, type) VALUES (10, 'Potion', 'potion')`)
	require.NoError(t, err)
	store := sqlite.NewStore(database)
	repo := store.Repositories().LootRepo

	base := domain.LootItem{SessionDate: now, Name: "Potion", ItemID: domain.Int64Ptr(10), LastUpdate: now}
	for _, tc := range []struct {
		quantity int
		status   domain.LootStatus
	}{
		{0, domain.StatusKeptParty},
		{2, domain.StatusSold},
		{3, domain.StatusKeptParty},
	} {
		item := base
		item.Quantity = tc.quantity
		item.Status = tc.status
		_, err := repo.CreateLoot(ctx, item)
		require.NoError(t, err)
	}

	got, err := repo.LockNextConsumable(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)

	_, err = repo.LockNextConsumable(ctx, 11)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
