package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const lootColumns = `id, session_date, name, quantity, status, item_id, mod_ids, charges, value,
	unidentified, masterwork, type, size, cursed, notes, who_has, who_updated, last_update`

type lootRepository struct {
	q dbtx
}

var _ portsrepo.LootRepositoryFacade = (*lootRepository)(nil)

func scanLoot(row pgx.Row) (domain.LootItem, error) {
	var (
		item    domain.LootItem
		status  string
		charges *int32
		value   decimal.NullDecimal
	)
	err := row.Scan(&item.ID, &item.SessionDate, &item.Name, &item.Quantity, &status, &item.ItemID, &item.ModIDs,
		&charges, &value, &item.Unidentified, &item.Masterwork, &item.Type, &item.Size, &item.Cursed,
		&item.Notes, &item.WhoHas, &item.WhoUpdated, &item.LastUpdate)
	if err != nil {
		return domain.LootItem{}, err
	}

	item.Status = domain.LootStatus(status)
	if charges != nil {
		item.Charges = domain.IntPtr(int(*charges))
	}
	if value.Valid {
		v := value.Decimal
		item.Value = &v
	}
	if item.ModIDs == nil {
		item.ModIDs = []int64{}
	}
	return item, nil
}

func (r *lootRepository) queryLoot(ctx context.Context, query string, args ...any) ([]domain.LootItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, "failed to query loot")
	}
	defer rows.Close()

	items := make([]domain.LootItem, 0)
	for rows.Next() {
		item, err := scanLoot(rows)
		if err != nil {
			return nil, wrapErr(err, "failed to scan loot")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to iterate loot")
	}
	return items, nil
}

func (r *lootRepository) FindLootByID(ctx context.Context, id int64) (*domain.LootItem, error) {
	item, err := scanLoot(r.q.QueryRow(ctx, `SELECT `+lootColumns+` FROM loot WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: loot item %d not found", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, wrapErr(err, "failed to find loot")
	}
	return &item, nil
}

func (r *lootRepository) ListLoot(ctx context.Context, filter domain.LootFilter) ([]domain.LootItem, error) {
	var (
		where []string
		args  []any
	)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.WhoHas != nil {
		args = append(args, *filter.WhoHas)
		where = append(where, fmt.Sprintf("who_has = $%d", len(args)))
	}

	query := `SELECT ` + lootColumns + ` FROM loot`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY session_date, id"
	return r.queryLoot(ctx, query, args...)
}

// Locks are taken in ascending id order so concurrent batches cannot deadlock.

func (r *lootRepository) LockLootByIDs(ctx context.Context, ids []int64) ([]domain.LootItem, error) {
	if len(ids) == 0 {
		return []domain.LootItem{}, nil
	}
	return r.queryLoot(ctx, `SELECT `+lootColumns+` FROM loot WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
}

func (r *lootRepository) LockLootByStatus(ctx context.Context, status domain.LootStatus) ([]domain.LootItem, error) {
	// Postgres re-checks the WHERE clause on rows it had to wait for, so items
	// sold by a concurrent batch drop out here.
	return r.queryLoot(ctx, `SELECT `+lootColumns+` FROM loot WHERE status = $1 ORDER BY id FOR UPDATE`, string(status))
}

func (r *lootRepository) LockNextConsumable(ctx context.Context, catalogItemID int64) (*domain.LootItem, error) {
	lock := func() (*domain.LootItem, error) {
		item, err := scanLoot(r.q.QueryRow(ctx, `SELECT `+lootColumns+` FROM loot
			WHERE item_id = $1 AND quantity > 0 AND status NOT IN ('Trashed', 'Sold')
			ORDER BY id LIMIT 1 FOR UPDATE`, catalogItemID))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, wrapErr(err, "failed to lock consumable")
		}
		if item.Quantity <= 0 || item.Status.IsTerminal() {
			return nil, nil
		}
		return &item, nil
	}
	remaining := func() (bool, error) {
		var exists bool
		err := r.q.QueryRow(ctx, `SELECT EXISTS (
				SELECT 1 FROM loot WHERE item_id = $1 AND quantity > 0 AND status NOT IN ('Trashed', 'Sold')
			)`, catalogItemID).Scan(&exists)
		if err != nil {
			return false, wrapErr(err, "failed to check consumables")
		}
		return exists, nil
	}
	return lockFirstCandidate(catalogItemID, lock, remaining)
}

// lockConsumableAttempts bounds re-reads after a competing transaction drained
// the row this one was waiting on.
const lockConsumableAttempts = 3

// lockFirstCandidate runs lock until it returns a row. Under READ COMMITTED a
// "LIMIT 1 FOR UPDATE" that waited on a row which no longer qualifies returns
// nothing, even when later rows do; each retry is a new statement and sees them.
func lockFirstCandidate(catalogItemID int64, lock func() (*domain.LootItem, error), remaining func() (bool, error)) (*domain.LootItem, error) {
	for attempt := 0; attempt < lockConsumableAttempts; attempt++ {
		item, err := lock()
		if err != nil {
			return nil, err
		}
		if item != nil {
			return item, nil
		}
		more, err := remaining()
		if err != nil {
			return nil, err
		}
		if !more {
			return nil, fmt.Errorf("%w: no uses left of item %d", apperrors.ErrNotFound, catalogItemID)
		}
	}
	return nil, fmt.Errorf("%w: consumable %d is being used concurrently, retry", apperrors.ErrConflict, catalogItemID)
}

func (r *lootRepository) CreateLoot(ctx context.Context, item domain.LootItem) (domain.LootItem, error) {
	err := r.q.QueryRow(ctx, `INSERT INTO loot (
			session_date, name, quantity, status, item_id, mod_ids, charges, value,
			unidentified, masterwork, type, size, cursed, notes, who_has, who_updated, last_update
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		item.SessionDate, item.Name, item.Quantity, string(item.Status), item.ItemID, modIDs(item.ModIDs),
		item.Charges, nullDecimal(item.Value), item.Unidentified, item.Masterwork, item.Type,
		item.Size, item.Cursed, item.Notes, item.WhoHas, item.WhoUpdated, item.LastUpdate).Scan(&item.ID)
	if err != nil {
		return domain.LootItem{}, wrapErr(err, "failed to insert loot")
	}
	return item, nil
}

func (r *lootRepository) UpdateLoot(ctx context.Context, item domain.LootItem) error {
	tag, err := r.q.Exec(ctx, `UPDATE loot SET
			session_date = $1, name = $2, quantity = $3, status = $4, item_id = $5, mod_ids = $6, charges = $7,
			value = $8, unidentified = $9, masterwork = $10, type = $11, size = $12, cursed = $13, notes = $14,
			who_has = $15, who_updated = $16, last_update = $17
		WHERE id = $18`,
		item.SessionDate, item.Name, item.Quantity, string(item.Status), item.ItemID, modIDs(item.ModIDs),
		item.Charges, nullDecimal(item.Value), item.Unidentified, item.Masterwork, item.Type,
		item.Size, item.Cursed, item.Notes, item.WhoHas, item.WhoUpdated, item.LastUpdate,
		item.ID)
	if err != nil {
		return wrapErr(err, "failed to update loot")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loot item %d not found", apperrors.ErrNotFound, item.ID)
	}
	return nil
}

// modIDs never returns nil; mod_ids is NOT NULL.
func modIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}
