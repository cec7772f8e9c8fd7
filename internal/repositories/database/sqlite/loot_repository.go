package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const lootColumns = `id, session_date, name, quantity, status, item_id, mod_ids, charges, value,
	unidentified, masterwork, type, size, cursed, notes, who_has, who_updated, last_update`

type lootRepository struct {
	q dbtx
}

var _ portsrepo.LootRepositoryFacade = (*lootRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoot(row rowScanner) (domain.LootItem, error) {
	var (
		item    domain.LootItem
		status  string
		itemID  sql.NullInt64
		modIDs  string
		charges sql.NullInt64
		value   decimal.NullDecimal
		whoHas  sql.NullInt64
	)
	err := row.Scan(&item.ID, &item.SessionDate, &item.Name, &item.Quantity, &status, &itemID, &modIDs,
		&charges, &value, &item.Unidentified, &item.Masterwork, &item.Type, &item.Size, &item.Cursed,
		&item.Notes, &whoHas, &item.WhoUpdated, &item.LastUpdate)
	if err != nil {
		return domain.LootItem{}, err
	}

	item.Status = domain.LootStatus(status)
	if itemID.Valid {
		item.ItemID = domain.Int64Ptr(itemID.Int64)
	}
	if charges.Valid {
		item.Charges = domain.IntPtr(int(charges.Int64))
	}
	if value.Valid {
		v := value.Decimal
		item.Value = &v
	}
	if whoHas.Valid {
		item.WhoHas = domain.Int64Ptr(whoHas.Int64)
	}
	item.ModIDs = []int64{}
	if modIDs != "" {
		if err := json.Unmarshal([]byte(modIDs), &item.ModIDs); err != nil {
			return domain.LootItem{}, fmt.Errorf("decoding mod_ids of loot %d: %w", item.ID, err)
		}
	}
	return item, nil
}

func (r *lootRepository) queryLoot(ctx context.Context, query string, args ...any) ([]domain.LootItem, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
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
	row := r.q.QueryRowContext(ctx, `SELECT `+lootColumns+` FROM loot WHERE id = ?`, id)
	item, err := scanLoot(row)
	if errors.Is(err, sql.ErrNoRows) {
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
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.Statuses)), ", ")
		where = append(where, "status IN ("+placeholders+")")
		for _, s := range filter.Statuses {
			args = append(args, string(s))
		}
	}
	if filter.WhoHas != nil {
		where = append(where, "who_has = ?")
		args = append(args, *filter.WhoHas)
	}

	query := `SELECT ` + lootColumns + ` FROM loot`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY session_date, id"
	return r.queryLoot(ctx, query, args...)
}

// The Lock* reads rely on the transaction's IMMEDIATE write lock; SQLite has no
// row-level locks.

func (r *lootRepository) LockLootByIDs(ctx context.Context, ids []int64) ([]domain.LootItem, error) {
	if len(ids) == 0 {
		return []domain.LootItem{}, nil
	}
	placeholders, args := inClause(ids)
	return r.queryLoot(ctx, `SELECT `+lootColumns+` FROM loot WHERE id IN (`+placeholders+`) ORDER BY id`, args...)
}

func (r *lootRepository) LockLootByStatus(ctx context.Context, status domain.LootStatus) ([]domain.LootItem, error) {
	return r.queryLoot(ctx, `SELECT `+lootColumns+` FROM loot WHERE status = ? ORDER BY id`, string(status))
}

func (r *lootRepository) LockNextConsumable(ctx context.Context, catalogItemID int64) (*domain.LootItem, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+lootColumns+` FROM loot
		WHERE item_id = ? AND quantity > 0 AND status NOT IN ('Trashed', 'Sold')
		ORDER BY id LIMIT 1`, catalogItemID)
	item, err := scanLoot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no uses left of item %d", apperrors.ErrNotFound, catalogItemID)
	}
	if err != nil {
		return nil, wrapErr(err, "failed to lock consumable")
	}
	return &item, nil
}

func (r *lootRepository) CreateLoot(ctx context.Context, item domain.LootItem) (domain.LootItem, error) {
	modIDs, err := encodeModIDs(item.ModIDs)
	if err != nil {
		return domain.LootItem{}, err
	}
	res, err := r.q.ExecContext(ctx, `INSERT INTO loot (
			session_date, name, quantity, status, item_id, mod_ids, charges, value,
			unidentified, masterwork, type, size, cursed, notes, who_has, who_updated, last_update
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.SessionDate, item.Name, item.Quantity, string(item.Status), nullInt64(item.ItemID), modIDs,
		nullInt(item.Charges), nullDecimal(item.Value), item.Unidentified, item.Masterwork, item.Type,
		item.Size, item.Cursed, item.Notes, nullInt64(item.WhoHas), item.WhoUpdated, item.LastUpdate)
	if err != nil {
		return domain.LootItem{}, wrapErr(err, "failed to insert loot")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.LootItem{}, wrapErr(err, "failed to read loot id")
	}
	item.ID = id
	return item, nil
}

func (r *lootRepository) UpdateLoot(ctx context.Context, item domain.LootItem) error {
	modIDs, err := encodeModIDs(item.ModIDs)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, `UPDATE loot SET
			session_date = ?, name = ?, quantity = ?, status = ?, item_id = ?, mod_ids = ?, charges = ?,
			value = ?, unidentified = ?, masterwork = ?, type = ?, size = ?, cursed = ?, notes = ?,
			who_has = ?, who_updated = ?, last_update = ?
		WHERE id = ?`,
		item.SessionDate, item.Name, item.Quantity, string(item.Status), nullInt64(item.ItemID), modIDs,
		nullInt(item.Charges), nullDecimal(item.Value), item.Unidentified, item.Masterwork, item.Type,
		item.Size, item.Cursed, item.Notes, nullInt64(item.WhoHas), item.WhoUpdated, item.LastUpdate,
		item.ID)
	if err != nil {
		return wrapErr(err, "failed to update loot")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(err, "failed to read affected rows")
	}
	if n == 0 {
		return fmt.Errorf("%w: loot item %d not found", apperrors.ErrNotFound, item.ID)
	}
	return nil
}

func encodeModIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encoding mod_ids: %w", err)
	}
	return string(b), nil
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullDecimal(v *decimal.Decimal) any {
	if v == nil {
		return nil
	}
	return v.String()
}
