package sqlite

import (
	"context"
	"database/sql"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
)

type consumableRepository struct {
	q dbtx
}

var _ portsrepo.ConsumableRepositoryFacade = (*consumableRepository)(nil)

func (r *consumableRepository) InsertUse(ctx context.Context, record domain.ConsumableUseRecord) (domain.ConsumableUseRecord, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO consumable_use (loot_id, character_id, used_by, used_at) VALUES (?, ?, ?, ?)`,
		record.LootItemID, nullInt64(record.CharacterID), record.UsedBy, record.UsedAt)
	if err != nil {
		return domain.ConsumableUseRecord{}, wrapErr(err, "failed to insert consumable use")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.ConsumableUseRecord{}, wrapErr(err, "failed to read consumable use id")
	}
	record.ID = id
	return record, nil
}

func (r *consumableRepository) ListUses(ctx context.Context, limit int) ([]domain.ConsumableUseRecord, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT cu.id, cu.loot_id, cu.character_id, cu.used_by, cu.used_at, l.name
		FROM consumable_use cu
		JOIN loot l ON l.id = cu.loot_id
		ORDER BY cu.used_at DESC, cu.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, wrapErr(err, "failed to query consumable uses")
	}
	defer rows.Close()

	records := make([]domain.ConsumableUseRecord, 0)
	for rows.Next() {
		var (
			rec         domain.ConsumableUseRecord
			characterID sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.LootItemID, &characterID, &rec.UsedBy, &rec.UsedAt, &rec.ItemName); err != nil {
			return nil, wrapErr(err, "failed to scan consumable use")
		}
		if characterID.Valid {
			rec.CharacterID = domain.Int64Ptr(characterID.Int64)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to iterate consumable uses")
	}
	return records, nil
}

func (r *consumableRepository) ListWands(ctx context.Context) ([]domain.LootItem, error) {
	loot := lootRepository{q: r.q}
	return loot.queryLoot(ctx, `SELECT `+lootColumns+` FROM loot
		WHERE status = 'Kept Party' AND charges IS NOT NULL
		ORDER BY id`)
}

func (r *consumableRepository) ListPools(ctx context.Context) ([]domain.ConsumablePool, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT l.item_id, i.name, i.type, SUM(l.quantity)
		FROM loot l
		JOIN items i ON i.id = l.item_id
		WHERE l.status = 'Kept Party' AND l.quantity > 0 AND i.type IN ('potion', 'scroll')
		GROUP BY l.item_id, i.name, i.type
		ORDER BY i.name, l.item_id`)
	if err != nil {
		return nil, wrapErr(err, "failed to query consumable pools")
	}
	defer rows.Close()

	pools := make([]domain.ConsumablePool, 0)
	for rows.Next() {
		var p domain.ConsumablePool
		if err := rows.Scan(&p.CatalogItemID, &p.Name, &p.Type, &p.Quantity); err != nil {
			return nil, wrapErr(err, "failed to scan consumable pool")
		}
		pools = append(pools, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to iterate consumable pools")
	}
	return pools, nil
}
