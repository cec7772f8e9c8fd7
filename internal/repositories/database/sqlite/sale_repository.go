package sqlite

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
)

type saleRepository struct {
	q dbtx
}

var _ portsrepo.SaleRepositoryFacade = (*saleRepository)(nil)

func (r *saleRepository) InsertSold(ctx context.Context, record domain.SoldRecord) (domain.SoldRecord, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO sold (loot_id, sold_for, sold_on) VALUES (?, ?, ?)`,
		record.LootItemID, record.SoldFor.String(), record.SoldOn)
	if err != nil {
		return domain.SoldRecord{}, wrapErr(err, "failed to insert sold record")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.SoldRecord{}, wrapErr(err, "failed to read sold record id")
	}
	record.ID = id
	return record, nil
}

func (r *saleRepository) ListSold(ctx context.Context, limit, offset int) ([]domain.SoldRecord, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT s.id, s.loot_id, s.sold_for, s.sold_on, l.name
		FROM sold s
		JOIN loot l ON l.id = s.loot_id
		ORDER BY s.sold_on DESC, s.id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, wrapErr(err, "failed to query sold records")
	}
	defer rows.Close()

	records := make([]domain.SoldRecord, 0)
	for rows.Next() {
		var rec domain.SoldRecord
		if err := rows.Scan(&rec.ID, &rec.LootItemID, &rec.SoldFor, &rec.SoldOn, &rec.ItemName); err != nil {
			return nil, wrapErr(err, "failed to scan sold record")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to iterate sold records")
	}
	return records, nil
}
