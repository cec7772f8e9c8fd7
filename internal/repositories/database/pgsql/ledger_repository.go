package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/loot_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const ledgerColumns = `id, session_date, transaction_type, platinum, gold, silver, copper, notes, created_by, created_at`

type ledgerRepository struct {
	q dbtx
}

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

func scanEntry(row pgx.Row) (domain.LedgerEntry, error) {
	var (
		e      domain.LedgerEntry
		txType string
	)
	err := row.Scan(&e.ID, &e.SessionDate, &txType, &e.Platinum, &e.Gold, &e.Silver, &e.Copper,
		&e.Notes, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	e.TransactionType = domain.TransactionType(txType)
	return e, nil
}

func (r *ledgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err, "failed to query ledger")
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, wrapErr(err, "failed to scan ledger entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to iterate ledger")
	}
	return entries, nil
}

func (r *ledgerRepository) Totals(ctx context.Context) (domain.Coins, error) {
	var total domain.Coins
	err := r.q.QueryRow(ctx, `SELECT
			COALESCE(SUM(platinum), 0), COALESCE(SUM(gold), 0),
			COALESCE(SUM(silver), 0), COALESCE(SUM(copper), 0)
		FROM gold`).Scan(&total.Platinum, &total.Gold, &total.Silver, &total.Copper)
	if err != nil {
		return domain.Coins{}, wrapErr(err, "failed to sum ledger")
	}
	return total, nil
}

func (r *ledgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, *string, error) {
	query := `SELECT ` + ledgerColumns + ` FROM gold WHERE TRUE`
	args := make([]any, 0, 5)
	if filter.From != nil {
		args = append(args, domain.GameDay(*filter.From))
		query += fmt.Sprintf(` AND session_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, domain.GameDay(*filter.To).AddDate(0, 0, 1))
		query += fmt.Sprintf(` AND session_date < $%d`, len(args))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		sessionDate, id, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, sessionDate, id)
		query += fmt.Sprintf(` AND (session_date, id) < ($%d, $%d)`, len(args)-1, len(args))
	}
	args = append(args, filter.Limit+1)
	query += fmt.Sprintf(` ORDER BY session_date DESC, id DESC LIMIT $%d`, len(args))

	entries, err := r.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.SessionDate, last.ID)
		nextToken = &token
	}
	return entries, nextToken, nil
}

func (r *ledgerRepository) ListLooseChangeEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	return r.queryEntries(ctx, `SELECT `+ledgerColumns+` FROM gold
		WHERE silver <> 0 OR copper <> 0
		ORDER BY id`)
}

// LockLedger blocks other writers to gold until the transaction ends. Plain
// reads still proceed.
func (r *ledgerRepository) LockLedger(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `LOCK TABLE gold IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return wrapErr(err, "failed to lock ledger")
	}
	return nil
}

func (r *ledgerRepository) InsertEntry(ctx context.Context, entry domain.LedgerEntry) (domain.LedgerEntry, error) {
	err := r.q.QueryRow(ctx, `INSERT INTO gold (
			session_date, transaction_type, platinum, gold, silver, copper, notes, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		entry.SessionDate, string(entry.TransactionType),
		entry.Platinum, entry.Gold, entry.Silver, entry.Copper,
		entry.Notes, entry.CreatedBy, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		return domain.LedgerEntry{}, wrapErr(err, "failed to insert ledger entry")
	}
	return entry, nil
}

func (r *ledgerRepository) DeleteEntries(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM gold WHERE id = ANY($1)`, ids)
	if err != nil {
		return wrapErr(err, "failed to delete ledger entries")
	}
	if n := tag.RowsAffected(); n != int64(len(ids)) {
		return fmt.Errorf("%w: expected to delete %d ledger entries, deleted %d",
			apperrors.ErrConflict, len(ids), n)
	}
	return nil
}
