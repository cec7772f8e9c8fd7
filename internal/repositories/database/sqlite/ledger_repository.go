package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/loot_ledger_app/internal/utils/pagination"
)

const ledgerColumns = `id, session_date, transaction_type, platinum, gold, silver, copper, notes, created_by, created_at`

type ledgerRepository struct {
	q dbtx
}

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

func scanEntry(row rowScanner) (domain.LedgerEntry, error) {
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
	rows, err := r.q.QueryContext(ctx, query, args...)
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

// Totals sums in Go: the columns hold exact decimal strings that SQLite's
// SUM would turn into floats.
func (r *ledgerRepository) Totals(ctx context.Context) (domain.Coins, error) {
	entries, err := r.queryEntries(ctx, `SELECT `+ledgerColumns+` FROM gold`)
	if err != nil {
		return domain.Coins{}, err
	}
	total := domain.Coins{}
	for _, e := range entries {
		total = total.Add(e.Coins)
	}
	return total, nil
}

func (r *ledgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, *string, error) {
	query := `SELECT ` + ledgerColumns + ` FROM gold WHERE 1 = 1`
	args := make([]any, 0, 6)
	if filter.From != nil {
		query += ` AND session_date >= ?`
		args = append(args, domain.GameDay(*filter.From))
	}
	if filter.To != nil {
		query += ` AND session_date < ?`
		args = append(args, domain.GameDay(*filter.To).AddDate(0, 0, 1))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		sessionDate, id, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (session_date < ? OR (session_date = ? AND id < ?))`
		args = append(args, sessionDate, sessionDate, id)
	}
	query += ` ORDER BY session_date DESC, id DESC LIMIT ?`
	args = append(args, filter.Limit+1)

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
		WHERE CAST(silver AS REAL) <> 0 OR CAST(copper AS REAL) <> 0
		ORDER BY id`)
}

// LockLedger is a no-op: the IMMEDIATE transaction already excludes other writers.
func (r *ledgerRepository) LockLedger(ctx context.Context) error {
	return nil
}

func (r *ledgerRepository) InsertEntry(ctx context.Context, entry domain.LedgerEntry) (domain.LedgerEntry, error) {
	res, err := r.q.ExecContext(ctx, `INSERT INTO gold (
			session_date, transaction_type, platinum, gold, silver, copper, notes, created_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionDate, string(entry.TransactionType),
		entry.Platinum.String(), entry.Gold.String(), entry.Silver.String(), entry.Copper.String(),
		entry.Notes, entry.CreatedBy, entry.CreatedAt)
	if err != nil {
		return domain.LedgerEntry{}, wrapErr(err, "failed to insert ledger entry")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.LedgerEntry{}, wrapErr(err, "failed to read ledger entry id")
	}
	entry.ID = id
	return entry, nil
}

func (r *ledgerRepository) DeleteEntries(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders, args := inClause(ids)
	res, err := r.q.ExecContext(ctx, `DELETE FROM gold WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return wrapErr(err, "failed to delete ledger entries")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(err, "failed to read affected rows")
	}
	if n != int64(len(ids)) {
		return fmt.Errorf("%w: expected to delete %d ledger entries, deleted %d",
			apperrors.ErrConflict, len(ids), n)
	}
	return nil
}
