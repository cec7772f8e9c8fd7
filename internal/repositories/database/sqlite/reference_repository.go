package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type characterRepository struct {
	q dbtx
}

var _ portsrepo.CharacterReader = (*characterRepository)(nil)

func (r *characterRepository) FindCharacterByID(ctx context.Context, id int64) (*domain.Character, error) {
	var c domain.Character
	err := r.q.QueryRowContext(ctx, `SELECT id, name, active FROM characters WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: character %d not found", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, wrapErr(err, "failed to find character")
	}
	return &c, nil
}

func (r *characterRepository) ListActiveCharacters(ctx context.Context) ([]domain.Character, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, active FROM characters WHERE active = 1 ORDER BY id`)
	if err != nil {
		return nil, wrapErr(err, "failed to query characters")
	}
	defer rows.Close()

	characters := make([]domain.Character, 0)
	for rows.Next() {
		var c domain.Character
		if err := rows.Scan(&c.ID, &c.Name, &c.Active); err != nil {
			return nil, wrapErr(err, "failed to scan character")
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to iterate characters")
	}
	return characters, nil
}

type catalogRepository struct {
	q dbtx
}

var _ portsrepo.CatalogReader = (*catalogRepository)(nil)

func (r *catalogRepository) FindCatalogItemByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	var (
		item        domain.CatalogItem
		value       decimal.NullDecimal
		casterLevel sql.NullInt64
	)
	err := r.q.QueryRowContext(ctx, `SELECT id, name, type, subtype, value, caster_level FROM items WHERE id = ?`, id).
		Scan(&item.ID, &item.Name, &item.Type, &item.Subtype, &value, &casterLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: catalog item %d not found", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, wrapErr(err, "failed to find catalog item")
	}
	if value.Valid {
		v := value.Decimal
		item.Value = &v
	}
	if casterLevel.Valid {
		item.CasterLevel = domain.IntPtr(int(casterLevel.Int64))
	}
	return &item, nil
}

func (r *catalogRepository) FindModsByIDs(ctx context.Context, ids []int64) ([]domain.CatalogMod, error) {
	if len(ids) == 0 {
		return []domain.CatalogMod{}, nil
	}
	placeholders, args := inClause(ids)
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, caster_level, plus FROM mods WHERE id IN (`+placeholders+`) ORDER BY id`, args...)
	if err != nil {
		return nil, wrapErr(err, "failed to query mods")
	}
	defer rows.Close()

	mods := make([]domain.CatalogMod, 0, len(ids))
	for rows.Next() {
		var (
			m           domain.CatalogMod
			casterLevel sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.Name, &casterLevel, &m.Plus); err != nil {
			return nil, wrapErr(err, "failed to scan mod")
		}
		if casterLevel.Valid {
			m.CasterLevel = domain.IntPtr(int(casterLevel.Int64))
		}
		mods = append(mods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to iterate mods")
	}
	return mods, nil
}

type calendarRepository struct {
	q dbtx
}

var _ portsrepo.CalendarReader = (*calendarRepository)(nil)

func (r *calendarRepository) CurrentGameDate(ctx context.Context) (time.Time, bool, error) {
	var raw string
	err := r.q.QueryRowContext(ctx, `SELECT game_date FROM game_calendar WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, wrapErr(err, "failed to read game date")
	}
	date, err := time.Parse(gameDateLayout, raw)
	if err != nil {
		return time.Time{}, false, apperrors.NewAppError(500, "invalid game date in calendar", err)
	}
	return date, true, nil
}
