package sqlite

import (
	"context"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
)

// gameDateLayout stores game dates as plain calendar days.
const gameDateLayout = "2006-01-02"

type identificationRepository struct {
	q dbtx
}

var _ portsrepo.IdentificationRepositoryFacade = (*identificationRepository)(nil)

func (r *identificationRepository) InsertAttempt(ctx context.Context, attempt domain.IdentificationAttempt) (domain.IdentificationAttempt, error) {
	res, err := r.q.ExecContext(ctx, `INSERT INTO identify (loot_id, character_id, game_date, roll, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		attempt.LootItemID, nullInt64(attempt.CharacterID), attempt.GameDate.Format(gameDateLayout),
		attempt.Roll, attempt.Success, attempt.CreatedAt)
	if err != nil {
		return domain.IdentificationAttempt{}, wrapErr(err, "failed to insert identify attempt")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.IdentificationAttempt{}, wrapErr(err, "failed to read identify attempt id")
	}
	attempt.ID = id
	return attempt, nil
}

func (r *identificationRepository) HasAttempted(ctx context.Context, lootItemID, characterID int64, gameDate time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS (
			SELECT 1 FROM identify WHERE loot_id = ? AND character_id = ? AND game_date = ?
		)`, lootItemID, characterID, gameDate.Format(gameDateLayout)).Scan(&exists)
	if err != nil {
		return false, wrapErr(err, "failed to check identify attempts")
	}
	return exists, nil
}
