package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/loot_ledger_app/internal/core/ports/repositories"
)

type identificationRepository struct {
	q dbtx
}

var _ portsrepo.IdentificationRepositoryFacade = (*identificationRepository)(nil)

func (r *identificationRepository) InsertAttempt(ctx context.Context, attempt domain.IdentificationAttempt) (domain.IdentificationAttempt, error) {
	err := r.q.QueryRow(ctx, `INSERT INTO identify (loot_id, character_id, game_date, roll, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		attempt.LootItemID, attempt.CharacterID, attempt.GameDate, attempt.Roll, attempt.Success,
		attempt.CreatedAt).Scan(&attempt.ID)
	if err != nil {
		return domain.IdentificationAttempt{}, wrapErr(err, "failed to insert identify attempt")
	}
	return attempt, nil
}

func (r *identificationRepository) HasAttempted(ctx context.Context, lootItemID, characterID int64, gameDate time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM identify WHERE loot_id = $1 AND character_id = $2 AND game_date = $3
		)`, lootItemID, characterID, gameDate).Scan(&exists)
	if err != nil {
		return false, wrapErr(err, "failed to check identify attempts")
	}
	return exists, nil
}
