package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// IdentificationRepositoryFacade defines persistence for identify attempts
type IdentificationRepositoryFacade interface {
	// InsertAttempt appends one attempt.
	InsertAttempt(ctx context.Context, attempt domain.IdentificationAttempt) (domain.IdentificationAttempt, error)

	// HasAttempted reports whether the character already tried the item on the game date.
	HasAttempted(ctx context.Context, lootItemID, characterID int64, gameDate time.Time) (bool, error)
}
