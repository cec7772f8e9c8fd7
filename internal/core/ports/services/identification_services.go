package services

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// IdentificationSvcFacade resolves spellcraft checks against unidentified items.
type IdentificationSvcFacade interface {
	// Identify resolves one roll. DM attempts always succeed.
	Identify(ctx context.Context, itemID int64, roll int, actor domain.Actor) (*domain.IdentifyResult, error)

	// IdentifyMany resolves several rolls in one transaction. Items already
	// attempted today are reported in the results rather than failing the batch.
	IdentifyMany(ctx context.Context, reqs []domain.IdentifyRequest, actor domain.Actor) ([]domain.IdentifyResult, error)
}
