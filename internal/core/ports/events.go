package ports

import (
	"context"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// EventPublisher delivers domain events after the transaction that produced
// them has committed.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}
