package domain

import "time"

// EventType names a domain event published after a commit.
type EventType string

const (
	EventLootSold        EventType = "loot.sold"
	EventGoldDistributed EventType = "gold.distributed"
	EventGoldBalanced    EventType = "gold.balanced"
)

// Event is a notification that committed ledger state changed.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Actor      string    `json:"actor"`
	Payload    any       `json:"payload"`
}
