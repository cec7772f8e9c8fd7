package domain

import (
	"fmt"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
)

// LootStatus is the disposition of a loot item.
type LootStatus string

const (
	StatusUnprocessed LootStatus = "Unprocessed"
	StatusPendingSale LootStatus = "Pending Sale"
	StatusKeptParty   LootStatus = "Kept Party"
	StatusKeptSelf    LootStatus = "Kept Self"
	StatusTrashed     LootStatus = "Trashed"
	StatusSold        LootStatus = "Sold"
)

// AllStatuses lists every status in workflow order.
var AllStatuses = []LootStatus{
	StatusUnprocessed,
	StatusPendingSale,
	StatusKeptParty,
	StatusKeptSelf,
	StatusTrashed,
	StatusSold,
}

// transitions holds the moves allowed without a DM override. Same-status
// moves are always allowed and are not listed.
var transitions = map[LootStatus][]LootStatus{
	StatusUnprocessed: {StatusPendingSale, StatusKeptParty, StatusKeptSelf, StatusTrashed},
	StatusPendingSale: {StatusSold, StatusKeptParty, StatusKeptSelf, StatusTrashed},
	StatusKeptParty:   {StatusPendingSale, StatusTrashed, StatusKeptSelf},
	StatusKeptSelf:    {StatusPendingSale, StatusTrashed, StatusKeptParty},
}

// ParseLootStatus converts a stored or user supplied string into a LootStatus.
func ParseLootStatus(s string) (LootStatus, error) {
	status := LootStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown loot status %q", apperrors.ErrValidation, s)
	}
	return status, nil
}

// IsValid reports whether s is one of the known statuses.
func (s LootStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s ends the normal item lifecycle.
func (s LootStatus) IsTerminal() bool {
	return s == StatusTrashed || s == StatusSold
}

// CanTransition reports whether an item in status from may move to status to.
// With override set (DM correction) every valid target is reachable, including
// moves out of the terminal statuses.
func CanTransition(from, to LootStatus, override bool) bool {
	if !to.IsValid() {
		return false
	}
	if override || from == to {
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
