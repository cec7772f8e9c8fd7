package domain

import "time"

const (
	// DMRoll is recorded for DM identifications, which always succeed.
	DMRoll = 99
	// BaseIdentifyDC is added to the capped caster level.
	BaseIdentifyDC = 15
	// MaxDCCasterLevel caps the caster level contribution to the DC.
	MaxDCCasterLevel = 20
	// CurseMargin is how far above the DC a roll must be to reveal a curse.
	CurseMargin = 10
	// CursedSuffix is appended to the name of an item revealed as cursed.
	CursedSuffix = " - CURSED"
)

// RequiredDC is the spellcraft roll needed to identify an item.
func RequiredDC(casterLevel int) int {
	return BaseIdentifyDC + min(casterLevel, MaxDCCasterLevel)
}

// IdentificationAttempt logs one identify roll.
type IdentificationAttempt struct {
	ID          int64     `json:"id"`
	LootItemID  int64     `json:"lootItemId"`
	CharacterID *int64    `json:"characterId,omitempty"` // nil for the DM
	GameDate    time.Time `json:"gameDate"`
	Roll        int       `json:"roll"`
	Success     bool      `json:"success"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IdentifyResult is the outcome of one identify call.
type IdentifyResult struct {
	Success        bool     `json:"success"`
	Item           LootItem `json:"item"`
	RequiredDC     int      `json:"requiredDC"`
	Roll           int      `json:"roll"`
	CursedDetected bool     `json:"cursedDetected"`
	// AlreadyAttempted is set by batch identification for items the
	// character already tried today; such items are left untouched.
	AlreadyAttempted bool `json:"alreadyAttempted,omitempty"`
}

// IdentifyRequest is one item and roll in a batch identification.
type IdentifyRequest struct {
	LootItemID int64
	Roll       int
}

// GameDay truncates t to the calendar day, in UTC.
func GameDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
