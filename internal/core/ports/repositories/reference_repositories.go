package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
)

// CharacterReader reads the character roster. Characters are managed elsewhere.
type CharacterReader interface {
	FindCharacterByID(ctx context.Context, id int64) (*domain.Character, error)

	// ListActiveCharacters returns active characters ordered by id.
	ListActiveCharacters(ctx context.Context) ([]domain.Character, error)
}

// CatalogReader reads reference item data.
type CatalogReader interface {
	FindCatalogItemByID(ctx context.Context, id int64) (*domain.CatalogItem, error)

	// FindModsByIDs returns the mods that exist among ids, in id order.
	FindModsByIDs(ctx context.Context, ids []int64) ([]domain.CatalogMod, error)
}

// CalendarReader reads the campaign's current in-game date.
type CalendarReader interface {
	// CurrentGameDate returns the in-game date, or false when none is set.
	CurrentGameDate(ctx context.Context) (time.Time, bool, error)
}
