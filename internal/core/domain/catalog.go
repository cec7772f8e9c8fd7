package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CatalogItem is a reference item the loot may point at.
type CatalogItem struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Subtype     string           `json:"subtype"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	CasterLevel *int             `json:"casterLevel,omitempty"`
}

// CatalogMod is a reference modifier (e.g. "+1", "Flaming").
type CatalogMod struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CasterLevel *int   `json:"casterLevel,omitempty"`
	Plus        int    `json:"plus"`
}

// DefaultCasterLevel applies when neither the item nor its mods carry one.
const DefaultCasterLevel = 1

// CasterLevel resolves the caster level used for identification. Weapons and
// armor with mods use the highest mod caster level; everything else uses the
// catalog item's own.
func CasterLevel(itemType string, catalog *CatalogItem, mods []CatalogMod) int {
	if (itemType == ItemTypeWeapon || itemType == ItemTypeArmor) && len(mods) > 0 {
		best := 0
		for _, m := range mods {
			if m.CasterLevel != nil && *m.CasterLevel > best {
				best = *m.CasterLevel
			}
		}
		if best > 0 {
			return best
		}
	}
	if catalog != nil && catalog.CasterLevel != nil && *catalog.CasterLevel > 0 {
		return *catalog.CasterLevel
	}
	return DefaultCasterLevel
}

// TrueName builds an identified item's name: enhancement mods ("+1") first, then
// the other mods in their given order, then the catalog name. Without a catalog
// item the fallback name is kept.
func TrueName(catalog *CatalogItem, mods []CatalogMod, fallback string) string {
	if catalog == nil {
		return fallback
	}
	ordered := append([]CatalogMod(nil), mods...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return strings.HasPrefix(ordered[i].Name, "+") && !strings.HasPrefix(ordered[j].Name, "+")
	})
	parts := make([]string, 0, len(ordered)+1)
	for _, m := range ordered {
		parts = append(parts, m.Name)
	}
	parts = append(parts, catalog.Name)
	return strings.Join(parts, " ")
}
