package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Item types with special handling.
const (
	ItemTypeTradeGood = "trade good"
	ItemTypeWeapon    = "weapon"
	ItemTypeArmor     = "armor"
)

// LootItem is one persisted row of party loot. Rows sharing a StackKey are
// displayed together but remain independent records.
type LootItem struct {
	ID           int64            `json:"id"`
	SessionDate  time.Time        `json:"sessionDate"`
	Name         string           `json:"name"`
	Quantity     int              `json:"quantity"`
	Status       LootStatus       `json:"status"`
	ItemID       *int64           `json:"itemId,omitempty"` // catalog item
	ModIDs       []int64          `json:"modIds"`
	Charges      *int             `json:"charges,omitempty"`
	Value        *decimal.Decimal `json:"value,omitempty"`
	Unidentified bool             `json:"unidentified"`
	Masterwork   bool             `json:"masterwork"`
	Type         string           `json:"type"`
	Size         string           `json:"size"`
	Cursed       bool             `json:"cursed"`
	Notes        string           `json:"notes"`
	WhoHas       *int64           `json:"whoHas,omitempty"`
	WhoUpdated   string           `json:"whoUpdated"`
	LastUpdate   time.Time        `json:"lastUpdate"`
}

// StackKey is the identity tuple under which items are considered the same stack.
type StackKey struct {
	Name         string `json:"name"`
	Unidentified bool   `json:"unidentified"`
	Masterwork   bool   `json:"masterwork"`
	Type         string `json:"type"`
	Size         string `json:"size"`
}

// Key returns the stack identity of the item.
func (i LootItem) Key() StackKey {
	return StackKey{
		Name:         i.Name,
		Unidentified: i.Unidentified,
		Masterwork:   i.Masterwork,
		Type:         i.Type,
		Size:         i.Size,
	}
}

// Stack is a read-time aggregate of items sharing a StackKey.
type Stack struct {
	StackKey
	Quantity int        `json:"quantity"`
	Items    []LootItem `json:"items"`
}

// GroupStacks merges items by stack identity, keeping the order in which each
// stack first appears.
func GroupStacks(items []LootItem) []Stack {
	index := make(map[StackKey]int)
	stacks := make([]Stack, 0)
	for _, item := range items {
		key := item.Key()
		pos, ok := index[key]
		if !ok {
			pos = len(stacks)
			index[key] = pos
			stacks = append(stacks, Stack{StackKey: key})
		}
		stacks[pos].Quantity += item.Quantity
		stacks[pos].Items = append(stacks[pos].Items, item)
	}
	return stacks
}

// ValidateNew checks the fields a caller must supply when loot is taken in.
func (i LootItem) ValidateNew() error {
	if i.Name == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if i.Charges != nil && *i.Charges < 0 {
		return fmt.Errorf("%w: charges cannot be negative", apperrors.ErrValidation)
	}
	if i.Value != nil && i.Value.IsNegative() {
		return fmt.Errorf("%w: value cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

// Split partitions the item's quantity. The returned source keeps partition[0];
// each copy is a new record (ID zero) holding one further element. Every other
// attribute is copied unchanged.
func (i LootItem) Split(partition []int, who string, now time.Time) (LootItem, []LootItem, error) {
	if i.Status == StatusSold {
		return LootItem{}, nil, fmt.Errorf("%w: item %d has already been sold", apperrors.ErrValidation, i.ID)
	}
	if len(partition) == 0 {
		return LootItem{}, nil, fmt.Errorf("%w: a split needs at least one part", apperrors.ErrValidation)
	}
	sum := 0
	for _, part := range partition {
		if part <= 0 {
			return LootItem{}, nil, fmt.Errorf("%w: every part of a split must be positive", apperrors.ErrValidation)
		}
		sum += part
	}
	if sum != i.Quantity {
		return LootItem{}, nil, fmt.Errorf("%w: parts sum to %d but item %d has quantity %d",
			apperrors.ErrValidation, sum, i.ID, i.Quantity)
	}

	if len(partition) == 1 {
		return i, nil, nil
	}

	source := i.touched(who, now)
	source.Quantity = partition[0]

	copies := make([]LootItem, 0, len(partition)-1)
	for _, part := range partition[1:] {
		c := source.clone()
		c.ID = 0
		c.Quantity = part
		copies = append(copies, c)
	}
	return source, copies, nil
}

// UseCharge consumes one charge. The item is trashed when the last charge is used.
func (i *LootItem) UseCharge(who string, now time.Time) error {
	if i.Charges == nil || *i.Charges <= 0 {
		return fmt.Errorf("%w: no uses left on item %d", apperrors.ErrNotFound, i.ID)
	}
	if i.Status.IsTerminal() {
		return fmt.Errorf("%w: no uses left on item %d, it is %s", apperrors.ErrNotFound, i.ID, i.Status)
	}
	before := *i.Charges
	i.Charges = IntPtr(before - 1)
	if before == 1 {
		i.Status = StatusTrashed
	}
	*i = i.touched(who, now)
	return nil
}

// UseUnit consumes one unit of quantity. The item is trashed when none remain.
func (i *LootItem) UseUnit(who string, now time.Time) error {
	if i.Quantity <= 0 {
		return fmt.Errorf("%w: no uses left on item %d", apperrors.ErrNotFound, i.ID)
	}
	i.Quantity--
	if i.Quantity == 0 {
		i.Status = StatusTrashed
	}
	*i = i.touched(who, now)
	return nil
}

func (i LootItem) touched(who string, now time.Time) LootItem {
	i.WhoUpdated = who
	i.LastUpdate = now
	return i
}

// clone copies the item, including the slices and pointers it owns.
func (i LootItem) clone() LootItem {
	c := i
	if i.ModIDs != nil {
		c.ModIDs = append([]int64(nil), i.ModIDs...)
	}
	if i.ItemID != nil {
		c.ItemID = Int64Ptr(*i.ItemID)
	}
	if i.Charges != nil {
		c.Charges = IntPtr(*i.Charges)
	}
	if i.Value != nil {
		v := *i.Value
		c.Value = &v
	}
	if i.WhoHas != nil {
		c.WhoHas = Int64Ptr(*i.WhoHas)
	}
	return c
}

// LootFilter narrows item listings.
type LootFilter struct {
	Statuses []LootStatus
	WhoHas   *int64
}

// TransitionRequest moves a set of items to a new status.
type TransitionRequest struct {
	ItemIDs  []int64
	Status   LootStatus
	WhoHas   *int64 // required only when Status is StatusKeptSelf
	Override bool   // DM correction; lifts the transition table
}
