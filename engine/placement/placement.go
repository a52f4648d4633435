// Package placement decides what happens to an item on every add, get,
// remove and split, and which outcome is reported.
//
// A Strategy is one of three fixed behaviours selected by Kind: Basic
// (identity keyed, no stacking), Stackable (identity keyed, merges into
// partial stacks first) and Equipment (slot-tag keyed, swaps occupants).
// Strategies are stateless; all state lives in the Table passed to them.
package placement

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nathoo/invcore/engine/item"
	"github.com/nathoo/invcore/engine/tags"
	"github.com/nathoo/invcore/types"
)

// Kind selects a placement strategy.
type Kind int

const (
	Basic Kind = iota
	Stackable
	Equipment
)

func (k Kind) String() string {
	switch k {
	case Basic:
		return "basic"
	case Stackable:
		return "stackable"
	case Equipment:
		return "equipment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a catalog or config string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "":
		return Basic, nil
	case "stackable":
		return Stackable, nil
	case "equipment":
		return Equipment, nil
	default:
		return Basic, fmt.Errorf("unknown container kind %q", s)
	}
}

// Result is the outcome of a placement decision. Item is the item the
// outcome refers to: the added, stacked-onto, removed, split-off or
// displaced item, or the rejected incoming item.
type Result struct {
	Outcome types.Outcome
	Item    *item.Item
	Items   []*item.Item
}

// Strategy decides how items enter and leave a slot table. The set of
// implementations is closed; obtain one through New.
type Strategy interface {
	Kind() Kind
	TryAdd(t *Table, it *item.Item, atCapacity bool) Result
	TryGet(t *Table, id uuid.UUID) Result
	TryGetAll(t *Table) Result
	TryGetByTag(t *Table, tag tags.Tag) Result
	TryRemove(t *Table, id uuid.UUID) Result
	TrySplit(t *Table, id uuid.UUID, amount int) Result

	sealed()
}

// New returns the strategy for kind. Equipment requires the set of
// recognized equipment tags.
func New(kind Kind, equipment *tags.EquipmentSet) (Strategy, error) {
	switch kind {
	case Basic:
		return basic{}, nil
	case Stackable:
		return stackable{}, nil
	case Equipment:
		if equipment == nil {
			return nil, fmt.Errorf("equipment strategy requires an equipment set")
		}
		return equipmentStrategy{set: equipment}, nil
	default:
		return nil, fmt.Errorf("unknown placement kind %v", kind)
	}
}

// Placed reports whether an add outcome means the item now lives in the
// table, either as its own entry or merged into other stacks.
func Placed(o types.Outcome) bool {
	switch o {
	case types.ItemAdded, types.ItemStacked, types.ItemStackedAndAdded, types.ItemSwapped:
		return true
	}
	return false
}

// Succeeded reports whether o is a success outcome.
func Succeeded(o types.Outcome) bool {
	switch o {
	case types.ItemAdded, types.ItemStacked, types.ItemStackedAndAdded, types.ItemSwapped,
		types.ItemRemoved, types.ItemRetrieved, types.ItemsRetrieved, types.ItemStackSplit,
		types.ItemMovedBetweenInventories:
		return true
	}
	return false
}

// NotFound reports whether o belongs to the not-found class.
func NotFound(o types.Outcome) bool {
	switch o {
	case types.ItemNotFound, types.ItemsNotFound,
		types.SourceInventoryNotFound, types.TargetInventoryNotFound:
		return true
	}
	return false
}

// Severity groups outcomes for display.
type Severity int

const (
	// SeveritySuccess covers every success outcome.
	SeveritySuccess Severity = iota
	// SeverityRejected covers refusals the caller can recover from by
	// choosing another container, slot or amount.
	SeverityRejected
	// SeverityFailed covers not-found and conflict outcomes.
	SeverityFailed
)

// Classify returns the severity of o, and false when o is not a known outcome.
func Classify(o types.Outcome) (Severity, bool) {
	switch {
	case Succeeded(o):
		return SeveritySuccess, true
	case NotFound(o):
		return SeverityFailed, true
	}
	switch o {
	case types.InventoryAtCapacity, types.StackableItemsNotAllowed,
		types.ItemEquipmentTagMissing, types.NoMatchingEquipmentSlots, types.ItemStackNotSplit:
		return SeverityRejected, true
	case types.ItemAlreadyExists:
		return SeverityFailed, true
	}
	return SeveritySuccess, false
}
