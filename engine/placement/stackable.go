package placement

import (
	"github.com/nathoo/invcore/engine/item"
	"github.com/nathoo/invcore/types"
)

// stackable merges incoming stacks into partial stacks of the same name
// before spending a new table entry on the remainder.
type stackable struct {
	basic
}

func (stackable) Kind() Kind { return Stackable }

// TryAdd spills the incoming stack across similar partial stacks in table
// order, first match first. Capacity is consulted only when the remainder
// needs its own entry.
func (s stackable) TryAdd(t *Table, it *item.Item, atCapacity bool) Result {
	if it == nil || !it.Stackable() {
		return s.basic.TryAdd(t, it, atCapacity)
	}
	if spent(it) {
		return Result{Outcome: types.ItemNotFound, Item: it}
	}
	if t.Has(it.ID()) {
		return Result{Outcome: types.ItemAlreadyExists, Item: it}
	}

	absorbed := false
	for _, similar := range similarItems(t, it) {
		remaining := similar.AddToStack(it.Quantity())
		it.SetStack(remaining)
		if remaining == 0 {
			return Result{Outcome: types.ItemStacked, Item: similar}
		}
		absorbed = true
	}

	if atCapacity {
		return Result{Outcome: types.InventoryAtCapacity, Item: it}
	}
	t.Insert(it.ID(), it)
	if absorbed {
		return Result{Outcome: types.ItemStackedAndAdded, Item: it}
	}
	return Result{Outcome: types.ItemAdded, Item: it}
}

// similarItems returns the entries it can merge into: same name, room left,
// different identity.
func similarItems(t *Table, it *item.Item) []*item.Item {
	var out []*item.Item
	for _, candidate := range t.Items() {
		if candidate.ID() == it.ID() {
			continue
		}
		if candidate.Name() == it.Name() && candidate.CanBeStackedOn() {
			out = append(out, candidate)
		}
	}
	return out
}
