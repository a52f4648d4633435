package placement

import (
	"github.com/google/uuid"
	"github.com/nathoo/invcore/engine/item"
	"github.com/nathoo/invcore/engine/tags"
	"github.com/nathoo/invcore/types"
)

// equipmentStrategy places unique items into slots keyed by equipment tag.
type equipmentStrategy struct {
	basic
	set *tags.EquipmentSet
}

func (equipmentStrategy) Kind() Kind { return Equipment }

// TryAdd ignores atCapacity: an equipment table has a fixed set of slots and
// a full matching slot is swapped rather than rejected.
func (e equipmentStrategy) TryAdd(t *Table, it *item.Item, _ bool) Result {
	if it == nil {
		return Result{Outcome: types.ItemNotFound}
	}
	if it.Stackable() {
		return Result{Outcome: types.StackableItemsNotAllowed, Item: it}
	}
	if _, _, equipped := t.Find(it.ID()); equipped {
		return Result{Outcome: types.ItemAlreadyExists, Item: it}
	}

	members := e.set.Members(it.Tags())
	if len(members) == 0 {
		return Result{Outcome: types.ItemEquipmentTagMissing, Item: it}
	}

	var matching []tags.Tag
	for _, tag := range members {
		if t.Has(tag.ID) {
			matching = append(matching, tag)
		}
	}
	if len(matching) == 0 {
		return Result{Outcome: types.NoMatchingEquipmentSlots, Item: it}
	}

	for _, tag := range matching {
		if occupant, _ := t.Get(tag.ID); occupant == nil {
			t.Set(tag.ID, it)
			return Result{Outcome: types.ItemAdded, Item: it}
		}
	}

	slot := matching[0].ID
	displaced, _ := t.Get(slot)
	t.Set(slot, it)
	return Result{Outcome: types.ItemSwapped, Item: displaced}
}

func (equipmentStrategy) TryGet(t *Table, id uuid.UUID) Result {
	_, it, ok := t.Find(id)
	if !ok {
		return Result{Outcome: types.ItemNotFound}
	}
	return Result{Outcome: types.ItemRetrieved, Item: it}
}

// TryRemove empties the slot holding the item; the slot itself stays.
func (equipmentStrategy) TryRemove(t *Table, id uuid.UUID) Result {
	slot, it, ok := t.Find(id)
	if !ok {
		return Result{Outcome: types.ItemNotFound}
	}
	t.Set(slot, nil)
	return Result{Outcome: types.ItemRemoved, Item: it}
}

func (equipmentStrategy) TrySplit(*Table, uuid.UUID, int) Result {
	return Result{Outcome: types.StackableItemsNotAllowed}
}
