package placement

import (
	"github.com/google/uuid"
	"github.com/nathoo/invcore/engine/item"
	"github.com/nathoo/invcore/engine/tags"
	"github.com/nathoo/invcore/types"
)

// basic keys items by identity and never stacks.
type basic struct{}

func (basic) sealed() {}

func (basic) Kind() Kind { return Basic }

func (basic) TryAdd(t *Table, it *item.Item, atCapacity bool) Result {
	if it == nil {
		return Result{Outcome: types.ItemNotFound}
	}
	if spent(it) {
		return Result{Outcome: types.ItemNotFound, Item: it}
	}
	if atCapacity {
		return Result{Outcome: types.InventoryAtCapacity, Item: it}
	}
	if !t.Insert(it.ID(), it) {
		return Result{Outcome: types.ItemAlreadyExists, Item: it}
	}
	return Result{Outcome: types.ItemAdded, Item: it}
}

// spent reports a stack whose units were all merged elsewhere. It no longer
// counts as an item and is never stored.
func spent(it *item.Item) bool {
	return it.Stackable() && it.Quantity() == 0
}

func (basic) TryGet(t *Table, id uuid.UUID) Result {
	it, ok := t.Get(id)
	if !ok || it == nil {
		return Result{Outcome: types.ItemNotFound}
	}
	return Result{Outcome: types.ItemRetrieved, Item: it}
}

func (basic) TryGetAll(t *Table) Result {
	items := t.Items()
	if len(items) == 0 {
		return Result{Outcome: types.ItemsNotFound}
	}
	return Result{Outcome: types.ItemsRetrieved, Items: items}
}

func (basic) TryGetByTag(t *Table, tag tags.Tag) Result {
	var matched []*item.Item
	for _, it := range t.Items() {
		if it.ContainsTag(tag) {
			matched = append(matched, it)
		}
	}
	if len(matched) == 0 {
		return Result{Outcome: types.ItemsNotFound}
	}
	return Result{Outcome: types.ItemsRetrieved, Items: matched}
}

func (basic) TryRemove(t *Table, id uuid.UUID) Result {
	it, ok := t.Delete(id)
	if !ok {
		return Result{Outcome: types.ItemNotFound}
	}
	return Result{Outcome: types.ItemRemoved, Item: it}
}

func (basic) TrySplit(t *Table, id uuid.UUID, amount int) Result {
	it, ok := t.Get(id)
	if !ok || it == nil {
		return Result{Outcome: types.ItemNotFound}
	}
	split := it.SplitStack(amount)
	if split == it {
		return Result{Outcome: types.ItemStackNotSplit, Item: it}
	}
	t.Insert(split.ID(), split)
	return Result{Outcome: types.ItemStackSplit, Item: split}
}
