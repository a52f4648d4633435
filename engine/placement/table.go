package placement

import (
	"github.com/google/uuid"
	"github.com/nathoo/invcore/engine/item"
	"github.com/nathoo/invcore/engine/tags"
)

// Table is an insertion-ordered slot table. Basic and stackable containers
// key it by item identity; equipment containers key it by slot tag identity
// and use a nil value for an empty slot.
type Table struct {
	keys  []uuid.UUID
	slots map[uuid.UUID]*item.Item
}

// NewTable creates an empty table.
func NewTable(sizeHint int) *Table {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Table{
		keys:  make([]uuid.UUID, 0, sizeHint),
		slots: make(map[uuid.UUID]*item.Item, sizeHint),
	}
}

// NewSlotTable creates a table with one empty slot per tag.
func NewSlotTable(slots []tags.Tag) *Table {
	t := NewTable(len(slots))
	for _, s := range slots {
		t.Set(s.ID, nil)
	}
	return t
}

// Len is the number of keys, including empty slots.
func (t *Table) Len() int { return len(t.keys) }

// Occupied is the number of non-empty entries.
func (t *Table) Occupied() int {
	n := 0
	for _, k := range t.keys {
		if t.slots[k] != nil {
			n++
		}
	}
	return n
}

func (t *Table) Has(key uuid.UUID) bool {
	_, ok := t.slots[key]
	return ok
}

// Get returns the entry for key. The item is nil for an empty slot.
func (t *Table) Get(key uuid.UUID) (*item.Item, bool) {
	it, ok := t.slots[key]
	return it, ok
}

// Insert adds a new entry. Returns false if the key is already present.
func (t *Table) Insert(key uuid.UUID, it *item.Item) bool {
	if t.Has(key) {
		return false
	}
	t.keys = append(t.keys, key)
	t.slots[key] = it
	return true
}

// Set stores it under key, keeping the key's position if present.
func (t *Table) Set(key uuid.UUID, it *item.Item) {
	if !t.Insert(key, it) {
		t.slots[key] = it
	}
}

// Delete removes the entry for key.
func (t *Table) Delete(key uuid.UUID) (*item.Item, bool) {
	it, ok := t.slots[key]
	if !ok {
		return nil, false
	}
	delete(t.slots, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
	return it, true
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []uuid.UUID {
	out := make([]uuid.UUID, len(t.keys))
	copy(out, t.keys)
	return out
}

// Items returns the non-empty entries in insertion order.
func (t *Table) Items() []*item.Item {
	out := make([]*item.Item, 0, len(t.keys))
	for _, k := range t.keys {
		if it := t.slots[k]; it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Find scans the entries for the item with the given identity and returns
// the key it is stored under.
func (t *Table) Find(id uuid.UUID) (uuid.UUID, *item.Item, bool) {
	for _, k := range t.keys {
		if it := t.slots[k]; it != nil && it.ID() == id {
			return k, it, true
		}
	}
	return uuid.Nil, nil, false
}
