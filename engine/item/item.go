// Package item implements items, stack arithmetic and stack splitting.
//
// An item is either unique (no stack) or a stack of identical objects. Items
// are mutated in place by stacking and splitting, so a container must hold
// the only live handle to an item it stores.
package item

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nathoo/invcore/engine/tags"
)

// Item is a unique object or a stack of identical objects.
type Item struct {
	id    uuid.UUID
	name  string
	tags  *tags.List
	stack *Stack
}

// New creates a unique, non-stackable item.
func New(name string, labels ...tags.Tag) *Item {
	return &Item{
		id:   uuid.New(),
		name: name,
		tags: tags.NewList(labels...),
	}
}

// NewStackable creates a stackable item holding current of max units.
func NewStackable(name string, current, max int, labels ...tags.Tag) *Item {
	it := New(name, labels...)
	it.stack = NewStack(current, max)
	return it
}

func (it *Item) ID() uuid.UUID    { return it.id }
func (it *Item) Name() string     { return it.name }
func (it *Item) Tags() *tags.List { return it.tags }

// Stack returns the stack component, or nil for unique items.
func (it *Item) Stack() *Stack { return it.stack }

func (it *Item) Stackable() bool { return it.stack != nil }

func (it *Item) AddTag(t tags.Tag) bool      { return it.tags.Add(t) }
func (it *Item) RemoveTag(t tags.Tag) bool   { return it.tags.Remove(t) }
func (it *Item) ContainsTag(t tags.Tag) bool { return it.tags.Contains(t) }

// Quantity is the stack's current amount, or 1 for a unique item.
func (it *Item) Quantity() int {
	if it.stack == nil {
		return 1
	}
	return it.stack.current
}

// CanBeStackedOn reports whether other units can merge into this item.
func (it *Item) CanBeStackedOn() bool {
	return it.stack != nil && it.stack.CanBeStackedOn()
}

// AddToStack adds amount to the stack and returns what did not fit. A unique
// item absorbs nothing.
func (it *Item) AddToStack(amount int) int {
	if it.stack == nil {
		return amount
	}
	return it.stack.AddToStack(amount)
}

// SetStack sets the stack amount and returns what did not fit.
func (it *Item) SetStack(amount int) int {
	if it.stack == nil {
		return amount
	}
	return it.stack.SetStack(amount)
}

// SplitStack moves amount units into a new item and returns it. When the
// split is not possible the receiver itself is returned unchanged: the item
// has no stack, holds a single unit, amount is not positive, or amount would
// leave the receiver empty.
func (it *Item) SplitStack(amount int) *Item {
	if it.stack == nil || it.stack.current == 1 || amount < 1 || amount >= it.stack.current {
		return it
	}
	it.stack.current -= amount
	return &Item{
		id:    uuid.New(),
		name:  it.name,
		tags:  it.tags.Copy(),
		stack: &Stack{current: amount, max: it.stack.max},
	}
}

// Copy returns an equal item with a new identity.
func (it *Item) Copy() *Item {
	cp := &Item{
		id:   uuid.New(),
		name: it.name,
		tags: it.tags.Copy(),
	}
	if it.stack != nil {
		cp.stack = &Stack{current: it.stack.current, max: it.stack.max}
	}
	return cp
}

func (it *Item) String() string {
	short := it.id.String()[:8]
	if it.stack == nil {
		return fmt.Sprintf("%s [%s]", it.name, short)
	}
	return fmt.Sprintf("%s x%d/%d [%s]", it.name, it.stack.current, it.stack.max, short)
}
