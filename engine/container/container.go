// Package container implements a named, optionally capacity-limited
// inventory that owns one slot table and one placement strategy.
package container

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/nathoo/invcore/engine/item"
	"github.com/nathoo/invcore/engine/placement"
	"github.com/nathoo/invcore/engine/tags"
	"github.com/sirupsen/logrus"
)

// Container holds items under a placement strategy. All operations on one
// container are serialized.
type Container struct {
	mu       sync.Mutex
	id       uuid.UUID
	name     string
	capacity int
	table    *placement.Table
	strategy placement.Strategy
	slots    []tags.Tag
	l        logrus.FieldLogger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger placement decisions are written to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Container) {
		if l != nil {
			c.l = l
		}
	}
}

// WithID fixes the container identity instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(c *Container) {
		c.id = id
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newContainer(name string, capacity int, table *placement.Table, s placement.Strategy, opts []Option) *Container {
	if capacity < 1 {
		capacity = 0
	}
	c := &Container{
		id:       uuid.New(),
		name:     name,
		capacity: capacity,
		table:    table,
		strategy: s,
		l:        discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.l = c.l.WithFields(logrus.Fields{"container": c.name, "kind": s.Kind().String()})
	return c
}

// New creates a basic or stackable container. A capacity below 1 means
// unbounded. Equipment containers are built with NewEquipment.
func New(kind placement.Kind, name string, capacity int, opts ...Option) (*Container, error) {
	if kind == placement.Equipment {
		return nil, fmt.Errorf("container %q: equipment containers need an equipment set", name)
	}
	s, err := placement.New(kind, nil)
	if err != nil {
		return nil, fmt.Errorf("container %q: %w", name, err)
	}
	return newContainer(name, capacity, placement.NewTable(capacity), s, opts), nil
}

// NewEquipment creates an equipment container with one empty slot per tag
// in slots, or one per member of set when slots is empty. Every slot must
// belong to set.
func NewEquipment(set *tags.EquipmentSet, name string, slots []tags.Tag, opts ...Option) (*Container, error) {
	s, err := placement.New(placement.Equipment, set)
	if err != nil {
		return nil, fmt.Errorf("container %q: %w", name, err)
	}
	if len(slots) == 0 {
		slots = set.Tags()
	}
	seen := make(map[uuid.UUID]bool, len(slots))
	for _, slot := range slots {
		if !set.Contains(slot) {
			return nil, fmt.Errorf("container %q: %q is not an equipment slot", name, slot.Name)
		}
		if seen[slot.ID] {
			return nil, fmt.Errorf("container %q: duplicate slot %q", name, slot.Name)
		}
		seen[slot.ID] = true
	}
	c := newContainer(name, 0, placement.NewSlotTable(slots), s, opts)
	c.slots = append([]tags.Tag(nil), slots...)
	return c, nil
}

func (c *Container) ID() uuid.UUID { return c.id }

func (c *Container) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Container) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// Capacity is the entry limit; 0 means unbounded.
func (c *Container) Capacity() int { return c.capacity }

func (c *Container) Kind() placement.Kind { return c.strategy.Kind() }

// Count is the number of items held. For equipment it counts occupied slots.
func (c *Container) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.Occupied()
}

// IsAtCapacity reports whether a new entry would be refused. Equipment
// containers are never at capacity.
func (c *Container) IsAtCapacity() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.atCapacity()
}

func (c *Container) atCapacity() bool {
	if c.strategy.Kind() == placement.Equipment {
		return false
	}
	return c.capacity > 0 && c.table.Len() >= c.capacity
}

// Slot is one equipment slot and its occupant, nil when empty.
type Slot struct {
	Tag  tags.Tag
	Item *item.Item
}

// Slots lists the equipment slots in construction order. It returns nil for
// non-equipment containers.
func (c *Container) Slots() []Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.strategy.Kind() != placement.Equipment {
		return nil
	}
	out := make([]Slot, 0, len(c.slots))
	for _, tag := range c.slots {
		it, _ := c.table.Get(tag.ID)
		out = append(out, Slot{Tag: tag, Item: it})
	}
	return out
}

func (c *Container) logResult(op string, r placement.Result) {
	f := logrus.Fields{"op": op, "outcome": string(r.Outcome)}
	if r.Item != nil {
		f["item"] = r.Item.String()
	}
	c.l.WithFields(f).Debug("placement")
}

// TryAddItem places it according to the container's strategy.
func (c *Container) TryAddItem(it *item.Item) placement.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.strategy.TryAdd(c.table, it, c.atCapacity())
	c.logResult("add", r)
	return r
}

func (c *Container) TryGetItem(id uuid.UUID) placement.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategy.TryGet(c.table, id)
}

func (c *Container) TryGetAllItems() placement.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategy.TryGetAll(c.table)
}

func (c *Container) TryGetItemsByTag(tag tags.Tag) placement.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategy.TryGetByTag(c.table, tag)
}

func (c *Container) TryRemoveItem(id uuid.UUID) placement.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.strategy.TryRemove(c.table, id)
	c.logResult("remove", r)
	return r
}

// TrySplitItemStack splits amount units off the item into a new entry.
// Capacity is not consulted.
func (c *Container) TrySplitItemStack(id uuid.UUID, amount int) placement.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.strategy.TrySplit(c.table, id, amount)
	c.logResult("split", r)
	return r
}

func (c *Container) String() string {
	return fmt.Sprintf("%s (%s)", c.Name(), c.Kind())
}
