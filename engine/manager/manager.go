// Package manager keeps the registry of containers and moves items
// between them.
package manager

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nathoo/invcore/engine/container"
	"github.com/nathoo/invcore/engine/events"
	"github.com/nathoo/invcore/engine/item"
	"github.com/nathoo/invcore/engine/placement"
	"github.com/nathoo/invcore/engine/tags"
	"github.com/nathoo/invcore/types"
	"github.com/sirupsen/logrus"
)

// MovePolicy decides what a move reports when the target refuses the item.
type MovePolicy int

const (
	// MoveReportUniform reports ItemMovedBetweenInventories whatever the
	// target decided. A refused item is left with the caller.
	MoveReportUniform MovePolicy = iota
	// MoveRollback puts a refused item back into the source and reports
	// the target's outcome.
	MoveRollback
)

func (p MovePolicy) String() string {
	switch p {
	case MoveReportUniform:
		return "uniform"
	case MoveRollback:
		return "rollback"
	default:
		return fmt.Sprintf("MovePolicy(%d)", int(p))
	}
}

// ParseMovePolicy converts a config string into a MovePolicy.
func ParseMovePolicy(s string) (MovePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uniform":
		return MoveReportUniform, nil
	case "rollback":
		return MoveRollback, nil
	default:
		return MoveReportUniform, fmt.Errorf("unknown move policy %q", s)
	}
}

// Manager is the registry of containers. Containers are never removed.
type Manager struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*container.Container
	order  []uuid.UUID
	policy MovePolicy
	set    *tags.EquipmentSet
	bus    *events.Bus
	l      logrus.FieldLogger
}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) {
		if l != nil {
			m.l = l
		}
	}
}

func WithMovePolicy(p MovePolicy) Option {
	return func(m *Manager) { m.policy = p }
}

// WithEvents publishes move and registration events to bus.
func WithEvents(bus *events.Bus) Option {
	return func(m *Manager) { m.bus = bus }
}

// New creates a manager. set is the equipment configuration handed to every
// equipment container the manager creates.
func New(set *tags.EquipmentSet, opts ...Option) *Manager {
	l := logrus.New()
	l.SetOutput(io.Discard)
	m := &Manager{
		byID: make(map[uuid.UUID]*container.Container),
		set:  set,
		l:    l,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Policy() MovePolicy                { return m.policy }
func (m *Manager) EquipmentSet() *tags.EquipmentSet { return m.set }

// CreateInventory creates and registers a basic or stackable container.
func (m *Manager) CreateInventory(kind placement.Kind, name string, capacity int) (*container.Container, error) {
	c, err := container.New(kind, name, capacity, container.WithLogger(m.l))
	if err != nil {
		return nil, err
	}
	m.Register(c)
	return c, nil
}

// CreateEquipmentInventory creates and registers an equipment container
// with the named slots, or every recognized slot when none are named.
func (m *Manager) CreateEquipmentInventory(name string, slots ...string) (*container.Container, error) {
	if m.set == nil {
		return nil, fmt.Errorf("container %q: manager has no equipment set", name)
	}
	slotTags, err := m.set.Subset(slots...)
	if err != nil {
		return nil, fmt.Errorf("container %q: %w", name, err)
	}
	c, err := container.NewEquipment(m.set, name, slotTags, container.WithLogger(m.l))
	if err != nil {
		return nil, err
	}
	m.Register(c)
	return c, nil
}

// Register adds an existing container. Registering the same identity twice
// keeps the first container.
func (m *Manager) Register(c *container.Container) bool {
	m.mu.Lock()
	if _, ok := m.byID[c.ID()]; ok {
		m.mu.Unlock()
		return false
	}
	m.byID[c.ID()] = c
	m.order = append(m.order, c.ID())
	m.mu.Unlock()

	m.bus.Dispatch(types.Event{
		Type: events.ContainerAdded,
		Data: map[string]any{"container": c.ID().String(), "name": c.Name(), "kind": c.Kind().String()},
	})
	return true
}

// TryGetInventory looks up a container by identity.
func (m *Manager) TryGetInventory(id uuid.UUID) (*container.Container, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byID[id]
	return c, ok
}

// Inventories returns the containers in registration order.
func (m *Manager) Inventories() []*container.Container {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*container.Container, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// MoveItemBetweenInventories removes the item from src and offers it to dst.
// The move is not atomic across the two containers.
//
// Under MoveReportUniform the result is ItemMovedBetweenInventories once the
// removal succeeded. Under MoveRollback a refusal re-adds the item to src and
// returns the target's outcome with the item.
//
// With ItemMovedBetweenInventories, Result.Item is what the move left in
// neither container: the refused item under MoveReportUniform, or the
// occupant displaced by a swap. It is nil when the item was placed or fully
// merged into a target stack.
func (m *Manager) MoveItemBetweenInventories(srcID, dstID, itemID uuid.UUID) placement.Result {
	src, ok := m.TryGetInventory(srcID)
	if !ok {
		return placement.Result{Outcome: types.SourceInventoryNotFound}
	}
	dst, ok := m.TryGetInventory(dstID)
	if !ok {
		return placement.Result{Outcome: types.TargetInventoryNotFound}
	}

	removed := src.TryRemoveItem(itemID)
	if removed.Outcome != types.ItemRemoved {
		return removed
	}
	it := removed.Item

	added := dst.TryAddItem(it)
	log := m.l.WithFields(logrus.Fields{
		"item":    it.String(),
		"from":    src.Name(),
		"to":      dst.Name(),
		"outcome": string(added.Outcome),
	})

	if m.policy == MoveRollback && !placement.Placed(added.Outcome) {
		return m.rollback(log, src, it, added)
	}

	log.Debug("item moved")
	m.publishMove(src, dst, it, added.Outcome)
	return placement.Result{Outcome: types.ItemMovedBetweenInventories, Item: leftOver(it, added)}
}

// leftOver returns the item an add left outside the target, if any.
func leftOver(it *item.Item, added placement.Result) *item.Item {
	switch {
	case added.Outcome == types.ItemSwapped:
		return added.Item
	case placement.Placed(added.Outcome):
		return nil
	}
	return it
}

func (m *Manager) rollback(log logrus.FieldLogger, src *container.Container, it *item.Item, added placement.Result) placement.Result {
	back := src.TryAddItem(it)
	if !placement.Placed(back.Outcome) {
		log.WithField("rollback", string(back.Outcome)).Error("move rollback failed")
	} else {
		log.Warn("move refused, item returned to source")
	}
	m.bus.Dispatch(types.Event{
		Type: events.MoveRolledBack,
		Data: map[string]any{
			"item":    it.ID().String(),
			"from":    src.ID().String(),
			"outcome": string(added.Outcome),
			"restore": string(back.Outcome),
		},
	})
	return placement.Result{Outcome: added.Outcome, Item: it}
}

func (m *Manager) publishMove(src, dst *container.Container, it *item.Item, outcome types.Outcome) {
	m.bus.Dispatch(types.Event{
		Type: events.ItemMoved,
		Data: map[string]any{
			"item":    it.ID().String(),
			"from":    src.ID().String(),
			"to":      dst.ID().String(),
			"outcome": string(outcome),
		},
	})
}
