// Package events implements single-pass event dispatch to subscribers.
// Handlers observe events; they cannot emit new ones into the same pass.
package events

import (
	"sync"

	"github.com/nathoo/invcore/types"
)

// Event types published by the inventory engine.
const (
	ItemAdded       = "item_added"
	ItemRemoved     = "item_removed"
	ItemSplit       = "item_split"
	ItemMoved       = "item_moved"
	MoveRolledBack  = "move_rolled_back"
	ContainerAdded  = "container_added"
	ContainerRename = "container_renamed"
)

// Handler receives one event.
type Handler func(types.Event)

type subscription struct {
	eventType string
	handler   Handler
}

// Bus fans events out to subscribers in subscription order. The zero value
// is ready to use.
type Bus struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for eventType. An empty eventType receives every
// event.
func (b *Bus) Subscribe(eventType string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{eventType: eventType, handler: h})
}

// Dispatch delivers each event to its matching handlers. Single pass,
// in event order then subscription order. A nil bus drops events.
func (b *Bus) Dispatch(evts ...types.Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, ev := range evts {
		for _, s := range subs {
			if s.eventType != "" && s.eventType != ev.Type {
				continue
			}
			s.handler(ev)
		}
	}
}

// Recorder collects dispatched events. Subscribe its Record method to keep a
// log of a step.
type Recorder struct {
	mu     sync.Mutex
	events []types.Event
}

func (r *Recorder) Record(ev types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Drain returns the recorded events and resets the recorder.
func (r *Recorder) Drain() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}
