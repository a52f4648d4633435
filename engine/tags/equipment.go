package tags

import (
	"fmt"

	"github.com/google/uuid"
)

// Default equipment slot names.
const (
	Head      = "Head"
	Chest     = "Chest"
	Shoulders = "Shoulders"
	Hands     = "Hands"
	Belt      = "Belt"
	Legs      = "Legs"
	Feet      = "Feet"
	OffHand   = "OffHand"
	MainHand  = "MainHand"
	Neck      = "Neck"
	LeftEar   = "LeftEar"
	RightEar  = "RightEar"
)

// DefaultSlotNames returns the default equipment slots in display order.
func DefaultSlotNames() []string {
	return []string{
		Head, Chest, Shoulders, Hands, Belt, Legs,
		Feet, OffHand, MainHand, Neck, LeftEar, RightEar,
	}
}

// EquipmentSet is the immutable set of tags recognized as equipment slots.
// Build it once at startup and pass it to whatever needs it.
type EquipmentSet struct {
	tags []Tag
	byID map[uuid.UUID]int
}

// NewEquipmentSet creates a set from the given tags, dropping duplicates.
func NewEquipmentSet(slots ...Tag) *EquipmentSet {
	s := &EquipmentSet{
		tags: make([]Tag, 0, len(slots)),
		byID: make(map[uuid.UUID]int, len(slots)),
	}
	for _, t := range slots {
		if _, dup := s.byID[t.ID]; dup {
			continue
		}
		s.byID[t.ID] = len(s.tags)
		s.tags = append(s.tags, t)
	}
	return s
}

// EquipmentSetFromNames interns names through reg and builds a set from them.
func EquipmentSetFromNames(reg *Registry, names []string) *EquipmentSet {
	return NewEquipmentSet(reg.InternAll(names...)...)
}

// DefaultEquipmentSet builds the set of default slots interned through reg.
func DefaultEquipmentSet(reg *Registry) *EquipmentSet {
	return EquipmentSetFromNames(reg, DefaultSlotNames())
}

// Contains reports whether t is a recognized equipment tag.
func (s *EquipmentSet) Contains(t Tag) bool {
	if s == nil {
		return false
	}
	_, ok := s.byID[t.ID]
	return ok
}

// Members returns the tags of l that are equipment tags, in list order.
func (s *EquipmentSet) Members(l *List) []Tag {
	var out []Tag
	for _, t := range l.Tags() {
		if s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Lookup finds a slot tag by name.
func (s *EquipmentSet) Lookup(name string) (Tag, bool) {
	if s == nil {
		return Tag{}, false
	}
	for _, t := range s.tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// Subset resolves slot names against the set. Every name must be recognized.
func (s *EquipmentSet) Subset(names ...string) ([]Tag, error) {
	out := make([]Tag, 0, len(names))
	for _, n := range names {
		t, ok := s.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("unknown equipment slot %q", n)
		}
		out = append(out, t)
	}
	return out, nil
}

// Tags returns the slot tags in construction order.
func (s *EquipmentSet) Tags() []Tag {
	if s == nil {
		return nil
	}
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s *EquipmentSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tags)
}
