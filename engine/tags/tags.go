// Package tags implements item labels and the equipment slot vocabulary.
// Tags compare by identity, not by name.
package tags

import "github.com/google/uuid"

// Tag is a label attached to items.
type Tag struct {
	ID   uuid.UUID
	Name string
}

// New creates a tag with a fresh identity.
func New(name string) Tag {
	return Tag{ID: uuid.New(), Name: name}
}

func (t Tag) String() string { return t.Name }

// List is an ordered set of tags. The zero value is an empty list.
type List struct {
	tags []Tag
}

// NewList creates a list from the given tags, dropping duplicates.
func NewList(tags ...Tag) *List {
	l := &List{tags: make([]Tag, 0, len(tags))}
	for _, t := range tags {
		l.Add(t)
	}
	return l
}

// Add appends a tag. Returns false if the tag is already present.
func (l *List) Add(t Tag) bool {
	if l.Contains(t) {
		return false
	}
	l.tags = append(l.tags, t)
	return true
}

// Remove deletes a tag. Returns false if it was not present.
func (l *List) Remove(t Tag) bool {
	for i, existing := range l.tags {
		if existing.ID == t.ID {
			l.tags = append(l.tags[:i], l.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the tag is in the list.
func (l *List) Contains(t Tag) bool {
	if l == nil {
		return false
	}
	for _, existing := range l.tags {
		if existing.ID == t.ID {
			return true
		}
	}
	return false
}

// Tags returns a copy of the tags in insertion order.
func (l *List) Tags() []Tag {
	if l == nil {
		return nil
	}
	out := make([]Tag, len(l.tags))
	copy(out, l.tags)
	return out
}

// Names returns the tag names in insertion order.
func (l *List) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, len(l.tags))
	for i, t := range l.tags {
		names[i] = t.Name
	}
	return names
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.tags)
}

// Copy returns an independent list holding the same tags.
func (l *List) Copy() *List {
	return NewList(l.Tags()...)
}
