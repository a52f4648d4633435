package tags

import (
	"sort"
	"sync"
)

// Registry interns tag names so every component refers to the same identity
// for a given name.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Tag
}

// NewRegistry creates a registry seeded with the given names.
func NewRegistry(names ...string) *Registry {
	r := &Registry{byName: make(map[string]Tag, len(names))}
	for _, n := range names {
		r.Intern(n)
	}
	return r
}

// Intern returns the tag registered under name, creating it on first use.
func (r *Registry) Intern(name string) Tag {
	r.mu.RLock()
	t, ok := r.byName[name]
	r.mu.RUnlock()
	if ok {
		return t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byName == nil {
		r.byName = make(map[string]Tag)
	}
	// Another caller may have interned it between the two locks.
	if t, ok := r.byName[name]; ok {
		return t
	}
	t = New(name)
	r.byName[name] = t
	return t
}

// InternAll interns each name and returns the tags in the same order.
func (r *Registry) InternAll(names ...string) []Tag {
	out := make([]Tag, 0, len(names))
	for _, n := range names {
		out = append(out, r.Intern(n))
	}
	return out
}

// Lookup returns the tag registered under name, if any.
func (r *Registry) Lookup(name string) (Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// Tags returns every registered tag sorted by name.
func (r *Registry) Tags() []Tag {
	r.mu.RLock()
	out := make([]Tag, 0, len(r.byName))
	for _, t := range r.byName {
		out = append(out, t)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
