// Package resolve maps item and container references from parsed commands
// to live objects.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/nathoo/invcore/engine/container"
	"github.com/nathoo/invcore/engine/item"
	"github.com/nathoo/invcore/types"
)

// minPrefix is the shortest identity prefix accepted as a reference.
const minPrefix = 4

// AmbiguityError indicates multiple candidates matched a reference.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no candidate matched a reference.
type NotFoundError struct {
	Name string
	Kind string // "item", "template" or "container"
}

func (e *NotFoundError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "thing"
	}
	return fmt.Sprintf("no %s matches %q", kind, e.Name)
}

// Named is a container together with the catalog key it was created from.
// Key is empty for containers created at runtime.
type Named struct {
	Key       string
	Container *container.Container
}

// Item finds the item ref refers to among items. A full identity or an
// identity prefix wins over names; an exact name wins over a word match.
func Item(items []*item.Item, ref string) (*item.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &NotFoundError{Name: ref, Kind: "item"}
	}

	if hit := byID(items, ref, func(it *item.Item) uuid.UUID { return it.ID() }); len(hit) > 0 {
		return pickItem(ref, hit)
	}

	lower := strings.ToLower(ref)
	var exact, partial []*item.Item
	for _, it := range items {
		switch matchName(it.Name(), "", lower) {
		case exactMatch:
			exact = append(exact, it)
		case wordMatch:
			partial = append(partial, it)
		}
	}
	if len(exact) > 0 {
		return pickItem(ref, exact)
	}
	if len(partial) > 0 {
		return pickItem(ref, partial)
	}
	return nil, &NotFoundError{Name: ref, Kind: "item"}
}

func pickItem(ref string, hits []*item.Item) (*item.Item, error) {
	if len(hits) == 1 {
		return hits[0], nil
	}
	candidates := make([]string, len(hits))
	for i, it := range hits {
		candidates[i] = it.String()
	}
	return nil, &AmbiguityError{Name: ref, Candidates: candidates}
}

// Template finds the catalog item definition ref refers to, by id or name.
func Template(defs map[string]types.ItemDef, ref string) (types.ItemDef, error) {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)

	if def, ok := defs[ref]; ok {
		return def, nil
	}

	var exact, partial []string
	for id, def := range defs {
		switch matchName(def.Name, id, lower) {
		case exactMatch:
			exact = append(exact, id)
		case wordMatch:
			partial = append(partial, id)
		}
	}
	hits := exact
	if len(hits) == 0 {
		hits = partial
	}
	switch len(hits) {
	case 0:
		return types.ItemDef{}, &NotFoundError{Name: ref, Kind: "template"}
	case 1:
		return defs[hits[0]], nil
	default:
		sort.Strings(hits)
		return types.ItemDef{}, &AmbiguityError{Name: ref, Candidates: hits}
	}
}

// Container finds the container ref refers to by catalog key, name or
// identity prefix.
func Container(named []Named, ref string) (*container.Container, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &NotFoundError{Name: ref, Kind: "container"}
	}
	lower := strings.ToLower(ref)

	for _, n := range named {
		if n.Key != "" && strings.EqualFold(n.Key, ref) {
			return n.Container, nil
		}
	}

	if hit := byID(named, ref, func(n Named) uuid.UUID { return n.Container.ID() }); len(hit) > 0 {
		return pickContainer(ref, hit)
	}

	var exact, partial []Named
	for _, n := range named {
		switch matchName(n.Container.Name(), n.Key, lower) {
		case exactMatch:
			exact = append(exact, n)
		case wordMatch:
			partial = append(partial, n)
		}
	}
	if len(exact) > 0 {
		return pickContainer(ref, exact)
	}
	if len(partial) > 0 {
		return pickContainer(ref, partial)
	}
	return nil, &NotFoundError{Name: ref, Kind: "container"}
}

func pickContainer(ref string, hits []Named) (*container.Container, error) {
	if len(hits) == 1 {
		return hits[0].Container, nil
	}
	candidates := make([]string, len(hits))
	for i, n := range hits {
		if n.Key != "" {
			candidates[i] = n.Key
		} else {
			candidates[i] = n.Container.Name() + " [" + n.Container.ID().String()[:8] + "]"
		}
	}
	return nil, &AmbiguityError{Name: ref, Candidates: candidates}
}

// byID returns the candidates whose identity equals ref or starts with it.
// A full identity short-circuits the prefix scan.
func byID[T any](candidates []T, ref string, id func(T) uuid.UUID) []T {
	if u, err := uuid.Parse(ref); err == nil {
		for _, c := range candidates {
			if id(c) == u {
				return []T{c}
			}
		}
		return nil
	}
	if len(ref) < minPrefix || !isHex(ref) {
		return nil
	}
	lower := strings.ToLower(ref)
	var out []T
	for _, c := range candidates {
		if strings.HasPrefix(id(c).String(), lower) {
			out = append(out, c)
		}
	}
	return out
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F', r == '-':
		default:
			return false
		}
	}
	return true
}

type match int

const (
	noMatch match = iota
	wordMatch
	exactMatch
)

// matchName checks a display name and an optional catalog key against the
// lowercased query. Supports exact match, underscore normalization against
// the key ("iron helm" matches iron_helm) and word match ("helm" matches
// "Iron Helm").
func matchName(name, key, lower string) match {
	nameLower := strings.ToLower(name)
	if nameLower == lower {
		return exactMatch
	}
	if key != "" {
		keyLower := strings.ToLower(key)
		if keyLower == lower || strings.ReplaceAll(lower, " ", "_") == keyLower {
			return exactMatch
		}
	}
	for _, word := range strings.Fields(nameLower) {
		if word == lower {
			return wordMatch
		}
	}
	return noMatch
}
