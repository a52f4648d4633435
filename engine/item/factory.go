package item

import (
	"github.com/nathoo/invcore/engine/tags"
	"github.com/nathoo/invcore/types"
)

// Factory builds items from catalog templates. Tag names are interned
// through the registry so items and equipment slots share tag identities.
type Factory struct {
	Tags *tags.Registry
}

// NewFactory creates a factory bound to a tag registry.
func NewFactory(reg *tags.Registry) *Factory {
	return &Factory{Tags: reg}
}

// Build creates one item from def. For stackable templates amount is the
// stack size (def.Stack when amount < 1); unique templates ignore amount.
func (f *Factory) Build(def types.ItemDef, amount int) *Item {
	name := def.Name
	if name == "" {
		name = def.ID
	}
	labels := f.Tags.InternAll(def.Tags...)

	if def.MaxStack < 1 {
		return New(name, labels...)
	}
	if amount < 1 {
		amount = def.Stack
	}
	if amount < 1 {
		amount = 1
	}
	return NewStackable(name, amount, def.MaxStack, labels...)
}

// BuildAll creates as many items as needed to hold count units of def:
// count separate items for unique templates, or full stacks followed by a
// partial one for stackable templates.
func (f *Factory) BuildAll(def types.ItemDef, count int) []*Item {
	if count < 1 {
		count = 1
	}
	if def.MaxStack < 1 {
		out := make([]*Item, 0, count)
		for i := 0; i < count; i++ {
			out = append(out, f.Build(def, 1))
		}
		return out
	}

	var out []*Item
	for count > 0 {
		n := count
		if n > def.MaxStack {
			n = def.MaxStack
		}
		out = append(out, f.Build(def, n))
		count -= n
	}
	return out
}
