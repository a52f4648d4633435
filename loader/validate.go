package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/invcore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Known container kinds.
var validKinds = map[string]bool{
	"basic":     true,
	"stackable": true,
	"equipment": true,
}

// validate checks the compiled catalog for referential integrity and
// consistency. recognized is the slot set equipment containers may use.
// The result carries warnings even when there are no errors.
func validate(coll *collector, cat *types.Catalog, recognized []string) *ValidationError {
	ve := &ValidationError{}

	if cat.Info.Title == "" {
		ve.errorf("Catalog.title is required")
	}

	// Ids unique within each namespace.
	itemIDs := map[string]bool{}
	for _, raw := range coll.items {
		if itemIDs[raw.id] {
			ve.errorf("duplicate item id %q", raw.id)
		}
		itemIDs[raw.id] = true
	}
	containerIDs := map[string]bool{}
	for _, raw := range coll.containers {
		if containerIDs[raw.id] {
			ve.errorf("duplicate container id %q", raw.id)
		}
		containerIDs[raw.id] = true
	}

	// Declared slots.
	declared := map[string]bool{}
	for _, s := range cat.EquipmentSlots {
		if strings.TrimSpace(s) == "" {
			ve.errorf("EquipmentSlots contains an empty slot name")
			continue
		}
		if declared[s] {
			ve.errorf("duplicate equipment slot %q", s)
		}
		declared[s] = true
	}
	slotSet := make(map[string]bool, len(recognized))
	for _, s := range recognized {
		slotSet[s] = true
	}

	for _, id := range sortedItemIDs(cat) {
		def := cat.Items[id]
		switch {
		case def.MaxStack < 0:
			ve.errorf("item %q max_stack must not be negative", id)
		case def.MaxStack == 0 && def.Stack != 0:
			ve.errorf("item %q sets stack without max_stack >= 1", id)
		case def.MaxStack > 0 && def.Stack < 1:
			ve.errorf("item %q stack must be at least 1", id)
		case def.Stack > def.MaxStack:
			ve.errorf("item %q stack %d exceeds max_stack %d", id, def.Stack, def.MaxStack)
		}
	}

	placed := map[string]bool{}
	for _, c := range cat.Containers {
		if !validKinds[c.Kind] {
			ve.errorf("container %q has unknown kind %q", c.ID, c.Kind)
			continue
		}
		if c.Capacity < 0 {
			ve.errorf("container %q capacity must not be negative", c.ID)
		}

		slots := c.Slots
		if c.Kind == "equipment" {
			if c.Capacity != 0 {
				ve.warnf("container %q: capacity is ignored for equipment", c.ID)
			}
			for _, s := range c.Slots {
				if !slotSet[s] {
					ve.errorf("container %q slot %q is not a recognized equipment slot", c.ID, s)
				}
			}
			if len(slots) == 0 {
				slots = recognized
			}
		} else if len(c.Slots) > 0 {
			ve.warnf("container %q: slots are ignored for kind %q", c.ID, c.Kind)
		}

		for _, sp := range c.Contents {
			def, ok := cat.Items[sp.Item]
			if !ok {
				ve.errorf("container %q contents reference undefined item %q", c.ID, sp.Item)
				continue
			}
			placed[sp.Item] = true
			if sp.Count < 1 {
				ve.errorf("container %q contents: count for %q must be at least 1", c.ID, sp.Item)
			}
			if c.Kind != "equipment" {
				continue
			}
			if def.MaxStack > 0 {
				ve.errorf("container %q is equipment and cannot hold stackable item %q", c.ID, sp.Item)
			} else if !sharesSlot(def.Tags, slots) {
				ve.errorf("item %q has no slot in equipment container %q", sp.Item, c.ID)
			}
		}
	}

	// Warnings: catalog items nothing starts out holding.
	for _, id := range sortedItemIDs(cat) {
		if !placed[id] {
			ve.warnf("item %q is not placed in any container", id)
		}
	}

	return ve
}

func sharesSlot(itemTags, slots []string) bool {
	for _, t := range itemTags {
		for _, s := range slots {
			if t == s {
				return true
			}
		}
	}
	return false
}

func sortedItemIDs(cat *types.Catalog) []string {
	ids := make([]string, 0, len(cat.Items))
	for id := range cat.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
