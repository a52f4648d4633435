package item

import (
	"math"
	"testing"

	"github.com/nathoo/invcore/engine/tags"
	"github.com/nathoo/invcore/types"
	"pgregory.net/rapid"
)

func TestStack_AddToStackReturnsRemainder(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		max       int
		add       int
		wantCur   int
		wantSpill int
	}{
		{"fits", 2, 10, 5, 7, 0},
		{"exactly full", 5, 10, 5, 10, 0},
		{"overflow", 8, 10, 5, 10, 3},
		{"already full", 10, 10, 4, 10, 4},
		{"negative ignored", 3, 10, -2, 3, 0},
		{"huge amount", 5, 10, math.MaxInt, 10, math.MaxInt - 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack(tt.current, tt.max)
			spill := s.AddToStack(tt.add)
			if s.Current() != tt.wantCur || spill != tt.wantSpill {
				t.Errorf("got current=%d spill=%d, want %d/%d", s.Current(), spill, tt.wantCur, tt.wantSpill)
			}
			if s.Max() != tt.max {
				t.Errorf("Max changed to %d", s.Max())
			}
		})
	}
}

func TestStack_SetStackCapsAtMax(t *testing.T) {
	s := NewStack(1, 10)
	if rem := s.SetStack(13); rem != 3 || s.Current() != 10 {
		t.Errorf("SetStack(13) = %d, current %d; want 3, 10", rem, s.Current())
	}
	if rem := s.SetStack(4); rem != 0 || s.Current() != 4 {
		t.Errorf("SetStack(4) = %d, current %d; want 0, 4", rem, s.Current())
	}
}

func TestNewStack_Clamps(t *testing.T) {
	s := NewStack(15, 0)
	if s.Max() != 1 || s.Current() != 1 {
		t.Errorf("NewStack(15, 0) = %d/%d, want 1/1", s.Current(), s.Max())
	}
	for _, current := range []int{0, -4} {
		s = NewStack(current, 5)
		if s.Current() != 1 {
			t.Errorf("NewStack(%d, 5) current = %d, want 1", current, s.Current())
		}
	}
	if it := NewStackable("potion", 0, 10); it.Quantity() != 1 {
		t.Errorf("NewStackable with 0 units holds %d, want 1", it.Quantity())
	}
}

func TestItem_CanBeStackedOn(t *testing.T) {
	if New("sword").CanBeStackedOn() {
		t.Error("unique item must not be stackable")
	}
	if !NewStackable("potion", 3, 10).CanBeStackedOn() {
		t.Error("partial stack should accept more")
	}
	if NewStackable("potion", 10, 10).CanBeStackedOn() {
		t.Error("full stack should not accept more")
	}
}

func TestItem_SplitStack(t *testing.T) {
	potion := NewStackable("potion", 25, 30, tags.New("Consumable"))

	split := potion.SplitStack(15)

	if split == potion {
		t.Fatal("expected a new item")
	}
	if potion.Quantity() != 10 {
		t.Errorf("original = %d, want 10", potion.Quantity())
	}
	if split.Quantity() != 15 || split.Stack().Max() != 30 {
		t.Errorf("split = %d/%d, want 15/30", split.Quantity(), split.Stack().Max())
	}
	if split.ID() == potion.ID() {
		t.Error("split must have a new identity")
	}
	if split.Name() != "potion" {
		t.Errorf("split name = %q", split.Name())
	}
	if split.Tags() == potion.Tags() || split.Tags().Len() != 1 {
		t.Error("split must carry an independent copy of the tags")
	}
}

func TestItem_SplitStackRejected(t *testing.T) {
	tests := []struct {
		name   string
		item   *Item
		amount int
	}{
		{"unique item", New("sword"), 1},
		{"single unit", NewStackable("potion", 1, 10), 1},
		{"amount equals current", NewStackable("potion", 5, 10), 5},
		{"amount exceeds current", NewStackable("potion", 5, 10), 7},
		{"zero amount", NewStackable("potion", 5, 10), 0},
		{"negative amount", NewStackable("potion", 5, 10), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.item.Quantity()
			if got := tt.item.SplitStack(tt.amount); got != tt.item {
				t.Error("expected the receiver back")
			}
			if tt.item.Quantity() != before {
				t.Errorf("quantity changed from %d to %d", before, tt.item.Quantity())
			}
		})
	}
}

func TestItem_SplitLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(1, 200).Draw(t, "max")
		current := rapid.IntRange(1, max).Draw(t, "current")
		k := rapid.IntRange(-5, max+5).Draw(t, "k")

		it := NewStackable("ore", current, max)
		split := it.SplitStack(k)

		if k >= 1 && k < current {
			if split == it {
				t.Fatalf("split of %d by %d rejected", current, k)
			}
			if it.Quantity()+split.Quantity() != current {
				t.Fatalf("%d + %d != %d", it.Quantity(), split.Quantity(), current)
			}
			if it.Quantity() < 1 {
				t.Fatalf("original left with %d", it.Quantity())
			}
			return
		}
		if split != it || it.Quantity() != current {
			t.Fatalf("split of %d by %d should be a no-op", current, k)
		}
	})
}

func TestItem_AddToStackConservesUnits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(1, 100).Draw(t, "max")
		current := rapid.IntRange(1, max).Draw(t, "current")
		amount := rapid.IntRange(0, 300).Draw(t, "amount")

		it := NewStackable("arrow", current, max)
		rem := it.AddToStack(amount)

		if it.Quantity()+rem != current+amount {
			t.Fatalf("lost units: %d + %d != %d + %d", it.Quantity(), rem, current, amount)
		}
		if it.Quantity() > max {
			t.Fatalf("current %d exceeds max %d", it.Quantity(), max)
		}
	})
}

func TestItem_UniqueAbsorbsNothing(t *testing.T) {
	sword := New("sword")
	if rem := sword.AddToStack(5); rem != 5 {
		t.Errorf("AddToStack on unique = %d, want 5", rem)
	}
	if sword.Quantity() != 1 {
		t.Errorf("Quantity = %d, want 1", sword.Quantity())
	}
}

func TestItem_CopyHasNewIdentity(t *testing.T) {
	orig := NewStackable("potion", 4, 10)
	cp := orig.Copy()
	if cp.ID() == orig.ID() {
		t.Error("copy must have a new identity")
	}
	cp.AddToStack(3)
	if orig.Quantity() != 4 {
		t.Error("copy must not share the stack")
	}
}

func TestFactory_Build(t *testing.T) {
	reg := tags.NewRegistry()
	f := NewFactory(reg)

	potion := f.Build(types.ItemDef{ID: "potion", Name: "Health Potion", Stack: 5, MaxStack: 10, Tags: []string{"Consumable"}}, 0)
	if potion.Quantity() != 5 || potion.Stack().Max() != 10 {
		t.Errorf("potion = %s", potion)
	}
	consumable, _ := reg.Lookup("Consumable")
	if !potion.ContainsTag(consumable) {
		t.Error("expected interned Consumable tag")
	}

	helm := f.Build(types.ItemDef{ID: "helm", Tags: []string{"Head"}}, 3)
	if helm.Stackable() {
		t.Error("helm should be unique")
	}
	if helm.Name() != "helm" {
		t.Errorf("name fallback = %q, want helm", helm.Name())
	}
}

func TestFactory_BuildAll(t *testing.T) {
	f := NewFactory(tags.NewRegistry())

	stacks := f.BuildAll(types.ItemDef{ID: "arrow", MaxStack: 20}, 45)
	if len(stacks) != 3 {
		t.Fatalf("got %d stacks, want 3", len(stacks))
	}
	total := 0
	for _, s := range stacks {
		total += s.Quantity()
	}
	if total != 45 || stacks[2].Quantity() != 5 {
		t.Errorf("total = %d last = %d, want 45 and 5", total, stacks[2].Quantity())
	}

	rings := f.BuildAll(types.ItemDef{ID: "ring"}, 3)
	if len(rings) != 3 || rings[0].ID() == rings[1].ID() {
		t.Error("expected three distinct unique items")
	}
}
