package tags

import (
	"sync"
	"testing"
)

func TestList_AddRejectsDuplicates(t *testing.T) {
	head := New("Head")
	l := NewList()

	if !l.Add(head) {
		t.Fatal("expected first Add to succeed")
	}
	if l.Add(head) {
		t.Error("expected second Add of the same tag to fail")
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}

func TestList_ComparesByIdentity(t *testing.T) {
	a := New("Head")
	b := New("Head")
	l := NewList(a)

	if l.Contains(b) {
		t.Error("tags with the same name but different identity must not match")
	}
	if !l.Contains(a) {
		t.Error("expected list to contain a")
	}
}

func TestList_Remove(t *testing.T) {
	a, b := New("a"), New("b")
	l := NewList(a, b)

	if !l.Remove(a) {
		t.Fatal("expected Remove to succeed")
	}
	if l.Remove(a) {
		t.Error("expected second Remove to fail")
	}
	if got := l.Names(); len(got) != 1 || got[0] != "b" {
		t.Errorf("Names = %v, want [b]", got)
	}
}

func TestList_CopyIsIndependent(t *testing.T) {
	a := New("a")
	l := NewList(a)
	cp := l.Copy()
	cp.Add(New("b"))

	if l.Len() != 1 {
		t.Errorf("original Len = %d, want 1", l.Len())
	}
	if !cp.Contains(a) {
		t.Error("copy should keep the original tags")
	}
}

func TestList_NilIsEmpty(t *testing.T) {
	var l *List
	if l.Contains(New("x")) || l.Len() != 0 || l.Tags() != nil {
		t.Error("nil list should behave as empty")
	}
}

func TestRegistry_InternReturnsSameIdentity(t *testing.T) {
	r := NewRegistry()
	a := r.Intern("Head")
	b := r.Intern("Head")
	if a.ID != b.ID {
		t.Error("expected interned tags to share identity")
	}
	if _, ok := r.Lookup("Chest"); ok {
		t.Error("Lookup should not create tags")
	}
}

func TestRegistry_ConcurrentIntern(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	ids := make(chan Tag, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- r.Intern("Potion")
		}()
	}
	wg.Wait()
	close(ids)

	first := <-ids
	for tag := range ids {
		if tag.ID != first.ID {
			t.Fatal("concurrent Intern produced different identities")
		}
	}
}

func TestRegistry_TagsSorted(t *testing.T) {
	r := NewRegistry("b", "a", "c")
	got := r.Tags()
	if len(got) != 3 || got[0].Name != "a" || got[2].Name != "c" {
		t.Errorf("Tags = %v, want sorted a,b,c", got)
	}
}

func TestDefaultEquipmentSet(t *testing.T) {
	r := NewRegistry()
	set := DefaultEquipmentSet(r)

	if set.Len() != 12 {
		t.Errorf("Len = %d, want 12", set.Len())
	}
	head, _ := r.Lookup(Head)
	if !set.Contains(head) {
		t.Error("expected Head in default set")
	}
	if set.Contains(r.Intern("Consumable")) {
		t.Error("Consumable must not be an equipment tag")
	}
}

func TestEquipmentSet_MembersKeepsItemOrder(t *testing.T) {
	r := NewRegistry()
	set := DefaultEquipmentSet(r)
	l := NewList(r.Intern("Armor"), r.Intern(MainHand), r.Intern(OffHand))

	got := set.Members(l)
	if len(got) != 2 {
		t.Fatalf("Members = %v, want 2 tags", got)
	}
	if got[0].Name != MainHand || got[1].Name != OffHand {
		t.Errorf("Members order = %v, want [MainHand OffHand]", got)
	}
}

func TestEquipmentSet_Subset(t *testing.T) {
	r := NewRegistry()
	set := DefaultEquipmentSet(r)

	slots, err := set.Subset(Head, Chest)
	if err != nil {
		t.Fatalf("Subset: %v", err)
	}
	if len(slots) != 2 || slots[0].Name != Head {
		t.Errorf("Subset = %v", slots)
	}

	if _, err := set.Subset("Tail"); err == nil {
		t.Error("expected error for unknown slot")
	}
}
