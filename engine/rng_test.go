package engine

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := make([]byte, 16)
		b := make([]byte, 16)
		rng1.Read(a)
		rng2.Read(b)
		if !bytes.Equal(a, b) {
			t.Fatalf("read %d: got %x and %x from same seed", i, a, b)
		}
	}
}

func TestRNG_SeedsDiffer(t *testing.T) {
	a := make([]byte, 16)
	b := make([]byte, 16)
	NewRNG(1).Read(a)
	NewRNG(2).Read(b)
	if bytes.Equal(a, b) {
		t.Fatal("different seeds produced the same bytes")
	}
}

func TestRNG_OddLengthRead(t *testing.T) {
	rng := NewRNG(7)
	p := make([]byte, 13)
	n, err := rng.Read(p)
	if n != 13 || err != nil {
		t.Fatalf("Read = %d, %v; want 13, nil", n, err)
	}
}

func TestRNG_Position(t *testing.T) {
	rng := NewRNG(5)
	if rng.Position() != 0 || rng.Seed() != 5 {
		t.Fatalf("fresh rng = seed %d pos %d", rng.Seed(), rng.Position())
	}
	buf := make([]byte, 16)
	for i := 0; i < 3; i++ {
		rng.Read(buf)
	}
	if rng.Position() != 3 {
		t.Errorf("Position = %d, want 3", rng.Position())
	}
}

func TestNew_SeededIdentitiesRepeat(t *testing.T) {
	t.Cleanup(func() { uuid.SetRand(nil) })

	ids := func() []string {
		e := newTestEngine(t, WithSeed(99))
		var out []string
		for _, n := range e.Containers() {
			out = append(out, n.Container.ID().String())
			for _, it := range n.Container.TryGetAllItems().Items {
				out = append(out, it.ID().String())
			}
		}
		return out
	}

	first, second := ids(), ids()
	if len(first) != len(second) {
		t.Fatalf("id counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("id %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}
