package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/nathoo/invcore/engine"
	"github.com/nathoo/invcore/loader"
	"github.com/nathoo/invcore/types"
)

// testCatalog returns a minimal catalog for CLI testing.
func testCatalog() *types.Catalog {
	return &types.Catalog{
		Info: types.CatalogInfo{Title: "Test Catalog", Author: "Test", Version: "1.0"},
		Items: map[string]types.ItemDef{
			"potion": {ID: "potion", Name: "Potion", Stack: 5, MaxStack: 10},
			"helm":   {ID: "helm", Name: "Helm", Tags: []string{"Head"}},
		},
		Containers: []types.ContainerDef{
			{ID: "bag", Name: "Bag", Kind: "stackable", Capacity: 3,
				Contents: []types.Spawn{{Item: "potion", Count: 4}}},
			{ID: "body", Name: "Body", Kind: "equipment", Slots: []string{"Head"}},
		},
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	eng, err := engine.New(testCatalog())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		In:     strings.NewReader(input),
		Out:    &out,
		Plain:  true,
	}
	return c, &out
}

func TestCLI_ListContainer(t *testing.T) {
	c, out := newTestCLI(t, "list bag\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Bag (stackable, 1/3):") {
		t.Errorf("expected bag header, got:\n%s", output)
	}
	if !strings.Contains(output, "Potion x4/10") {
		t.Error("expected seeded potion stack in listing")
	}
}

func TestCLI_EquipAndOutcome(t *testing.T) {
	c, out := newTestCLI(t, "spawn helm in body\nspawn helm in body\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, ": ItemAdded") {
		t.Error("expected ItemAdded for the first helm")
	}
	if !strings.Contains(output, ": ItemSwapped") {
		t.Error("expected ItemSwapped for the second helm")
	}
	if !strings.Contains(output, "You are now holding Helm") {
		t.Error("expected displaced helm to be held")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/quit", "/trace", "spawn <item>", "move <item> from <a> to <b>"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command: /bogus") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_QuitStopsReading(t *testing.T) {
	c, out := newTestCLI(t, "/quit\nlist bag\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "[Goodbye.]") {
		t.Error("expected goodbye message")
	}
	if strings.Contains(output, "Bag (") {
		t.Error("commands after /quit should not run")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nspawn potion in bag\n/trace\nspawn potion in bag\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
	if strings.Count(output, "[trace] Events:") != 1 {
		t.Errorf("expected exactly one traced step, got:\n%s", output)
	}
	if !strings.Contains(output, "item_added") {
		t.Error("expected item_added event in trace")
	}
}

func TestCLI_TraceFlag(t *testing.T) {
	c, out := newTestCLI(t, "spawn potion in bag\n")
	c.Trace = true
	c.Run()

	if !strings.Contains(out.String(), "[trace] Outcome:") {
		t.Error("expected outcome trace with Trace set")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "[bag: stackable") {
		t.Errorf("expected bag in state output, got:\n%s", output)
	}
	if !strings.Contains(output, "capacity 3") {
		t.Error("expected capacity in state output")
	}
	if !strings.Contains(output, "Held: 0 item(s)") {
		t.Error("expected held count in state output")
	}
	if !strings.Contains(output, "Move policy: uniform") {
		t.Error("expected move policy in state output")
	}
}

func TestCLI_SkipsBlankAndCommentLines(t *testing.T) {
	c, out := newTestCLI(t, "\n\n# a comment\n   \n/quit\n")
	c.Run()

	output := out.String()
	if strings.Contains(output, "What do you want to do?") {
		t.Error("empty lines should be silently skipped by CLI")
	}
	if strings.Contains(output, "a comment") {
		t.Error("comment lines should not be echoed or run")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "hand\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> hand\n") {
		t.Errorf("expected echoed input, got:\n%s", out.String())
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "spawn potion in bag\nagain\ng\n/quit\n")
	c.Run()

	// 4 seeded, then one potion per spawn.
	bag := c.Engine.Containers()[0].Container
	total := 0
	for _, it := range bag.TryGetAllItems().Items {
		total += it.Quantity()
	}
	if total != 7 {
		t.Errorf("bag holds %d potions, want 7\n%s", total, out.String())
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestLineOutcome(t *testing.T) {
	tests := []struct {
		line string
		want types.Outcome
		ok   bool
	}{
		{"Helm [1234abcd] -> Body: ItemSwapped", types.ItemSwapped, true},
		{"Potion x5/10 [1234abcd] -> Bag: InventoryAtCapacity", types.InventoryAtCapacity, true},
		{"Bag (stackable, 1/3):", "", false},
		{"Note: nothing here", "", false},
		{"You are holding nothing.", "", false},
	}
	for _, tt := range tests {
		got, ok := lineOutcome(tt.line)
		if got != tt.want || ok != tt.ok {
			t.Errorf("lineOutcome(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStyles_ZeroValueIsPlain(t *testing.T) {
	var s styles
	line := "Helm [1234abcd] -> Body: ItemSwapped"
	if got := s.line(line); got != line {
		t.Errorf("line() = %q, want unchanged", got)
	}
	if got := s.systemMsg("hi"); got != "[hi]" {
		t.Errorf("systemMsg() = %q", got)
	}
	if got := s.traceMsg("x"); got != "[trace] x" {
		t.Errorf("traceMsg() = %q", got)
	}
}

func TestFormatData_SortedKeys(t *testing.T) {
	got := formatData(map[string]any{"outcome": "ItemAdded", "container": "c", "item": "i"})
	if got != "container=c item=i outcome=ItemAdded" {
		t.Errorf("formatData = %q", got)
	}
}

func TestBanner(t *testing.T) {
	tests := []struct {
		info types.CatalogInfo
		want string
	}{
		{types.CatalogInfo{Title: "Demo", Version: "1.0", Author: "Ann"}, "Demo v1.0 by Ann"},
		{types.CatalogInfo{Title: "Demo"}, "Demo"},
		{types.CatalogInfo{Title: "Demo", Author: "Ann"}, "Demo by Ann"},
	}
	for _, tt := range tests {
		if got := Banner(tt.info); got != tt.want {
			t.Errorf("Banner(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestCLI_DemoWalkthrough(t *testing.T) {
	cat, err := loader.Load("../catalogs/demo")
	if err != nil {
		t.Fatalf("loader.Load: %v", err)
	}
	eng, err := engine.New(cat)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	script, err := os.Open("../catalogs/demo/walkthrough.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer script.Close()

	var out bytes.Buffer
	c := &CLI{Engine: eng, In: script, Out: &out, Plain: true, EchoInput: true}
	c.Run()

	output := out.String()
	for _, want := range []string{
		"Chest -> Body: ItemMovedBetweenInventories",
		"You are now holding Iron Helm",
		"-> Storage Chest: ItemAdded",
		"Arrow split into",
		"Hidden Stash is now called Secret Stash.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("walkthrough output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, " matches ") {
		t.Errorf("walkthrough hit a resolution error:\n%s", output)
	}
	if len(eng.Hand()) != 0 {
		t.Errorf("hand should be empty after the tour, holds %d", len(eng.Hand()))
	}
}
