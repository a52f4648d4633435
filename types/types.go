// Package types defines the shared data structures for the invcore engine.
// This package contains only type definitions. It holds no logic and no methods.
package types

// Outcome is the tagged result of an inventory operation. Expected domain
// conditions are reported as outcomes, never as errors.
type Outcome string

// Success outcomes.
const (
	ItemAdded                   Outcome = "ItemAdded"
	ItemStacked                 Outcome = "ItemStacked"
	ItemStackedAndAdded         Outcome = "ItemStackedAndAdded"
	ItemSwapped                 Outcome = "ItemSwapped"
	ItemRemoved                 Outcome = "ItemRemoved"
	ItemRetrieved               Outcome = "ItemRetrieved"
	ItemsRetrieved              Outcome = "ItemsRetrieved"
	ItemStackSplit              Outcome = "ItemStackSplit"
	ItemMovedBetweenInventories Outcome = "ItemMovedBetweenInventories"
)

// Not-found outcomes.
const (
	ItemNotFound            Outcome = "ItemNotFound"
	ItemsNotFound           Outcome = "ItemsNotFound"
	SourceInventoryNotFound Outcome = "SourceInventoryNotFound"
	TargetInventoryNotFound Outcome = "TargetInventoryNotFound"
)

// Conflict and rejection outcomes.
const (
	ItemAlreadyExists        Outcome = "ItemAlreadyExists"
	InventoryAtCapacity      Outcome = "InventoryAtCapacity"
	StackableItemsNotAllowed Outcome = "StackableItemsNotAllowed"
	ItemEquipmentTagMissing  Outcome = "ItemEquipmentTagMissing"
	NoMatchingEquipmentSlots Outcome = "NoMatchingEquipmentSlots"
	ItemStackNotSplit        Outcome = "ItemStackNotSplit"
)

// ItemDef is a catalog template from which items are built.
type ItemDef struct {
	ID       string
	Name     string
	Tags     []string
	Stack    int // initial stack size; ignored when MaxStack is 0
	MaxStack int // 0 = unique, non-stackable item
}

// Spawn describes catalog items seeded into a container at startup.
type Spawn struct {
	Item  string
	Count int
}

// ContainerDef is a catalog container layout.
type ContainerDef struct {
	ID       string
	Name     string
	Kind     string   // "basic", "stackable" or "equipment"
	Capacity int      // 0 = unbounded
	Slots    []string // equipment only; empty = every recognized slot
	Contents []Spawn
	Order    int // source order in the catalog files
}

// CatalogInfo holds catalog metadata.
type CatalogInfo struct {
	Title   string
	Author  string
	Version string
}

// Catalog is the immutable result of loading a catalog directory.
type Catalog struct {
	Info           CatalogInfo
	Items          map[string]ItemDef
	Containers     []ContainerDef
	EquipmentSlots []string // optional override of the recognized slots
}

// Command is the parsed representation of a text command.
type Command struct {
	Verb string
	Args []string // words between the verb and the first preposition
	In   string   // container named after "in"/"into"
	From string   // container named after "from"
	To   string   // container or name after "to"
}

// Event is published after an operation completes.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single engine step.
type Result struct {
	Outcome Outcome
	Events  []Event
	Output  []string
}
