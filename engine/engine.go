// Package engine provides the Step() orchestrator that wires together
// parsing, resolution, containers and events into a single command.
package engine

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nathoo/invcore/engine/container"
	"github.com/nathoo/invcore/engine/events"
	"github.com/nathoo/invcore/engine/item"
	"github.com/nathoo/invcore/engine/manager"
	"github.com/nathoo/invcore/engine/parser"
	"github.com/nathoo/invcore/engine/placement"
	"github.com/nathoo/invcore/engine/resolve"
	"github.com/nathoo/invcore/engine/tags"
	"github.com/nathoo/invcore/types"
	"github.com/sirupsen/logrus"
)

// Engine holds the catalog, the containers built from it and the items
// currently held outside any container.
type Engine struct {
	Catalog   *types.Catalog
	Tags      *tags.Registry
	Equipment *tags.EquipmentSet
	Manager   *manager.Manager
	Factory   *item.Factory
	Bus       *events.Bus

	named []resolve.Named
	hand  []*item.Item
	rec   *events.Recorder
	l     logrus.FieldLogger
}

type options struct {
	logger logrus.FieldLogger
	policy manager.MovePolicy
	slots  []string
	seed   int64
}

// Option configures an Engine.
type Option func(*options)

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

func WithMovePolicy(p manager.MovePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithEquipmentSlots sets the recognized equipment slots. A catalog that
// declares its own slots takes precedence.
func WithEquipmentSlots(names []string) Option {
	return func(o *options) { o.slots = names }
}

// WithSeed makes identities repeat across runs with the same seed. It
// replaces the process-wide uuid source, so it suits single-threaded
// replays only; 0 leaves the source alone.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// New builds an engine from a catalog: one container per catalog container,
// seeded with its contents through the normal placement rules.
func New(cat *types.Catalog, opts ...Option) (*Engine, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}
	if o.seed != 0 {
		uuid.SetRand(NewRNG(o.seed))
	}

	slots := tags.DefaultSlotNames()
	if len(o.slots) > 0 {
		slots = o.slots
	}
	if len(cat.EquipmentSlots) > 0 {
		slots = cat.EquipmentSlots
	}

	reg := tags.NewRegistry()
	set := tags.EquipmentSetFromNames(reg, slots)
	bus := events.NewBus()
	rec := &events.Recorder{}
	bus.Subscribe("", rec.Record)

	e := &Engine{
		Catalog:   cat,
		Tags:      reg,
		Equipment: set,
		Factory:   item.NewFactory(reg),
		Bus:       bus,
		rec:       rec,
		l:         o.logger,
	}
	e.Manager = manager.New(set,
		manager.WithLogger(o.logger),
		manager.WithMovePolicy(o.policy),
		manager.WithEvents(bus),
	)

	for _, def := range cat.Containers {
		if err := e.buildContainer(def); err != nil {
			return nil, err
		}
	}
	rec.Drain()

	e.l.WithFields(logrus.Fields{
		"containers": len(e.named),
		"templates":  len(cat.Items),
		"policy":     o.policy.String(),
		"seed":       o.seed,
	}).Info("engine ready")
	return e, nil
}

func (e *Engine) buildContainer(def types.ContainerDef) error {
	kind, err := placement.ParseKind(def.Kind)
	if err != nil {
		return fmt.Errorf("container %q: %w", def.ID, err)
	}
	name := def.Name
	if name == "" {
		name = def.ID
	}

	var c *container.Container
	if kind == placement.Equipment {
		c, err = e.Manager.CreateEquipmentInventory(name, def.Slots...)
	} else {
		c, err = e.Manager.CreateInventory(kind, name, def.Capacity)
	}
	if err != nil {
		return err
	}
	e.named = append(e.named, resolve.Named{Key: def.ID, Container: c})

	for _, spawn := range def.Contents {
		idef, ok := e.Catalog.Items[spawn.Item]
		if !ok {
			return fmt.Errorf("container %q: unknown item %q", def.ID, spawn.Item)
		}
		for _, it := range e.Factory.BuildAll(idef, spawn.Count) {
			r := c.TryAddItem(it)
			if !placement.Placed(r.Outcome) || r.Outcome == types.ItemSwapped {
				return fmt.Errorf("container %q: seeding %q: %s", def.ID, spawn.Item, r.Outcome)
			}
		}
	}
	return nil
}

// Containers returns the containers in catalog order.
func (e *Engine) Containers() []resolve.Named {
	out := make([]resolve.Named, len(e.named))
	copy(out, e.named)
	return out
}

// Hand returns the items held outside any container.
func (e *Engine) Hand() []*item.Item {
	out := make([]*item.Item, len(e.hand))
	copy(out, e.hand)
	return out
}

// Step processes one command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 1. Parse input.
	cmd := parser.Parse(input)

	// 2. Empty input.
	if cmd.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}
	e.l.WithFields(logrus.Fields{"verb": cmd.Verb, "args": strings.Join(cmd.Args, " ")}).Debug("step")

	// 3. Run the command.
	var err error
	switch cmd.Verb {
	case "list":
		err = e.cmdList(cmd, &result)
	case "inventories":
		e.cmdInventories(&result)
	case "hand":
		e.cmdHand(&result)
	case "spawn":
		err = e.cmdSpawn(cmd, &result)
	case "add":
		err = e.cmdAdd(cmd, &result)
	case "show":
		err = e.cmdShow(cmd, &result)
	case "remove":
		err = e.cmdRemove(cmd, &result)
	case "split":
		err = e.cmdSplit(cmd, &result)
	case "move":
		err = e.cmdMove(cmd, &result)
	case "find":
		err = e.cmdFind(cmd, &result)
	case "slots":
		err = e.cmdSlots(cmd, &result)
	case "rename":
		err = e.cmdRename(cmd, &result)
	default:
		result.Output = append(result.Output, fmt.Sprintf("I don't know how to %q.", cmd.Verb))
	}

	// 4. Resolution and usage errors are reported as output.
	if err != nil {
		result.Output = append(result.Output, err.Error())
	}

	// 5. Collect events published during the step.
	result.Events = e.rec.Drain()
	return result
}

// --- references ---

func (e *Engine) container(ref string) (*container.Container, error) {
	if ref == "" {
		return nil, errors.New("which container?")
	}
	return resolve.Container(e.named, ref)
}

func (e *Engine) itemIn(c *container.Container, ref string) (*item.Item, error) {
	if ref == "" {
		return nil, errors.New("which item?")
	}
	it, err := resolve.Item(c.TryGetAllItems().Items, ref)
	var nf *resolve.NotFoundError
	if errors.As(err, &nf) {
		return nil, fmt.Errorf("%s has no item matching %q", c.Name(), nf.Name)
	}
	return it, err
}

// trailingCount splits a trailing integer off args.
func trailingCount(args []string) ([]string, int, bool) {
	if len(args) < 2 {
		return args, 0, false
	}
	n, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return args, 0, false
	}
	return args[:len(args)-1], n, true
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// --- hand ---

func (e *Engine) hold(it *item.Item) {
	if it == nil || it.Quantity() == 0 {
		return
	}
	for _, h := range e.hand {
		if h == it {
			return
		}
	}
	e.hand = append(e.hand, it)
}

func (e *Engine) release(it *item.Item) {
	for i, h := range e.hand {
		if h == it {
			e.hand = append(e.hand[:i], e.hand[i+1:]...)
			return
		}
	}
}

func (e *Engine) holds(it *item.Item) bool {
	for _, h := range e.hand {
		if h == it {
			return true
		}
	}
	return false
}

// stored reports whether some container holds it.
func (e *Engine) stored(it *item.Item) bool {
	for _, n := range e.named {
		if n.Container.TryGetItem(it.ID()).Outcome == types.ItemRetrieved {
			return true
		}
	}
	return false
}

// settle keeps ownership explicit after an add: the incoming item leaves the
// hand once placed or absorbed, and a displaced or refused item is held.
func (e *Engine) settle(it *item.Item, r placement.Result, result *types.Result) {
	switch {
	case r.Outcome == types.ItemSwapped:
		e.release(it)
		e.hold(r.Item)
		result.Output = append(result.Output, "You are now holding "+r.Item.String()+".")
	case placement.Placed(r.Outcome):
		e.release(it)
	default:
		if !e.holds(it) && it.Quantity() > 0 {
			e.hold(it)
			result.Output = append(result.Output, "You are now holding "+it.String()+".")
		}
	}
}

func (e *Engine) publish(typ string, data map[string]any) {
	e.Bus.Dispatch(types.Event{Type: typ, Data: data})
}

// --- commands ---

func (e *Engine) cmdList(cmd types.Command, result *types.Result) error {
	ref := firstOf(strings.Join(cmd.Args, " "), cmd.In)
	if ref == "" {
		for _, n := range e.named {
			result.Output = append(result.Output, e.describe(n.Container)...)
		}
		if len(e.hand) > 0 {
			e.cmdHand(result)
		}
		return nil
	}
	c, err := e.container(ref)
	if err != nil {
		return err
	}
	r := c.TryGetAllItems()
	result.Outcome = r.Outcome
	result.Output = append(result.Output, e.describe(c)...)
	return nil
}

func (e *Engine) describe(c *container.Container) []string {
	header := fmt.Sprintf("%s (%s, %d", c.Name(), c.Kind(), c.Count())
	if c.Capacity() > 0 {
		header += fmt.Sprintf("/%d", c.Capacity())
	}
	header += "):"

	out := []string{header}
	if c.Kind() == placement.Equipment {
		for _, s := range c.Slots() {
			occupant := "-"
			if s.Item != nil {
				occupant = s.Item.String()
			}
			out = append(out, fmt.Sprintf("  %-10s %s", s.Tag.Name, occupant))
		}
		return out
	}
	items := c.TryGetAllItems().Items
	if len(items) == 0 {
		return append(out, "  (empty)")
	}
	for _, it := range items {
		out = append(out, "  "+it.String())
	}
	return out
}

func (e *Engine) cmdInventories(result *types.Result) {
	for _, n := range e.named {
		c := n.Container
		result.Output = append(result.Output,
			fmt.Sprintf("%-12s %-20s %-10s %d items", n.Key, c.Name(), c.Kind(), c.Count()))
	}
}

func (e *Engine) cmdHand(result *types.Result) {
	if len(e.hand) == 0 {
		result.Output = append(result.Output, "You are holding nothing.")
		return
	}
	result.Output = append(result.Output, "Holding:")
	for _, it := range e.hand {
		result.Output = append(result.Output, "  "+it.String())
	}
}

func (e *Engine) cmdSpawn(cmd types.Command, result *types.Result) error {
	args, count, ok := trailingCount(cmd.Args)
	if !ok {
		count = 1
	}
	def, err := resolve.Template(e.Catalog.Items, strings.Join(args, " "))
	if err != nil {
		return err
	}

	items := e.Factory.BuildAll(def, count)
	ref := firstOf(cmd.In, cmd.To)
	if ref == "" {
		for _, it := range items {
			e.hold(it)
			result.Output = append(result.Output, "You are now holding "+it.String()+".")
		}
		return nil
	}
	c, err := e.container(ref)
	if err != nil {
		for _, it := range items {
			e.hold(it)
		}
		return err
	}
	for _, it := range items {
		e.addTo(c, it, result)
	}
	return nil
}

func (e *Engine) addTo(c *container.Container, it *item.Item, result *types.Result) {
	label := it.String()
	r := c.TryAddItem(it)
	result.Outcome = r.Outcome
	result.Output = append(result.Output, fmt.Sprintf("%s -> %s: %s", label, c.Name(), r.Outcome))
	if placement.Placed(r.Outcome) {
		e.publish(events.ItemAdded, map[string]any{
			"container": c.ID().String(),
			"item":      it.ID().String(),
			"outcome":   string(r.Outcome),
		})
	}
	e.settle(it, r, result)
}

func (e *Engine) cmdAdd(cmd types.Command, result *types.Result) error {
	c, err := e.container(firstOf(cmd.To, cmd.In))
	if err != nil {
		return err
	}
	ref := strings.Join(cmd.Args, " ")
	if ref == "" {
		return errors.New("add what?")
	}

	// Held items first, then catalog templates.
	it, err := resolve.Item(e.hand, ref)
	var nf *resolve.NotFoundError
	if errors.As(err, &nf) {
		def, terr := resolve.Template(e.Catalog.Items, ref)
		if terr != nil {
			return terr
		}
		it, err = e.Factory.Build(def, 0), nil
	}
	if err != nil {
		return err
	}
	e.addTo(c, it, result)
	return nil
}

func (e *Engine) cmdShow(cmd types.Command, result *types.Result) error {
	ref := strings.Join(cmd.Args, " ")
	where := firstOf(cmd.In, cmd.From)
	if where == "" {
		it, err := resolve.Item(e.hand, ref)
		if err != nil {
			return err
		}
		result.Outcome = types.ItemRetrieved
		result.Output = append(result.Output, describeItem(it)...)
		return nil
	}
	c, err := e.container(where)
	if err != nil {
		return err
	}
	it, err := e.itemIn(c, ref)
	if err != nil {
		result.Outcome = types.ItemNotFound
		return err
	}
	r := c.TryGetItem(it.ID())
	result.Outcome = r.Outcome
	if r.Item != nil {
		result.Output = append(result.Output, describeItem(r.Item)...)
	}
	return nil
}

func describeItem(it *item.Item) []string {
	out := []string{
		it.Name(),
		"  id:    " + it.ID().String(),
	}
	if s := it.Stack(); s != nil {
		out = append(out, fmt.Sprintf("  stack: %d/%d", s.Current(), s.Max()))
	} else {
		out = append(out, "  stack: unique")
	}
	if names := it.Tags().Names(); len(names) > 0 {
		out = append(out, "  tags:  "+strings.Join(names, ", "))
	}
	return out
}

func (e *Engine) cmdRemove(cmd types.Command, result *types.Result) error {
	c, err := e.container(firstOf(cmd.From, cmd.In))
	if err != nil {
		return err
	}
	it, err := e.itemIn(c, strings.Join(cmd.Args, " "))
	if err != nil {
		result.Outcome = types.ItemNotFound
		return err
	}
	r := c.TryRemoveItem(it.ID())
	result.Outcome = r.Outcome
	result.Output = append(result.Output, fmt.Sprintf("%s <- %s: %s", it.String(), c.Name(), r.Outcome))
	if r.Outcome == types.ItemRemoved {
		e.hold(r.Item)
		e.publish(events.ItemRemoved, map[string]any{
			"container": c.ID().String(),
			"item":      r.Item.ID().String(),
		})
	}
	return nil
}

func (e *Engine) cmdSplit(cmd types.Command, result *types.Result) error {
	args, amount, ok := trailingCount(cmd.Args)
	if !ok {
		return errors.New("split how many?")
	}
	c, err := e.container(firstOf(cmd.In, cmd.From))
	if err != nil {
		return err
	}
	it, err := e.itemIn(c, strings.Join(args, " "))
	if err != nil {
		result.Outcome = types.ItemNotFound
		return err
	}
	r := c.TrySplitItemStack(it.ID(), amount)
	result.Outcome = r.Outcome
	switch r.Outcome {
	case types.ItemStackSplit:
		result.Output = append(result.Output, fmt.Sprintf("%s split into %s and %s.", it.Name(), it.String(), r.Item.String()))
		e.publish(events.ItemSplit, map[string]any{
			"container": c.ID().String(),
			"item":      it.ID().String(),
			"split":     r.Item.ID().String(),
			"amount":    amount,
		})
	default:
		result.Output = append(result.Output, fmt.Sprintf("%s: %s", it.String(), r.Outcome))
	}
	return nil
}

func (e *Engine) cmdMove(cmd types.Command, result *types.Result) error {
	src, err := e.container(cmd.From)
	if err != nil {
		return err
	}
	dst, err := e.container(firstOf(cmd.To, cmd.In))
	if err != nil {
		return err
	}
	it, err := e.itemIn(src, strings.Join(cmd.Args, " "))
	if err != nil {
		result.Outcome = types.ItemNotFound
		return err
	}

	label := it.String()
	r := e.Manager.MoveItemBetweenInventories(src.ID(), dst.ID(), it.ID())
	result.Outcome = r.Outcome
	result.Output = append(result.Output, fmt.Sprintf("%s: %s -> %s: %s", label, src.Name(), dst.Name(), r.Outcome))

	// Whatever the move left in neither container is now held.
	if orphan := r.Item; orphan != nil && orphan.Quantity() > 0 && !e.holds(orphan) && !e.stored(orphan) {
		e.hold(orphan)
		result.Output = append(result.Output, "You are now holding "+orphan.String()+".")
	}
	return nil
}

func (e *Engine) cmdFind(cmd types.Command, result *types.Result) error {
	c, err := e.container(firstOf(cmd.In, cmd.From))
	if err != nil {
		return err
	}
	name := strings.Join(cmd.Args, " ")
	tag, ok := e.lookupTag(name)
	if !ok {
		result.Outcome = types.ItemsNotFound
		return fmt.Errorf("nothing is tagged %q", name)
	}
	r := c.TryGetItemsByTag(tag)
	result.Outcome = r.Outcome
	if len(r.Items) == 0 {
		result.Output = append(result.Output, fmt.Sprintf("%s has nothing tagged %s.", c.Name(), tag.Name))
		return nil
	}
	for _, it := range r.Items {
		result.Output = append(result.Output, "  "+it.String())
	}
	return nil
}

// lookupTag matches a tag name exactly, then case-insensitively.
func (e *Engine) lookupTag(name string) (tags.Tag, bool) {
	if t, ok := e.Tags.Lookup(name); ok {
		return t, true
	}
	for _, t := range e.Tags.Tags() {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return tags.Tag{}, false
}

func (e *Engine) cmdSlots(cmd types.Command, result *types.Result) error {
	c, err := e.container(firstOf(strings.Join(cmd.Args, " "), cmd.In))
	if err != nil {
		return err
	}
	if c.Kind() != placement.Equipment {
		result.Output = append(result.Output, c.Name()+" has no equipment slots.")
		return nil
	}
	result.Output = append(result.Output, e.describe(c)...)
	return nil
}

func (e *Engine) cmdRename(cmd types.Command, result *types.Result) error {
	c, err := e.container(strings.Join(cmd.Args, " "))
	if err != nil {
		return err
	}
	if cmd.To == "" {
		return fmt.Errorf("rename %s to what?", c.Name())
	}
	old := c.Name()
	c.SetName(cmd.To)
	result.Output = append(result.Output, fmt.Sprintf("%s is now called %s.", old, cmd.To))
	e.publish(events.ContainerRename, map[string]any{
		"container": c.ID().String(),
		"from":      old,
		"to":        cmd.To,
	})
	return nil
}
