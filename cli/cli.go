// Package cli provides line-oriented terminal I/O, output styling, and
// meta-command dispatch for the invcore engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/invcore/engine"
	"github.com/nathoo/invcore/types"
)

// CLI reads commands line by line and prints each result.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	Plain     bool   // disable lipgloss styling
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat

	st styles
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run loops: prompt, input, dispatch, output. It returns at end of input
// or on /quit.
func (c *CLI) Run() {
	if !c.Plain {
		c.st = newStyles(c.Out)
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			c.printLine("")
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the runner should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// Banner is the first line shown for a catalog.
func Banner(info types.CatalogInfo) string {
	b := info.Title
	if info.Version != "" {
		b += " v" + info.Version
	}
	if info.Author != "" {
		b += " by " + info.Author
	}
	return b
}

// helpLines is the command reference printed by /help.
var helpLines = []string{
	"System:",
	"  /quit         Exit",
	"  /help         Show this help",
	"  /state        Dump containers and held items",
	"  /trace        Toggle event trace output",
	"",
	"Commands:",
	"  list [container] (ls)                 Show one or every container",
	"  inventories                           List containers with their ids",
	"  hand                                  Show items held outside containers",
	"  spawn <item> [count] [in <container>] Create items from the catalog",
	"  add <item> to <container> (put)       Place a held or catalog item",
	"  show <item> in <container> (x)        Describe an item",
	"  remove <item> from <container> (take) Take an item into your hand",
	"  split <item> <amount> in <container>  Split a stack",
	"  move <item> from <a> to <b> (mv)      Move an item between containers",
	"  find <tag> in <container>             List items carrying a tag",
	"  slots <container>                     Show equipment slots",
	"  rename <container> to <name>          Rename a container",
	"  again (g)                             Repeat your last command",
}

func (c *CLI) cmdHelp() {
	for _, line := range helpLines {
		c.printLine(line)
	}
}

// stateLines summarizes engine state for /state.
func stateLines(eng *engine.Engine) []string {
	var out []string
	for _, n := range eng.Containers() {
		cont := n.Container
		line := fmt.Sprintf("%s: %s %s, %d item(s)", n.Key, cont.Kind(), cont.ID(), cont.Count())
		if cont.Capacity() > 0 {
			line += fmt.Sprintf(", capacity %d", cont.Capacity())
		}
		out = append(out, line)
	}
	out = append(out, fmt.Sprintf("Held: %d item(s)", len(eng.Hand())))
	out = append(out, fmt.Sprintf("Move policy: %s", eng.Manager.Policy()))
	return out
}

func (c *CLI) cmdState() {
	for _, line := range stateLines(c.Engine) {
		c.printSystem(line)
	}
}

// traceLines formats a result's outcome and events for trace output.
func traceLines(result types.Result) []string {
	var lines []string
	if result.Outcome != "" {
		lines = append(lines, fmt.Sprintf("Outcome: %s", result.Outcome))
	}
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("  %s %s", e.Type, formatData(e.Data)))
		}
	}
	return lines
}

// formatData renders event data with sorted keys.
func formatData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, data[k])
	}
	return strings.Join(parts, " ")
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range traceLines(result) {
		c.printLine(c.st.traceMsg(line))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(c.st.line(line))
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintln(c.Out, c.st.systemMsg(text))
}
