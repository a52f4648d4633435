// invcore loads an inventory catalog and replays commands against it from
// stdin or a script file.
// Usage: invcore [--version] [--plain] [--trace] [--seed <n>] [--config <file>] [--script <file>] [catalog_dir]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nathoo/invcore/cli"
	"github.com/nathoo/invcore/config"
	"github.com/nathoo/invcore/engine"
	"github.com/nathoo/invcore/loader"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: invcore [--version] [--plain] [--trace] [--seed <n>] [--config <file>] [--script <file>] [catalog_dir]"

func main() {
	plain := false
	trace := false
	var catalogDir string
	var scriptFile string
	var configFile string
	var seedArg string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("invcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--config", "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			switch args[i] {
			case "--script":
				scriptFile = args[i+1]
			case "--config":
				configFile = args[i+1]
			default:
				seedArg = args[i+1]
			}
			i++
		default:
			if catalogDir == "" {
				catalogDir = args[i]
			}
		}
	}

	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if seedArg != "" {
		seed, err := strconv.ParseInt(seedArg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
			os.Exit(1)
		}
		cfg.Inventory.Seed = seed
	}
	if catalogDir == "" {
		catalogDir = cfg.Catalog
	}
	if catalogDir == "" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	logger := cfg.NewLogger(os.Stderr)

	// Load and compile the Lua catalog.
	cat, err := loader.Load(catalogDir,
		loader.WithLogger(logger),
		loader.WithEquipmentSlots(cfg.EquipmentSlots()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	eng, err := engine.New(cat,
		engine.WithLogger(logger),
		engine.WithMovePolicy(cfg.MovePolicy()),
		engine.WithEquipmentSlots(cfg.EquipmentSlots()),
		engine.WithSeed(cfg.Inventory.Seed),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building inventories: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n\n", cli.Banner(cat.Info))
	c := cli.New(eng)
	c.Trace = trace

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c.In = f
		c.EchoInput = true
		plain = true
	}

	// Styling only makes sense on a terminal.
	c.Plain = plain || !isTerminal()
	c.Run()
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
