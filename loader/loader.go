package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/invcore/engine/tags"
	"github.com/nathoo/invcore/types"
	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	catalog    *lua.LTable
	slots      *lua.LTable
	items      []rawItem
	containers []rawContainer
	order      int
}

func (c *collector) nextSourceOrder() int {
	c.order++
	return c.order
}

type options struct {
	logger logrus.FieldLogger
	slots  []string
}

// Option configures Load.
type Option func(*options)

// WithLogger sets the logger validation warnings are written to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithEquipmentSlots sets the slots recognized when the catalog declares
// none of its own.
func WithEquipmentSlots(names []string) Option {
	return func(o *options) { o.slots = names }
}

// Load reads all .lua files from dir, compiles them into a catalog,
// validates references, and returns the immutable Catalog. The Lua VM is
// discarded after loading.
func Load(dir string, opts ...Option) (*types.Catalog, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.logger = l
	}

	// Discover .lua files.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// Sort: catalog.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Open safe libs only.
	openSafeLibs(L)

	// Sandbox: remove dangerous globals.
	sandbox(L)

	// Register API.
	coll := &collector{}
	registerAPI(L, coll)

	// Execute each file.
	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	// Compile.
	cat, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling catalog: %w", err)
	}

	// Validate.
	recognized := o.slots
	if len(cat.EquipmentSlots) > 0 {
		recognized = cat.EquipmentSlots
	}
	if len(recognized) == 0 {
		recognized = tags.DefaultSlotNames()
	}
	ve := validate(coll, cat, recognized)
	for _, w := range ve.Warnings {
		o.logger.WithField("catalog", dir).Warn(w)
	}
	if len(ve.Errors) > 0 {
		return nil, ve
	}

	return cat, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Catalogs must load the same way every time.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("random", lua.LNil)
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
