// Package loader loads Lua catalog files into Go structs at startup.
// The Lua VM is discarded after loading, so nothing Lua survives into runtime.
package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/invcore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawItem holds an item table before compilation.
type rawItem struct {
	id    string
	table *lua.LTable
	order int
}

// rawContainer holds a container table before compilation. kind is set by
// the kind-specific constructors and empty for Container.
type rawContainer struct {
	id    string
	kind  string
	table *lua.LTable
	order int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// hasField reports whether key is set in tbl.
func hasField(tbl *lua.LTable, key string) bool {
	return tbl.RawGetString(key) != lua.LNil
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList converts the array part of a Lua table to strings, skipping
// anything that is not a string.
func stringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a Catalog. Duplicate ids keep
// the first definition; validate reports them.
func compile(coll *collector) (*types.Catalog, error) {
	if coll.catalog == nil {
		return nil, fmt.Errorf("no Catalog{} definition found")
	}

	cat := &types.Catalog{
		Info: types.CatalogInfo{
			Title:   getString(coll.catalog, "title"),
			Author:  getString(coll.catalog, "author"),
			Version: getString(coll.catalog, "version"),
		},
		Items: map[string]types.ItemDef{},
	}
	if coll.slots != nil {
		cat.EquipmentSlots = stringList(coll.slots)
	}

	for _, raw := range coll.items {
		if _, dup := cat.Items[raw.id]; dup {
			continue
		}
		cat.Items[raw.id] = compileItem(raw)
	}

	seen := map[string]bool{}
	for _, raw := range coll.containers {
		if seen[raw.id] {
			continue
		}
		seen[raw.id] = true
		def, err := compileContainer(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling container %s: %w", raw.id, err)
		}
		cat.Containers = append(cat.Containers, def)
	}
	sort.SliceStable(cat.Containers, func(i, j int) bool {
		return cat.Containers[i].Order < cat.Containers[j].Order
	})

	return cat, nil
}

func compileItem(raw rawItem) types.ItemDef {
	tbl := raw.table
	def := types.ItemDef{
		ID:       raw.id,
		Name:     getString(tbl, "name"),
		Tags:     stringList(getTable(tbl, "tags")),
		Stack:    getInt(tbl, "stack"),
		MaxStack: getInt(tbl, "max_stack"),
	}
	if def.Name == "" {
		def.Name = raw.id
	}
	if def.MaxStack > 0 && !hasField(tbl, "stack") {
		def.Stack = 1
	}
	return def
}

func compileContainer(raw rawContainer) (types.ContainerDef, error) {
	tbl := raw.table
	def := types.ContainerDef{
		ID:       raw.id,
		Name:     getString(tbl, "name"),
		Kind:     raw.kind,
		Capacity: getInt(tbl, "capacity"),
		Slots:    stringList(getTable(tbl, "slots")),
		Order:    raw.order,
	}
	if def.Kind == "" {
		def.Kind = strings.ToLower(getString(tbl, "kind"))
	}
	if def.Kind == "" {
		def.Kind = "basic"
	}
	if def.Name == "" {
		def.Name = raw.id
	}

	contents := getTable(tbl, "contents")
	if contents == nil {
		return def, nil
	}
	for i := 1; i <= contents.MaxN(); i++ {
		switch v := contents.RawGetInt(i).(type) {
		case lua.LString:
			def.Contents = append(def.Contents, types.Spawn{Item: string(v), Count: 1})
		case *lua.LTable:
			sp := types.Spawn{Item: getString(v, "item"), Count: 1}
			if hasField(v, "count") {
				sp.Count = getInt(v, "count")
			}
			def.Contents = append(def.Contents, sp)
		default:
			return def, fmt.Errorf("contents[%d]: expected item id or table, got %s", i, v.Type())
		}
	}
	return def, nil
}

// sortedLuaFiles returns .lua files with catalog.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var catalogFile string
	var others []string
	for _, f := range files {
		if f == "catalog.lua" {
			catalogFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if catalogFile != "" {
		return append([]string{catalogFile}, others...)
	}
	return others
}
