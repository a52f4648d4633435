package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Catalog { title = "...", ... }
	L.SetGlobal("Catalog", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.catalog = tbl
		return 0
	}))

	// EquipmentSlots { "Head", "Chest", ... } replaces the default slots.
	L.SetGlobal("EquipmentSlots", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.slots = tbl
		return 0
	}))

	// Item "id" { ... } is curried: Item("id") returns a function that takes a table.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawItem{id: id, table: tbl, order: coll.nextSourceOrder()})
			return 0
		}))
		return 1
	}))

	// Container "id" { ... } is curried, kind taken from the table.
	L.SetGlobal("Container", containerConstructor(L, coll, ""))

	// Bag "id" { ... } is curried, kind = "basic".
	L.SetGlobal("Bag", containerConstructor(L, coll, "basic"))

	// Pouch "id" { ... } is curried, kind = "stackable".
	L.SetGlobal("Pouch", containerConstructor(L, coll, "stackable"))

	// Equipment "id" { ... } is curried, kind = "equipment".
	L.SetGlobal("Equipment", containerConstructor(L, coll, "equipment"))
}

func containerConstructor(L *lua.LState, coll *collector, kind string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.containers = append(coll.containers, rawContainer{
				id:    id,
				kind:  kind,
				table: tbl,
				order: coll.nextSourceOrder(),
			})
			return 0
		}))
		return 1
	})
}

func registerHelpers(L *lua.LState) {
	// Spawn("item", count) builds a contents entry.
	L.SetGlobal("Spawn", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		count := L.OptNumber(2, 1)
		tbl := L.NewTable()
		tbl.RawSetString("item", lua.LString(item))
		tbl.RawSetString("count", count)
		L.Push(tbl)
		return 1
	}))

	// Tags("a", "b", ...) returns a list table.
	L.SetGlobal("Tags", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		for i := 1; i <= L.GetTop(); i++ {
			tbl.Append(lua.LString(L.CheckString(i)))
		}
		L.Push(tbl)
		return 1
	}))
}
