package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the pack constructors as Lua globals. Character,
// Phrase, Item, and Achievement are curried: the id first, then the table.
func registerAPI(L *lua.LState, coll *collector) {
	// Pack { name = "...", version = "...", starter = {...}, ... }
	L.SetGlobal("Pack", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.pack = tbl
		return 0
	}))

	// Character "你" { pinyin = "nǐ", strokes = 7, ... }
	L.SetGlobal("Character", L.NewFunction(func(L *lua.LState) int {
		glyph := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.characters = append(coll.characters, rawDef{id: glyph, table: tbl})
			return 0
		}))
		return 1
	}))

	// Phrase "你好" { characters = {"你","好"}, requires = {...}, ... }
	L.SetGlobal("Phrase", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.phrases = append(coll.phrases, rawDef{id: text, table: tbl})
			return 0
		}))
		return 1
	}))

	// Item "small_xp_boost" { name = "...", kind = "xp_boost", ... }
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Achievement "first_steps" { event = "practice_completed", ... }
	L.SetGlobal("Achievement", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.achievements = append(coll.achievements, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	}))
}
