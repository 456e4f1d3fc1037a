// Package loader reads hanzi content packs — Lua files defining
// characters, phrases, items, and achievements — and compiles them into
// validated engine definitions. A JSON import path shares the same
// compile/validate pipeline for user-supplied datasets.
package loader

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/hanziquest/engine/state"
	lua "github.com/yuin/gopher-lua"
)

//go:embed content/basic.lua
var builtinPack string

// collector accumulates Lua definitions during file execution.
type collector struct {
	pack         *lua.LTable
	characters   []rawDef
	phrases      []rawDef
	items        []rawDef
	achievements []rawDef
}

// rawDef is an id plus its unconverted Lua table.
type rawDef struct {
	id    string
	table *lua.LTable
}

// Load reads all .lua files from dir, compiles them into content
// definitions, and validates them. The Lua VM is discarded after loading.
func Load(dir string) (*state.Defs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
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
	sort.Strings(luaFiles)

	L, coll := newVM()
	defer L.Close()

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}
	return finish(coll)
}

// LoadBuiltin compiles the pack embedded in the binary.
func LoadBuiltin() (*state.Defs, error) {
	L, coll := newVM()
	defer L.Close()

	if err := L.DoString(builtinPack); err != nil {
		return nil, fmt.Errorf("executing builtin pack: %w", err)
	}
	return finish(coll)
}

// newVM creates a sandboxed Lua state with the pack API registered.
func newVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	// Content packs are data, not programs: no io, os, or require.
	for _, g := range []string{"dofile", "loadfile", "load", "loadstring", "require", "print"} {
		L.SetGlobal(g, lua.LNil)
	}
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

// finish compiles and validates collected definitions.
func finish(coll *collector) (*state.Defs, error) {
	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content pack: %w", err)
	}
	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}
