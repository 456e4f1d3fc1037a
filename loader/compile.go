package loader

import (
	"fmt"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
	lua "github.com/yuin/gopher-lua"
)

// compile converts collected Lua tables into typed definitions. Shape
// errors (wrong Lua types) fail here; semantic range checks happen in
// validate so they can be reported all at once.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Characters: map[string]types.CharacterDef{},
		Phrases:    map[string]types.PhraseDef{},
		Items:      map[string]types.ItemDef{},
	}

	if coll.pack != nil {
		defs.Pack = types.PackDef{
			Name:        tblString(coll.pack, "name"),
			Version:     tblString(coll.pack, "version"),
			Author:      tblString(coll.pack, "author"),
			Starter:     tblStrings(coll.pack, "starter"),
			BattleAfter: tblInt(coll.pack, "battle_after"),
		}
	}

	for _, raw := range coll.characters {
		if _, dup := defs.Characters[raw.id]; dup {
			return nil, fmt.Errorf("duplicate character %q", raw.id)
		}
		defs.Characters[raw.id] = types.CharacterDef{
			Glyph:      raw.id,
			Pinyin:     tblString(raw.table, "pinyin"),
			Strokes:    tblInt(raw.table, "strokes"),
			Difficulty: tblInt(raw.table, "difficulty"),
			Frequency:  tblInt(raw.table, "frequency"),
			Meaning:    tblString(raw.table, "meaning"),
		}
	}

	for _, raw := range coll.phrases {
		if _, dup := defs.Phrases[raw.id]; dup {
			return nil, fmt.Errorf("duplicate phrase %q", raw.id)
		}
		defs.Phrases[raw.id] = types.PhraseDef{
			Text:         raw.id,
			Pinyin:       tblString(raw.table, "pinyin"),
			Meaning:      tblString(raw.table, "meaning"),
			Characters:   tblStrings(raw.table, "characters"),
			Requirements: tblIntMap(raw.table, "requires"),
			Difficulty:   tblInt(raw.table, "difficulty"),
			Frequency:    tblInt(raw.table, "frequency"),
		}
	}

	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.id]; dup {
			return nil, fmt.Errorf("duplicate item %q", raw.id)
		}
		defs.Items[raw.id] = types.ItemDef{
			ID:     raw.id,
			Name:   tblString(raw.table, "name"),
			Kind:   tblString(raw.table, "kind"),
			Value:  tblInt(raw.table, "value"),
			Rarity: tblString(raw.table, "rarity"),
		}
	}

	for _, raw := range coll.achievements {
		defs.Achievements = append(defs.Achievements, types.AchievementDef{
			ID:        raw.id,
			Name:      tblString(raw.table, "name"),
			Event:     tblString(raw.table, "event"),
			Counter:   tblString(raw.table, "counter"),
			Threshold: tblInt(raw.table, "threshold"),
		})
	}

	return defs, nil
}

func tblString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func tblInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func tblStrings(tbl *lua.LTable, key string) []string {
	inner, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	inner.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}

func tblIntMap(tbl *lua.LTable, key string) map[string]int {
	inner, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	out := map[string]int{}
	inner.ForEach(func(k, v lua.LValue) {
		ks, kok := k.(lua.LString)
		vn, vok := v.(lua.LNumber)
		if kok && vok {
			out[string(ks)] = int(vn)
		}
	})
	return out
}
