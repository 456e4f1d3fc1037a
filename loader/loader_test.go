package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePack(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const validPack = `
Pack {
	name = "Test",
	version = "1.0",
	starter = {"你"},
	battle_after = 2,
}

Character "你" {
	pinyin = "nǐ",
	strokes = 7,
	difficulty = 1,
	frequency = 95,
	meaning = "you",
}

Character "好" {
	pinyin = "hǎo",
	strokes = 6,
	difficulty = 1,
	frequency = 92,
	meaning = "good",
}

Phrase "你好" {
	pinyin = "nǐ hǎo",
	meaning = "hello",
	characters = {"你", "好"},
	requires = {["你"] = 3, ["好"] = 3},
	difficulty = 2,
	frequency = 90,
}

Item "small_xp_boost" {
	name = "Small XP Boost",
	kind = "xp_boost",
	value = 50,
	rarity = "common",
}

Achievement "first_steps" {
	name = "First Steps",
	event = "practice_completed",
	counter = "practices",
	threshold = 1,
}
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "pack.lua", validPack)

	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if defs.Pack.Name != "Test" || defs.Pack.BattleAfter != 2 {
		t.Errorf("pack = %+v", defs.Pack)
	}
	if len(defs.Pack.Starter) != 1 || defs.Pack.Starter[0] != "你" {
		t.Errorf("starter = %v", defs.Pack.Starter)
	}

	c, ok := defs.Characters["你"]
	if !ok {
		t.Fatal("你 missing")
	}
	if c.Pinyin != "nǐ" || c.Strokes != 7 || c.Meaning != "you" {
		t.Errorf("character = %+v", c)
	}

	p, ok := defs.Phrases["你好"]
	if !ok {
		t.Fatal("你好 missing")
	}
	if len(p.Characters) != 2 || p.Requirements["你"] != 3 {
		t.Errorf("phrase = %+v", p)
	}

	it, ok := defs.Items["small_xp_boost"]
	if !ok || it.Value != 50 || it.Kind != "xp_boost" {
		t.Errorf("item = %+v", it)
	}

	if len(defs.Achievements) != 1 || defs.Achievements[0].Threshold != 1 {
		t.Errorf("achievements = %+v", defs.Achievements)
	}
}

func TestLoad_MultipleFilesSorted(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "01_chars.lua", `
Character "你" { pinyin = "nǐ", strokes = 7, difficulty = 1, frequency = 95 }
`)
	writePack(t, dir, "02_more.lua", `
Character "好" { pinyin = "hǎo", strokes = 6, difficulty = 1, frequency = 92 }
`)
	writePack(t, dir, "ignore.txt", `not lua`)

	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(defs.Characters) != 2 {
		t.Errorf("characters = %d, want 2 across files", len(defs.Characters))
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("empty directory should error")
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("missing directory should error")
	}
}

func TestLoad_LuaError(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "broken.lua", `Character "你" {{`)
	if _, err := Load(dir); err == nil {
		t.Error("syntax error should fail the load")
	}
}

func TestLoad_DuplicateCharacter(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "dup.lua", `
Character "你" { pinyin = "nǐ", strokes = 7, difficulty = 1, frequency = 95 }
Character "你" { pinyin = "nǐ", strokes = 7, difficulty = 1, frequency = 95 }
`)
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate character") {
		t.Errorf("expected duplicate character error, got %v", err)
	}
}

func TestSandbox_NoIO(t *testing.T) {
	dir := t.TempDir()
	for _, g := range []string{"dofile", "loadfile", "require", "print"} {
		writePack(t, dir, "pack.lua", g+`("x")`)
		if _, err := Load(dir); err == nil {
			t.Errorf("sandboxed global %s should be unavailable", g)
		}
	}
}

func TestLoadBuiltin(t *testing.T) {
	defs, err := LoadBuiltin()
	if err != nil {
		t.Fatalf("LoadBuiltin: %v", err)
	}
	if len(defs.Characters) == 0 || len(defs.Phrases) == 0 {
		t.Fatal("builtin pack is empty")
	}
	if len(defs.Pack.Starter) == 0 {
		t.Error("builtin pack has no starters")
	}
	for _, glyph := range defs.Pack.Starter {
		if _, ok := defs.Characters[glyph]; !ok {
			t.Errorf("starter %s not defined", glyph)
		}
	}
	// Every built-in phrase must be completable from defined characters.
	for text, p := range defs.Phrases {
		for _, glyph := range p.Characters {
			if _, ok := defs.Characters[glyph]; !ok {
				t.Errorf("phrase %s uses undefined character %s", text, glyph)
			}
		}
	}
}
