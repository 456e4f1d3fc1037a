package save

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

func sampleDefs() *state.Defs {
	return &state.Defs{
		Pack: types.PackDef{Name: "Sample", Version: "1.0"},
		Characters: map[string]types.CharacterDef{
			"你": {Glyph: "你", Pinyin: "nǐ", Strokes: 7, Difficulty: 1, Frequency: 95},
		},
		Phrases: map[string]types.PhraseDef{
			"你好": {Text: "你好", Pinyin: "nǐ hǎo", Characters: []string{"你", "好"}},
		},
	}
}

func sampleState(defs *state.Defs) *types.State {
	s := state.NewState(defs)
	s.Player.Level = 3
	s.Player.XP = 120
	s.Player.Achievements = []string{"first_steps"}
	s.Roster["你"] = &types.Character{
		Glyph: "你", Pinyin: "nǐ", Strokes: 7, Difficulty: 1, Frequency: 95,
		Level: 4, XP: 55, BestAccuracy: 92, PracticeCount: 11,
		Unlocked: true, Origin: types.OriginBase,
	}
	s.Phrases["你好"].Unlocked = true
	s.Phrases["你好"].Level = 2
	s.Phrases["你好"].XP = 30
	s.Phrases["你好"].FirstCompleted = true
	state.AddToBag(s, "small_xp_boost", 3)
	state.IncCounter(s, "practices", 11)
	s.RNGSeed = 42
	s.RNGPosition = 17
	return s
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	defs := sampleDefs()
	s := sampleState(defs)

	data, err := Save(s, defs)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if sd.Version != "1.0" || sd.Pack != "Sample" {
		t.Errorf("pack metadata = %s/%s", sd.Pack, sd.Version)
	}
	if sd.Player.Level != 3 || sd.Player.XP != 120 {
		t.Errorf("player = %+v", sd.Player)
	}
	c, ok := sd.Characters["你"]
	if !ok {
		t.Fatal("你 missing from save")
	}
	if c.Level != 4 || c.XP != 55 || c.BestAccuracy != 92 || c.PracticeCount != 11 {
		t.Errorf("character progress lost: %+v", c)
	}
	p, ok := sd.Phrases["你好"]
	if !ok {
		t.Fatal("你好 missing from save")
	}
	if !p.Unlocked || p.Level != 2 || p.XP != 30 || !p.FirstCompleted {
		t.Errorf("phrase progress lost: %+v", p)
	}
	if sd.Bag.Items["small_xp_boost"] != 3 {
		t.Errorf("bag = %+v", sd.Bag)
	}
	if sd.Counters["practices"] != 11 {
		t.Errorf("counters = %+v", sd.Counters)
	}
	if sd.RNGSeed != 42 || sd.RNGPosition != 17 {
		t.Errorf("rng = %d@%d", sd.RNGSeed, sd.RNGPosition)
	}
	if sd.ExportedAt != "" {
		t.Error("plain save must not carry an export timestamp")
	}
}

func TestApply(t *testing.T) {
	defs := sampleDefs()
	s := sampleState(defs)
	data, err := Save(s, defs)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fresh := state.NewState(defs)
	Apply(fresh, sd)

	if fresh.Player.Level != 3 {
		t.Errorf("player level = %d, want 3", fresh.Player.Level)
	}
	if fresh.Player.CharactersOwned != 1 {
		t.Errorf("CharactersOwned = %d, want recomputed 1", fresh.Player.CharactersOwned)
	}
	c := fresh.Roster["你"]
	if c == nil || c.Level != 4 {
		t.Fatalf("roster not applied: %+v", c)
	}
	// Applied entries are copies, not aliases of the save data.
	c.Level = 99
	if sd.Characters["你"].Level == 99 {
		t.Error("roster aliases the loaded save data")
	}
	if fresh.RNGSeed != 42 || fresh.RNGPosition != 17 {
		t.Errorf("rng = %d@%d", fresh.RNGSeed, fresh.RNGPosition)
	}
}

func TestLoad_MissingSectionsDefault(t *testing.T) {
	sd, err := Load([]byte(`{"version":"1.0","pack":"Sample"}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sd.Characters == nil || sd.Phrases == nil || sd.Counters == nil {
		t.Error("missing maps should come back initialized")
	}
	if sd.Bag.Items == nil {
		t.Error("bag items should come back initialized")
	}
	if sd.Bag.Capacity != state.DefaultBagCapacity {
		t.Errorf("bag capacity = %d, want default %d", sd.Bag.Capacity, state.DefaultBagCapacity)
	}
	if sd.Player.Level != 1 {
		t.Errorf("player level = %d, want floor 1", sd.Player.Level)
	}
	if sd.Player.Achievements == nil {
		t.Error("achievements should come back initialized")
	}
}

func TestLoad_CharacterLevelFloor(t *testing.T) {
	sd, err := Load([]byte(`{"characters":{"你":{"glyph":"你","level":0}}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sd.Characters["你"].Level != 1 {
		t.Errorf("level = %d, want floored to 1", sd.Characters["你"].Level)
	}
}

func TestLoad_Malformed(t *testing.T) {
	if _, err := Load([]byte(`{not json`)); err == nil {
		t.Error("malformed JSON should error")
	}
}

func TestExport_Timestamp(t *testing.T) {
	defs := sampleDefs()
	s := sampleState(defs)

	data, err := Export(s, defs)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	tsRaw, ok := raw["exported_at"]
	if !ok {
		t.Fatal("export missing exported_at")
	}
	ts := strings.Trim(string(tsRaw), `"`)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("exported_at %q is not RFC3339: %v", ts, err)
	}

	// Exports load like any other save.
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load(export): %v", err)
	}
	if sd.Player.Level != 3 {
		t.Errorf("export round-trip lost progress: %+v", sd.Player)
	}
}
