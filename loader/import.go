package loader

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

// jsonDataset is the user-facing JSON import shape. Field names mirror
// the Lua pack constructors.
type jsonDataset struct {
	Pack struct {
		Name        string   `json:"name"`
		Version     string   `json:"version"`
		Author      string   `json:"author"`
		Starter     []string `json:"starter"`
		BattleAfter int      `json:"battle_after"`
	} `json:"pack"`
	Characters map[string]struct {
		Pinyin     string `json:"pinyin"`
		Strokes    int    `json:"strokes"`
		Difficulty int    `json:"difficulty"`
		Frequency  int    `json:"frequency"`
		Meaning    string `json:"meaning"`
	} `json:"characters"`
	Phrases map[string]struct {
		Pinyin       string         `json:"pinyin"`
		Meaning      string         `json:"meaning"`
		Characters   []string       `json:"characters"`
		Requirements map[string]int `json:"requirements"`
		Difficulty   int            `json:"difficulty"`
		Frequency    int            `json:"frequency"`
	} `json:"phrases"`
	Items map[string]struct {
		Name   string `json:"name"`
		Kind   string `json:"kind"`
		Value  int    `json:"value"`
		Rarity string `json:"rarity"`
	} `json:"items"`
}

// ImportJSON parses a custom dataset and runs it through the same
// validation as a Lua pack. Any violation rejects the whole import; the
// returned *ValidationError itemizes every one.
func ImportJSON(data []byte) (*state.Defs, error) {
	var ds jsonDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	defs := &state.Defs{
		Pack: types.PackDef{
			Name:        ds.Pack.Name,
			Version:     ds.Pack.Version,
			Author:      ds.Pack.Author,
			Starter:     ds.Pack.Starter,
			BattleAfter: ds.Pack.BattleAfter,
		},
		Characters: map[string]types.CharacterDef{},
		Phrases:    map[string]types.PhraseDef{},
		Items:      map[string]types.ItemDef{},
	}
	for glyph, c := range ds.Characters {
		defs.Characters[glyph] = types.CharacterDef{
			Glyph:      glyph,
			Pinyin:     c.Pinyin,
			Strokes:    c.Strokes,
			Difficulty: c.Difficulty,
			Frequency:  c.Frequency,
			Meaning:    c.Meaning,
		}
	}
	for text, p := range ds.Phrases {
		defs.Phrases[text] = types.PhraseDef{
			Text:         text,
			Pinyin:       p.Pinyin,
			Meaning:      p.Meaning,
			Characters:   p.Characters,
			Requirements: p.Requirements,
			Difficulty:   p.Difficulty,
			Frequency:    p.Frequency,
		}
	}
	for id, it := range ds.Items {
		defs.Items[id] = types.ItemDef{
			ID:     id,
			Name:   it.Name,
			Kind:   it.Kind,
			Value:  it.Value,
			Rarity: it.Rarity,
		}
	}

	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}
