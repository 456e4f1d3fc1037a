// Package save implements JSON serialization and deserialization of
// player progress.
package save

import (
	"encoding/json"
	"time"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

// SaveData is the JSON-serializable save format. Every section is
// optional on load; absent sections fall back to fresh defaults.
type SaveData struct {
	Version     string                      `json:"version"`
	Pack        string                      `json:"pack"`
	ExportedAt  string                      `json:"exported_at,omitempty"`
	Player      types.Player                `json:"player"`
	Characters  map[string]types.Character  `json:"characters"`
	Phrases     map[string]types.Phrase     `json:"phrases"`
	Bag         types.Bag                   `json:"bag"`
	Counters    map[string]int              `json:"counters"`
	Practice    types.PracticeState         `json:"practice"`
	Sequence    types.SequenceState         `json:"sequence"`
	RNGSeed     int64                       `json:"rng_seed"`
	RNGPosition int64                       `json:"rng_position"`
}

// snapshot copies state into the save format.
func snapshot(s *types.State, defs *state.Defs) SaveData {
	sd := SaveData{
		Version:     defs.Pack.Version,
		Pack:        defs.Pack.Name,
		Player:      s.Player,
		Characters:  map[string]types.Character{},
		Phrases:     map[string]types.Phrase{},
		Bag:         s.Bag,
		Counters:    s.Counters,
		Practice:    s.Practice,
		Sequence:    s.Sequence,
		RNGSeed:     s.RNGSeed,
		RNGPosition: s.RNGPosition,
	}
	for glyph, c := range s.Roster {
		sd.Characters[glyph] = *c
	}
	for text, p := range s.Phrases {
		sd.Phrases[text] = *p
	}
	return sd
}

// Save serializes player progress to JSON bytes.
func Save(s *types.State, defs *state.Defs) ([]byte, error) {
	return json.MarshalIndent(snapshot(s, defs), "", "  ")
}

// Export serializes player progress for download/backup, stamped with the
// export time.
func Export(s *types.State, defs *state.Defs) ([]byte, error) {
	sd := snapshot(s, defs)
	sd.ExportedAt = time.Now().UTC().Format(time.RFC3339)
	return json.MarshalIndent(sd, "", "  ")
}

// Load deserializes JSON bytes into SaveData. Missing sections come back
// as fresh defaults rather than nils.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.Characters == nil {
		sd.Characters = map[string]types.Character{}
	}
	if sd.Phrases == nil {
		sd.Phrases = map[string]types.Phrase{}
	}
	if sd.Counters == nil {
		sd.Counters = map[string]int{}
	}
	if sd.Bag.Items == nil {
		sd.Bag.Items = map[string]int{}
	}
	if sd.Bag.Capacity <= 0 {
		sd.Bag.Capacity = state.DefaultBagCapacity
	}
	if sd.Player.Achievements == nil {
		sd.Player.Achievements = []string{}
	}
	if sd.Player.Level < 1 {
		sd.Player.Level = 1
	}
	for glyph, c := range sd.Characters {
		if c.Level < 1 {
			c.Level = 1
			sd.Characters[glyph] = c
		}
	}
	return &sd, nil
}

// Apply writes loaded save data onto a state. Cached combat stats are NOT
// re-derived here; engine.Restore does that, since the stat formulas live
// with the engine.
func Apply(s *types.State, sd *SaveData) {
	s.Player = sd.Player
	s.Roster = map[string]*types.Character{}
	for glyph, c := range sd.Characters {
		cc := c
		s.Roster[glyph] = &cc
	}
	s.Phrases = map[string]*types.Phrase{}
	for text, p := range sd.Phrases {
		pp := p
		s.Phrases[text] = &pp
	}
	s.Bag = sd.Bag
	s.Counters = sd.Counters
	s.Practice = sd.Practice
	s.Sequence = sd.Sequence
	s.RNGSeed = sd.RNGSeed
	s.RNGPosition = sd.RNGPosition
	s.Player.CharactersOwned = len(s.Roster)
}
