package engine

import (
	"fmt"
	"sort"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

// itemDropChance is the probability a defeated opponent drops an item.
const itemDropChance = 0.25

// rollRewards runs on opponent defeat: the opponent always attempts to
// join the roster, and independently a rarity-banded item may drop.
func (e *Engine) rollRewards(o *types.Opponent) types.Result {
	var result types.Result

	capture := e.captureOpponent(o)
	result.Events = append(result.Events, capture.Events...)
	result.Output = append(result.Output, capture.Output...)

	if e.RNG.Chance(itemDropChance) {
		roll := e.RNG.Float()
		rarity := RarityBand(roll, o.Level, o.Difficulty)
		itemID, ok := e.pickItem(rarity)
		if !ok {
			return result
		}
		if state.AddToBag(e.State, itemID, 1) == 0 {
			// Full bag: the drop is lost, surfaced as an event rather
			// than an error.
			result.Events = append(result.Events, types.Event{
				Type: "item_lost",
				Data: map[string]any{"item": itemID},
			})
			result.Output = append(result.Output, "An item dropped, but your bag is full.")
			return result
		}
		result.Events = append(result.Events, types.Event{
			Type: "item_dropped",
			Data: map[string]any{"item": itemID, "rarity": rarity},
		})
		name := itemID
		if def, ok := e.Defs.Items[itemID]; ok {
			name = def.Name
		}
		result.Output = append(result.Output, fmt.Sprintf("Found: %s!", name))
	}
	return result
}

// captureOpponent grants the defeated opponent into the roster: phrases
// unlock their runtime entry at level 1, characters join through the
// standard addition path. Already-owned opponents are a no-op.
func (e *Engine) captureOpponent(o *types.Opponent) types.Result {
	var result types.Result
	if o.IsPhrase {
		p := state.PhraseProgress(e.State, o.Name)
		if p.Unlocked {
			result.Output = append(result.Output,
				fmt.Sprintf("%s is already unlocked.", o.Name))
			return result
		}
		p.Unlocked = true
		p.Level = 1
		p.XP = 0
		e.State.Player.PhrasesUnlocked++
		state.IncCounter(e.State, "phrases_unlocked", 1)
		result.Events = append(result.Events, types.Event{
			Type: "phrase_unlocked",
			Data: map[string]any{"phrase": o.Name, "captured": true},
		})
		result.Output = append(result.Output,
			fmt.Sprintf("You caught the phrase %s!", o.Name))
		return result
	}

	if state.Owns(e.State, o.Name) {
		result.Output = append(result.Output,
			fmt.Sprintf("%s is already in your roster.", o.Name))
		return result
	}
	if _, ok := e.Defs.Characters[o.Name]; ok {
		res, err := e.AddCharacter(o.Name)
		if err == nil {
			result.Events = append(result.Events, res.Events...)
			result.Output = append(result.Output, res.Output...)
		}
		return result
	}

	// Mystery opponents have no definition; they join with the stats
	// they were generated with.
	c := &types.Character{
		Glyph:      o.Name,
		Pinyin:     o.Pinyin,
		Strokes:    o.Strokes,
		Difficulty: o.Difficulty,
		Frequency:  o.Frequency,
		Level:      1,
		Unlocked:   true,
		Origin:     types.OriginBase,
	}
	RecomputeStats(c)
	e.addToRoster(c)
	result.Events = append(result.Events, types.Event{
		Type: "character_added",
		Data: map[string]any{"glyph": o.Name, "captured": true},
	})
	result.Output = append(result.Output,
		fmt.Sprintf("You caught %s!", o.Name))
	return result
}

// RarityBand maps a uniform roll, adjusted by opponent level (capped) and
// difficulty, to an item rarity.
func RarityBand(roll float64, level, difficulty int) string {
	bonus := float64(level) * 0.05
	if bonus > 0.3 {
		bonus = 0.3
	}
	adjusted := roll + bonus + float64(difficulty)*0.05
	switch {
	case adjusted < 0.15:
		return "rare"
	case adjusted < 0.45:
		return "uncommon"
	default:
		return "common"
	}
}

// pickItem selects the first defined item of the given rarity, falling
// back to any item when that rarity has none defined.
func (e *Engine) pickItem(rarity string) (string, bool) {
	ids := make([]string, 0, len(e.Defs.Items))
	for id := range e.Defs.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if e.Defs.Items[id].Rarity == rarity {
			return id, true
		}
	}
	if len(ids) > 0 {
		return ids[0], true
	}
	return "", false
}
