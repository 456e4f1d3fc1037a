// Package engine implements the progression and battle simulation core:
// stat derivation, XP ledgers, phrase unlocking, practice sequences, wild
// opponent generation, battle resolution, and loot. All operations are
// synchronous state transitions; callers are expected to serialize calls.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/nathoo/hanziquest/engine/events"
	"github.com/nathoo/hanziquest/engine/save"
	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

// ErrNotFound marks operations on keys absent from the roster, phrase set,
// or bag. Expected user-input conditions — report, don't panic.
var ErrNotFound = errors.New("not found")

// ErrInvalidState marks caller-sequencing bugs: completing a practice that
// was never started, attacking with no battle in progress, starting a
// sequence on a phrase with no constituents.
var ErrInvalidState = errors.New("invalid state")

// Engine holds the content definitions, mutable progress, and RNG. The
// battle session is ephemeral and deliberately lives outside State so it
// is never persisted.
type Engine struct {
	Defs   *state.Defs
	State  *types.State
	RNG    *RNG
	Battle *Battle
}

// New creates an engine with a time-based seed.
func New(defs *state.Defs) *Engine {
	return NewWithSeed(defs, time.Now().UnixNano())
}

// NewWithSeed creates an engine with a fixed seed for deterministic play.
func NewWithSeed(defs *state.Defs, seed int64) *Engine {
	s := state.NewState(defs)
	s.RNGSeed = seed
	return &Engine{
		Defs:  defs,
		State: s,
		RNG:   NewRNG(seed),
	}
}

// Bootstrap grants the pack's starter characters to an empty roster and
// runs the initial unlock evaluation.
func (e *Engine) Bootstrap() types.Result {
	var result types.Result
	if len(e.State.Roster) == 0 {
		for _, glyph := range e.Defs.Pack.Starter {
			res, err := e.AddCharacter(glyph)
			if err != nil {
				continue // starter glyph missing from the pack: skip
			}
			result.Events = append(result.Events, res.Events...)
			result.Output = append(result.Output, res.Output...)
		}
	}
	result.Events = append(result.Events, e.refreshUnlocks()...)
	return result
}

// AddCharacter adds a defined character to the roster at level 1 and
// re-evaluates phrase unlocks.
func (e *Engine) AddCharacter(glyph string) (types.Result, error) {
	var result types.Result
	def, ok := e.Defs.Characters[glyph]
	if !ok {
		return result, fmt.Errorf("character %q: %w", glyph, ErrNotFound)
	}
	if state.Owns(e.State, glyph) {
		result.Output = append(result.Output, fmt.Sprintf("%s is already in your roster.", glyph))
		return result, nil
	}
	c := &types.Character{
		Glyph:      def.Glyph,
		Pinyin:     def.Pinyin,
		Strokes:    def.Strokes,
		Difficulty: def.Difficulty,
		Frequency:  def.Frequency,
		Level:      1,
		Unlocked:   true,
		Origin:     types.OriginBase,
	}
	RecomputeStats(c)
	e.addToRoster(c)

	result.Events = append(result.Events, types.Event{
		Type: "character_added",
		Data: map[string]any{"glyph": glyph},
	})
	result.Output = append(result.Output, fmt.Sprintf("%s (%s) joined your roster.", glyph, def.Pinyin))
	result.Events = append(result.Events, e.refreshUnlocks()...)
	return e.finish(result), nil
}

// RemoveCharacter removes a roster character, abandons any practice or
// sequence that references it, and relocks every unlocked phrase that
// depends on it.
func (e *Engine) RemoveCharacter(glyph string) (types.Result, error) {
	var result types.Result
	if !state.Owns(e.State, glyph) {
		return result, fmt.Errorf("character %q: %w", glyph, ErrNotFound)
	}

	if e.State.Practice.Active && e.State.Practice.Glyph == glyph {
		e.State.Practice = types.PracticeState{}
		result.Output = append(result.Output,
			fmt.Sprintf("Practice of %s discarded.", glyph))
	}
	if seq := e.State.Sequence; seq.Active {
		for _, c := range seq.Characters {
			if c != glyph {
				continue
			}
			// The active practice belongs to the sequence; drop it too.
			if e.State.Practice.Active && e.State.Practice.Glyph == seq.Characters[seq.Index] {
				e.State.Practice = types.PracticeState{}
			}
			e.State.Sequence = types.SequenceState{}
			result.Events = append(result.Events, types.Event{
				Type: "sequence_aborted",
				Data: map[string]any{"phrase": seq.Text, "removed": glyph},
			})
			result.Output = append(result.Output,
				fmt.Sprintf("Practicing %s was abandoned.", seq.Text))
			break
		}
	}

	e.removeFromRoster(glyph)

	result.Events = append(result.Events, types.Event{
		Type: "character_removed",
		Data: map[string]any{"glyph": glyph},
	})
	result.Output = append(result.Output, fmt.Sprintf("%s left your roster.", glyph))
	result.Events = append(result.Events, e.relockDependents(glyph)...)
	return e.finish(result), nil
}

// StartPractice begins a single-character practice session. Only one
// session can be active at a time.
func (e *Engine) StartPractice(glyph string) error {
	if e.State.Practice.Active {
		return fmt.Errorf("practice already in progress: %w", ErrInvalidState)
	}
	if !state.Owns(e.State, glyph) {
		return fmt.Errorf("character %q: %w", glyph, ErrNotFound)
	}
	e.State.Practice = types.PracticeState{Active: true, Glyph: glyph}
	return nil
}

// RecordStroke appends one stroke outcome from the practice widget to the
// active session.
func (e *Engine) RecordStroke(rec types.StrokeRecord) error {
	if !e.State.Practice.Active {
		return fmt.Errorf("no practice in progress: %w", ErrInvalidState)
	}
	e.State.Practice.Strokes = append(e.State.Practice.Strokes, rec)
	if !rec.Correct {
		e.State.Practice.Mistakes++
	}
	return nil
}

// CompletePractice ends the active session: computes accuracy, grants XP
// on the character and player curves, re-evaluates unlocks, and advances
// any phrase sequence in progress.
func (e *Engine) CompletePractice(elapsedMs int) (types.Result, error) {
	var result types.Result
	if !e.State.Practice.Active {
		return result, fmt.Errorf("no practice in progress: %w", ErrInvalidState)
	}
	p := e.State.Practice
	e.State.Practice = types.PracticeState{}

	c := state.GetCharacter(e.State, p.Glyph)
	if c == nil {
		// Removed mid-session. The session is discarded.
		return result, fmt.Errorf("character %q: %w", p.Glyph, ErrNotFound)
	}

	accuracy := SessionAccuracy(p.Strokes, c.Strokes, p.Mistakes)
	reward := PracticeReward(accuracy, p.Mistakes, elapsedMs)

	c.PracticeCount++
	c.MistakeCount += p.Mistakes
	if accuracy > c.BestAccuracy {
		c.BestAccuracy = accuracy
	}
	levels := GrantCharacterXP(c, reward)

	e.State.Player.PracticeSessions++
	e.State.Player.PracticeSeconds += elapsedMs / 1000
	state.IncCounter(e.State, "practices", 1)
	playerLevels := GrantPlayerXP(&e.State.Player, reward/2)

	result.Events = append(result.Events, types.Event{
		Type: "practice_completed",
		Data: map[string]any{"glyph": p.Glyph, "accuracy": accuracy, "xp": reward},
	})
	result.Output = append(result.Output,
		fmt.Sprintf("Practiced %s: accuracy %d%%, +%d XP.", p.Glyph, accuracy, reward))
	if levels > 0 {
		result.Events = append(result.Events, types.Event{
			Type: "level_up",
			Data: map[string]any{"glyph": p.Glyph, "level": c.Level, "gained": levels},
		})
		result.Output = append(result.Output,
			fmt.Sprintf("%s reached level %d!", p.Glyph, c.Level))
		result.Events = append(result.Events, e.refreshUnlocks()...)
	}
	if playerLevels > 0 {
		result.Events = append(result.Events, types.Event{
			Type: "player_level_up",
			Data: map[string]any{"level": e.State.Player.Level},
		})
		result.Output = append(result.Output,
			fmt.Sprintf("You reached level %d!", e.State.Player.Level))
	}

	if e.State.Sequence.Active {
		seqResult := e.advanceSequence(p.Glyph)
		result.Events = append(result.Events, seqResult.Events...)
		result.Output = append(result.Output, seqResult.Output...)
	}

	return e.finish(result), nil
}

// UseItem consumes one unit of an item on a roster character. Only
// xp_boost items exist today.
func (e *Engine) UseItem(itemID, glyph string) (types.Result, error) {
	var result types.Result
	def, ok := e.Defs.Items[itemID]
	if !ok {
		return result, fmt.Errorf("item %q: %w", itemID, ErrNotFound)
	}
	c := state.GetCharacter(e.State, glyph)
	if c == nil {
		return result, fmt.Errorf("character %q: %w", glyph, ErrNotFound)
	}
	if !state.RemoveFromBag(e.State, itemID) {
		return result, fmt.Errorf("item %q not in bag: %w", itemID, ErrNotFound)
	}

	levels := GrantCharacterXP(c, def.Value)
	state.IncCounter(e.State, "items_used", 1)
	result.Events = append(result.Events, types.Event{
		Type: "item_used",
		Data: map[string]any{"item": itemID, "glyph": glyph, "xp": def.Value},
	})
	result.Output = append(result.Output,
		fmt.Sprintf("Used %s on %s: +%d XP.", def.Name, glyph, def.Value))
	if levels > 0 {
		result.Events = append(result.Events, types.Event{
			Type: "level_up",
			Data: map[string]any{"glyph": glyph, "level": c.Level, "gained": levels},
		})
		result.Output = append(result.Output, fmt.Sprintf("%s reached level %d!", glyph, c.Level))
		result.Events = append(result.Events, e.refreshUnlocks()...)
	}
	return e.finish(result), nil
}

// SwitchDefs swaps the content definitions (built-in ↔ imported). Runtime
// entries with no definition in the new set are pruned, dependent phrases
// are relocked, and unlocks are re-evaluated against the new set.
func (e *Engine) SwitchDefs(defs *state.Defs) types.Result {
	var result types.Result
	e.Defs = defs

	for glyph, c := range e.State.Roster {
		if c.Origin == types.OriginPhrase {
			continue // synthetic entries never have a definition
		}
		if _, ok := defs.Characters[glyph]; !ok {
			res, _ := e.RemoveCharacter(glyph)
			result.Events = append(result.Events, res.Events...)
			result.Output = append(result.Output, res.Output...)
		}
	}
	for text, p := range e.State.Phrases {
		if _, ok := defs.Phrases[text]; ok {
			continue
		}
		if p.Unlocked && e.State.Player.PhrasesUnlocked > 0 {
			e.State.Player.PhrasesUnlocked--
		}
		delete(e.State.Phrases, text)
	}
	for text := range defs.Phrases {
		state.PhraseProgress(e.State, text)
	}

	result.Events = append(result.Events, e.refreshUnlocks()...)
	return e.finish(result)
}

// Restore applies a loaded save onto the engine: progress, counters, bag,
// and the RNG advanced to its saved position. All cached combat stats are
// re-derived — persisted stat values are never trusted.
func (e *Engine) Restore(sd *save.SaveData) {
	save.Apply(e.State, sd)
	for _, c := range e.State.Roster {
		RecomputeStats(c)
	}
	e.Battle = nil
	e.RNG = RestoreRNG(sd.RNGSeed, sd.RNGPosition)
}

// addToRoster installs a roster entry. Every insertion path (pack
// additions, phrase synthesis, battle captures) goes through here so
// Player.CharactersOwned and the characters_owned counter both track the
// roster size.
func (e *Engine) addToRoster(c *types.Character) {
	e.State.Roster[c.Glyph] = c
	e.State.Player.CharactersOwned = len(e.State.Roster)
	e.State.Counters["characters_owned"] = len(e.State.Roster)
}

func (e *Engine) removeFromRoster(glyph string) {
	delete(e.State.Roster, glyph)
	e.State.Player.CharactersOwned = len(e.State.Roster)
	e.State.Counters["characters_owned"] = len(e.State.Roster)
}

// finish records the RNG position for persistence and routes the
// operation's events through achievement dispatch.
func (e *Engine) finish(result types.Result) types.Result {
	earned := events.Dispatch(result.Events, e.State, e.Defs)
	for _, evt := range earned {
		result.Events = append(result.Events, evt)
		if name, ok := evt.Data["name"].(string); ok {
			result.Output = append(result.Output, fmt.Sprintf("Achievement unlocked: %s!", name))
		}
	}
	e.State.RNGPosition = e.RNG.Position()
	return result
}
