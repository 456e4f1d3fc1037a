package engine

import (
	"sort"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

// CanUnlock reports whether every constituent of a phrase is in the roster
// at or above its required level.
func CanUnlock(def types.PhraseDef, roster map[string]*types.Character) bool {
	for _, glyph := range def.Characters {
		c, ok := roster[glyph]
		if !ok {
			return false
		}
		if c.Level < def.Requirements[glyph] {
			return false
		}
	}
	return true
}

// refreshUnlocks re-evaluates the unlock predicate for every defined
// phrase. Newly satisfied phrases flip to unlocked; the reverse never
// happens here — relocking only follows constituent removal. Returns the
// emitted events.
func (e *Engine) refreshUnlocks() []types.Event {
	var events []types.Event
	texts := make([]string, 0, len(e.Defs.Phrases))
	for text := range e.Defs.Phrases {
		texts = append(texts, text)
	}
	sort.Strings(texts) // deterministic event order

	for _, text := range texts {
		def := e.Defs.Phrases[text]
		p := state.PhraseProgress(e.State, text)
		if p.Unlocked || !CanUnlock(def, e.State.Roster) {
			continue
		}
		p.Unlocked = true
		e.State.Player.PhrasesUnlocked++
		state.IncCounter(e.State, "phrases_unlocked", 1)
		events = append(events, types.Event{
			Type: "phrase_unlocked",
			Data: map[string]any{"phrase": text},
		})
	}
	return events
}

// relockDependents relocks every unlocked phrase that lists the removed
// glyph as a constituent, decrementing the unlocked counter. This runs on
// every roster removal — a hard invariant, not optional cleanup.
func (e *Engine) relockDependents(glyph string) []types.Event {
	var events []types.Event
	texts := make([]string, 0, len(e.Defs.Phrases))
	for text := range e.Defs.Phrases {
		texts = append(texts, text)
	}
	sort.Strings(texts)

	for _, text := range texts {
		def := e.Defs.Phrases[text]
		p, ok := e.State.Phrases[text]
		if !ok || !p.Unlocked {
			continue
		}
		for _, c := range def.Characters {
			if c != glyph {
				continue
			}
			p.Unlocked = false
			if e.State.Player.PhrasesUnlocked > 0 {
				e.State.Player.PhrasesUnlocked--
			}
			events = append(events, types.Event{
				Type: "phrase_relocked",
				Data: map[string]any{"phrase": text, "removed": glyph},
			})
			break
		}
	}
	return events
}
