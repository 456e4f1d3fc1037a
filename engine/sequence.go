package engine

import (
	"fmt"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

// missingStrokeFallback substitutes for a constituent with no definition
// when summing a phrase's stroke count.
const missingStrokeFallback = 5

// StartPhraseSequence begins practicing each character of an unlocked
// phrase in order. The first constituent's practice session starts
// immediately; CompletePractice advances the sequence.
//
// A phrase with no canonical definition but a phrase-origin roster entry
// is rebuilt as a synthetic sequence from the entry's text, so captured or
// synthesized phrases stay practiceable after a dataset switch.
func (e *Engine) StartPhraseSequence(text string) (types.Result, error) {
	var result types.Result
	if e.State.Sequence.Active {
		return result, fmt.Errorf("sequence already in progress: %w", ErrInvalidState)
	}
	if e.State.Practice.Active {
		return result, fmt.Errorf("practice already in progress: %w", ErrInvalidState)
	}

	source := types.SequencePhrase
	var chars []string
	if def, ok := e.Defs.Phrases[text]; ok {
		p := state.PhraseProgress(e.State, text)
		if !p.Unlocked {
			return result, fmt.Errorf("phrase %q is locked: %w", text, ErrNotFound)
		}
		chars = def.Characters
	} else if c := state.GetCharacter(e.State, text); c != nil && c.Origin == types.OriginPhrase {
		source = types.SequenceSynthetic
		for _, r := range text {
			chars = append(chars, string(r))
		}
	} else {
		return result, fmt.Errorf("phrase %q: %w", text, ErrNotFound)
	}

	if len(chars) == 0 {
		return result, fmt.Errorf("phrase %q has no constituents: %w", text, ErrInvalidState)
	}
	for _, glyph := range chars {
		if !state.Owns(e.State, glyph) {
			return result, fmt.Errorf("constituent %q of %q: %w", glyph, text, ErrNotFound)
		}
	}

	e.State.Sequence = types.SequenceState{
		Active:     true,
		Source:     source,
		Text:       text,
		Characters: chars,
		Index:      0,
	}
	if err := e.StartPractice(chars[0]); err != nil {
		e.State.Sequence = types.SequenceState{}
		return result, err
	}
	result.Events = append(result.Events, types.Event{
		Type: "sequence_started",
		Data: map[string]any{"phrase": text},
	})
	result.Output = append(result.Output,
		fmt.Sprintf("Practicing %s: start with %s.", text, chars[0]))
	return result, nil
}

// advanceSequence is called from CompletePractice when a sequence is
// active. Completing the last constituent completes the sequence;
// otherwise the next constituent's practice begins.
func (e *Engine) advanceSequence(glyph string) types.Result {
	var result types.Result
	seq := &e.State.Sequence
	if glyph != seq.Characters[seq.Index] {
		return result // an out-of-band practice does not advance the sequence
	}
	if seq.Index < len(seq.Characters)-1 {
		seq.Index++
		next := seq.Characters[seq.Index]
		if err := e.StartPractice(next); err != nil {
			e.State.Sequence = types.SequenceState{}
			result.Output = append(result.Output,
				fmt.Sprintf("Sequence aborted: %v.", err))
			return result
		}
		result.Output = append(result.Output,
			fmt.Sprintf("Next up: %s (%d/%d).", next, seq.Index+1, len(seq.Characters)))
		return result
	}
	completed := *seq
	e.State.Sequence = types.SequenceState{}
	return e.completeSequence(completed)
}

// completeSequence awards the phrase XP, forwards the bonus to the player
// curve, and on the first completion ever synthesizes a standalone
// practiceable character for the phrase. Later completions feed half the
// (non-first) bonus to that character instead.
func (e *Engine) completeSequence(seq types.SequenceState) types.Result {
	var result types.Result
	p := state.PhraseProgress(e.State, seq.Text)
	if c := state.GetCharacter(e.State, seq.Text); c != nil && c.Origin == types.OriginPhrase {
		// The standalone entry only exists after a first completion; a
		// progress entry recreated after a dataset switch must not pay
		// the first-completion bonus again.
		p.FirstCompleted = true
	}
	first := !p.FirstCompleted

	reward := PhraseReward(len(seq.Characters), first)
	p.PracticeCount++
	levels := GrantPhraseXP(p, reward)
	playerLevels := GrantPlayerXP(&e.State.Player, reward)
	state.IncCounter(e.State, "sequences_completed", 1)

	result.Events = append(result.Events, types.Event{
		Type: "sequence_completed",
		Data: map[string]any{"phrase": seq.Text, "xp": reward, "first": first},
	})
	result.Output = append(result.Output,
		fmt.Sprintf("Completed %s: +%d XP.", seq.Text, reward))
	if levels > 0 {
		result.Events = append(result.Events, types.Event{
			Type: "phrase_level_up",
			Data: map[string]any{"phrase": seq.Text, "level": p.Level},
		})
		result.Output = append(result.Output,
			fmt.Sprintf("%s reached level %d!", seq.Text, p.Level))
	}
	if playerLevels > 0 {
		result.Events = append(result.Events, types.Event{
			Type: "player_level_up",
			Data: map[string]any{"level": e.State.Player.Level},
		})
	}

	if first {
		p.FirstCompleted = true
		evts := e.synthesizePhraseCharacter(seq.Text)
		result.Events = append(result.Events, evts...)
		result.Output = append(result.Output,
			fmt.Sprintf("%s can now be practiced as a single unit!", seq.Text))
	} else if c := state.GetCharacter(e.State, seq.Text); c != nil {
		half := PhraseReward(len(seq.Characters), false) / 2
		if GrantCharacterXP(c, half) > 0 {
			result.Events = append(result.Events, types.Event{
				Type: "level_up",
				Data: map[string]any{"glyph": seq.Text, "level": c.Level},
			})
			result.Events = append(result.Events, e.refreshUnlocks()...)
		}
	}
	return result
}

// synthesizePhraseCharacter mints the standalone roster entry for a phrase
// completed for the first time: stroke count is the sum of its
// constituents' (with a fallback per missing one), the rest copies the
// phrase definition.
func (e *Engine) synthesizePhraseCharacter(text string) []types.Event {
	if state.Owns(e.State, text) {
		return nil
	}
	def, hasDef := e.Defs.Phrases[text]

	strokes := 0
	chars := def.Characters
	if !hasDef {
		for _, r := range text {
			chars = append(chars, string(r))
		}
	}
	for _, glyph := range chars {
		if cd, ok := e.Defs.Characters[glyph]; ok {
			strokes += cd.Strokes
		} else {
			strokes += missingStrokeFallback
		}
	}

	c := &types.Character{
		Glyph:        text,
		Pinyin:       def.Pinyin,
		Strokes:      strokes,
		Difficulty:   def.Difficulty,
		Frequency:    def.Frequency,
		Level:        1,
		Unlocked:     true,
		Origin:       types.OriginPhrase,
		SourcePhrase: text,
	}
	RecomputeStats(c)
	e.addToRoster(c)

	return []types.Event{{
		Type: "phrase_character_created",
		Data: map[string]any{"glyph": text, "strokes": strokes},
	}}
}
