package engine

import (
	"math"
	"sort"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

// earlyGameLevel is the roster average below which opponent selection and
// leveling use the gentler early-game rules.
const earlyGameLevel = 3

// mysteryNames is the fallback pool used when the player already owns
// every defined character and has unlocked every phrase.
var mysteryNames = []struct {
	glyph  string
	pinyin string
}{
	{"龘", "dá"},
	{"齉", "nàng"},
	{"靐", "bìng"},
	{"爨", "cuàn"},
}

// candidate is one possible wild opponent before selection.
type candidate struct {
	name       string
	pinyin     string
	isPhrase   bool
	charCount  int
	strokes    int
	difficulty int
	frequency  int
}

// GenerateOpponent synthesizes a wild opponent balanced to the roster:
// an unowned character or locked phrase, weighted toward low stroke
// counts early on, with a level drawn around the roster's average.
func (e *Engine) GenerateOpponent() *types.Opponent {
	pool := e.opponentPool()
	var pick candidate
	if len(pool) == 0 {
		pick = e.mysteryCandidate()
	} else {
		weights := make([]int, len(pool))
		avg, _, _ := state.RosterLevels(e.State)
		for i, c := range pool {
			weights[i] = selectionWeight(c.strokes, avg)
		}
		pick = pool[e.RNG.WeightedSelect(weights)]
	}

	o := &types.Opponent{
		Name:       pick.name,
		Pinyin:     pick.pinyin,
		IsPhrase:   pick.isPhrase,
		CharCount:  pick.charCount,
		Strokes:    pick.strokes,
		Difficulty: pick.difficulty,
		Frequency:  pick.frequency,
	}
	o.Level = e.opponentLevel(pick)
	OpponentStats(o)
	return o
}

// opponentPool collects every defined character the player does not own
// and every defined phrase not yet unlocked, in deterministic order.
func (e *Engine) opponentPool() []candidate {
	var pool []candidate

	glyphs := make([]string, 0, len(e.Defs.Characters))
	for g := range e.Defs.Characters {
		glyphs = append(glyphs, g)
	}
	sort.Strings(glyphs)
	for _, g := range glyphs {
		if state.Owns(e.State, g) {
			continue
		}
		def := e.Defs.Characters[g]
		pool = append(pool, candidate{
			name:       def.Glyph,
			pinyin:     def.Pinyin,
			strokes:    def.Strokes,
			difficulty: def.Difficulty,
			frequency:  def.Frequency,
		})
	}

	texts := make([]string, 0, len(e.Defs.Phrases))
	for t := range e.Defs.Phrases {
		texts = append(texts, t)
	}
	sort.Strings(texts)
	for _, t := range texts {
		if p, ok := e.State.Phrases[t]; ok && p.Unlocked {
			continue
		}
		def := e.Defs.Phrases[t]
		pool = append(pool, candidate{
			name:       def.Text,
			pinyin:     def.Pinyin,
			isPhrase:   true,
			charCount:  len(def.Characters),
			strokes:    e.phraseStrokes(def),
			difficulty: def.Difficulty,
			frequency:  def.Frequency,
		})
	}
	return pool
}

// phraseStrokes sums a phrase's constituent stroke counts, substituting
// for unknown constituents and defaulting when nothing is known.
func (e *Engine) phraseStrokes(def types.PhraseDef) int {
	strokes := 0
	known := false
	for _, glyph := range def.Characters {
		if cd, ok := e.Defs.Characters[glyph]; ok {
			strokes += cd.Strokes
			known = true
		} else {
			strokes += missingStrokeFallback
		}
	}
	if !known && strokes == 0 {
		return 10
	}
	return strokes
}

// mysteryCandidate produces a randomized high-stroke fallback opponent.
func (e *Engine) mysteryCandidate() candidate {
	pick := mysteryNames[e.RNG.Intn(len(mysteryNames))]
	return candidate{
		name:       pick.glyph,
		pinyin:     pick.pinyin,
		strokes:    e.RNG.Between(15, 25),
		difficulty: e.RNG.Between(4, 5),
		frequency:  e.RNG.Between(20, 50),
	}
}

// selectionWeight favors low-stroke candidates in the early game and
// flattens once the roster's average level passes the early threshold.
func selectionWeight(strokes int, avgLevel float64) int {
	if avgLevel <= earlyGameLevel {
		switch {
		case strokes <= 3:
			return 8
		case strokes <= 6:
			return 4
		case strokes <= 10:
			return 2
		default:
			return 1
		}
	}
	if strokes <= 6 {
		return 2
	}
	return 1
}

// opponentLevel draws a level around the roster's strength, then applies
// the stroke/phrase/difficulty modifiers. Never below 1.
func (e *Engine) opponentLevel(c candidate) int {
	avg, min, max := state.RosterLevels(e.State)
	base := int(math.Round(avg))

	var target int
	if avg <= earlyGameLevel {
		target = base + e.RNG.Between(-1, 1)
	} else {
		spread := (max-min)/2 + 1
		if spread > 3 {
			spread = 3
		}
		lo := base - spread
		if lo < 1 {
			lo = 1
		}
		target = e.RNG.Between(lo, base+spread)
	}

	switch {
	case c.strokes <= 3:
		target -= 2
	case c.strokes <= 6:
		target--
	case c.strokes <= 10:
		// no adjustment
	case c.strokes <= 15:
		target++
	default:
		target += 2
	}
	if c.isPhrase {
		target++
	}
	if c.difficulty >= 4 {
		target++
	}
	if target < 1 {
		target = 1
	}
	return target
}
