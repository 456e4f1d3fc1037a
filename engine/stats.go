package engine

import "github.com/nathoo/hanziquest/types"

// Base combat constants. Characters and phrases use different bases and
// level coefficients; wild opponents share the bases but derive attack from
// difficulty and defense from rarity (see OpponentStats).
const (
	charBaseHP      = 20
	charBaseAttack  = 10
	charBaseDefense = 8
	charLevelCoef   = 2

	phraseBaseHP      = 50
	phraseBaseAttack  = 15
	phraseBaseDefense = 12
	phraseLevelCoef   = 3
)

// CharacterStats derives combat stats for a roster character.
//
//	HP      = 20 + strokes×3 + (level−1)×5
//	Attack  = 10 + (10 − frequency/10) + (level−1)×2
//	Defense = 8 + difficulty×4 + (level−1)×2
//
// Rarer characters (low frequency) hit harder.
func CharacterStats(level, strokes, difficulty, frequency int) types.Stats {
	return types.Stats{
		HP:      charBaseHP + strokes*3 + (level-1)*5,
		Attack:  charBaseAttack + (10 - frequency/10) + (level-1)*charLevelCoef,
		Defense: charBaseDefense + difficulty*4 + (level-1)*charLevelCoef,
	}
}

// PhraseStats derives combat stats for a phrase entity. The HP base grows
// with the constituent count; attack and defense level faster than a
// single character's.
func PhraseStats(level, strokes, difficulty, frequency, charCount int) types.Stats {
	return types.Stats{
		HP:      phraseBaseHP + charCount*20 + strokes*3 + (level-1)*5,
		Attack:  phraseBaseAttack + (10 - frequency/10) + (level-1)*phraseLevelCoef,
		Defense: phraseBaseDefense + difficulty*4 + (level-1)*phraseLevelCoef,
	}
}

// RecomputeStats overwrites a character's cached stats from its current
// level. Called after every level change and after loading a save — cached
// stats are never trusted over a fresh derivation.
func RecomputeStats(c *types.Character) {
	c.Stats = CharacterStats(c.Level, c.Strokes, c.Difficulty, c.Frequency)
}

// OpponentStats derives and caches a wild opponent's combat numbers from
// its generated level. Opponent attack scales with difficulty and defense
// carries the rarity discount, so unowned rare characters are tanky but
// familiar common ones are easy captures.
func OpponentStats(o *types.Opponent) {
	baseHP, baseAtk, baseDef, coef := charBaseHP, charBaseAttack, charBaseDefense, charLevelCoef
	diffMult := 4
	if o.IsPhrase {
		baseHP, baseAtk, baseDef, coef = phraseBaseHP, phraseBaseAttack, phraseBaseDefense, phraseLevelCoef
		diffMult = 5
	}
	rarity := 10 - o.Frequency/10
	if rarity < 0 {
		rarity = 0
	}
	o.MaxHP = baseHP + o.Strokes*3 + (o.Level-1)*5
	o.CurrentHP = o.MaxHP
	o.Attack = baseAtk + o.Difficulty*diffMult + (o.Level-1)*coef
	o.Defense = baseDef + rarity + (o.Level-1)*coef
}
