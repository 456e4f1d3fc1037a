package engine

import "github.com/nathoo/hanziquest/types"

// XP thresholds. Each kind levels on its own curve: phrases are slower
// than characters because full-sequence completions are rarer, and the
// player curve is slower still.
func CharacterThreshold(level int) int { return level * 100 }
func PhraseThreshold(level int) int    { return level * 150 }
func PlayerThreshold(level int) int    { return level * 200 }

// fastCompletionMs is the completion-time cutoff for the speed bonus.
const fastCompletionMs = 30000

// PracticeReward computes the XP for one completed character practice.
// accuracy is a 0..100 percentage.
func PracticeReward(accuracy, mistakes, elapsedMs int) int {
	reward := 20 + accuracy*30/100 - mistakes*2
	if elapsedMs < fastCompletionMs {
		reward += 10
	}
	if reward < 5 {
		reward = 5
	}
	return reward
}

// PhraseReward computes the XP for one full-sequence completion. The first
// completion ever carries a flat bonus.
func PhraseReward(charCount int, first bool) int {
	reward := 25 + 5*charCount
	if first {
		reward += 50
	}
	return reward
}

// GrantCharacterXP adds XP to a character, consuming whole thresholds for
// as long as they are met — one large reward can jump several levels.
// Stats are recomputed before returning. Returns levels gained.
func GrantCharacterXP(c *types.Character, xp int) int {
	c.XP += xp
	levels := 0
	for c.XP >= CharacterThreshold(c.Level) {
		c.XP -= CharacterThreshold(c.Level)
		c.Level++
		levels++
	}
	if levels > 0 {
		RecomputeStats(c)
	}
	return levels
}

// GrantPhraseXP adds XP to a phrase on the phrase curve. Returns levels
// gained.
func GrantPhraseXP(p *types.Phrase, xp int) int {
	p.XP += xp
	levels := 0
	for p.XP >= PhraseThreshold(p.Level) {
		p.XP -= PhraseThreshold(p.Level)
		p.Level++
		levels++
	}
	return levels
}

// GrantPlayerXP adds XP to the player on the player curve. Returns levels
// gained.
func GrantPlayerXP(pl *types.Player, xp int) int {
	pl.XP += xp
	levels := 0
	for pl.XP >= PlayerThreshold(pl.Level) {
		pl.XP -= PlayerThreshold(pl.Level)
		pl.Level++
		levels++
	}
	return levels
}
