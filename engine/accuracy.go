package engine

import "github.com/nathoo/hanziquest/types"

// SessionAccuracy computes the accuracy percentage for a completed practice
// session. One formula chain, in priority order:
//
//  1. per-stroke records → correct strokes over total stroke attempts;
//  2. no records but a known stroke count → strokes over strokes+mistakes;
//  3. neither → 100 minus 10 per mistake, clamped to [0, 100].
//
// The result is always floored to an integer percentage.
func SessionAccuracy(records []types.StrokeRecord, strokeCount, mistakes int) int {
	if len(records) > 0 {
		correct, attempts := 0, 0
		for _, rec := range records {
			if rec.Correct {
				correct++
				if rec.Attempts > 1 {
					attempts += rec.Attempts
				} else {
					attempts++
				}
			} else {
				attempts++
			}
		}
		if attempts > 0 {
			return correct * 100 / attempts
		}
	}
	if strokeCount > 0 {
		return strokeCount * 100 / (strokeCount + mistakes)
	}
	acc := 100 - mistakes*10
	if acc < 0 {
		acc = 0
	}
	return acc
}
