package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nathoo/hanziquest/engine/state"
)

// ValidationError collects all validation errors and warnings. A dataset
// with any error is rejected whole — no partial import.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validItemKinds = map[string]bool{
	"xp_boost": true,
}

var validRarities = map[string]bool{
	"common":   true,
	"uncommon": true,
	"rare":     true,
}

// validate checks all definitions for required fields, value ranges, and
// referential consistency, reporting every violation at once.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	for _, glyph := range sortedKeys(defs.Characters) {
		def := defs.Characters[glyph]
		if def.Pinyin == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("character %q: pinyin is required", glyph))
		}
		if def.Strokes <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("character %q: strokes must be positive, got %d", glyph, def.Strokes))
		}
		if def.Difficulty < 1 || def.Difficulty > 5 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("character %q: difficulty must be 1..5, got %d", glyph, def.Difficulty))
		}
		if def.Frequency < 0 || def.Frequency > 100 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("character %q: frequency must be 0..100, got %d", glyph, def.Frequency))
		}
	}

	for _, text := range sortedKeys(defs.Phrases) {
		def := defs.Phrases[text]
		if len(def.Characters) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("phrase %q: characters must be non-empty", text))
		}
		if def.Pinyin == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("phrase %q: pinyin is required", text))
		}
		if def.Meaning == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("phrase %q: meaning is required", text))
		}
		if def.Difficulty < 1 || def.Difficulty > 5 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("phrase %q: difficulty must be 1..5, got %d", text, def.Difficulty))
		}
		if def.Frequency < 0 || def.Frequency > 100 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("phrase %q: frequency must be 0..100, got %d", text, def.Frequency))
		}

		// The constituent list and requirement map must cover the same keys.
		seen := map[string]bool{}
		for _, glyph := range def.Characters {
			seen[glyph] = true
			if _, ok := def.Requirements[glyph]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf("phrase %q: constituent %q has no level requirement", text, glyph))
			}
			if _, ok := defs.Characters[glyph]; !ok {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf("phrase %q: constituent %q is not a defined character", text, glyph))
			}
		}
		for glyph, level := range def.Requirements {
			if !seen[glyph] {
				ve.Errors = append(ve.Errors, fmt.Sprintf("phrase %q: requirement %q is not a constituent", text, glyph))
			}
			if level < 1 {
				ve.Errors = append(ve.Errors, fmt.Sprintf("phrase %q: requirement for %q must be at least 1, got %d", text, glyph, level))
			}
		}
	}

	for _, id := range sortedKeys(defs.Items) {
		def := defs.Items[id]
		if def.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %q: name is required", id))
		}
		if !validItemKinds[def.Kind] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %q: unknown kind %q", id, def.Kind))
		}
		if def.Value <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %q: value must be positive, got %d", id, def.Value))
		}
		if !validRarities[def.Rarity] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("item %q: unknown rarity %q", id, def.Rarity))
		}
	}

	achievementIDs := map[string]bool{}
	for _, def := range defs.Achievements {
		if achievementIDs[def.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate achievement %q", def.ID))
		}
		achievementIDs[def.ID] = true
		if def.Event == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("achievement %q: event is required", def.ID))
		}
	}

	for _, glyph := range defs.Pack.Starter {
		if _, ok := defs.Characters[glyph]; !ok {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("starter %q is not a defined character", glyph))
		}
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
