// Package state manages the immutable content definitions and the mutable
// player progress, plus the lookups shared by the engine subsystems.
package state

import "github.com/nathoo/hanziquest/types"

// DefaultBagCapacity bounds the total number of item units a bag holds.
const DefaultBagCapacity = 50

// DefaultBattleAfter is the practice-session gate used when the content
// pack does not set one.
const DefaultBattleAfter = 3

// Defs holds the immutable content definitions loaded from a pack.
type Defs struct {
	Pack         types.PackDef
	Characters   map[string]types.CharacterDef
	Phrases      map[string]types.PhraseDef
	Items        map[string]types.ItemDef
	Achievements []types.AchievementDef
}

// BattleAfter returns the practice-session count required before battles.
func (d *Defs) BattleAfter() int {
	if d.Pack.BattleAfter > 0 {
		return d.Pack.BattleAfter
	}
	return DefaultBattleAfter
}

// NewState creates fresh player progress for the given definitions. The
// roster starts empty; every defined phrase gets a locked runtime entry.
func NewState(defs *Defs) *types.State {
	s := &types.State{
		Player: types.Player{
			Level:        1,
			Achievements: []string{},
		},
		Roster:  map[string]*types.Character{},
		Phrases: map[string]*types.Phrase{},
		Bag: types.Bag{
			Capacity: DefaultBagCapacity,
			Items:    map[string]int{},
		},
		Counters: map[string]int{},
	}
	for text := range defs.Phrases {
		s.Phrases[text] = &types.Phrase{Text: text, Level: 1}
	}
	return s
}

// GetCharacter returns the roster entry for a glyph, or nil.
func GetCharacter(s *types.State, glyph string) *types.Character {
	return s.Roster[glyph]
}

// Owns reports whether the roster contains the glyph.
func Owns(s *types.State, glyph string) bool {
	_, ok := s.Roster[glyph]
	return ok
}

// PhraseProgress returns the runtime entry for a phrase, creating a locked
// level-1 entry on first access. Definitions added after state creation
// (dataset switches, captures) land here.
func PhraseProgress(s *types.State, text string) *types.Phrase {
	if p, ok := s.Phrases[text]; ok {
		return p
	}
	p := &types.Phrase{Text: text, Level: 1}
	s.Phrases[text] = p
	return p
}

// RosterLevels returns the average, minimum, and maximum character level
// across the roster. An empty roster reports (1, 1, 1).
func RosterLevels(s *types.State) (avg float64, min, max int) {
	if len(s.Roster) == 0 {
		return 1, 1, 1
	}
	sum := 0
	min, max = 0, 0
	for _, c := range s.Roster {
		sum += c.Level
		if min == 0 || c.Level < min {
			min = c.Level
		}
		if c.Level > max {
			max = c.Level
		}
	}
	return float64(sum) / float64(len(s.Roster)), min, max
}

// BagTotal returns the total number of item units in the bag.
func BagTotal(s *types.State) int {
	total := 0
	for _, n := range s.Bag.Items {
		total += n
	}
	return total
}

// AddToBag adds count units of an item, honoring capacity. It returns the
// number of units actually added: overflow is dropped, not an error.
func AddToBag(s *types.State, itemID string, count int) int {
	if s.Bag.Items == nil {
		s.Bag.Items = map[string]int{}
	}
	free := s.Bag.Capacity - BagTotal(s)
	if free <= 0 {
		return 0
	}
	if count > free {
		count = free
	}
	s.Bag.Items[itemID] += count
	return count
}

// RemoveFromBag removes one unit of an item. It reports whether a unit was
// present to remove.
func RemoveFromBag(s *types.State, itemID string) bool {
	if s.Bag.Items[itemID] <= 0 {
		return false
	}
	s.Bag.Items[itemID]--
	if s.Bag.Items[itemID] == 0 {
		delete(s.Bag.Items, itemID)
	}
	return true
}

// IncCounter increments a named counter and returns the new value.
func IncCounter(s *types.State, name string, amount int) int {
	s.Counters[name] += amount
	return s.Counters[name]
}

// HasAchievement reports whether the player already earned an achievement.
func HasAchievement(s *types.State, id string) bool {
	for _, a := range s.Player.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
