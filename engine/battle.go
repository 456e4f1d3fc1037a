package engine

import (
	"fmt"
	"sort"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

// Battle is one ephemeral battle session. Combatant HP lives only here;
// persisted character levels and XP are untouched by battle outcomes.
type Battle struct {
	Opponent *types.Opponent
	Party    []types.Combatant
	Active   int // index into Party
	Over     bool
	Won      bool
}

// ActiveCombatant returns the currently fighting party member.
func (b *Battle) ActiveCombatant() *types.Combatant {
	return &b.Party[b.Active]
}

// Damage computes one attack's damage: the attack/defense difference,
// floored at 1, plus uniform variance in [-2, +2], floored at 1 again.
// Even a hopeless matchup always chips at least 1 HP.
func Damage(attack, defense int, rng *RNG) int {
	base := attack - defense
	if base < 1 {
		base = 1
	}
	dmg := base + rng.Between(-2, 2)
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// StartBattle generates a wild opponent and snapshots the roster into a
// battle party. Battles open up after enough practice sessions.
func (e *Engine) StartBattle() (types.Result, error) {
	var result types.Result
	if e.Battle != nil && !e.Battle.Over {
		return result, fmt.Errorf("battle already in progress: %w", ErrInvalidState)
	}
	if gate := e.Defs.BattleAfter(); e.State.Player.PracticeSessions < gate {
		return result, fmt.Errorf("battles unlock after %d practice sessions (%d done): %w",
			gate, e.State.Player.PracticeSessions, ErrInvalidState)
	}
	if len(e.State.Roster) == 0 {
		return result, fmt.Errorf("empty roster: %w", ErrInvalidState)
	}

	glyphs := make([]string, 0, len(e.State.Roster))
	for g := range e.State.Roster {
		glyphs = append(glyphs, g)
	}
	sort.Strings(glyphs) // deterministic party order

	party := make([]types.Combatant, 0, len(glyphs))
	for _, g := range glyphs {
		c := e.State.Roster[g]
		party = append(party, types.Combatant{
			Glyph:     g,
			MaxHP:     c.Stats.HP,
			CurrentHP: c.Stats.HP,
			Attack:    c.Stats.Attack,
			Defense:   c.Stats.Defense,
		})
	}

	opponent := e.GenerateOpponent()
	e.Battle = &Battle{Opponent: opponent, Party: party}

	result.Events = append(result.Events, types.Event{
		Type: "battle_started",
		Data: map[string]any{"opponent": opponent.Name, "level": opponent.Level},
	})
	result.Output = append(result.Output, fmt.Sprintf(
		"A wild %s (%s, Lv.%d) appeared! HP %d, your %s leads.",
		opponent.Name, opponent.Pinyin, opponent.Level, opponent.MaxHP, party[0].Glyph))
	return e.finish(result), nil
}

// Attack resolves one round: the active character strikes, then the enemy
// counters unless it was just defeated. Damage is applied and the defeat
// check runs before any counter-attack fires, so a lethal exchange is a
// player win.
func (e *Engine) Attack() (types.Result, error) {
	var result types.Result
	b := e.Battle
	if b == nil || b.Over {
		return result, fmt.Errorf("no active battle: %w", ErrInvalidState)
	}

	attacker := b.ActiveCombatant()
	dmg := Damage(attacker.Attack, b.Opponent.Defense, e.RNG)
	b.Opponent.CurrentHP -= dmg
	if b.Opponent.CurrentHP < 0 {
		b.Opponent.CurrentHP = 0
	}
	result.Output = append(result.Output, fmt.Sprintf(
		"%s hits %s for %d. (enemy HP %d/%d)",
		attacker.Glyph, b.Opponent.Name, dmg, b.Opponent.CurrentHP, b.Opponent.MaxHP))

	if b.Opponent.CurrentHP == 0 {
		b.Over = true
		b.Won = true
		state.IncCounter(e.State, "battles_won", 1)
		result.Events = append(result.Events, types.Event{
			Type: "battle_won",
			Data: map[string]any{"opponent": b.Opponent.Name, "level": b.Opponent.Level},
		})
		result.Output = append(result.Output,
			fmt.Sprintf("%s was defeated!", b.Opponent.Name))

		loot := e.rollRewards(b.Opponent)
		result.Events = append(result.Events, loot.Events...)
		result.Output = append(result.Output, loot.Output...)
		return e.finish(result), nil
	}

	counter := Damage(b.Opponent.Attack, attacker.Defense, e.RNG)
	attacker.CurrentHP -= counter
	if attacker.CurrentHP < 0 {
		attacker.CurrentHP = 0
	}
	result.Output = append(result.Output, fmt.Sprintf(
		"%s counters %s for %d. (HP %d/%d)",
		b.Opponent.Name, attacker.Glyph, counter, attacker.CurrentHP, attacker.MaxHP))

	if attacker.CurrentHP == 0 {
		attacker.Defeated = true
		result.Events = append(result.Events, types.Event{
			Type: "combatant_defeated",
			Data: map[string]any{"glyph": attacker.Glyph},
		})
		next := b.nextStanding()
		if next < 0 {
			b.Over = true
			result.Events = append(result.Events, types.Event{
				Type: "battle_lost",
				Data: map[string]any{"opponent": b.Opponent.Name},
			})
			result.Output = append(result.Output,
				"Your whole roster is down. The wild "+b.Opponent.Name+" wanders off.")
			return e.finish(result), nil
		}
		b.Active = next
		result.Output = append(result.Output, fmt.Sprintf(
			"%s fainted! %s steps in.", attacker.Glyph, b.Party[next].Glyph))
	}
	return e.finish(result), nil
}

// Switch makes another standing party member active. Allowed any time
// outside attack resolution.
func (e *Engine) Switch(glyph string) (types.Result, error) {
	var result types.Result
	b := e.Battle
	if b == nil || b.Over {
		return result, fmt.Errorf("no active battle: %w", ErrInvalidState)
	}
	for i := range b.Party {
		if b.Party[i].Glyph != glyph {
			continue
		}
		if i == b.Active {
			result.Output = append(result.Output, fmt.Sprintf("%s is already fighting.", glyph))
			return result, nil
		}
		if b.Party[i].Defeated {
			return result, fmt.Errorf("%s is defeated: %w", glyph, ErrInvalidState)
		}
		b.Active = i
		result.Events = append(result.Events, types.Event{
			Type: "combatant_switched",
			Data: map[string]any{"glyph": glyph},
		})
		result.Output = append(result.Output, fmt.Sprintf("Go, %s!", glyph))
		return e.finish(result), nil
	}
	return result, fmt.Errorf("combatant %q: %w", glyph, ErrNotFound)
}

// Flee discards the battle session. No effect on persisted progress.
func (e *Engine) Flee() (types.Result, error) {
	var result types.Result
	if e.Battle == nil {
		return result, fmt.Errorf("no active battle: %w", ErrInvalidState)
	}
	name := e.Battle.Opponent.Name
	e.Battle = nil
	result.Events = append(result.Events, types.Event{
		Type: "battle_fled",
		Data: map[string]any{"opponent": name},
	})
	result.Output = append(result.Output, "You got away from the wild "+name+".")
	return e.finish(result), nil
}

// nextStanding returns the index of the first non-defeated party member,
// or -1 when everyone is down.
func (b *Battle) nextStanding() int {
	for i := range b.Party {
		if !b.Party[i].Defeated {
			return i
		}
	}
	return -1
}
