package engine

import (
	"errors"
	"testing"

	"github.com/nathoo/hanziquest/engine/state"
)

// battleEngine satisfies the practice gate and opens a battle.
func battleEngine(t *testing.T) *Engine {
	t.Helper()
	e := testEngine(t)
	e.Bootstrap()
	e.State.Player.PracticeSessions = e.Defs.BattleAfter()
	if _, err := e.StartBattle(); err != nil {
		t.Fatalf("StartBattle: %v", err)
	}
	return e
}

func TestDamage_Floors(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 100; i++ {
		if dmg := Damage(1, 50, rng); dmg < 1 {
			t.Fatalf("damage %d below floor in a hopeless matchup", dmg)
		}
	}
	// A dominant attack stays within base ± 2.
	for i := 0; i < 100; i++ {
		dmg := Damage(30, 10, rng)
		if dmg < 18 || dmg > 22 {
			t.Fatalf("damage %d outside 20±2", dmg)
		}
	}
}

func TestStartBattle_PracticeGate(t *testing.T) {
	e := testEngine(t)
	e.Bootstrap()
	_, err := e.StartBattle()
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("gated battle: expected ErrInvalidState, got %v", err)
	}

	e.State.Player.PracticeSessions = e.Defs.BattleAfter()
	if _, err := e.StartBattle(); err != nil {
		t.Fatalf("gate satisfied but StartBattle failed: %v", err)
	}
}

func TestStartBattle_PartySnapshot(t *testing.T) {
	e := battleEngine(t)
	b := e.Battle

	if len(b.Party) != 2 {
		t.Fatalf("party size = %d, want 2", len(b.Party))
	}
	// Sorted glyph order, HP snapshotted from derived stats.
	if b.Party[0].Glyph != "你" || b.Party[1].Glyph != "好" {
		t.Errorf("party order = %s, %s", b.Party[0].Glyph, b.Party[1].Glyph)
	}
	for _, cb := range b.Party {
		c := state.GetCharacter(e.State, cb.Glyph)
		if cb.CurrentHP != c.Stats.HP || cb.MaxHP != c.Stats.HP {
			t.Errorf("%s HP %d/%d, want %d", cb.Glyph, cb.CurrentHP, cb.MaxHP, c.Stats.HP)
		}
	}
	if b.Active != 0 || b.Over {
		t.Errorf("battle should open on the first member: %+v", b)
	}
}

func TestStartBattle_AlreadyRunning(t *testing.T) {
	e := battleEngine(t)
	_, err := e.StartBattle()
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestAttack_NoBattle(t *testing.T) {
	e := testEngine(t)
	_, err := e.Attack()
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestAttack_LethalHitSkipsCounter(t *testing.T) {
	e := battleEngine(t)
	b := e.Battle
	b.Opponent.CurrentHP = 1
	hpBefore := b.ActiveCombatant().CurrentHP

	res, err := e.Attack()
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if !b.Over || !b.Won {
		t.Fatal("lethal hit should end the battle as a win")
	}
	if b.ActiveCombatant().CurrentHP != hpBefore {
		t.Error("defeated opponent must not counter-attack")
	}
	if !hasEvent(res.Events, "battle_won") {
		t.Error("expected battle_won event")
	}
	if e.State.Counters["battles_won"] != 1 {
		t.Errorf("battles_won counter = %d, want 1", e.State.Counters["battles_won"])
	}
}

func TestAttack_CounterAndFaint(t *testing.T) {
	e := battleEngine(t)
	b := e.Battle
	b.Opponent.CurrentHP = 1000
	b.Opponent.MaxHP = 1000
	b.Party[0].CurrentHP = 1

	res, err := e.Attack()
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if !b.Party[0].Defeated {
		t.Fatal("first member should faint to the counter")
	}
	if !hasEvent(res.Events, "combatant_defeated") {
		t.Error("expected combatant_defeated event")
	}
	if b.Over {
		t.Fatal("battle should continue with the second member")
	}
	if b.Active != 1 {
		t.Errorf("active = %d, want auto-advance to 1", b.Active)
	}
}

func TestAttack_FullDefeatEndsBattle(t *testing.T) {
	e := battleEngine(t)
	b := e.Battle
	b.Opponent.CurrentHP = 1000
	b.Opponent.MaxHP = 1000
	levelBefore := state.GetCharacter(e.State, "你").Level

	var lost bool
	for i := 0; i < 200 && !b.Over; i++ {
		res, err := e.Attack()
		if err != nil {
			t.Fatalf("Attack: %v", err)
		}
		if hasEvent(res.Events, "battle_lost") {
			lost = true
		}
	}
	if !b.Over || b.Won || !lost {
		t.Fatal("battle should end in a loss once the party is down")
	}
	// Losses never touch persisted progress.
	if state.GetCharacter(e.State, "你").Level != levelBefore {
		t.Error("character level changed by a battle loss")
	}
}

func TestSwitch(t *testing.T) {
	e := battleEngine(t)
	b := e.Battle

	res, err := e.Switch("好")
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if b.Active != 1 {
		t.Errorf("active = %d, want 1", b.Active)
	}
	if !hasEvent(res.Events, "combatant_switched") {
		t.Error("expected combatant_switched event")
	}

	// Switching to the fighter already out is a no-op, not an error.
	if _, err := e.Switch("好"); err != nil {
		t.Errorf("switching to the active member errored: %v", err)
	}

	if _, err := e.Switch("猫"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown combatant: expected ErrNotFound, got %v", err)
	}

	b.Party[0].Defeated = true
	if _, err := e.Switch("你"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("defeated combatant: expected ErrInvalidState, got %v", err)
	}
}

func TestFlee(t *testing.T) {
	e := battleEngine(t)
	res, err := e.Flee()
	if err != nil {
		t.Fatalf("Flee: %v", err)
	}
	if e.Battle != nil {
		t.Error("fleeing should discard the battle session")
	}
	if !hasEvent(res.Events, "battle_fled") {
		t.Error("expected battle_fled event")
	}

	if _, err := e.Flee(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("fleeing twice: expected ErrInvalidState, got %v", err)
	}
}

func TestBattleWin_CapturesOpponent(t *testing.T) {
	e := battleEngine(t)
	b := e.Battle
	b.Opponent.CurrentHP = 1
	rosterBefore := len(e.State.Roster)

	res, err := e.Attack()
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}

	switch {
	case b.Opponent.IsPhrase:
		p := e.State.Phrases[b.Opponent.Name]
		if p == nil || !p.Unlocked {
			t.Errorf("defeated phrase %s not unlocked", b.Opponent.Name)
		}
		if !hasEvent(res.Events, "phrase_unlocked") {
			t.Error("expected phrase_unlocked event")
		}
	default:
		if !state.Owns(e.State, b.Opponent.Name) {
			t.Errorf("defeated character %s not captured", b.Opponent.Name)
		}
		if len(e.State.Roster) != rosterBefore+1 {
			t.Errorf("roster size = %d, want %d", len(e.State.Roster), rosterBefore+1)
		}
		c := state.GetCharacter(e.State, b.Opponent.Name)
		if c.Level != 1 || c.XP != 0 {
			t.Errorf("captured character at %d/%d, want level 1 with 0 XP", c.Level, c.XP)
		}
	}

	// Ephemeral combat state never leaks into the roster.
	for _, cb := range b.Party {
		c := state.GetCharacter(e.State, cb.Glyph)
		if c != nil && c.Stats.HP != cb.MaxHP {
			t.Errorf("%s persisted stats changed by battle", cb.Glyph)
		}
	}
}
