package events

import (
	"testing"

	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

func dispatchDefs() *state.Defs {
	return &state.Defs{
		Achievements: []types.AchievementDef{
			{ID: "first_steps", Name: "First Steps", Event: "practice_completed", Counter: "practices", Threshold: 1},
			{ID: "dedicated", Name: "Dedicated", Event: "practice_completed", Counter: "practices", Threshold: 10},
			{ID: "first_win", Name: "First Win", Event: "battle_won"},
		},
	}
}

func TestDispatch_CounterThreshold(t *testing.T) {
	defs := dispatchDefs()
	s := state.NewState(defs)
	evts := []types.Event{{Type: "practice_completed"}}

	s.Counters["practices"] = 1
	earned := Dispatch(evts, s, defs)
	if len(earned) != 1 {
		t.Fatalf("earned %d achievements, want 1", len(earned))
	}
	if earned[0].Data["id"] != "first_steps" {
		t.Errorf("earned %v, want first_steps", earned[0].Data["id"])
	}
	if !state.HasAchievement(s, "first_steps") {
		t.Error("award not recorded on player")
	}
	if state.HasAchievement(s, "dedicated") {
		t.Error("10-practice achievement earned at 1 practice")
	}

	s.Counters["practices"] = 10
	earned = Dispatch(evts, s, defs)
	if len(earned) != 1 || earned[0].Data["id"] != "dedicated" {
		t.Fatalf("earned %v, want dedicated only", earned)
	}
}

func TestDispatch_AwardsOnce(t *testing.T) {
	defs := dispatchDefs()
	s := state.NewState(defs)
	s.Counters["practices"] = 1
	evts := []types.Event{{Type: "practice_completed"}}

	if earned := Dispatch(evts, s, defs); len(earned) != 1 {
		t.Fatalf("first dispatch earned %d, want 1", len(earned))
	}
	if earned := Dispatch(evts, s, defs); len(earned) != 0 {
		t.Fatalf("second dispatch re-awarded: %v", earned)
	}
	if len(s.Player.Achievements) != 1 {
		t.Errorf("achievements = %v, want a single entry", s.Player.Achievements)
	}
}

func TestDispatch_NoCounterMatchesOnEventAlone(t *testing.T) {
	defs := dispatchDefs()
	s := state.NewState(defs)

	earned := Dispatch([]types.Event{{Type: "battle_won"}}, s, defs)
	if len(earned) != 1 || earned[0].Data["id"] != "first_win" {
		t.Fatalf("earned %v, want first_win", earned)
	}
}

func TestDispatch_UnmatchedEvent(t *testing.T) {
	defs := dispatchDefs()
	s := state.NewState(defs)
	s.Counters["practices"] = 100

	if earned := Dispatch([]types.Event{{Type: "item_used"}}, s, defs); len(earned) != 0 {
		t.Fatalf("unrelated event earned %v", earned)
	}
	if earned := Dispatch(nil, s, defs); len(earned) != 0 {
		t.Fatalf("empty dispatch earned %v", earned)
	}
}
