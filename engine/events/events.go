// Package events implements single-pass achievement dispatch. Engine
// operations emit events; achievements defined in the content pack match
// on event type and a counter threshold, and are awarded exactly once.
package events

import (
	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/types"
)

// Dispatch matches the emitted events against the pack's achievement
// definitions, records newly earned ids on the player, and returns one
// achievement_earned event per award. Single pass — awards themselves are
// not re-dispatched.
func Dispatch(evts []types.Event, s *types.State, defs *state.Defs) []types.Event {
	var earned []types.Event

	for _, def := range defs.Achievements {
		if state.HasAchievement(s, def.ID) {
			continue
		}
		for _, evt := range evts {
			if evt.Type != def.Event {
				continue
			}
			if def.Counter != "" && s.Counters[def.Counter] < def.Threshold {
				continue
			}
			s.Player.Achievements = append(s.Player.Achievements, def.ID)
			earned = append(earned, types.Event{
				Type: "achievement_earned",
				Data: map[string]any{"id": def.ID, "name": def.Name},
			})
			break
		}
	}
	return earned
}
