package input

import "github.com/tomz197/pong/internal/sim"

// Action is a UI command from a key or an on-screen button.
type Action int

const (
	ActionQuit        Action = iota
	ActionTogglePause        // Space or p
	ActionMenu               // Esc or m
	ActionConfirm            // Enter
	ActionReset              // r
	ActionSolo               // 1
	ActionDuo                // 2
	ActionSlow               // 3
	ActionNormal             // 4
	ActionFast               // 5
)

// Command maps the action to an engine command given the current phase and
// settings. Quit and actions with no effect in the phase report false.
func (a Action) Command(phase sim.Phase, settings sim.Settings) (sim.Command, bool) {
	switch a {
	case ActionTogglePause:
		if phase == sim.PhaseMenuOpen {
			return sim.Command{}, false
		}
		return sim.TogglePause(), true
	case ActionMenu:
		if phase == sim.PhaseMenuOpen {
			return sim.CloseMenu(), true
		}
		return sim.OpenMenu(), true
	case ActionConfirm:
		switch phase {
		case sim.PhaseMenuOpen:
			return sim.StartMatch(settings.Mode), true
		case sim.PhasePaused:
			return sim.Resume(), true
		}
		return sim.Command{}, false
	case ActionReset:
		return sim.Reset(), true
	case ActionSolo:
		return sim.StartMatch(sim.ModeSolo), true
	case ActionDuo:
		return sim.StartMatch(sim.ModeDuo), true
	case ActionSlow:
		return sim.SetSpeed(sim.SpeedSlow), true
	case ActionNormal:
		return sim.SetSpeed(sim.SpeedNormal), true
	case ActionFast:
		return sim.SetSpeed(sim.SpeedFast), true
	}
	return sim.Command{}, false
}
