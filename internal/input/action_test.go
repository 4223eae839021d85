package input

import (
	"testing"

	"github.com/tomz197/pong/internal/sim"
)

func TestActionCommand(t *testing.T) {
	duo := sim.Settings{Mode: sim.ModeDuo, Speed: sim.SpeedNormal}

	tests := []struct {
		name   string
		action Action
		phase  sim.Phase
		want   sim.Command
		ok     bool
	}{
		{"pause while running", ActionTogglePause, sim.PhaseRunning, sim.TogglePause(), true},
		{"pause ignored in menu", ActionTogglePause, sim.PhaseMenuOpen, sim.Command{}, false},
		{"menu opens", ActionMenu, sim.PhasePaused, sim.OpenMenu(), true},
		{"menu closes", ActionMenu, sim.PhaseMenuOpen, sim.CloseMenu(), true},
		{"enter starts current mode", ActionConfirm, sim.PhaseMenuOpen, sim.StartMatch(sim.ModeDuo), true},
		{"enter resumes", ActionConfirm, sim.PhasePaused, sim.Resume(), true},
		{"enter ignored while running", ActionConfirm, sim.PhaseRunning, sim.Command{}, false},
		{"reset", ActionReset, sim.PhasePaused, sim.Reset(), true},
		{"solo", ActionSolo, sim.PhaseRunning, sim.StartMatch(sim.ModeSolo), true},
		{"duo", ActionDuo, sim.PhaseMenuOpen, sim.StartMatch(sim.ModeDuo), true},
		{"slow", ActionSlow, sim.PhaseRunning, sim.SetSpeed(sim.SpeedSlow), true},
		{"normal", ActionNormal, sim.PhaseRunning, sim.SetSpeed(sim.SpeedNormal), true},
		{"fast", ActionFast, sim.PhaseMenuOpen, sim.SetSpeed(sim.SpeedFast), true},
		{"quit has no command", ActionQuit, sim.PhaseRunning, sim.Command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.action.Command(tt.phase, duo)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Command = (%+v, %v), want (%+v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

// Every command produced for a phase must be accepted by the engine in that phase.
func TestActionCommandIsValidTransition(t *testing.T) {
	actions := []Action{
		ActionTogglePause, ActionMenu, ActionConfirm, ActionReset,
		ActionSolo, ActionDuo, ActionSlow, ActionNormal, ActionFast,
	}
	for _, phase := range []sim.Phase{sim.PhaseMenuOpen, sim.PhaseRunning, sim.PhasePaused} {
		for _, a := range actions {
			cmd, ok := a.Command(phase, sim.DefaultSettings())
			if !ok {
				continue
			}
			e := engineIn(t, phase)
			if err := e.Apply(cmd); err != nil {
				t.Errorf("action %d in %v: %v", a, phase, err)
			}
		}
	}
}

// engineIn returns an engine moved into the given phase.
func engineIn(t *testing.T, phase sim.Phase) *sim.Engine {
	t.Helper()
	e := sim.New(sim.DefaultSettings())
	switch phase {
	case sim.PhaseRunning:
		mustApply(t, e, sim.CloseMenu())
	case sim.PhasePaused:
		mustApply(t, e, sim.CloseMenu())
		mustApply(t, e, sim.TogglePause())
	}
	if e.Phase() != phase {
		t.Fatalf("engine in %v, want %v", e.Phase(), phase)
	}
	return e
}

func mustApply(t *testing.T, e *sim.Engine, cmd sim.Command) {
	t.Helper()
	if err := e.Apply(cmd); err != nil {
		t.Fatal(err)
	}
}
