package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a command is not allowed in the
// current phase.
var ErrInvalidTransition = errors.New("sim: invalid phase transition")

// Phase is the engine's run state. Physics only advances while Running;
// Paused and MenuOpen still accept commands.
type Phase int

const (
	PhaseMenuOpen Phase = iota // Menu shown, match frozen
	PhaseRunning               // Physics advancing
	PhasePaused                // Match frozen by the player
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	default:
		return "menu"
	}
}

// CommandKind identifies a UI command.
type CommandKind int

const (
	CmdTogglePause CommandKind = iota
	CmdResume
	CmdOpenMenu
	CmdCloseMenu
	CmdStartMatch
	CmdReset
	CmdSetMode
	CmdSetSpeed
)

var commandNames = [...]string{
	CmdTogglePause: "toggle-pause",
	CmdResume:      "resume",
	CmdOpenMenu:    "open-menu",
	CmdCloseMenu:   "close-menu",
	CmdStartMatch:  "start-match",
	CmdReset:       "reset",
	CmdSetMode:     "set-mode",
	CmdSetSpeed:    "set-speed",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Command is a UI intent applied at a step boundary.
// Mode is used by CmdStartMatch and CmdSetMode, Speed by CmdSetSpeed.
type Command struct {
	Kind  CommandKind
	Mode  Mode
	Speed Speed
}

// TogglePause flips between Running and Paused.
func TogglePause() Command { return Command{Kind: CmdTogglePause} }

// Resume leaves Paused.
func Resume() Command { return Command{Kind: CmdResume} }

// OpenMenu freezes the match behind the menu.
func OpenMenu() Command { return Command{Kind: CmdOpenMenu} }

// CloseMenu returns from the menu to the running match.
func CloseMenu() Command { return Command{Kind: CmdCloseMenu} }

// StartMatch selects a mode, resets the game and starts running.
func StartMatch(m Mode) Command { return Command{Kind: CmdStartMatch, Mode: m} }

// Reset zeroes the score and reissues the ball without changing phase.
func Reset() Command { return Command{Kind: CmdReset} }

// SetMode changes the mode without resetting.
func SetMode(m Mode) Command { return Command{Kind: CmdSetMode, Mode: m} }

// SetSpeed changes the tier and rescales the ball in flight.
func SetSpeed(s Speed) Command { return Command{Kind: CmdSetSpeed, Speed: s} }

// next returns the phase after applying a command of kind k in phase p.
func (p Phase) next(k CommandKind) (Phase, error) {
	switch k {
	case CmdTogglePause:
		switch p {
		case PhaseRunning:
			return PhasePaused, nil
		case PhasePaused:
			return PhaseRunning, nil
		}
	case CmdResume:
		if p == PhasePaused {
			return PhaseRunning, nil
		}
	case CmdOpenMenu:
		if p == PhaseRunning || p == PhasePaused {
			return PhaseMenuOpen, nil
		}
	case CmdCloseMenu:
		if p == PhaseMenuOpen {
			return PhaseRunning, nil
		}
	case CmdStartMatch:
		return PhaseRunning, nil
	case CmdReset, CmdSetMode, CmdSetSpeed:
		return p, nil
	}
	return p, fmt.Errorf("%w: %s while %s", ErrInvalidTransition, k, p)
}
