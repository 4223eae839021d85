package sim

import "strings"

// Mode selects who controls the right paddle.
type Mode int

const (
	ModeSolo Mode = iota // Right paddle is driven by the CPU
	ModeDuo              // Both paddles are human
)

// Speed is a named tier mapping to a base ball speed.
type Speed int

const (
	SpeedNormal Speed = iota
	SpeedSlow
	SpeedFast
)

// Settings is the match configuration. It survives game resets.
type Settings struct {
	Mode  Mode  `toml:"mode"`
	Speed Speed `toml:"speed"`
}

// DefaultSettings returns the configuration used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{Mode: ModeSolo, Speed: SpeedNormal}
}

func (m Mode) String() string {
	if m == ModeDuo {
		return "duo"
	}
	return "solo"
}

// ParseMode parses "solo" or "duo". Anything else yields ModeSolo.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "duo") {
		return ModeDuo
	}
	return ModeSolo
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values fall
// back to the default instead of failing.
func (m *Mode) UnmarshalText(text []byte) error {
	*m = ParseMode(string(text))
	return nil
}

func (s Speed) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedFast:
		return "fast"
	default:
		return "normal"
	}
}

// Base returns the tier's base ball speed in units per tick.
func (s Speed) Base() float64 {
	switch s {
	case SpeedSlow:
		return 3
	case SpeedFast:
		return 6
	default:
		return 4.5
	}
}

// ParseSpeed parses "slow", "normal" or "fast". Anything else yields SpeedNormal.
func ParseSpeed(s string) Speed {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return SpeedSlow
	case "fast":
		return SpeedFast
	default:
		return SpeedNormal
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Speed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values fall
// back to the default instead of failing.
func (s *Speed) UnmarshalText(text []byte) error {
	*s = ParseSpeed(string(text))
	return nil
}
