package sim

import "testing"

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"solo":   ModeSolo,
		"duo":    ModeDuo,
		" DUO ":  ModeDuo,
		"":       ModeSolo,
		"triple": ModeSolo,
	}
	for in, want := range tests {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseSpeed(t *testing.T) {
	tests := map[string]Speed{
		"slow":      SpeedSlow,
		"normal":    SpeedNormal,
		"Fast":      SpeedFast,
		"ludicrous": SpeedNormal,
		"":          SpeedNormal,
	}
	for in, want := range tests {
		if got := ParseSpeed(in); got != want {
			t.Errorf("ParseSpeed(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestSpeedBase(t *testing.T) {
	for s, want := range map[Speed]float64{SpeedSlow: 3, SpeedNormal: 4.5, SpeedFast: 6} {
		if got := s.Base(); got != want {
			t.Errorf("%s.Base() = %v, want %v", s, got, want)
		}
	}
}

func TestSettingsTextRoundTrip(t *testing.T) {
	var m Mode
	if err := m.UnmarshalText([]byte("duo")); err != nil || m != ModeDuo {
		t.Fatalf("UnmarshalText duo: %v %v", m, err)
	}
	text, _ := m.MarshalText()
	if string(text) != "duo" {
		t.Fatalf("MarshalText = %q", text)
	}

	var s Speed
	if err := s.UnmarshalText([]byte("warp")); err != nil || s != SpeedNormal {
		t.Fatalf("unknown speed should fall back without error: %v %v", s, err)
	}
}
