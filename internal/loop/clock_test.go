package loop

import (
	"testing"
	"time"

	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/sim"
)

func TestClockAdvance(t *testing.T) {
	tests := []struct {
		name    string
		elapsed []time.Duration
		want    []int
	}{
		{"exact steps", []time.Duration{3 * sim.TickTime}, []int{3}},
		{"banks remainder", []time.Duration{sim.TickTime / 2, sim.TickTime / 2}, []int{0, 1}},
		{"zero", []time.Duration{0}, []int{0}},
		{"negative", []time.Duration{-time.Second}, []int{0}},
		{"stall capped", []time.Duration{5 * time.Second}, []int{int(config.MaxCatchUp / sim.TickTime)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(sim.TickTime)
			for i, d := range tt.elapsed {
				if got := c.Advance(d); got != tt.want[i] {
					t.Errorf("Advance(%v) #%d = %d, want %d", d, i, got, tt.want[i])
				}
			}
		})
	}
}

func TestClockBankedStaysBelowStep(t *testing.T) {
	c := NewClock(sim.TickTime)
	total := 0
	for i := 0; i < 1000; i++ {
		total += c.Advance(7 * time.Millisecond)
		if c.Banked() >= sim.TickTime {
			t.Fatalf("banked %v, a full step was not paid out", c.Banked())
		}
	}
	// 7s of frames is 420 steps at 60 Hz.
	if total < 419 || total > 420 {
		t.Errorf("ran %d steps for 7s, want 420", total)
	}
}

func TestClockZeroStep(t *testing.T) {
	c := NewClock(0)
	if got := c.Advance(time.Second); got != 0 {
		t.Errorf("zero step clock ran %d steps", got)
	}
}
