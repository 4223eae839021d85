// Package widget lays out the on-screen buttons of the graphical frontend
// and tracks touch contacts between frames. It has no rendering dependency
// so the layout can be tested headless.
package widget

import (
	"slices"

	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/sim"
)

// Button is a rectangular tap target in court units.
type Button struct {
	Label    string
	X, Y     float64
	W, H     float64
	Action   input.Action
	Selected bool // Current choice, drawn highlighted
}

// Contains reports whether court point (x, y) is inside the button.
func (b Button) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Menu button rows.
const (
	modeRowY   = 200
	speedRowY  = 262
	modeW      = 140
	speedW     = 110
	rowH       = 40
	buttonGap  = 16
	topButtonY = 8
	topButtonW = 44
	topButtonH = 26
)

// AppendButtons appends the buttons available in phase to dst.
func AppendButtons(dst []Button, phase sim.Phase, settings sim.Settings) []Button {
	if phase != sim.PhaseMenuOpen {
		pause := "II"
		if phase == sim.PhasePaused {
			pause = ">"
		}
		cx := float64(sim.CourtWidth) / 2
		return append(dst,
			Button{Label: pause, X: cx - topButtonW - buttonGap/2, Y: topButtonY, W: topButtonW, H: topButtonH, Action: input.ActionTogglePause},
			Button{Label: "MENU", X: cx + buttonGap/2, Y: topButtonY, W: topButtonW, H: topButtonH, Action: input.ActionMenu},
		)
	}

	dst = appendRow(dst, modeRowY, modeW, []Button{
		{Label: "SOLO", Action: input.ActionSolo, Selected: settings.Mode == sim.ModeSolo},
		{Label: "DUO", Action: input.ActionDuo, Selected: settings.Mode == sim.ModeDuo},
	})
	return appendRow(dst, speedRowY, speedW, []Button{
		{Label: "SLOW", Action: input.ActionSlow, Selected: settings.Speed == sim.SpeedSlow},
		{Label: "NORMAL", Action: input.ActionNormal, Selected: settings.Speed == sim.SpeedNormal},
		{Label: "FAST", Action: input.ActionFast, Selected: settings.Speed == sim.SpeedFast},
	})
}

// appendRow centres buttons of equal width on one row.
func appendRow(dst []Button, y, w float64, row []Button) []Button {
	total := float64(len(row))*w + float64(len(row)-1)*buttonGap
	x := (float64(sim.CourtWidth) - total) / 2
	for _, b := range row {
		b.X, b.Y, b.W, b.H = x, y, w, rowH
		dst = append(dst, b)
		x += w + buttonGap
	}
	return dst
}

// Hit returns the button under court point (x, y).
func Hit(buttons []Button, x, y float64) (Button, bool) {
	for _, b := range buttons {
		if b.Contains(x, y) {
			return b, true
		}
	}
	return Button{}, false
}

// Touches remembers which contacts were down on the previous frame.
type Touches struct {
	prev     []input.SourceID
	cur      []input.SourceID
	began    []input.SourceID
	released []input.SourceID
}

// Update records the contacts down this frame and returns the ones that
// appeared and the ones that were lifted since the previous frame. The
// returned slices are reused by the next call.
func (t *Touches) Update(down []input.SourceID) (began, released []input.SourceID) {
	t.cur = append(t.cur[:0], down...)
	t.began = t.began[:0]
	t.released = t.released[:0]
	for _, id := range t.cur {
		if !slices.Contains(t.prev, id) {
			t.began = append(t.began, id)
		}
	}
	for _, id := range t.prev {
		if !slices.Contains(t.cur, id) {
			t.released = append(t.released, id)
		}
	}
	t.prev, t.cur = t.cur, t.prev
	return t.began, t.released
}

// Down returns the contacts recorded by the last Update.
func (t *Touches) Down() []input.SourceID {
	return t.prev
}
