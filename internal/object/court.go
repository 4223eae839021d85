package object

import (
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/sim"
)

// Dashes of the centre line, in court units.
const (
	centreDash = 14
	centreGap  = 12
)

// Court draws the dashed centre line.
type Court struct{}

// Draw implements Object.
func (Court) Draw(ctx DrawContext) error {
	x := float64(sim.CourtWidth) / 2
	ctx.Canvas.DashedLine(
		draw.Point{X: x, Y: 0},
		draw.Point{X: x, Y: sim.CourtHeight},
		centreDash, centreGap, draw.ColorGray,
	)
	return nil
}

// Paddle draws one paddle as a filled rectangle.
type Paddle struct {
	sim.Paddle
	Color draw.Color
}

// Draw implements Object.
func (p Paddle) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(p.X(), p.Y, sim.PaddleWidth, sim.PaddleHeight, p.Color)
	return nil
}

// Ball draws the ball as a filled circle.
type Ball struct {
	sim.Ball
	Color draw.Color
}

// Draw implements Object.
func (b Ball) Draw(ctx DrawContext) error {
	ctx.Canvas.FillCircle(b.X(), b.Y(), b.Radius, b.Color)
	return nil
}
