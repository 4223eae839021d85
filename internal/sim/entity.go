package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/pong/internal/physics"
)

// Side identifies a half of the court and the paddle defending it.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Left {
		return Right
	}
	return Left
}

// direction is the sign of vx for a ball travelling toward s.
func (s Side) direction() float64 {
	if s == Left {
		return -1
	}
	return 1
}

// Paddle is one of the two bats. Y is the top edge.
type Paddle struct {
	Side Side
	Y    float64
}

// X returns the paddle's left edge.
func (p Paddle) X() float64 {
	if p.Side == Left {
		return PaddleMargin
	}
	return CourtWidth - PaddleMargin - PaddleWidth
}

// Face returns the x coordinate of the side facing the court.
func (p Paddle) Face() float64 {
	if p.Side == Left {
		return PaddleMargin + PaddleWidth
	}
	return CourtWidth - (PaddleMargin + PaddleWidth)
}

// Center returns the vertical center of the paddle.
func (p Paddle) Center() float64 {
	return p.Y + PaddleHeight/2
}

// Spans reports whether y lies strictly inside the paddle's vertical extent.
func (p Paddle) Spans(y float64) bool {
	return y > p.Y && y < p.Y+PaddleHeight
}

// clamp keeps the paddle on the court. Idempotent.
func (p *Paddle) clamp() {
	p.Y = physics.Clamp(p.Y, 0, CourtHeight-PaddleHeight)
}

// Ball is the puck. Pos is the center.
type Ball struct {
	Pos    mgl64.Vec2
	Vel    mgl64.Vec2
	Radius float64
}

// X returns the horizontal position of the center.
func (b Ball) X() float64 { return b.Pos.X() }

// Y returns the vertical position of the center.
func (b Ball) Y() float64 { return b.Pos.Y() }

// Score holds the points for both sides.
type Score struct {
	Left  int
	Right int
}

// Of returns the points of one side.
func (s Score) Of(side Side) int {
	if side == Left {
		return s.Left
	}
	return s.Right
}

func (s *Score) add(side Side) {
	if side == Left {
		s.Left++
	} else {
		s.Right++
	}
}
