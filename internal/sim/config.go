package sim

import "time"

// Game configuration constants.
// Everything is expressed in logical court units; one tick is one unit of
// integration, so velocities are units per tick.

// Court
const (
	CourtWidth  = 800.0
	CourtHeight = 450.0
)

// Paddles
const (
	PaddleWidth  = 10.0
	PaddleHeight = 80.0
	PaddleMargin = 18.0 // Gap between the court edge and the paddle's outer side
	PaddleStep   = 6.0  // Keyboard movement per tick
)

// Ball
const (
	BallRadius          = 6.0
	SpeedUpFactor       = 1.05 // Horizontal speed multiplier on every paddle hit
	SpinFactor          = 2.2  // vy added per unit of relative hit offset
	ScoreMargin         = 20.0 // How far past the court edge the ball must travel to score
	LaunchCone          = 0.3  // Radians either side of horizontal on reissue
	LaunchVerticalScale = 0.75
	MaxBallSpeed        = 16.0 // Per-axis cap, see WithMaxBallSpeed
)

// CPU opponent
const (
	CPUSpeedScale = 0.9
	CPUSpeedBase  = 2.0
)

// Tick rate
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)
