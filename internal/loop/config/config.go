// Package config centralizes the tunable parameters of the terminal frontend.
package config

import "time"

// Rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Max render resolution in terminal cells. Larger terminals get a centred,
// bordered court. 160 columns by 45 rows keeps the court's 16:9 aspect.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 45
)

// Catch-up
const (
	MaxCatchUp = 250 * time.Millisecond // Most simulation time banked per frame
)

// UI
const (
	PauseBlinkFrequency = 1.0 // Hz
	MinMenuArtHeight    = 20  // Rows needed before the title art is shown
)

// Inactivity
const (
	DefaultIdleTimeout  = 5 * time.Minute
	InactivityWarnRatio = 0.75 // Warn once this share of the timeout has passed
)
