// Package physics provides the small scalar helpers used by the simulation.
package physics

import "github.com/samber/lo"

// Clamp limits v to the closed range [min, max].
// If max < min the range is empty and min is returned.
func Clamp(v, min, max float64) float64 {
	if max < min {
		return min
	}
	return lo.Clamp(v, min, max)
}

// Sign returns -1, 0 or 1 depending on the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Approach moves cur toward target by at most step and never past it.
func Approach(cur, target, step float64) float64 {
	delta := target - cur
	if delta <= step && delta >= -step {
		return target
	}
	return cur + Sign(delta)*step
}

// CapMagnitude limits |v| to max while keeping its sign.
// A max of zero or less disables the cap.
func CapMagnitude(v, max float64) float64 {
	if max <= 0 {
		return v
	}
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}

// RelativeOffset returns where v lies relative to center, normalized by
// halfExtent: -1 at center-halfExtent, 1 at center+halfExtent.
func RelativeOffset(v, center, halfExtent float64) float64 {
	if halfExtent == 0 {
		return 0
	}
	return (v - center) / halfExtent
}
