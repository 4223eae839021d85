package sim

import (
	"math"

	"github.com/tomz197/pong/internal/physics"
)

// cpuSpeed is how far the CPU paddle may move this tick. It grows with the
// ball's horizontal speed so faster rallies get a faster opponent.
func cpuSpeed(b Ball) float64 {
	return math.Abs(b.Vel.X())*CPUSpeedScale + CPUSpeedBase
}

// steerCPU moves p so its center tracks the ball's current height. Purely
// reactive: no prediction of where the ball will arrive.
func steerCPU(p *Paddle, b Ball) {
	target := b.Y() - PaddleHeight/2
	p.Y = physics.Approach(p.Y, target, cpuSpeed(b))
	p.clamp()
}
