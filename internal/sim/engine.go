// Package sim implements the Pong simulation: fixed-step physics, paddle
// and wall collisions, scoring, ball reissue and the CPU opponent.
//
// The engine is not safe for concurrent use. Frontends own one engine per
// match and drive it from their loop goroutine.
package sim

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/pong/internal/physics"
)

// EventKind identifies something that happened during a step.
type EventKind int

const (
	EventWallBounce EventKind = iota
	EventPaddleHit
	EventScore
)

// Event is reported by Step. Side is the paddle hit, the side that scored,
// or for wall bounces Left for the top wall and Right for the bottom one.
type Event struct {
	Kind EventKind
	Side Side
}

// Snapshot is a read-only copy of the engine state for presentation.
type Snapshot struct {
	Left     Paddle
	Right    Paddle
	Ball     Ball
	Score    Score
	Phase    Phase
	Settings Settings
}

// Engine owns paddles, ball, score and phase for one match.
type Engine struct {
	left     Paddle
	right    Paddle
	ball     Ball
	score    Score
	phase    Phase
	settings Settings

	rng          *rand.Rand
	maxBallSpeed float64

	pending []Command
	events  []Event // Reused between steps
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for ball reissue.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithMaxBallSpeed sets the per-axis ball speed cap. Zero or less disables
// the cap, letting every paddle hit speed the ball up without bound.
func WithMaxBallSpeed(v float64) Option {
	return func(e *Engine) { e.maxBallSpeed = v }
}

// New creates an engine with the given settings. The match starts behind
// the menu with a freshly issued ball.
func New(settings Settings, opts ...Option) *Engine {
	e := &Engine{
		left:         Paddle{Side: Left},
		right:        Paddle{Side: Right},
		ball:         Ball{Radius: BallRadius},
		phase:        PhaseMenuOpen,
		settings:     settings,
		maxBallSpeed: MaxBallSpeed,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	e.resetGame()
	return e
}

// Queue records a command to apply at the start of the next Step.
func (e *Engine) Queue(cmd Command) {
	e.pending = append(e.pending, cmd)
}

// Apply applies a command immediately. Commands not allowed in the current
// phase return an error wrapping ErrInvalidTransition and change nothing.
func (e *Engine) Apply(cmd Command) error {
	next, err := e.phase.next(cmd.Kind)
	if err != nil {
		return err
	}

	switch cmd.Kind {
	case CmdStartMatch:
		e.settings.Mode = cmd.Mode
		e.resetGame()
	case CmdReset:
		e.resetGame()
	case CmdSetMode:
		e.settings.Mode = cmd.Mode
	case CmdSetSpeed:
		e.setSpeed(cmd.Speed)
	}

	e.phase = next
	return nil
}

// Step advances the match by one tick using the given controls and returns
// what happened. The returned slice is only valid until the next Step.
// Queued commands are applied first; if the phase is not Running after
// that, nothing moves.
func (e *Engine) Step(c Controls) []Event {
	e.events = e.events[:0]
	e.drainQueue()

	if e.phase != PhaseRunning {
		return e.events
	}

	e.applyIntents(c)
	e.ball.Pos = e.ball.Pos.Add(e.ball.Vel)
	e.bounceWalls()
	e.collidePaddle(&e.left)
	e.collidePaddle(&e.right)
	e.checkScore()

	return e.events
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Left:     e.left,
		Right:    e.right,
		Ball:     e.ball,
		Score:    e.score,
		Phase:    e.phase,
		Settings: e.settings,
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Settings returns the current match configuration.
func (e *Engine) Settings() Settings { return e.settings }

// drainQueue applies pending commands in order. Rejected commands are dropped.
func (e *Engine) drainQueue() {
	for _, cmd := range e.pending {
		_ = e.Apply(cmd)
	}
	e.pending = e.pending[:0]
}

// applyIntents moves both paddles. In solo mode the right paddle ignores
// human input and follows the CPU policy.
func (e *Engine) applyIntents(c Controls) {
	steerHuman(&e.left, c.Left)
	if e.settings.Mode == ModeSolo {
		steerCPU(&e.right, e.ball)
	} else {
		steerHuman(&e.right, c.Right)
	}
}

func steerHuman(p *Paddle, in PaddleIntent) {
	if in.HasTarget {
		p.Y = in.Target - PaddleHeight/2
	} else {
		if in.Up {
			p.Y -= PaddleStep
		}
		if in.Down {
			p.Y += PaddleStep
		}
	}
	p.clamp()
}

// bounceWalls reflects the ball off the top and bottom walls.
func (e *Engine) bounceWalls() {
	b := &e.ball
	switch {
	case b.Y()-b.Radius < 0:
		b.Pos[1] = b.Radius
		b.Vel[1] = -b.Vel[1]
		e.emit(EventWallBounce, Left)
	case b.Y()+b.Radius > CourtHeight:
		b.Pos[1] = CourtHeight - b.Radius
		b.Vel[1] = -b.Vel[1]
		e.emit(EventWallBounce, Right)
	}
}

// collidePaddle bounces the ball off p. The velocity check means a ball
// that is still overlapping after a bounce is not reflected again.
func (e *Engine) collidePaddle(p *Paddle) {
	b := &e.ball

	var crossed, approaching bool
	if p.Side == Left {
		crossed = b.X()-b.Radius < p.Face()
		approaching = b.Vel.X() < 0
	} else {
		crossed = b.X()+b.Radius > p.Face()
		approaching = b.Vel.X() > 0
	}
	if !crossed || !approaching || !p.Spans(b.Y()) {
		return
	}

	b.Pos[0] = p.Face() - p.Side.direction()*b.Radius
	b.Vel[0] = physics.CapMagnitude(-b.Vel.X()*SpeedUpFactor, e.maxBallSpeed)
	b.Vel[1] = physics.CapMagnitude(b.Vel.Y()+relativeHitOffset(*p, b.Y())*SpinFactor, e.maxBallSpeed)
	e.emit(EventPaddleHit, p.Side)
}

// relativeHitOffset is -1 at the top edge of p, 0 at its center and 1 at
// the bottom edge.
func relativeHitOffset(p Paddle, y float64) float64 {
	return physics.RelativeOffset(y, p.Center(), PaddleHeight/2)
}

// checkScore awards a point once the ball is clearly past a paddle and
// sends the ball back into play toward the side that scored.
func (e *Engine) checkScore() {
	switch x := e.ball.X(); {
	case x < -ScoreMargin:
		e.score.add(Right)
		e.emit(EventScore, Right)
		e.reissue(Right)
	case x > CourtWidth+ScoreMargin:
		e.score.add(Left)
		e.emit(EventScore, Left)
		e.reissue(Left)
	}
}

// reissue puts the ball at center court heading toward the given side at
// a random angle inside the launch cone.
func (e *Engine) reissue(toward Side) {
	base := e.settings.Speed.Base()
	angle := e.rng.Float64()*2*LaunchCone - LaunchCone

	e.ball.Pos = mgl64.Vec2{CourtWidth / 2, CourtHeight / 2}
	e.ball.Vel = mgl64.Vec2{
		toward.direction() * base * math.Cos(angle),
		base * LaunchVerticalScale * math.Sin(angle),
	}
}

// reissueRandom reissues toward a coin-flipped side.
func (e *Engine) reissueRandom() {
	toward := Right
	if e.rng.IntN(2) == 0 {
		toward = Left
	}
	e.reissue(toward)
}

// resetGame zeroes the score, centers both paddles and reissues the ball.
func (e *Engine) resetGame() {
	e.score = Score{}
	e.left.Y = CourtHeight/2 - PaddleHeight/2
	e.right.Y = CourtHeight/2 - PaddleHeight/2
	e.reissueRandom()
}

// setSpeed switches tier and rescales the ball in flight, keeping its
// direction on both axes.
func (e *Engine) setSpeed(s Speed) {
	e.settings.Speed = s
	v := s.Base()

	sx := physics.Sign(e.ball.Vel.X())
	if sx == 0 {
		sx = 1
	}
	sy := physics.Sign(e.ball.Vel.Y())
	if sy == 0 {
		sy = 1
	}
	e.ball.Vel = mgl64.Vec2{v * sx, v * 0.5 * sy}
}

func (e *Engine) emit(kind EventKind, side Side) {
	e.events = append(e.events, Event{Kind: kind, Side: side})
}
