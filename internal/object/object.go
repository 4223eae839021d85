// Package object turns simulation snapshots into drawable terminal objects.
package object

import (
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/sim"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // High-resolution canvas (2x vertical), court units
	Writer *draw.ChunkWriter // Text overlays, flushed after the canvas
}

// Object is a drawable scene element.
type Object interface {
	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// AppendScene appends the court, both paddles and the ball of s to dst,
// back to front.
func AppendScene(dst []Object, s sim.Snapshot) []Object {
	return append(dst,
		Court{},
		Paddle{Paddle: s.Left, Color: draw.ColorWhite},
		Paddle{Paddle: s.Right, Color: draw.ColorWhite},
		Ball{Ball: s.Ball, Color: draw.ColorYellow},
	)
}

// DrawAll draws objects in order, stopping at the first error.
func DrawAll(ctx DrawContext, objects []Object) error {
	for _, obj := range objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ShouldRenderBlink reports whether a blinking element is visible after
// elapsed seconds at the given frequency in Hz. Non-positive frequencies
// never blink.
func ShouldRenderBlink(elapsed, frequency float64) bool {
	if frequency <= 0 {
		return true
	}
	phase := int(elapsed * frequency * 2)
	return phase%2 == 0
}
