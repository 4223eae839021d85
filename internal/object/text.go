package object

import (
	"unicode/utf8"

	"github.com/tomz197/pong/internal/draw"
)

// Text is a simple drawable text object.
// Coordinates are 1-based canvas cells.
type Text struct {
	X     int
	Y     int
	Value string
	Color draw.Color
}

// Centered returns text horizontally centred on a canvas width columns wide.
func Centered(width, row int, value string) Text {
	return Text{X: width/2 - utf8.RuneCountInString(value)/2 + 1, Y: row, Value: value}
}

// Width returns the number of columns the text occupies.
func (t Text) Width() int {
	return utf8.RuneCountInString(t.Value)
}

// Draw writes the text at its position and marks the covered cells so the
// canvas repaints them once the text is gone.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	x := max(t.X, 1)
	y := max(t.Y, 1)

	ctx.Writer.WriteColored(x, y, t.Color, t.Value)
	ctx.Canvas.MarkTextDirty(x, y, t.Width())
	return nil
}
