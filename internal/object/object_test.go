package object

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/sim"
)

// newContext returns a context whose canvas maps court units 1:1 onto sub-pixels.
func newContext(out *bytes.Buffer) DrawContext {
	return DrawContext{
		Canvas: draw.NewScaledCanvas(sim.CourtWidth, sim.CourtHeight/2, sim.CourtWidth, sim.CourtHeight),
		Writer: draw.NewChunkWriter(out, 0, 0),
	}
}

// renderContains renders the canvas and reports whether the output holds glyph.
func renderContains(t *testing.T, ctx DrawContext, glyph string) bool {
	t.Helper()
	var buf bytes.Buffer
	ctx.Canvas.Render(&buf)
	return strings.Contains(buf.String(), glyph)
}

func TestSceneOrder(t *testing.T) {
	s := sim.Snapshot{
		Left:  sim.Paddle{Side: sim.Left, Y: 100},
		Right: sim.Paddle{Side: sim.Right, Y: 200},
		Ball:  sim.Ball{Pos: mgl64.Vec2{400, 225}, Radius: sim.BallRadius},
	}
	objs := AppendScene(nil, s)
	if len(objs) != 4 {
		t.Fatalf("scene has %d objects, want 4", len(objs))
	}
	if _, ok := objs[0].(Court); !ok {
		t.Errorf("first object is %T, want Court", objs[0])
	}
	if b, ok := objs[3].(Ball); !ok || b.X() != 400 {
		t.Errorf("last object is %#v, want the ball", objs[3])
	}
}

func TestSceneDraws(t *testing.T) {
	var out bytes.Buffer
	ctx := newContext(&out)
	s := sim.Snapshot{
		Left:  sim.Paddle{Side: sim.Left, Y: 100},
		Right: sim.Paddle{Side: sim.Right, Y: 200},
		Ball:  sim.Ball{Pos: mgl64.Vec2{300, 225}, Radius: sim.BallRadius},
	}
	if err := DrawAll(ctx, AppendScene(nil, s)); err != nil {
		t.Fatal(err)
	}
	if !renderContains(t, ctx, string(draw.BlockFull)) {
		t.Error("scene rendered no solid cells")
	}
}

func TestPaddleCoversItsRectangle(t *testing.T) {
	var out bytes.Buffer
	ctx := newContext(&out)
	p := Paddle{Paddle: sim.Paddle{Side: sim.Left, Y: 100}, Color: draw.ColorWhite}
	if err := p.Draw(ctx); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	ctx.Canvas.Render(&buf)
	blocks := strings.Count(buf.String(), string(draw.BlockFull))
	want := int(sim.PaddleWidth * sim.PaddleHeight / 2)
	if blocks != want {
		t.Errorf("paddle rendered %d full cells, want %d", blocks, want)
	}
}

func TestTextMarksCellsDirty(t *testing.T) {
	var out bytes.Buffer
	ctx := newContext(&out)
	var sink bytes.Buffer
	ctx.Canvas.Render(&sink)

	txt := Text{X: 3, Y: 2, Value: "1 — 0", Color: draw.ColorWhite}
	if err := txt.Draw(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Writer.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[2;3H"+draw.Foreground(draw.ColorWhite)+"1 — 0") {
		t.Errorf("unexpected text output %q", out.String())
	}

	sink.Reset()
	ctx.Canvas.Render(&sink)
	if got := strings.Count(sink.String(), " "); got != txt.Width() {
		t.Errorf("repainted %d cells, want %d", got, txt.Width())
	}
}

func TestCentered(t *testing.T) {
	txt := Centered(20, 5, "PAUSED")
	if txt.X != 8 || txt.Y != 5 {
		t.Errorf("Centered at (%d, %d), want (8, 5)", txt.X, txt.Y)
	}
}

func TestShouldRenderBlink(t *testing.T) {
	if !ShouldRenderBlink(0.1, 1) {
		t.Error("hidden in first half period")
	}
	if ShouldRenderBlink(0.6, 1) {
		t.Error("visible in second half period")
	}
	if !ShouldRenderBlink(0.6, 0) {
		t.Error("zero frequency blinked")
	}
}
