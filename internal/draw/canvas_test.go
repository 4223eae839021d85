package draw

import (
	"bytes"
	"strings"
	"testing"
)

// countPixels returns how many sub-pixels hold col.
func countPixels(c *Canvas, col Color) int {
	n := 0
	for _, p := range c.pixels {
		if p == col {
			n++
		}
	}
	return n
}

func TestFillRectUnscaled(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(2, 3, 4, 2, ColorWhite)

	if got := countPixels(c, ColorWhite); got != 8 {
		t.Fatalf("filled %d pixels, want 8", got)
	}
	for _, p := range []struct{ x, y int }{{2, 3}, {5, 4}} {
		if c.pixel(p.x, p.y) != ColorWhite {
			t.Errorf("pixel %v not set", p)
		}
	}
	if c.pixel(6, 3) != ColorNone || c.pixel(2, 5) != ColorNone {
		t.Error("fill leaked past its edge")
	}
}

func TestFillRectThinStillVisible(t *testing.T) {
	// 800 logical units squeezed into 80 columns: a 4-wide rect is 0.4 px.
	c := NewScaledCanvas(80, 20, 800, 400)
	c.FillRect(100, 100, 4, 4, ColorGray)
	if got := countPixels(c, ColorGray); got != 1 {
		t.Errorf("filled %d pixels, want 1", got)
	}
}

func TestFillRectClipsToCanvas(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(-10, -10, 100, 100, ColorWhite)
	if got := countPixels(c, ColorWhite); got != 16 {
		t.Errorf("filled %d pixels, want all 16", got)
	}
}

func TestFillCircle(t *testing.T) {
	c := NewScaledCanvas(21, 11, 21, 22)
	c.FillCircle(10.5, 10.5, 5, ColorYellow)

	if c.pixel(10, 10) != ColorYellow {
		t.Error("centre not filled")
	}
	if c.pixel(10, 6) != ColorYellow || c.pixel(14, 10) != ColorYellow {
		t.Error("interior near the edge not filled")
	}
	if c.pixel(14, 6) != ColorNone {
		t.Error("corner of bounding box filled")
	}
}

func TestFillCircleTinyStillVisible(t *testing.T) {
	c := NewScaledCanvas(80, 20, 800, 400)
	c.FillCircle(400, 200, 2, ColorWhite)
	if got := countPixels(c, ColorWhite); got < 1 {
		t.Error("tiny circle not drawn")
	}
}

func TestDashedLineLeavesGaps(t *testing.T) {
	c := NewScaledCanvas(1, 10, 1, 20)
	c.DashedLine(Point{0, 0}, Point{0, 19}, 2, 2, ColorGray)

	want := []bool{true, true, true, false, true, true, true, false}
	for y, set := range want {
		if got := c.pixel(0, y) == ColorGray; got != set {
			t.Errorf("pixel y=%d set=%v, want %v", y, got, set)
		}
	}
}

func TestRenderGlyphs(t *testing.T) {
	tests := []struct {
		name          string
		top, bottom   Color
		want          string
		wantBgPresent bool
	}{
		{"upper", ColorWhite, ColorNone, "▀", false},
		{"lower", ColorNone, ColorWhite, "▄", false},
		{"full", ColorWhite, ColorWhite, "█", false},
		{"two colours", ColorWhite, ColorYellow, "▀", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewScaledCanvas(1, 1, 1, 2)
			c.setPixel(0, 0, tt.top)
			c.setPixel(0, 1, tt.bottom)

			var buf bytes.Buffer
			c.Render(&buf)
			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q missing %q", out, tt.want)
			}
			if got := strings.Contains(out, bgCodes[tt.bottom]) && tt.bottom != ColorNone; got != tt.wantBgPresent {
				t.Errorf("background present = %v, want %v", got, tt.wantBgPresent)
			}
			if !strings.HasSuffix(out, ColorReset) {
				t.Error("output does not reset colours")
			}
		})
	}
}

func TestRenderOnlyChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(0, 0, 1, 1, ColorWhite)

	var buf bytes.Buffer
	c.Render(&buf)
	if buf.Len() == 0 {
		t.Fatal("first render wrote nothing")
	}

	buf.Reset()
	c.Clear()
	c.FillRect(0, 0, 1, 1, ColorWhite)
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", buf.String())
	}

	buf.Reset()
	c.Clear()
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[1;1H ") {
		t.Errorf("cleared cell not erased: %q", buf.String())
	}
}

func TestForceRedrawAndTextDirty(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var buf bytes.Buffer
	c.Render(&buf)

	buf.Reset()
	c.MarkTextDirty(2, 2, 2)
	c.Render(&buf)
	if got := strings.Count(buf.String(), " "); got != 2 {
		t.Errorf("repainted %d cells after MarkTextDirty, want 2", got)
	}
	if !strings.HasPrefix(buf.String(), "\033[2;2H") {
		t.Errorf("repaint starts at %q, want row 2 col 2", buf.String())
	}

	buf.Reset()
	c.ForceRedraw()
	c.Render(&buf)
	if got := strings.Count(buf.String(), " "); got != 8 {
		t.Errorf("repainted %d cells after ForceRedraw, want 8", got)
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(3, 4)
	c.setPixel(1, 0, ColorWhite)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[5;4H") {
		t.Errorf("output %q does not start at row 5 col 4", buf.String())
	}
}

func TestResizeRescales(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.Resize(20, 10)
	if c.TerminalWidth() != 20 || c.TerminalHeight() != 10 {
		t.Fatalf("size = %dx%d, want 20x10", c.TerminalWidth(), c.TerminalHeight())
	}
	c.FillRect(50, 50, 10, 10, ColorWhite)
	if c.pixel(10, 10) != ColorWhite {
		t.Error("fill not scaled to the new size")
	}
}

func TestTerminalLogicalRoundTrip(t *testing.T) {
	c := NewScaledCanvas(80, 20, 800, 450)
	c.SetOffset(5, 2)

	x, y := c.TerminalToLogical(46, 13)
	col, row := c.LogicalToTerminal(x, y)
	if col+c.OffsetCol() != 46 || row+c.OffsetRow() != 13 {
		t.Errorf("round trip gave (%d, %d), want (46, 13)", col+c.OffsetCol(), row+c.OffsetRow())
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)

	var buf bytes.Buffer
	c.RenderBorder(&buf)
	if buf.Len() != 0 {
		t.Errorf("border drawn without offset: %q", buf.String())
	}

	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	out := buf.String()
	for _, want := range []string{"┌───┐", "└───┘", "\033[2;1H│", "\033[2;5H│"} {
		if !strings.Contains(out, want) {
			t.Errorf("border %q missing %q", out, want)
		}
	}
}
