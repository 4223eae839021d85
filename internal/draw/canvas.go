package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a palette index. ColorNone is an unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGray
	ColorBrightCyan
	ColorYellow
	colorCount
)

// ColorReset restores the default terminal colours.
const ColorReset = "\033[0m"

var fgCodes = [colorCount]string{"", "\033[97m", "\033[90m", "\033[96m", "\033[93m"}
var bgCodes = [colorCount]string{"", "\033[107m", "\033[100m", "\033[106m", "\033[103m"}

// dirtyCell never matches a real cell, forcing it to be redrawn.
const dirtyCell = ^uint16(0)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Logical coordinates are scaled to terminal pixels. Render only emits cells that
// changed since the previous frame.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	shown          []uint16

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
	curFg     Color
	curBg     Color
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	if c.pixels == nil || termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.shown = make([]uint16, termWidth*termHeight)
		c.ForceRedraw()
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels in the canvas. Already displayed cells are kept,
// so the next Render only sends the difference.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render emit every cell, e.g. after the screen was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = dirtyCell
	}
}

// MarkTextDirty marks n cells starting at 1-based canvas position (col, row)
// as overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.shown[y*c.termWidth+x] = dirtyCell
	}
}

func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

func (c *Canvas) pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// Set sets a pixel at logical coordinates.
func (c *Canvas) Set(x, y float64, col Color) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), col)
}

// span converts the logical interval [a, b) to pixel indices [p0, p1).
// Any non-empty interval covers at least one pixel.
func span(a, b, scale float64) (int, int) {
	p0 := int(math.Round(a * scale))
	p1 := int(math.Round(b * scale))
	if p1 <= p0 {
		p1 = p0 + 1
	}
	return p0, p1
}

// FillRect fills the logical rectangle with top-left (x, y) and size w×h.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := span(x, x+w, c.scaleX)
	y0, y1 := span(y, y+h, c.scaleY)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// FillCircle fills a logical circle. Circles smaller than a pixel still set one pixel.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	if r <= 0 {
		return
	}
	y0, y1 := span(cy-r, cy+r, c.scaleY)
	for py := y0; py < y1; py++ {
		dy := lo.Clamp((float64(py)+0.5)/c.scaleY-cy, -r, r)
		half := math.Sqrt(r*r - dy*dy)
		x0, x1 := span(cx-half, cx+half, c.scaleX)
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DashedLine draws a line from p1 to p2 made of dash-long segments
// separated by gap-long holes, all in logical units.
func (c *Canvas) DashedLine(p1, p2 Point, dash, gap float64, col Color) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	if length == 0 || dash <= 0 {
		c.DrawLine(p1, p2, col)
		return
	}
	ux, uy := dx/length, dy/length
	for t := 0.0; t < length; t += dash + max(gap, 0) {
		end := math.Min(t+dash, length)
		c.DrawLine(
			Point{X: p1.X + ux*t, Y: p1.Y + uy*t},
			Point{X: p1.X + ux*end, Y: p1.Y + uy*end},
			col,
		)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under a typical MTU for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes the cells that changed since the last Render to w using
// half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.curFg, c.curBg = ColorNone, ColorNone

	nextCol, nextRow := -1, -1
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			cell := uint16(top)<<8 | uint16(bottom)
			idx := row*c.termWidth + col
			if c.shown[idx] == cell {
				continue
			}
			c.shown[idx] = cell

			if col != nextCol || row != nextRow {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			c.writeCell(top, bottom)
			nextCol, nextRow = col+1, row
		}
	}

	if c.curFg != ColorNone || c.curBg != ColorNone {
		c.renderBuf.WriteString(ColorReset)
	}
	writeChunked(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeCell emits the glyph for a cell with top and bottom sub-pixels.
func (c *Canvas) writeCell(top, bottom Color) {
	switch {
	case top == ColorNone && bottom == ColorNone:
		c.setStyle(ColorNone, ColorNone)
		c.renderBuf.WriteByte(' ')
	case top == bottom:
		c.setStyle(top, ColorNone)
		c.renderBuf.WriteRune(BlockFull)
	case bottom == ColorNone:
		c.setStyle(top, ColorNone)
		c.renderBuf.WriteRune(BlockUpperHalf)
	case top == ColorNone:
		c.setStyle(bottom, ColorNone)
		c.renderBuf.WriteRune(BlockLowerHalf)
	default:
		c.setStyle(top, bottom)
		c.renderBuf.WriteRune(BlockUpperHalf)
	}
}

func (c *Canvas) setStyle(fg, bg Color) {
	if fg == c.curFg && bg == c.curBg {
		return
	}
	c.renderBuf.WriteString(ColorReset)
	c.renderBuf.WriteString(fgCodes[fg%colorCount])
	c.renderBuf.WriteString(bgCodes[bg%colorCount])
	c.curFg, c.curBg = fg, bg
}

// writeChunked writes data to w in maxChunkSize pieces.
func writeChunked(w io.Writer, data string) {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// is larger than the render area. Horizontal bars need a vertical offset,
// vertical bars a horizontal one.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	buf.WriteString(fgCodes[ColorGray])
	if hasV {
		if hasH {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + bar + "┐")
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + bar + "┘")
		} else {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left+1) + "H" + bar)
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left+1) + "H" + bar)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(left) + "H│")
			buf.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(right) + "H│")
		}
	}
	buf.WriteString(ColorReset)
	writeChunked(w, buf.String())
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
// Use it to place text overlays next to canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based screen cell (including the centering
// offset) to the logical coordinates of the cell's centre.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return px / c.scaleX, py / c.scaleY
}

// Foreground returns the escape sequence selecting col as text colour.
// ColorNone selects the default colour.
func Foreground(col Color) string {
	if col == ColorNone || col >= colorCount {
		return ColorReset
	}
	return fgCodes[col]
}
