package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	seqClear        = "\033[H\033[2J"
	seqHideCursor   = "\033[?25l"
	seqShowCursor   = "\033[?25h"
	seqMouseOn      = "\033[?1002h\033[?1006h" // button-event tracking, SGR encoding
	seqMouseOff     = "\033[?1006l\033[?1002l"
	outputBufferLen = 8192
)

// ChunkWriter collects the text overlay of one frame and hands it to the
// terminal in maxChunkSize pieces on Flush. Positions are canvas cells,
// shifted by the centring offset.
type ChunkWriter struct {
	pending strings.Builder
	out     *bufio.Writer
	scratch [20]byte
	offCol  int
	offRow  int
}

// NewChunkWriter returns a ChunkWriter writing to w, shifting every cursor
// position by (offsetCol, offsetRow).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, outputBufferLen),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset changes the centring offset, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// MoveCursor queues a cursor move to the 1-based canvas cell (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.pending.WriteString("\033[")
	cw.pending.Write(strconv.AppendInt(cw.scratch[:0], int64(row+cw.offRow), 10))
	cw.pending.WriteByte(';')
	cw.pending.Write(strconv.AppendInt(cw.scratch[:0], int64(col+cw.offCol), 10))
	cw.pending.WriteByte('H')
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.pending.Write(p)
}

// WriteString queues s as is.
func (cw *ChunkWriter) WriteString(s string) {
	cw.pending.WriteString(s)
}

// WriteAt queues s at the canvas cell (col, row) in the terminal's default colour.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.pending.WriteString(s)
}

// WriteColored queues s at (col, row) in foreground colour c.
func (cw *ChunkWriter) WriteColored(col, row int, c Color, s string) {
	if c == ColorNone {
		cw.WriteAt(col, row, s)
		return
	}
	cw.MoveCursor(col, row)
	cw.pending.WriteString(Foreground(c))
	cw.pending.WriteString(s)
	cw.pending.WriteString(ColorReset)
}

// ClearScreen queues a full terminal clear.
func (cw *ChunkWriter) ClearScreen() {
	cw.pending.WriteString(seqClear)
}

// Len reports how many bytes are queued.
func (cw *ChunkWriter) Len() int {
	return cw.pending.Len()
}

// Flush writes everything queued and empties the queue.
func (cw *ChunkWriter) Flush() error {
	data := cw.pending.String()
	cw.pending.Reset()
	writeChunked(cw.out, data)
	return cw.out.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func ClearScreen(w io.Writer)  { io.WriteString(w, seqClear) }
func HideCursor(w io.Writer)   { io.WriteString(w, seqHideCursor) }
func ShowCursor(w io.Writer)   { io.WriteString(w, seqShowCursor) }
func DisableMouse(w io.Writer) { io.WriteString(w, seqMouseOff) }

// EnableMouse reports presses, drags and releases as ESC [ < b ; col ; row M/m.
func EnableMouse(w io.Writer) { io.WriteString(w, seqMouseOn) }
