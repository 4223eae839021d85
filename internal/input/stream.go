package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered held after its last
// repeat. Terminals never report key releases.
const keyHoldDuration = 120 * time.Millisecond

// maxPendingSequence bounds how many bytes of an unterminated escape
// sequence are carried over to the next poll.
const maxPendingSequence = 32

// PointerMapper converts a 1-based terminal cell into court coordinates.
type PointerMapper func(col, row int) (x, y float64)

// Stream delivers terminal bytes via a channel and turns them into
// aggregator events and UI actions.
type Stream struct {
	ch       chan byte
	closed   bool
	pending  []byte // Incomplete escape sequence from the previous poll
	lastSeen [keyCount]time.Time
	down     [keyCount]bool
	actions  []Action
	lastRead time.Time // When the last byte arrived
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// Poll drains all available bytes (non-blocking), feeds key and mouse
// events to agg and returns the UI actions typed since the last poll.
// toCourt may be nil, in which case mouse reports are ignored.
// The returned slice is only valid until the next Poll.
func (s *Stream) Poll(now time.Time, agg *Aggregator, toCourt PointerMapper) []Action {
	s.actions = s.actions[:0]
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			s.lastRead = now
		default:
			break drain
		}
	}

	s.parse(buf, now, agg, toCourt)
	s.expireKeys(now, agg)

	if s.closed {
		s.actions = append(s.actions, ActionQuit)
	}
	return s.actions
}

// LastInput returns the poll time at which the most recent byte arrived,
// or the zero time if nothing has been read yet.
func (s *Stream) LastInput() time.Time {
	return s.lastRead
}

// Reset releases every key the stream is holding.
func (s *Stream) Reset(agg *Aggregator) {
	for k := Key(0); k < keyCount; k++ {
		if s.down[k] {
			s.down[k] = false
			agg.Release(k)
		}
	}
}

func (s *Stream) parse(buf []byte, now time.Time, agg *Aggregator, toCourt PointerMapper) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			s.applyByte(b, now, agg)
			continue
		}

		// Lone ESC, or ESC followed by something that is not a CSI.
		if i+1 >= len(buf) || buf[i+1] != '[' {
			s.actions = append(s.actions, ActionMenu)
			continue
		}
		if i+2 >= len(buf) {
			s.keepPending(buf[i:])
			return
		}

		switch buf[i+2] {
		case 'A':
			s.hold(KeyArrowUp, now, agg)
			i += 2
		case 'B':
			s.hold(KeyArrowDown, now, agg)
			i += 2
		case '<':
			end := indexFinal(buf, i+3)
			if end < 0 {
				s.keepPending(buf[i:])
				return
			}
			s.applyMouse(buf[i+3:end], buf[end], agg, toCourt)
			i = end
		default:
			// Other CSI sequences (function keys, left/right arrows) are skipped.
			end := indexFinal(buf, i+2)
			if end < 0 {
				s.keepPending(buf[i:])
				return
			}
			i = end
		}
	}
}

// keepPending stores an incomplete sequence for the next poll, dropping
// it if it is implausibly long.
func (s *Stream) keepPending(seq []byte) {
	if len(seq) > maxPendingSequence {
		return
	}
	s.pending = append([]byte(nil), seq...)
}

// indexFinal returns the index of the first CSI final byte at or after
// start, or -1.
func indexFinal(buf []byte, start int) int {
	for j := start; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j
		}
	}
	return -1
}

// applyByte handles single-byte keys.
func (s *Stream) applyByte(b byte, now time.Time, agg *Aggregator) {
	switch b {
	case 'w', 'W':
		s.hold(KeyW, now, agg)
	case 's', 'S':
		s.hold(KeyS, now, agg)
	case 'q', 'Q', '\x03':
		s.actions = append(s.actions, ActionQuit)
	case ' ', 'p', 'P':
		s.actions = append(s.actions, ActionTogglePause)
	case 'm', 'M':
		s.actions = append(s.actions, ActionMenu)
	case '\r', '\n':
		s.actions = append(s.actions, ActionConfirm)
	case 'r', 'R':
		s.actions = append(s.actions, ActionReset)
	case '1':
		s.actions = append(s.actions, ActionSolo)
	case '2':
		s.actions = append(s.actions, ActionDuo)
	case '3':
		s.actions = append(s.actions, ActionSlow)
	case '4':
		s.actions = append(s.actions, ActionNormal)
	case '5':
		s.actions = append(s.actions, ActionFast)
	}
}

// hold presses k and refreshes its hold timer.
func (s *Stream) hold(k Key, now time.Time, agg *Aggregator) {
	s.lastSeen[k] = now
	s.down[k] = true
	agg.Press(k)
}

// expireKeys releases keys whose last repeat is older than keyHoldDuration.
func (s *Stream) expireKeys(now time.Time, agg *Aggregator) {
	for k := Key(0); k < keyCount; k++ {
		if s.down[k] && now.Sub(s.lastSeen[k]) >= keyHoldDuration {
			s.down[k] = false
			agg.Release(k)
		}
	}
}

// applyMouse handles an SGR mouse report "b;col;row" ending in M (press or
// drag) or m (release).
func (s *Stream) applyMouse(params []byte, final byte, agg *Aggregator, toCourt PointerMapper) {
	if toCourt == nil {
		return
	}
	fields := splitParams(params)
	if len(fields) != 3 {
		return
	}
	button, err1 := strconv.Atoi(fields[0])
	col, err2 := strconv.Atoi(fields[1])
	row, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}

	if final == 'm' {
		agg.PointerUp(MouseSource)
		return
	}
	if button&64 != 0 || button&3 != 0 {
		// Wheel, or a button other than the left one.
		return
	}

	x, y := toCourt(col, row)
	if button&32 != 0 {
		agg.PointerMove(MouseSource, x, y)
	} else {
		agg.PointerDown(MouseSource, x, y)
	}
}

func splitParams(params []byte) []string {
	var fields []string
	start := 0
	for j, c := range params {
		if c == ';' {
			fields = append(fields, string(params[start:j]))
			start = j + 1
		}
	}
	return append(fields, string(params[start:]))
}
