// Package loop runs the terminal frontend: the Input → Update → Draw cycle
// around one simulation engine.
package loop

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/sim"
)

// Options configures a terminal game.
type Options struct {
	Settings     sim.Settings      // Initial mode and speed
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Logger       *log.Logger       // Defaults to a discarding logger

	// OnSettingsChange is called on the loop goroutine after mode or speed changed.
	OnSettingsChange func(sim.Settings)

	// IdleTimeout ends the game after this long without input. Zero disables it.
	IdleTimeout time.Duration

	// Mouse enables SGR mouse reporting so clicks and drags move paddles.
	Mouse bool

	// Rand seeds the engine. Nil seeds from the clock.
	Rand *rand.Rand
}

// Run plays one game on the terminal behind r and w. It returns when the
// player quits, the input ends, the idle timeout passes or ctx is done.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	return NewClient(r, w, opts).Run(ctx)
}
