package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/object"
	"github.com/tomz197/pong/internal/sim"
)

// Client handles the engine, rendering and input for one terminal.
type Client struct {
	engine       *sim.Engine
	agg          *input.Aggregator
	inputStream  *input.Stream
	clock        *Clock
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	termSizeFunc draw.TermSizeFunc
	toCourt      input.PointerMapper
	logger       *log.Logger
	opts         Options
	state        clientState
	scene        []object.Object // Reused every frame
	ui           []object.Object // Reused every frame
}

// clientState holds per-frame bookkeeping.
type clientState struct {
	running     bool
	started     time.Time
	prevPhase   sim.Phase
	saved       sim.Settings // Last settings handed to OnSettingsChange
	isInactive  bool
	wasInactive bool
	idleLeft    time.Duration
	redrawn     bool // Screen was cleared this frame
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r io.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var engineOpts []sim.Option
	if opts.Rand != nil {
		engineOpts = append(engineOpts, sim.WithRand(opts.Rand))
	}
	engine := sim.New(opts.Settings, engineOpts...)

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, sim.CourtWidth, sim.CourtHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		engine:       engine,
		agg:          input.NewAggregator(sim.CourtWidth, sim.CourtHeight),
		inputStream:  input.StartStream(bufio.NewReader(r)),
		clock:        NewClock(sim.TickTime),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		termSizeFunc: termSizeFunc,
		toCourt:      canvas.TerminalToLogical,
		logger:       logger,
		opts:         opts,
		state: clientState{
			running:   true,
			prevPhase: engine.Phase(),
			saved:     engine.Settings(),
		},
	}
}

// Run starts the client loop. Blocks until the game ends.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	if c.opts.Mouse {
		draw.EnableMouse(c.writer)
		defer draw.DisableMouse(c.writer)
	}
	draw.ClearScreen(c.writer)
	c.canvas.ForceRedraw()

	c.state.started = time.Now()
	lastTime := c.state.started
	c.logger.Debug("game started", "mode", c.engine.Settings().Mode, "speed", c.engine.Settings().Speed)

	for c.state.running && ctx.Err() == nil {
		frameStart := time.Now()
		elapsed := frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput(frameStart)
		if !c.state.running {
			break
		}

		// Handle screen resize
		c.updateScreen()

		// Advance the simulation
		c.update(elapsed)

		// Draw frame
		if err := c.drawFrame(frameStart); err != nil {
			return err
		}

		// Frame timing
		if spent := time.Since(frameStart); spent < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - spent)
		}
	}

	score := c.engine.Snapshot().Score
	c.logger.Debug("game ended", "left", score.Left, "right", score.Right)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput polls the terminal, queues commands and tracks inactivity.
func (c *Client) processInput(now time.Time) {
	for _, a := range c.inputStream.Poll(now, c.agg, c.toCourtIfEnabled()) {
		if a == input.ActionQuit {
			c.state.running = false
			return
		}
		cmd, ok := a.Command(c.engine.Phase(), c.engine.Settings())
		if !ok {
			continue
		}
		if cmd.Kind == sim.CmdStartMatch {
			c.inputStream.Reset(c.agg)
			c.agg.ReleaseAll()
		}
		c.engine.Queue(cmd)
	}

	if c.opts.IdleTimeout <= 0 {
		return
	}
	last := c.inputStream.LastInput()
	if last.IsZero() {
		last = c.state.started
	}
	idle := now.Sub(last)
	c.state.idleLeft = c.opts.IdleTimeout - idle
	switch {
	case idle >= c.opts.IdleTimeout:
		c.logger.Info("idle timeout", "after", idle.Round(time.Second))
		c.state.running = false
	case float64(idle) >= float64(c.opts.IdleTimeout)*config.InactivityWarnRatio:
		c.state.isInactive = true
	default:
		c.state.isInactive = false
	}
}

func (c *Client) toCourtIfEnabled() input.PointerMapper {
	if !c.opts.Mouse {
		return nil
	}
	return c.toCourt
}

// update runs the simulation steps banked since the last frame and reports
// settings changes.
func (c *Client) update(elapsed time.Duration) {
	steps := c.clock.Advance(elapsed)
	for range steps {
		for _, ev := range c.engine.Step(c.agg.Snapshot()) {
			if ev.Kind == sim.EventScore {
				score := c.engine.Snapshot().Score
				c.logger.Debug("point", "to", ev.Side, "left", score.Left, "right", score.Right)
			}
		}
	}

	if s := c.engine.Settings(); s != c.state.saved {
		c.state.saved = s
		c.logger.Info("settings changed", "mode", s.Mode, "speed", s.Speed)
		if c.opts.OnSettingsChange != nil {
			c.opts.OnSettingsChange(s)
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
		c.state.redrawn = true
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the court into the terminal: at most the max render
// resolution, keeping the court's aspect in sub-pixels (two per row), and
// computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)

	if fitHeight := int(float64(renderWidth) * sim.CourtHeight / sim.CourtWidth / 2); fitHeight < renderHeight {
		renderHeight = fitHeight
	} else {
		renderWidth = int(float64(renderHeight) * 2 * sim.CourtWidth / sim.CourtHeight)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
