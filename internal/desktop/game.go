// Package desktop is the graphical frontend built on Ebitengine. It runs in a
// window on desktop platforms and, through the mobile binding, on phones,
// where touch contacts steer the paddles.
package desktop

import (
	"fmt"
	"image/color"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/pong/internal/desktop/widget"
	"github.com/tomz197/pong/internal/input"
	"github.com/tomz197/pong/internal/sim"
)

var (
	colorBackground = color.RGBA{0x14, 0x16, 0x1f, 0xff}
	colorLine       = color.RGBA{0x55, 0x5a, 0x6a, 0xff}
	colorPaddle     = color.White
	colorBall       = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorButton     = color.RGBA{0x2a, 0x2e, 0x3c, 0xff}
	colorSelected   = color.RGBA{0x1f, 0x8f, 0xa8, 0xff}
	colorOverlay    = color.RGBA{0x00, 0x00, 0x00, 0x99}
)

// Centre line dashes, in court units.
const (
	dashLength = 14
	dashGap    = 12
)

// commandKeys maps keys to UI actions.
var commandKeys = map[ebiten.Key]input.Action{
	ebiten.KeySpace:  input.ActionTogglePause,
	ebiten.KeyP:      input.ActionTogglePause,
	ebiten.KeyEscape: input.ActionMenu,
	ebiten.KeyM:      input.ActionMenu,
	ebiten.KeyEnter:  input.ActionConfirm,
	ebiten.KeyR:      input.ActionReset,
	ebiten.KeyDigit1: input.ActionSolo,
	ebiten.KeyDigit2: input.ActionDuo,
	ebiten.KeyDigit3: input.ActionSlow,
	ebiten.KeyDigit4: input.ActionNormal,
	ebiten.KeyDigit5: input.ActionFast,
	ebiten.KeyQ:      input.ActionQuit,
}

// movementKeys maps keys to held paddle keys.
var movementKeys = []struct {
	key ebiten.Key
	in  input.Key
}{
	{ebiten.KeyW, input.KeyW},
	{ebiten.KeyS, input.KeyS},
	{ebiten.KeyArrowUp, input.KeyArrowUp},
	{ebiten.KeyArrowDown, input.KeyArrowDown},
}

// Options configures a Game.
type Options struct {
	Settings sim.Settings
	Logger   *log.Logger // Defaults to a discarding logger

	// OnSettingsChange is called from Update after mode or speed changed.
	OnSettingsChange func(sim.Settings)

	// AllowQuit lets Q end the game. Off on mobile, where the OS owns the app lifecycle.
	AllowQuit bool

	Rand *rand.Rand
}

// Game implements ebiten.Game. Update runs at the simulation tick rate and
// performs exactly one engine step.
type Game struct {
	engine *sim.Engine
	agg    *input.Aggregator
	logger *log.Logger
	opts   Options
	face   text.Face

	touches  widget.Touches
	touchIDs []ebiten.TouchID
	sources  []input.SourceID
	keys     []ebiten.Key
	buttons  []widget.Button
	saved    sim.Settings
	quit     bool
}

// New creates a game.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var engineOpts []sim.Option
	if opts.Rand != nil {
		engineOpts = append(engineOpts, sim.WithRand(opts.Rand))
	}
	engine := sim.New(opts.Settings, engineOpts...)
	return &Game{
		engine: engine,
		agg:    input.NewAggregator(sim.CourtWidth, sim.CourtHeight),
		logger: logger,
		opts:   opts,
		face:   text.NewGoXFace(basicfont.Face7x13),
		saved:  engine.Settings(),
	}
}

// Run opens a window and plays until the window closes or the player quits.
func Run(g *Game) error {
	ebiten.SetTPS(sim.TickRate)
	ebiten.SetWindowSize(int(sim.CourtWidth*1.2), int(sim.CourtHeight*1.2))
	ebiten.SetWindowTitle("Pong")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.buttons = widget.AppendButtons(g.buttons[:0], g.engine.Phase(), g.engine.Settings())

	g.handleKeys()
	if g.quit {
		return ebiten.Termination
	}
	g.handleTouches()
	g.handleMouse()

	for _, ev := range g.engine.Step(g.agg.Snapshot()) {
		if ev.Kind == sim.EventScore {
			score := g.engine.Snapshot().Score
			g.logger.Debug("point", "to", ev.Side, "left", score.Left, "right", score.Right)
		}
	}

	if s := g.engine.Settings(); s != g.saved {
		g.saved = s
		g.logger.Info("settings changed", "mode", s.Mode, "speed", s.Speed)
		if g.opts.OnSettingsChange != nil {
			g.opts.OnSettingsChange(s)
		}
	}
	return nil
}

// apply queues the command for a UI action.
func (g *Game) apply(a input.Action) {
	if a == input.ActionQuit {
		g.quit = g.opts.AllowQuit
		return
	}
	cmd, ok := a.Command(g.engine.Phase(), g.engine.Settings())
	if !ok {
		return
	}
	if cmd.Kind == sim.CmdStartMatch {
		g.agg.ReleaseAll()
	}
	g.engine.Queue(cmd)
}

func (g *Game) handleKeys() {
	for _, mk := range movementKeys {
		g.agg.SetKey(mk.in, ebiten.IsKeyPressed(mk.key))
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if a, ok := commandKeys[k]; ok {
			g.apply(a)
		}
	}
}

// handleTouches feeds touch contacts to the aggregator. A contact that
// starts on a button presses it and never steers a paddle.
func (g *Game) handleTouches() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	g.sources = g.sources[:0]
	for _, id := range g.touchIDs {
		g.sources = append(g.sources, input.SourceID(id))
	}

	began, released := g.touches.Update(g.sources)
	for _, id := range released {
		g.agg.PointerUp(id)
	}
	for _, tid := range g.touchIDs {
		id := input.SourceID(tid)
		px, py := ebiten.TouchPosition(tid)
		x, y := float64(px), float64(py)
		if !slices.Contains(began, id) {
			g.agg.PointerMove(id, x, y)
			continue
		}
		if b, ok := widget.Hit(g.buttons, x, y); ok {
			g.apply(b.Action)
			continue
		}
		g.agg.PointerDown(id, x, y)
	}
}

func (g *Game) handleMouse() {
	px, py := ebiten.CursorPosition()
	x, y := float64(px), float64(py)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if b, ok := widget.Hit(g.buttons, x, y); ok {
			g.apply(b.Action)
			return
		}
		g.agg.PointerDown(input.MouseSource, x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.agg.PointerUp(input.MouseSource)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.agg.PointerMove(input.MouseSource, x, y)
	}
}

// Layout implements ebiten.Game. The court is drawn at its logical size and
// Ebitengine scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(sim.CourtWidth), int(sim.CourtHeight)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.engine.Snapshot()
	screen.Fill(colorBackground)

	cx := float32(sim.CourtWidth / 2)
	for y := float32(0); y < sim.CourtHeight; y += dashLength + dashGap {
		vector.StrokeLine(screen, cx, y, cx, y+dashLength, 2, colorLine, false)
	}

	for _, p := range []sim.Paddle{snap.Left, snap.Right} {
		vector.FillRect(screen, float32(p.X()), float32(p.Y), sim.PaddleWidth, sim.PaddleHeight, colorPaddle, false)
	}
	vector.FillCircle(screen, float32(snap.Ball.X()), float32(snap.Ball.Y()), float32(snap.Ball.Radius), colorBall, true)

	g.drawText(screen, fmt.Sprintf("%d   %d", snap.Score.Left, snap.Score.Right), sim.CourtWidth/2, 60, 3, colorPaddle)

	switch snap.Phase {
	case sim.PhasePaused:
		vector.FillRect(screen, 0, 0, sim.CourtWidth, sim.CourtHeight, colorOverlay, false)
		g.drawText(screen, "PAUSED", sim.CourtWidth/2, sim.CourtHeight/2, 4, colorPaddle)
	case sim.PhaseMenuOpen:
		vector.FillRect(screen, 0, 0, sim.CourtWidth, sim.CourtHeight, colorOverlay, false)
		g.drawText(screen, "PONG", sim.CourtWidth/2, 130, 6, colorBall)
		g.drawText(screen, "W/S and Up/Down, or drag on your half", sim.CourtWidth/2, 340, 2, colorLine)
		g.drawText(screen, "ENTER play   ESC resume", sim.CourtWidth/2, 372, 2, colorLine)
	}

	for _, b := range g.buttons {
		g.drawButton(screen, b)
	}
}

func (g *Game) drawButton(screen *ebiten.Image, b widget.Button) {
	fill := colorButton
	if b.Selected {
		fill = colorSelected
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fill, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, colorLine, false)
	g.drawText(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, 2, colorPaddle)
}

// drawText draws s centred on (x, y), scaling the bitmap font.
func (g *Game) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, g.face, op)
}
