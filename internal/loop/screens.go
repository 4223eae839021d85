package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/object"
	"github.com/tomz197/pong/internal/sim"
)

// Title art (figlet "small" font).
var titleArt = []string{
	` ___  ___  _  _  ___ `,
	`| _ \/ _ \| \| |/ __|`,
	`|  _/ (_) | .' | (_ |`,
	`|_|  \___/|_|\_|\___|`,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	snap := c.engine.Snapshot()

	// On phase or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	if snap.Phase != c.state.prevPhase || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.ClearScreen()
		c.canvas.ForceRedraw()
		c.state.prevPhase = snap.Phase
		c.state.wasInactive = c.state.isInactive
		c.state.redrawn = true
	}

	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
	}

	c.scene = object.AppendScene(c.scene[:0], snap)
	if err := object.DrawAll(ctx, c.scene); err != nil {
		return err
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// The border only needs repainting after a clear
	if c.state.redrawn {
		c.canvas.RenderBorder(c.chunkWriter)
		c.state.redrawn = false
	}

	// Draw UI overlay (after canvas render so it's on top)
	c.ui = c.appendUI(c.ui[:0], snap, now)
	if err := object.DrawAll(ctx, c.ui); err != nil {
		return err
	}

	return c.chunkWriter.Flush()
}

// appendUI appends the text overlay for the current phase.
func (c *Client) appendUI(dst []object.Object, snap sim.Snapshot, now time.Time) []object.Object {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()

	if c.state.isInactive {
		return appendInactivityScreen(dst, width, height, c.state.idleLeft)
	}

	dst = appendHUD(dst, width, height, snap)
	switch snap.Phase {
	case sim.PhasePaused:
		dst = appendPausedScreen(dst, width, height, now.Sub(c.state.started))
	case sim.PhaseMenuOpen:
		dst = appendMenuScreen(dst, width, height, snap.Settings)
	}
	return dst
}

// appendHUD adds the score line and the status bar.
func appendHUD(dst []object.Object, width, height int, snap sim.Snapshot) []object.Object {
	score := object.Centered(width, 1, fmt.Sprintf("%d — %d", snap.Score.Left, snap.Score.Right))
	score.Color = draw.ColorWhite
	dst = append(dst, score)

	if height < 3 {
		return dst
	}

	status := fmt.Sprintf("%s · %s", modeLabel(snap.Settings.Mode), snap.Settings.Speed)
	dst = append(dst, object.Text{X: 2, Y: height, Value: status, Color: draw.ColorGray})

	hint := "ESC menu  SPACE pause  Q quit"
	if len(status)+len(hint)+4 <= width {
		dst = append(dst, object.Text{X: width - len(hint), Y: height, Value: hint, Color: draw.ColorGray})
	}
	return dst
}

// appendPausedScreen adds the blinking pause banner.
func appendPausedScreen(dst []object.Object, width, height int, elapsed time.Duration) []object.Object {
	centerY := height / 2
	if object.ShouldRenderBlink(elapsed.Seconds(), config.PauseBlinkFrequency) {
		title := object.Centered(width, centerY, "PAUSED")
		title.Color = draw.ColorBrightCyan
		dst = append(dst, title)
	}
	return append(dst, object.Centered(width, centerY+2, "SPACE or ENTER to resume"))
}

// appendMenuScreen adds the title, the mode and speed choices and the controls.
func appendMenuScreen(dst []object.Object, width, height int, settings sim.Settings) []object.Object {
	lines := []string{
		"Mode:   " + option("1 Solo vs CPU", settings.Mode == sim.ModeSolo) + "  " +
			option("2 Duo", settings.Mode == sim.ModeDuo),
		"Speed:  " + option("3 Slow", settings.Speed == sim.SpeedSlow) + "  " +
			option("4 Normal", settings.Speed == sim.SpeedNormal) + "  " +
			option("5 Fast", settings.Speed == sim.SpeedFast),
		"",
		"W / S  . . . .  Left paddle",
		"Up / Down  . . Right paddle",
		"Mouse drag  . . . .  Paddle",
		"SPACE  . . . . . . .  Pause",
		"R  . . . . . . . . .  Reset",
		"Q  . . . . . . . . . . Quit",
		"",
		"ENTER play  ·  ESC resume",
	}

	art := titleArt
	if height < config.MinMenuArtHeight {
		art = nil
	}
	top := height/2 - (len(art)+len(lines)+1)/2
	top = max(top, 2)

	artWidth := 0
	for _, line := range art {
		artWidth = max(artWidth, len(line))
	}
	for i, line := range art {
		dst = append(dst, object.Text{X: width/2 - artWidth/2 + 1, Y: top + i, Value: line, Color: draw.ColorBrightCyan})
	}

	row := top + len(art) + 1
	for _, line := range lines {
		if line != "" {
			dst = append(dst, object.Centered(width, row, line))
		}
		row++
	}
	return dst
}

// option renders a menu choice, bracketing the selected one.
func option(label string, selected bool) string {
	if selected {
		return "[" + label + "]"
	}
	return " " + label + " "
}

func modeLabel(m sim.Mode) string {
	if m == sim.ModeDuo {
		return "duo"
	}
	return "solo vs cpu"
}

// appendInactivityScreen adds the inactivity warning.
func appendInactivityScreen(dst []object.Object, width, height int, left time.Duration) []object.Object {
	centerY := height / 2
	secs := max(int(left.Seconds()), 0)
	msg := fmt.Sprintf("You have been inactive for too long. Disconnecting in %d seconds.", secs)
	if len(msg) > width {
		msg = fmt.Sprintf("Disconnecting in %ds", secs)
	}
	return append(dst,
		object.Centered(width, centerY-2, "INACTIVITY WARNING"),
		object.Centered(width, centerY, msg),
		object.Centered(width, centerY+2, "Press any key to continue"),
	)
}
