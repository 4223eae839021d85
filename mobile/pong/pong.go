// Package pong is the gomobile binding of the graphical frontend.
// Build it with ebitenmobile:
//
//	ebitenmobile bind -target android -javapkg com.tomz197.pong -o pong.aar ./mobile/pong
package pong

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/tomz197/pong/internal/desktop"
	"github.com/tomz197/pong/internal/sim"
)

func init() {
	ebiten.SetTPS(sim.TickRate)
	mobile.SetGame(desktop.New(desktop.Options{Settings: sim.DefaultSettings()}))
}

// Dummy is a dummy exported function.
//
// gomobile doesn't compile a package that doesn't include any exported function.
// Dummy forces gomobile to compile this package.
func Dummy() {}
