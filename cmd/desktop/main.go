package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/desktop"
	"github.com/tomz197/pong/internal/prefs"
	"github.com/tomz197/pong/internal/sim"
)

func main() {
	logger := config.NewLogger(os.Stderr, "pong")
	store, settings := loadSettings(logger)

	game := desktop.New(desktop.Options{
		Settings:  settings,
		Logger:    logger,
		AllowQuit: true,
		OnSettingsChange: func(s sim.Settings) {
			if store == nil {
				return
			}
			if err := store.Save(s); err != nil {
				logger.Error("failed to save preferences", "err", err)
			}
		},
	})
	if err := desktop.Run(game); err != nil {
		logger.Fatal("game error", "err", err)
	}
}

// loadSettings reads stored preferences and applies PONG_MODE / PONG_SPEED
// on top. The store is nil when no config location is available.
func loadSettings(logger *log.Logger) (*prefs.Store, sim.Settings) {
	settings := sim.DefaultSettings()
	store, err := prefs.Open(config.GetEnv("PONG_PREFS", ""))
	if err != nil {
		logger.Warn("preferences disabled", "err", err)
	} else if settings, err = store.Load(); err != nil {
		logger.Warn("ignoring stored preferences", "err", err)
	}
	return store, prefs.Override(settings, config.GetEnv("PONG_MODE", ""), config.GetEnv("PONG_SPEED", ""))
}
