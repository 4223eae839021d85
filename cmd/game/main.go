package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/loop"
	"github.com/tomz197/pong/internal/prefs"
	"github.com/tomz197/pong/internal/sim"
)

func main() {
	os.Exit(run())
}

func run() int {
	// The terminal is the game screen, so logs go to a file or nowhere.
	logOut := io.Discard
	if path := config.GetEnv("PONG_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "pong")

	store, settings := loadSettings(logger)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		return 1
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	opts := loop.Options{
		Settings: settings,
		Logger:   logger,
		Mouse:    true,
		OnSettingsChange: func(s sim.Settings) {
			if store == nil {
				return
			}
			if err := store.Save(s); err != nil {
				logger.Error("failed to save preferences", "err", err)
			}
		},
	}
	if err := loop.Run(ctx, os.Stdin, os.Stdout, opts); err != nil {
		logger.Error("game error", "err", err)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		return 1
	}
	return 0
}

// loadSettings reads stored preferences and applies PONG_MODE / PONG_SPEED
// on top. The store is nil when no config location is available.
func loadSettings(logger *log.Logger) (*prefs.Store, sim.Settings) {
	settings := sim.DefaultSettings()
	store, err := prefs.Open(config.GetEnv("PONG_PREFS", ""))
	if err != nil {
		logger.Warn("preferences disabled", "err", err)
	} else {
		settings, err = store.Load()
		if err != nil {
			logger.Warn("ignoring stored preferences", "err", err)
		}
		logger.Debug("preferences loaded", "path", store.Path(), "mode", settings.Mode, "speed", settings.Speed)
	}
	return store, prefs.Override(settings, config.GetEnv("PONG_MODE", ""), config.GetEnv("PONG_SPEED", ""))
}
