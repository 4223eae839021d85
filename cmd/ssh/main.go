package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/google/uuid"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop"
	loopconfig "github.com/tomz197/pong/internal/loop/config"
	"github.com/tomz197/pong/internal/prefs"
	"github.com/tomz197/pong/internal/sim"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	prefsDir := config.GetEnv("PONG_PREFS_DIR", "")
	idleTimeout := config.GetEnvDuration("PONG_IDLE_TIMEOUT", loopconfig.DefaultIdleTimeout)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"prefsDir", prefsDir, "idleTimeout", idleTimeout)

	if dsn := config.GetEnv("SENTRY_DSN", ""); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			logger.Error("sentry disabled", "err", err)
		} else {
			defer sentry.Flush(5 * time.Second)
		}
	}

	if addr := config.GetEnv("PONG_STATSVIEW_ADDR", ""); addr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		logger.Info("statsview enabled", "addr", addr)
	}

	games := &gameHandler{
		logger:      logger,
		prefsDir:    prefsDir,
		idleTimeout: idleTimeout,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Closing a session cancels its context, which ends its game.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameHandler runs one independent game per SSH session.
type gameHandler struct {
	logger      *log.Logger
	prefsDir    string
	idleTimeout time.Duration
}

func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		defer func() {
			if err := recover(); err != nil {
				logger.Error("game panic", "err", err)
				hub := sentry.CurrentHub().Clone()
				hub.ConfigureScope(func(scope *sentry.Scope) {
					scope.SetTag("user", sess.User())
					scope.SetTag("remote", sess.RemoteAddr().String())
				})
				hub.Recover(err)
				hub.Flush(time.Second * 5)
			}
		}()

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		store, settings := h.loadPrefs(logger, sess.User())
		opts := loop.Options{
			Settings:     settings,
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
			IdleTimeout:  h.idleTimeout,
			Mouse:        true,
		}
		if store != nil {
			opts.OnSettingsChange = func(s sim.Settings) {
				if err := store.Save(s); err != nil {
					logger.Error("failed to save preferences", "err", err)
				}
			}
		}

		if err := loop.Run(sess.Context(), sess, sess, opts); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// loadPrefs returns the stored settings of user, or defaults with a nil
// store when per-user preferences are disabled.
func (h *gameHandler) loadPrefs(logger *log.Logger, user string) (*prefs.Store, sim.Settings) {
	if h.prefsDir == "" {
		return nil, sim.DefaultSettings()
	}
	store := prefs.NewStore(prefs.UserPath(h.prefsDir, user))
	settings, err := store.Load()
	if err != nil {
		logger.Warn("ignoring stored preferences", "err", err)
	}
	return store, settings
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
