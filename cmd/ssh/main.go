package main

import (
	"bufio"
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

	"github.com/tomz197/skyfighter/internal/config"
	"github.com/tomz197/skyfighter/internal/draw"
	"github.com/tomz197/skyfighter/internal/event"
	"github.com/tomz197/skyfighter/internal/leaderboard"
	"github.com/tomz197/skyfighter/internal/lobby"
	logs "github.com/tomz197/skyfighter/internal/logging"
	"github.com/tomz197/skyfighter/internal/loop"
	"github.com/tomz197/skyfighter/internal/telemetry"
)

const (
	playerShutdownTimeout = 15 * time.Second
	serverShutdownTimeout = 5 * time.Second
)

// server holds what every SSH session shares.
type server struct {
	settings config.Settings
	store    *leaderboard.Store
	lobby    *lobby.Lobby
	metrics  *telemetry.Metrics
	logger   *log.Logger
	ctx      context.Context
}

func main() {
	if err := config.Load("."); err != nil {
		log.Fatal("Failed to load config", "err", err)
	}
	settings, err := config.Current()
	if err != nil {
		log.Fatal("Invalid config", "err", err)
	}

	logFile := settings.Log.File
	if logFile == "" && settings.Log.Dir != "" {
		logFile = logs.FilePath(settings.Log.Dir, "skyfighter-ssh", time.Now())
	}

	logger, closer, err := logs.New(settings.Log.Level, logFile, os.Stderr)
	if err != nil {
		log.Fatal("Failed to create logger", "err", err)
	}
	defer closer.Close()

	host, port, hostKeyPath := settings.SSH.Host, settings.SSH.Port, settings.SSH.HostKeyPath
	logger.Info("SSH config", "host", host, "port", port, "hostKey", hostKeyPath)

	store, err := leaderboard.Open(settings.Leaderboard.Path, settings.Leaderboard.Size)
	if err != nil {
		logger.Fatal("Failed to open leaderboard", "path", settings.Leaderboard.Path, "err", err)
	}
	defer store.Close()

	metrics, err := telemetry.NewGlobal()
	if err != nil {
		logger.Fatal("Failed to create metrics", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &server{
		settings: settings,
		store:    store,
		lobby:    lobby.New(logger, metrics),
		metrics:  metrics,
		logger:   logger,
		ctx:      ctx,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// TCP_NODELAY for snappier input
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
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...", "players", srv.lobby.Count())

	// Tell players first and give them time to see the notice.
	if !srv.lobby.Shutdown(playerShutdownTimeout) {
		logger.Warn("Players still connected, closing sessions")
	}
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancelShutdown()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "err", err)
	}
}

// gameMiddleware runs a game for each interactive session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		srv.logger.Info("New game session", "user", sess.User(), "term", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		size := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				size.update(win.Width, win.Height)
			}
		}()

		runner, err := loop.NewRunner(bufio.NewReader(sess), sess, loop.Options{
			Settings:  srv.settings,
			Username:  sess.User(),
			TermSize:  size.getSize,
			Store:     srv.store,
			Lobby:     srv.lobby,
			Listeners: []event.Listener{srv.metrics},
			Logger:    srv.logger.With("user", sess.User()),
		})
		if err != nil {
			srv.logger.Error("Failed to start game", "user", sess.User(), "err", err)
			fmt.Fprintln(sess, "Error: could not start the game.")
			return
		}

		ctx, cancel := context.WithCancel(srv.ctx)
		defer cancel()
		go func() {
			select {
			case <-sess.Context().Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		if err := runner.Run(ctx); err != nil {
			srv.logger.Error("Game error", "user", sess.User(), "err", err)
		}
		next(sess)
	}
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

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
