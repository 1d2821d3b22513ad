package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/skyfighter/internal/config"
	"github.com/tomz197/skyfighter/internal/event"
	"github.com/tomz197/skyfighter/internal/leaderboard"
	"github.com/tomz197/skyfighter/internal/logging"
	"github.com/tomz197/skyfighter/internal/loop"
	"github.com/tomz197/skyfighter/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Load("."); err != nil {
		return err
	}
	settings, err := config.Current()
	if err != nil {
		return err
	}

	logFile := settings.Log.File
	if logFile == "" && settings.Log.Dir != "" {
		logFile = logging.FilePath(settings.Log.Dir, "skyfighter-game", time.Now())
	}

	// The terminal is ours while playing, so logs only go to a file.
	logger, closer, err := logging.New(settings.Log.Level, logFile, io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := leaderboard.Open(settings.Leaderboard.Path, settings.Leaderboard.Size)
	if err != nil {
		return err
	}
	defer store.Close()

	metrics, err := telemetry.NewGlobal()
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := loop.NewRunner(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Settings:  settings,
		Username:  os.Getenv("USER"),
		Store:     store,
		Listeners: []event.Listener{metrics},
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	return runner.Run(ctx)
}
