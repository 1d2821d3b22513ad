// Package loop runs one player's connection: it reads input, ticks the game
// session and renders frames to the terminal.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyfighter/internal/config"
	"github.com/tomz197/skyfighter/internal/draw"
	"github.com/tomz197/skyfighter/internal/event"
	"github.com/tomz197/skyfighter/internal/game"
	"github.com/tomz197/skyfighter/internal/input"
	"github.com/tomz197/skyfighter/internal/leaderboard"
	"github.com/tomz197/skyfighter/internal/lobby"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// Board is the leaderboard view a runner reads and reports to.
type Board interface {
	Top(ctx context.Context, n int) ([]leaderboard.Entry, error)
}

// Options configures a Runner.
type Options struct {
	Settings  config.Settings
	Username  string
	TermSize  draw.TermSizeFunc
	Store     *leaderboard.Store // nil disables the leaderboard
	Lobby     *lobby.Lobby       // nil for local play
	Listeners []event.Listener
	Logger    *log.Logger
	Rand      *rand.Rand
}

// overlay is a screen drawn on top of the session state.
type overlay int

const (
	overlayNone        overlay = iota
	overlayLeaderboard         // Top scores, opened from the title screen
	overlayShutdown            // Server is going away
)

// Runner drives a single connection. It owns its session and is not safe for
// concurrent use.
type Runner struct {
	session  *game.Session
	reporter *leaderboard.Reporter
	board    Board
	boardLen int
	lobby    *lobby.Lobby
	handle   *lobby.Handle
	log      *log.Logger
	username string

	canvas    *draw.Canvas
	cw        *draw.ChunkWriter
	writer    io.Writer
	stream    *input.Stream
	debounce  *input.Debouncer
	termSize  draw.TermSizeFunc
	lastInput time.Time

	running      bool
	delta        time.Duration
	overlay      overlay
	entries      []leaderboard.Entry
	banner       []string
	bannerLeft   time.Duration
	shutdownLeft time.Duration
	inactive     bool

	// Previous frame, for full clears on screen changes.
	prevState   game.State
	prevOverlay overlay
	wasInactive bool
}

// NewRunner creates a runner reading keys from r and drawing to w. It joins
// the lobby when one is configured.
func NewRunner(r *bufio.Reader, w io.Writer, opts Options) (*Runner, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	termSize := opts.TermSize
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	username := opts.Username
	if username == "" {
		username = "anonymous"
	}

	sessOpts, err := SessionOptions(opts.Settings)
	if err != nil {
		return nil, err
	}
	sessOpts.Rand = opts.Rand
	sessOpts.Logger = logger
	sessOpts.Listeners = opts.Listeners

	rn := &Runner{
		log:       logger,
		username:  username,
		writer:    w,
		stream:    input.StartStream(r),
		debounce:  input.NewDebouncer(tuning.MenuDebounce),
		termSize:  termSize,
		lastInput: time.Now(),
		running:   true,
		boardLen:  opts.Settings.Leaderboard.Size,
	}
	if opts.Store != nil {
		rn.reporter = leaderboard.NewReporter(opts.Store, username, logger)
		rn.board = opts.Store
		sessOpts.Reporter = rn.reporter
	}
	if rn.boardLen <= 0 {
		rn.boardLen = tuning.LeaderboardSize
	}
	rn.session = game.NewSession(sessOpts)

	termWidth, termHeight, _ := termSize()
	width, height, offCol, offRow := draw.FitArea(termWidth, termHeight, tuning.MaxTermWidth, tuning.MaxTermHeight)
	rn.canvas = draw.NewCanvas(width, height, sessOpts.Field.Width, sessOpts.Field.Height)
	rn.canvas.SetOffset(offCol, offRow)
	rn.cw = draw.NewChunkWriter(w, offCol, offRow)

	if opts.Lobby != nil {
		rn.lobby = opts.Lobby
		rn.handle = opts.Lobby.Join(username)
	}
	return rn, nil
}

// Session returns the runner's game session.
func (r *Runner) Session() *game.Session { return r.session }

// Run executes the frame loop until the player quits, the input closes, the
// player idles out, the server shuts down or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	draw.HideCursor(r.writer)
	defer draw.ShowCursor(r.writer)
	draw.ClearScreen(r.writer)
	defer r.leave()

	ticker := time.NewTicker(tuning.ClientTargetFrameTime)
	defer ticker.Stop()

	lastTime := time.Now()
	for r.running {
		frameStart := time.Now()
		r.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		r.processNotices()
		in := r.processInput(frameStart)
		r.updateScreen()
		r.update(in)
		r.processEvents(ctx)

		if err := r.drawFrame(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			r.running = false
		case <-ticker.C:
		}
	}

	draw.ClearScreen(r.writer)
	r.log.Info("Session ended", "user", r.username, "score", r.session.Score(), "level", r.session.Level())
	return nil
}

func (r *Runner) leave() {
	if r.lobby != nil && r.handle != nil {
		r.lobby.Leave(r.handle.ID)
		r.handle = nil
	}
}

// processInput reads the pressed keys and tracks inactivity.
func (r *Runner) processInput(now time.Time) input.Intent {
	keys := input.ReadKeys(r.stream, now)
	if r.stream.Closed() {
		r.running = false
	}

	idle := now.Sub(r.lastInput).Seconds()
	switch {
	case len(keys.Pressed) > 0:
		r.lastInput = now
		r.inactive = false
	case idle > tuning.InactivityDisconnectUser:
		r.log.Info("Disconnecting idle player", "user", r.username)
		r.running = false
	case idle > tuning.InactivityWarnUser:
		r.inactive = true
	}

	in := r.debounce.Filter(keys.Intent(), now)
	if in.Quit {
		r.running = false
	}
	return in
}

// processNotices handles lobby notices without blocking.
func (r *Runner) processNotices() {
	if r.handle == nil {
		return
	}
	for {
		select {
		case n, ok := <-r.handle.Notices():
			if !ok {
				r.running = false
				return
			}
			if n == lobby.NoticeShutdown && r.overlay != overlayShutdown {
				r.overlay = overlayShutdown
				r.shutdownLeft = time.Duration(tuning.ShutdownDisplaySeconds * float64(time.Second))
				if r.session.State() == game.StatePlaying {
					_ = r.session.Pause()
				}
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes, clamped to the maximum render area.
func (r *Runner) updateScreen() {
	termWidth, termHeight, err := r.termSize()
	if err != nil {
		return
	}
	width, height, offCol, offRow := draw.FitArea(termWidth, termHeight, tuning.MaxTermWidth, tuning.MaxTermHeight)
	if width != r.canvas.TerminalWidth() || height != r.canvas.TerminalHeight() ||
		offCol != r.canvas.OffsetCol() || offRow != r.canvas.OffsetRow() {
		r.cw.WriteString("\033[H\033[2J")
		r.canvas.ForceRedraw()
	}
	r.canvas.Resize(width, height)
	r.canvas.SetOffset(offCol, offRow)
	r.cw.SetOffset(offCol, offRow)
}

// update applies the intent to the active overlay or the session.
func (r *Runner) update(in input.Intent) {
	if r.bannerLeft > 0 {
		r.bannerLeft -= r.delta
	}

	switch r.overlay {
	case overlayShutdown:
		r.shutdownLeft -= r.delta
		if r.shutdownLeft <= 0 {
			r.running = false
		}
		return
	case overlayLeaderboard:
		if in.Confirm || in.Cancel || in.Alt {
			r.overlay = overlayNone
		}
		return
	}

	if r.session.State() == game.StatePlaying {
		if r.session.HandleMenu(in) {
			return
		}
		r.session.Tick(r.delta, in)
		if r.session.State() != game.StatePlaying {
			// Keys held at the end of play must not act on the next screen.
			input.ResetKeys(r.stream)
		}
		return
	}
	if r.session.HandleMenu(in) && r.session.State() == game.StatePlaying {
		input.ResetKeys(r.stream)
	}
}

// processEvents reacts to the events emitted since the last frame.
func (r *Runner) processEvents(ctx context.Context) {
	for _, e := range r.session.DrainEvents() {
		switch e.Type {
		case event.LevelStarted:
			r.showBanner(tuning.LevelAnnounceTime, levelTitle(e.Level, e.Name), e.Description)
		case event.WaveStarted:
			if e.Wave > 1 {
				r.showBanner(tuning.WaveAnnounceTime, waveTitle(e.Wave))
			}
		case event.ShowLeaderboard:
			r.openLeaderboard(ctx)
		case event.GameOver, event.GameCompleted:
			kv := []any{"user", r.username, "outcome", e.Type, "score", e.Score, "level", e.Level}
			if r.reporter != nil {
				kv = append(kv, "session", r.reporter.SessionID())
			}
			r.log.Info("Game finished", kv...)
		}
	}
}

func (r *Runner) showBanner(d time.Duration, lines ...string) {
	r.banner = lines
	r.bannerLeft = d
}

func (r *Runner) openLeaderboard(ctx context.Context) {
	r.overlay = overlayLeaderboard
	r.entries = nil
	if r.board == nil {
		return
	}
	entries, err := r.board.Top(ctx, r.boardLen)
	if err != nil {
		r.log.Error("Failed to load leaderboard", "err", err)
		return
	}
	r.entries = entries
}
