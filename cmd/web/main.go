package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/tomz197/skyfighter/internal/config"
	"github.com/tomz197/skyfighter/internal/leaderboard"
	logs "github.com/tomz197/skyfighter/internal/logging"
)

//go:embed index.html
var htmlPage string

// Board is the leaderboard read by the API.
type Board interface {
	Top(ctx context.Context, n int) ([]leaderboard.Entry, error)
	Size() int
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
		logFile = logs.FilePath(settings.Log.Dir, "skyfighter-web", time.Now())
	}

	logger, closer, err := logs.New(settings.Log.Level, logFile, os.Stderr)
	if err != nil {
		log.Fatal("Failed to create logger", "err", err)
	}
	defer closer.Close()

	store, err := leaderboard.Open(settings.Leaderboard.Path, settings.Leaderboard.Size)
	if err != nil {
		logger.Fatal("Failed to open leaderboard", "path", settings.Leaderboard.Path, "err", err)
	}
	defer store.Close()

	addr := net.JoinHostPort(settings.Web.Host, settings.Web.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(settings.SSH.DisplayHost, settings.SSH.Port, store, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Starting web server", "addr", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "err", err)
	}
}

// newRouter serves the landing page and the leaderboard API.
func newRouter(sshHost, sshPort string, board Board, logger *log.Logger) *mux.Router {
	page := strings.NewReplacer("{{.SSHHost}}", sshHost, "{{.SSHPort}}", sshPort).Replace(htmlPage)

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, req *http.Request) {
		n := board.Size()
		if q := req.URL.Query().Get("limit"); q != "" {
			v, err := strconv.Atoi(q)
			if err != nil || v < 1 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			n = min(v, board.Size())
		}

		entries, err := board.Top(req.Context(), n)
		if err != nil {
			logger.Error("Failed to read leaderboard", "err", err)
			http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []leaderboard.Entry{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.Error("Failed to write leaderboard", "err", err)
		}
	}).Methods(http.MethodGet)

	return r
}
