// Package lobby tracks the player sessions connected to a server and
// coordinates graceful shutdown with them.
package lobby

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Notice is a message the lobby sends to a connected session.
type Notice int

const (
	NoticeShutdown Notice = iota // The server is going away; finish up and leave
)

const shutdownPollInterval = 200 * time.Millisecond

// Tracker is told when sessions come and go.
type Tracker interface {
	SessionStarted()
	SessionEnded()
}

// Handle is a session's membership in the lobby.
type Handle struct {
	ID       string
	Username string
	Joined   time.Time
	notices  chan Notice
}

// Notices delivers lobby notices. It is closed when the session leaves.
func (h *Handle) Notices() <-chan Notice {
	return h.notices
}

// Lobby is the registry of connected sessions. It is safe for concurrent use.
type Lobby struct {
	mu      sync.RWMutex
	clients map[string]*Handle
	closing bool
	tracker Tracker
	logger  *log.Logger
}

// New creates an empty lobby. tracker may be nil.
func New(logger *log.Logger, tracker Tracker) *Lobby {
	if logger == nil {
		logger = log.Default()
	}
	return &Lobby{
		clients: make(map[string]*Handle),
		tracker: tracker,
		logger:  logger,
	}
}

// Join registers a session and returns its handle. Sessions that join during
// shutdown receive the shutdown notice immediately.
func (l *Lobby) Join(username string) *Handle {
	h := &Handle{
		ID:       uuid.NewString(),
		Username: username,
		Joined:   time.Now(),
		notices:  make(chan Notice, 4),
	}

	l.mu.Lock()
	l.clients[h.ID] = h
	if l.closing {
		h.notices <- NoticeShutdown
	}
	count := len(l.clients)
	l.mu.Unlock()

	if l.tracker != nil {
		l.tracker.SessionStarted()
	}
	l.logger.Info("Player joined", "id", h.ID, "user", username, "players", count)
	return h
}

// Leave unregisters a session. Unknown or already removed ids are ignored.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	h, ok := l.clients[id]
	if ok {
		close(h.notices)
		delete(l.clients, id)
	}
	count := len(l.clients)
	l.mu.Unlock()

	if !ok {
		return
	}
	if l.tracker != nil {
		l.tracker.SessionEnded()
	}
	l.logger.Info("Player left", "id", id, "user", h.Username,
		"played", time.Since(h.Joined).Round(time.Second), "players", count)
}

// Count returns the number of connected sessions.
func (l *Lobby) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// Shutdown notifies every session that the server is going away and waits
// until they have all left or the timeout expires. It reports whether the
// lobby emptied in time.
func (l *Lobby) Shutdown(timeout time.Duration) bool {
	l.mu.Lock()
	l.closing = true
	for _, h := range l.clients {
		select {
		case h.notices <- NoticeShutdown:
		default:
		}
	}
	l.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(shutdownPollInterval)
	defer ticker.Stop()

	for {
		if l.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			l.logger.Warn("Shutdown timed out", "remaining", l.Count())
			return false
		case <-ticker.C:
		}
	}
}
