package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// reportTimeout bounds a single score report.
const reportTimeout = 2 * time.Second

// Result describes how a finished game placed on the leaderboard.
type Result struct {
	Score     int
	Level     int
	Rank      int
	HighScore bool // The score entered the table
}

// Reporter records finished games of one player. Failures are logged and
// never returned to the caller.
type Reporter struct {
	store     *Store
	name      string
	sessionID uuid.UUID
	log       *log.Logger

	mu   sync.Mutex
	last Result
	has  bool
}

// NewReporter creates a reporter for the named player.
func NewReporter(store *Store, name string, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Reporter{
		store:     store,
		name:      name,
		sessionID: uuid.New(),
		log:       logger,
	}
}

// SessionID identifies the reporter's player session.
func (r *Reporter) SessionID() uuid.UUID { return r.sessionID }

// ReportScore records the final score of a game if it is a high score.
func (r *Reporter) ReportScore(score, levelReached int) {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	res := Result{Score: score, Level: levelReached}
	defer func() {
		r.mu.Lock()
		r.last, r.has = res, true
		r.mu.Unlock()
	}()

	high, err := r.store.IsHighScore(ctx, score)
	if err != nil {
		r.log.Error("leaderboard check failed", "user", r.name, "err", err)
		return
	}
	rank, err := r.store.Rank(ctx, score)
	if err != nil {
		r.log.Error("leaderboard rank failed", "user", r.name, "err", err)
		return
	}
	res.Rank = rank
	if !high {
		return
	}

	err = r.store.Add(ctx, Entry{
		SessionID: r.sessionID.String(),
		Name:      r.name,
		Score:     score,
		Level:     levelReached,
	})
	if err != nil {
		r.log.Error("leaderboard write failed", "user", r.name, "err", err)
		return
	}
	res.HighScore = true
	r.log.Info("new high score", "user", r.name, "score", score, "level", levelReached, "rank", rank)
}

// Last returns the result of the most recent report.
func (r *Reporter) Last() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.has
}
