// Package leaderboard persists the high-score table in SQLite.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tomz197/skyfighter/internal/tuning"
)

// Entry is one row of the high-score table.
type Entry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID string    `gorm:"size:36;index" json:"sessionId"`
	Name      string    `gorm:"size:32" json:"name"`
	Score     int       `gorm:"index" json:"score"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrInvalidEntry is returned for entries that cannot be stored.
var ErrInvalidEntry = errors.New("invalid leaderboard entry")

// Store is the high-score table. It keeps only the best Size entries and is
// safe for concurrent use.
type Store struct {
	db   *gorm.DB
	size int
}

// Open opens (or creates) the SQLite database at path. An empty path uses a
// private in-memory database.
func Open(path string, size int) (*Store, error) {
	if size <= 0 {
		size = tuning.LeaderboardSize
	}
	dsn := "file::memory:"
	if path != "" {
		// Concurrent SSH sessions share the file; wait for locks instead of failing.
		dsn = path + "?_pragma=busy_timeout(5000)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening leaderboard %q: %w", path, err)
	}

	if path == "" {
		// Each pooled connection would otherwise see its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrating leaderboard: %w", err)
	}
	return &Store{db: db, size: size}, nil
}

// Size returns the number of entries the table keeps.
func (s *Store) Size() int { return s.size }

// Close releases the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ranked orders entries best first; ties go to the older entry.
func ranked(db *gorm.DB) *gorm.DB {
	return db.Order("score DESC").Order("created_at ASC").Order("id ASC")
}

// Top returns up to n entries, best first. n <= 0 returns the whole table.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 || n > s.size {
		n = s.size
	}
	var entries []Entry
	if err := ranked(s.db.WithContext(ctx)).Limit(n).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}
	return entries, nil
}

// IsHighScore reports whether score would enter the table.
func (s *Store) IsHighScore(ctx context.Context, score int) (bool, error) {
	entries, err := s.Top(ctx, s.size)
	if err != nil {
		return false, err
	}
	if len(entries) < s.size {
		return true, nil
	}
	return score > entries[len(entries)-1].Score, nil
}

// Rank returns the 1-based position score would take in the table.
func (s *Store) Rank(ctx context.Context, score int) (int, error) {
	entries, err := s.Top(ctx, s.size)
	if err != nil {
		return 0, err
	}
	for i, e := range entries {
		if score >= e.Score {
			return i + 1, nil
		}
	}
	return len(entries) + 1, nil
}

// Add stores an entry and prunes everything beyond the table size.
func (s *Store) Add(ctx context.Context, e Entry) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Score < 0 || e.Level < 0 {
		return fmt.Errorf("%w: score %d level %d", ErrInvalidEntry, e.Score, e.Level)
	}
	if e.Name == "" {
		e.Name = "anonymous"
	}
	if len(e.Name) > tuning.MaxUsernameLength {
		e.Name = e.Name[:tuning.MaxUsernameLength]
	}
	e.ID = 0
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&e).Error; err != nil {
			return fmt.Errorf("adding leaderboard entry: %w", err)
		}
		var keep []uint
		if err := ranked(tx.Model(&Entry{})).Limit(s.size).Pluck("id", &keep).Error; err != nil {
			return fmt.Errorf("ranking leaderboard: %w", err)
		}
		if err := tx.Where("id NOT IN ?", keep).Delete(&Entry{}).Error; err != nil {
			return fmt.Errorf("pruning leaderboard: %w", err)
		}
		return nil
	})
}
