// Package telemetry exports gameplay metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tomz197/skyfighter/internal/event"
)

const instrumentationName = "github.com/tomz197/skyfighter"

// Metrics turns session events into counters. It is safe for concurrent use
// by many sessions.
type Metrics struct {
	enemies   metric.Int64Counter
	asteroids metric.Int64Counter
	powerUps  metric.Int64Counter
	livesLost metric.Int64Counter
	levels    metric.Int64Counter
	games     metric.Int64Counter
	score     metric.Int64Histogram
	sessions  metric.Int64UpDownCounter
}

var _ event.Listener = (*Metrics)(nil)

// NewGlobal creates Metrics on the global meter provider (no-op unless one
// has been installed).
func NewGlobal() (*Metrics, error) {
	return New(otel.Meter(instrumentationName))
}

// New creates Metrics on the given meter.
func New(m metric.Meter) (*Metrics, error) {
	var (
		mt  Metrics
		err error
	)

	if mt.enemies, err = m.Int64Counter("skyfighter.enemies.destroyed",
		metric.WithDescription("Enemies destroyed by players")); err != nil {
		return nil, fmt.Errorf("creating enemies counter: %w", err)
	}
	if mt.asteroids, err = m.Int64Counter("skyfighter.asteroids.destroyed",
		metric.WithDescription("Asteroids shot down")); err != nil {
		return nil, fmt.Errorf("creating asteroids counter: %w", err)
	}
	if mt.powerUps, err = m.Int64Counter("skyfighter.powerups.collected",
		metric.WithDescription("Power-ups picked up")); err != nil {
		return nil, fmt.Errorf("creating power-ups counter: %w", err)
	}
	if mt.livesLost, err = m.Int64Counter("skyfighter.lives.lost",
		metric.WithDescription("Lives lost")); err != nil {
		return nil, fmt.Errorf("creating lives counter: %w", err)
	}
	if mt.levels, err = m.Int64Counter("skyfighter.levels.completed",
		metric.WithDescription("Levels completed")); err != nil {
		return nil, fmt.Errorf("creating levels counter: %w", err)
	}
	if mt.games, err = m.Int64Counter("skyfighter.games.finished",
		metric.WithDescription("Games that ended in game over or completion")); err != nil {
		return nil, fmt.Errorf("creating games counter: %w", err)
	}
	if mt.score, err = m.Int64Histogram("skyfighter.games.score",
		metric.WithDescription("Final score of finished games")); err != nil {
		return nil, fmt.Errorf("creating score histogram: %w", err)
	}
	if mt.sessions, err = m.Int64UpDownCounter("skyfighter.sessions.active",
		metric.WithDescription("Connected player sessions")); err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}
	return &mt, nil
}

// OnEvent records a session event.
func (m *Metrics) OnEvent(e event.Event) {
	ctx := context.Background()
	switch e.Type {
	case event.EnemyDestroyed:
		m.enemies.Add(ctx, 1, metric.WithAttributes(attribute.String("class", e.Name)))
	case event.AsteroidDestroyed:
		m.asteroids.Add(ctx, 1, metric.WithAttributes(attribute.String("size", e.Name)))
	case event.PowerUpCollected:
		m.powerUps.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", e.Name)))
	case event.LifeLost:
		m.livesLost.Add(ctx, 1)
	case event.LevelCompleted:
		m.levels.Add(ctx, 1, metric.WithAttributes(attribute.Int("level", e.Level)))
	case event.GameOver, event.GameCompleted:
		outcome := attribute.String("outcome", e.Type.String())
		m.games.Add(ctx, 1, metric.WithAttributes(outcome))
		m.score.Record(ctx, int64(e.Score), metric.WithAttributes(outcome))
		if e.Type == event.GameCompleted {
			m.levels.Add(ctx, 1, metric.WithAttributes(attribute.Int("level", e.Level)))
		}
	}
}

// SessionStarted counts a connected player.
func (m *Metrics) SessionStarted() {
	m.sessions.Add(context.Background(), 1)
}

// SessionEnded counts a disconnected player.
func (m *Metrics) SessionEnded() {
	m.sessions.Add(context.Background(), -1)
}
