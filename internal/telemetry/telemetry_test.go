package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/tomz197/skyfighter/internal/event"
)

// countingMeter records Int64Counter and Int64UpDownCounter totals by
// instrument name; every other instrument is a no-op.
type countingMeter struct {
	noop.Meter
	mu     sync.Mutex
	totals map[string]int64
}

func newCountingMeter() *countingMeter {
	return &countingMeter{totals: make(map[string]int64)}
}

func (m *countingMeter) add(name string, v int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals[name] += v
}

func (m *countingMeter) total(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals[name]
}

func (m *countingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return &countingCounter{name: name, m: m}, nil
}

func (m *countingMeter) Int64UpDownCounter(name string, _ ...metric.Int64UpDownCounterOption) (metric.Int64UpDownCounter, error) {
	return &countingUpDown{name: name, m: m}, nil
}

type countingCounter struct {
	noop.Int64Counter
	name string
	m    *countingMeter
}

func (c *countingCounter) Add(_ context.Context, v int64, _ ...metric.AddOption) { c.m.add(c.name, v) }

type countingUpDown struct {
	noop.Int64UpDownCounter
	name string
	m    *countingMeter
}

func (c *countingUpDown) Add(_ context.Context, v int64, _ ...metric.AddOption) { c.m.add(c.name, v) }

func TestMetrics_OnEvent(t *testing.T) {
	meter := newCountingMeter()
	m, err := New(meter)
	require.NoError(t, err)

	for _, e := range []event.Event{
		{Type: event.EnemyDestroyed, Name: "fighter"},
		{Type: event.EnemyDestroyed, Name: "scout"},
		{Type: event.AsteroidDestroyed, Name: "large"},
		{Type: event.PowerUpCollected, Name: "power"},
		{Type: event.LifeLost},
		{Type: event.LevelCompleted, Level: 1},
		{Type: event.GameCompleted, Level: 10, Score: 900},
		{Type: event.GameOver, Level: 3, Score: 120},
		{Type: event.Paused},
	} {
		m.OnEvent(e)
	}

	assert.Equal(t, int64(2), meter.total("skyfighter.enemies.destroyed"))
	assert.Equal(t, int64(1), meter.total("skyfighter.asteroids.destroyed"))
	assert.Equal(t, int64(1), meter.total("skyfighter.powerups.collected"))
	assert.Equal(t, int64(1), meter.total("skyfighter.lives.lost"))
	assert.Equal(t, int64(2), meter.total("skyfighter.levels.completed"))
	assert.Equal(t, int64(2), meter.total("skyfighter.games.finished"))
}

func TestMetrics_Sessions(t *testing.T) {
	meter := newCountingMeter()
	m, err := New(meter)
	require.NoError(t, err)

	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()
	assert.Equal(t, int64(1), meter.total("skyfighter.sessions.active"))
}

func TestNewGlobal(t *testing.T) {
	m, err := NewGlobal()
	require.NoError(t, err)
	m.OnEvent(event.Event{Type: event.GameOver, Score: 10})
}
