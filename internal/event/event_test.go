package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	var q Queue
	assert.Nil(t, q.Drain())

	q.Push(Event{Type: LevelStarted, Level: 1, Name: "Basic Training"})
	q.Push(Event{Type: WaveStarted, Wave: 1})
	assert.Equal(t, 2, q.Len())

	got := q.Drain()
	assert.Len(t, got, 2)
	assert.Equal(t, LevelStarted, got[0].Type)
	assert.Equal(t, 0, q.Len())

	q.Push(Event{Type: GameOver})
	assert.Equal(t, WaveStarted, got[1].Type, "drained slice is not reused")

	q.Reset()
	assert.Equal(t, 0, q.Len())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "game_over", GameOver.String())
	assert.Equal(t, "level_started", LevelStarted.String())
	assert.Equal(t, "unknown", Type(99).String())
}
