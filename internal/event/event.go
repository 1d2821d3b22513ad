// Package event defines the notifications the simulation emits for UI,
// persistence and metrics collaborators.
package event

// Type identifies the kind of event.
type Type int

const (
	LevelStarted      Type = iota // A level began; carries level number and name
	WaveStarted                   // A new enemy wave began
	EnemyDestroyed                // An enemy was killed by the player
	AsteroidDestroyed             // An asteroid was shot down
	PlayerHit                     // The player took damage
	LifeLost                      // The player lost a life
	PowerUpCollected              // A power-up was picked up
	LevelCompleted                // Level finished, waiting for the player to continue
	GameOver                      // No lives left
	GameCompleted                 // Final level finished
	ShowLeaderboard               // Title screen asked for the leaderboard
	Paused                        // Simulation paused
	Resumed                       // Simulation resumed
)

var typeNames = [...]string{
	LevelStarted:      "level_started",
	WaveStarted:       "wave_started",
	EnemyDestroyed:    "enemy_destroyed",
	AsteroidDestroyed: "asteroid_destroyed",
	PlayerHit:         "player_hit",
	LifeLost:          "life_lost",
	PowerUpCollected:  "powerup_collected",
	LevelCompleted:    "level_completed",
	GameOver:          "game_over",
	GameCompleted:     "game_completed",
	ShowLeaderboard:   "show_leaderboard",
	Paused:            "paused",
	Resumed:           "resumed",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Event is a single notification. Only the fields relevant to Type are set.
type Event struct {
	Type        Type
	Level       int
	Name        string // Level name, enemy class or power-up kind
	Description string
	Score       int // Session score after the event
	Points      int // Points awarded by the event
	Wave        int
	Damage      int
	X, Y        float64
}

// Listener receives events synchronously as they are emitted.
type Listener interface {
	OnEvent(e Event)
}

// Queue buffers events between drains.
type Queue struct {
	events []Event
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns all buffered events and empties the queue.
// The returned slice is owned by the caller.
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// Reset drops all buffered events.
func (q *Queue) Reset() {
	q.events = q.events[:0]
}
