// Package tuning centralizes all tunable game parameters.
package tuning

import "time"

// Simulation timing. Speeds are expressed in pixels per ReferenceFrame and
// scaled by the real tick delta.
const (
	ReferenceFrame = time.Second / 60
	MaxTickDelta   = 100 * time.Millisecond // Longer stalls are clamped
)

// Playfield defaults (logical pixels).
const (
	PlayfieldWidth  = 800
	PlayfieldHeight = 600
)

// Player
const (
	PlayerWidth       = 40
	PlayerHeight      = 40
	PlayerSpeed       = 6.0
	PlayerHealth      = 200
	PlayerBottomGap   = 20 // Distance between ship and bottom edge at spawn
	InitialLives      = 8
	InitialPowerLevel = 1
)

// Auto-fire
const (
	ShotCooldown     = 150 * time.Millisecond
	ShotCooldownStep = 15 * time.Millisecond // Per power level above 1
	MinShotCooldown  = 50 * time.Millisecond
	BulletWidth      = 4
	BulletHeight     = 18
	BulletSpeed      = 10.0
	BulletDamage     = 20
	BulletDamageStep = 10
	TwinOffset       = 5.0 // Power level 2
	SpreadOffset     = 8.0 // Power level 3+
	SpreadDrop       = 5.0 // Side bullets start lower than the center one
	BulletColor      = "#ffff00"
)

// Special shot
const (
	SpecialCooldown    = 2000 * time.Millisecond
	SpecialWidth       = 5
	SpecialHeight      = 25
	SpecialSpeed       = 15.0
	SpecialDamage      = 40
	SpecialDamageStep  = 15
	SpecialSpreadStep  = 8.0
	MaxSpecialBullets  = 8
	SpecialBulletColor = "#00ffff"
)

// Enemies
const (
	EnemyBulletWidth    = 4
	EnemyBulletHeight   = 8
	EnemyBulletSpeed    = 4.0
	EnemyBulletDamage   = 15
	EnemyBulletColor    = "#ff4444"
	HealthPerLevel      = 5  // Added to every class per level above 1
	EnemyCullMargin     = 50 // Enemies further than this outside the playfield are removed
	BossHealthFactor    = 4
	FormationSpacing    = 50.0
	FormationRadius     = 80.0
	DefaultBulletDamage = 15 // Fallback when a bullet carries no damage
)

// Drops
const (
	DropChance   = 0.25
	HealthShare  = 0.3
	HealAmount   = 50
	PowerUpSize  = 20
	PowerUpSpeed = 2.0
)

// Explosions
const (
	ExplosionLife         = 10 * ReferenceFrame
	AsteroidExplosionLife = 30 * ReferenceFrame
)

// Asteroids
const (
	AsteroidSpawnChance    = 0.005 // Per reference frame
	AsteroidDiagonalChance = 0.5
	AsteroidMaxSpin        = 0.01 // Radians per reference frame, either way
)

// Levels
const (
	LastLevel          = 10
	DefaultKills       = 20
	DefaultWaves       = 3
	LevelAnnounceTime  = 3 * time.Second
	WaveAnnounceTime   = 1500 * time.Millisecond
	DefaultLevelLength = 60 * time.Second
)

// Menu input
const (
	MenuDebounce  = 300 * time.Millisecond
	StickDeadzone = 0.1
	StickScale    = 0.8
)

// Leaderboard
const (
	LeaderboardSize = 10
)

// Terminal rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 160
	MaxTermHeight         = 50
	MaxUsernameLength     = 16
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
