package object

// World holds every live entity of a session. Entities spawned during an
// update are queued and only become visible after FlushSpawned.
type World struct {
	Field        Playfield
	Player       *Player
	Enemies      []*Enemy
	Bullets      []*Bullet
	EnemyBullets []*EnemyBullet
	PowerUps     []*PowerUp
	Asteroids    []*Asteroid
	Explosions   []*Explosion

	pending spawnQueue // Entities to add after the current update cycle
}

type spawnQueue struct {
	bullets      []*Bullet
	enemyBullets []*EnemyBullet
	enemies      []*Enemy
	asteroids    []*Asteroid
	powerUps     []*PowerUp
	explosions   []*Explosion
}

var _ Spawner = (*World)(nil)

// NewWorld creates an empty world for the given playfield.
func NewWorld(field Playfield) *World {
	return &World{Field: field}
}

// SpawnBullet queues a player bullet.
func (w *World) SpawnBullet(b *Bullet) { w.pending.bullets = append(w.pending.bullets, b) }

// SpawnEnemyBullet queues an enemy bullet.
func (w *World) SpawnEnemyBullet(b *EnemyBullet) {
	w.pending.enemyBullets = append(w.pending.enemyBullets, b)
}

// SpawnEnemy queues an enemy.
func (w *World) SpawnEnemy(e *Enemy) { w.pending.enemies = append(w.pending.enemies, e) }

// SpawnAsteroid queues an asteroid.
func (w *World) SpawnAsteroid(a *Asteroid) { w.pending.asteroids = append(w.pending.asteroids, a) }

// SpawnPowerUp queues a power-up.
func (w *World) SpawnPowerUp(p *PowerUp) { w.pending.powerUps = append(w.pending.powerUps, p) }

// SpawnExplosion queues an explosion.
func (w *World) SpawnExplosion(x *Explosion) {
	w.pending.explosions = append(w.pending.explosions, x)
}

// FlushSpawned adds all queued entities to the world and clears the queue.
func (w *World) FlushSpawned() {
	q := &w.pending
	w.Bullets = appendAndReset(w.Bullets, &q.bullets)
	w.EnemyBullets = appendAndReset(w.EnemyBullets, &q.enemyBullets)
	w.Enemies = appendAndReset(w.Enemies, &q.enemies)
	w.Asteroids = appendAndReset(w.Asteroids, &q.asteroids)
	w.PowerUps = appendAndReset(w.PowerUps, &q.powerUps)
	w.Explosions = appendAndReset(w.Explosions, &q.explosions)
}

func appendAndReset[T any](dst []T, queue *[]T) []T {
	dst = append(dst, (*queue)...)
	clear(*queue)
	*queue = (*queue)[:0]
	return dst
}

// Compact removes destroyed entities from every collection.
func (w *World) Compact() {
	w.Enemies = Compact(w.Enemies)
	w.Bullets = Compact(w.Bullets)
	w.EnemyBullets = Compact(w.EnemyBullets)
	w.PowerUps = Compact(w.PowerUps)
	w.Asteroids = Compact(w.Asteroids)
	w.Explosions = Compact(w.Explosions)
}

// Clear drops every transient entity and any queued spawn. The player is kept.
func (w *World) Clear() {
	w.Enemies = nil
	w.Bullets = nil
	w.EnemyBullets = nil
	w.PowerUps = nil
	w.Asteroids = nil
	w.Explosions = nil
	w.pending = spawnQueue{}
}

// ActiveEnemies returns the number of enemies that are alive, including
// those queued this tick.
func (w *World) ActiveEnemies() int {
	n := len(w.pending.enemies)
	for _, e := range w.Enemies {
		if !e.IsDestroyed() {
			n++
		}
	}
	return n
}
