package world

import (
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
)

const (
	minEnemiesPerRoom = 1
	maxEnemiesPerRoom = 3
	maxItemsPerRoom   = 2
	maxEnemyLevel     = 5
)

// populateRoom spawns 1-3 enemies and 0-2 items at random spots in the room.
func (g *Generator) populateRoom(room *Room) {
	enemyCount := minEnemiesPerRoom + g.src.Intn(maxEnemiesPerRoom-minEnemiesPerRoom+1)
	for i := 0; i < enemyCount; i++ {
		room.Enemies = append(room.Enemies, g.spawnEnemy(*room))
	}

	itemCount := g.src.Intn(maxItemsPerRoom + 1)
	for i := 0; i < itemCount; i++ {
		it := g.items.Random(g.src)
		pos := room.RandomPoint(g.src)
		it.Position = &pos
		room.Items = append(room.Items, it)
	}
}

// spawnEnemy creates an enemy of random level, type and behavior inside room.
func (g *Generator) spawnEnemy(room Room) entity.Enemy {
	pos := room.RandomPoint(g.src)
	level := 1 + g.src.Intn(maxEnemyLevel)
	enemyType := rng.Pick(g.src, entity.EnemyTypes)
	behavior := rng.Pick(g.src, entity.Behaviors)
	return entity.NewEnemy(g.items.NextID("enemy"), enemyType, behavior, level, pos)
}
