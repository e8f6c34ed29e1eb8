package game

import (
	"time"

	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	Dungeon world.Params

	PlayerMoveCooldown time.Duration // Minimum gap between accepted player moves
	EnemyMoveCooldown  time.Duration // Minimum gap between moves of one enemy
	EnemyTurnDelay     time.Duration // Pause before the enemy strikes back
}

// DefaultConfig returns the standard game tuning.
func DefaultConfig() Config {
	return Config{
		Dungeon:            world.DefaultParams(),
		PlayerMoveCooldown: 200 * time.Millisecond,
		EnemyMoveCooldown:  time.Second,
		EnemyTurnDelay:     time.Second,
	}
}
