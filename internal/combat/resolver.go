// Package combat provides the damage, experience and levelling rules.
package combat

import (
	"math"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
)

const (
	// Each hit is scaled by a factor in [0.8, 1.2).
	minVariance  = 0.8
	varianceSpan = 0.4

	xpRewardPerLevel    = 15
	xpRewardJitter      = 10
	xpThresholdPerLevel = 100
)

// LevelUpGains records what a single level-up step granted.
type LevelUpGains struct {
	MaxHealth int
	Attack    int
	Defense   int
}

// InitialPlayerStats returns a fresh adventurer's stat block.
func InitialPlayerStats() entity.Stats {
	return entity.Stats{
		Health:     100,
		MaxHealth:  100,
		Attack:     10,
		Defense:    5,
		Experience: 0,
		Level:      1,
	}
}

// Variance draws a damage scaling factor in [0.8, 1.2).
func Variance(src rng.Source) float64 {
	return minVariance + src.Float64()*varianceSpan
}

// CalculateDamage computes the damage attacker deals to defender.
// Every attack deals at least 1 damage.
func CalculateDamage(src rng.Source, attacker, defender entity.Stats) int {
	raw := float64(attacker.Attack-defender.Defense) * Variance(src)
	damage := int(math.Floor(raw))
	if damage < 1 {
		damage = 1
	}
	return damage
}

// ApplyDamage lowers target health, never below zero.
// Returns true if the target died.
func ApplyDamage(target *entity.Stats, damage int) bool {
	target.Health -= damage
	if target.Health < 0 {
		target.Health = 0
	}
	return target.Health == 0
}

// ExperienceGain returns the XP awarded for defeating enemy.
func ExperienceGain(src rng.Source, enemy entity.Enemy) int {
	return enemy.Stats.Level*xpRewardPerLevel + src.Intn(xpRewardJitter)
}

// LevelThreshold returns the experience needed to leave the given level.
func LevelThreshold(level int) int {
	return level * xpThresholdPerLevel
}

// CheckLevelUp returns true if stats hold enough experience to level up.
func CheckLevelUp(stats entity.Stats) bool {
	return stats.Experience >= LevelThreshold(stats.Level)
}

// LevelUp performs exactly one level-up step. Surplus experience carries
// over, but a second threshold crossing waits for the next award.
func LevelUp(src rng.Source, stats *entity.Stats) LevelUpGains {
	stats.Experience -= LevelThreshold(stats.Level)
	stats.Level++

	gains := LevelUpGains{
		MaxHealth: 15 + src.Intn(10),
		Attack:    2 + src.Intn(3),
		Defense:   1 + src.Intn(2),
	}
	stats.MaxHealth += gains.MaxHealth
	stats.Health = stats.MaxHealth
	stats.Attack += gains.Attack
	stats.Defense += gains.Defense
	return gains
}

// AwardExperience adds xp and levels up at most once.
// Returns true if a level was gained.
func AwardExperience(src rng.Source, stats *entity.Stats, xp int) bool {
	stats.Experience += xp
	if !CheckLevelUp(*stats) {
		return false
	}
	LevelUp(src, stats)
	return true
}
