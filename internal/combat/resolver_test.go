package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
)

func TestCalculateDamage(t *testing.T) {
	tests := []struct {
		name     string
		attack   int
		defense  int
		variance float64 // Float64 draw; 0.5 maps to a factor of exactly 1.0
		expected int
	}{
		{"even variance", 10, 5, 0.5, 5},
		{"low variance", 10, 5, 0.0, 4},
		{"high variance", 10, 5, 0.999, 5},
		{"large gap", 30, 5, 0.5, 25},
		{"defense exceeds attack", 2, 10, 0.5, 1},
		{"equal stats", 7, 7, 0.99, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := entity.Stats{Attack: tt.attack, Defense: 5}
			defender := entity.Stats{Defense: tt.defense}
			got := CalculateDamage(rng.Constant{Float: tt.variance}, attacker, defender)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCalculateDamage_AtLeastOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		attacker := entity.Stats{Attack: rapid.IntRange(0, 500).Draw(rt, "attack")}
		defender := entity.Stats{Defense: rapid.IntRange(0, 500).Draw(rt, "defense")}
		variance := rapid.Float64Range(0, 0.9999).Draw(rt, "variance")

		got := CalculateDamage(rng.Constant{Float: variance}, attacker, defender)
		assert.GreaterOrEqual(rt, got, 1, "every attack deals at least 1 damage")
		if attacker.Attack > defender.Defense {
			gap := attacker.Attack - defender.Defense
			assert.LessOrEqual(rt, got, max(1, gap*6/5), "damage bounded by 1.2x the gap")
		}
	})
}

func TestApplyDamage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHealth := rapid.IntRange(1, 500).Draw(rt, "maxHealth")
		stats := entity.Stats{
			Health:    rapid.IntRange(0, maxHealth).Draw(rt, "health"),
			MaxHealth: maxHealth,
		}
		damage := rapid.IntRange(0, 1000).Draw(rt, "damage")

		dead := ApplyDamage(&stats, damage)
		assert.GreaterOrEqual(rt, stats.Health, 0, "health never negative")
		assert.Equal(rt, stats.Health == 0, dead, "death signal iff health is zero")
	})
}

func TestExperienceGain(t *testing.T) {
	enemy := entity.NewEnemy("enemy_1", entity.EnemyOrc, entity.BehaviorAggressive, 3, entity.Position{})

	for seed := int64(1); seed <= 200; seed++ {
		xp := ExperienceGain(rng.New(seed), enemy)
		assert.GreaterOrEqual(t, xp, 45)
		assert.LessOrEqual(t, xp, 54)
	}

	assert.Equal(t, 45, ExperienceGain(rng.Constant{Int: 0}, enemy))
	assert.Equal(t, 54, ExperienceGain(rng.Constant{Int: 9}, enemy))
}

func TestCheckLevelUp(t *testing.T) {
	tests := []struct {
		experience int
		level      int
		expected   bool
	}{
		{100, 1, true},
		{99, 1, false},
		{199, 2, false},
		{200, 2, true},
		{0, 1, false},
	}

	for _, tt := range tests {
		got := CheckLevelUp(entity.Stats{Experience: tt.experience, Level: tt.level})
		if got != tt.expected {
			t.Errorf("CheckLevelUp(xp=%d, level=%d) = %v, want %v", tt.experience, tt.level, got, tt.expected)
		}
	}
}

func TestLevelUp(t *testing.T) {
	stats := InitialPlayerStats()
	stats.Experience = 100
	stats.Health = 40

	require.True(t, CheckLevelUp(stats))
	gains := LevelUp(rng.Constant{Int: 0}, &stats)

	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 0, stats.Experience)
	assert.Equal(t, stats.MaxHealth, stats.Health, "level up fully heals")
	assert.Equal(t, LevelUpGains{MaxHealth: 15, Attack: 2, Defense: 1}, gains)
	assert.Equal(t, 115, stats.MaxHealth)
	assert.Equal(t, 12, stats.Attack)
	assert.Equal(t, 6, stats.Defense)
}

func TestLevelUp_GainRanges(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		stats := InitialPlayerStats()
		stats.Experience = 100
		gains := LevelUp(rng.New(rapid.Int64Range(1, 1<<40).Draw(rt, "seed")), &stats)

		assert.GreaterOrEqual(rt, gains.MaxHealth, 15)
		assert.Less(rt, gains.MaxHealth, 25)
		assert.GreaterOrEqual(rt, gains.Attack, 2)
		assert.Less(rt, gains.Attack, 5)
		assert.GreaterOrEqual(rt, gains.Defense, 1)
		assert.Less(rt, gains.Defense, 3)
	})
}

func TestAwardExperience_SingleStep(t *testing.T) {
	stats := InitialPlayerStats()

	leveled := AwardExperience(rng.Constant{}, &stats, 350)

	assert.True(t, leveled)
	assert.Equal(t, 2, stats.Level, "only one level per award")
	assert.Equal(t, 250, stats.Experience, "surplus carries forward")
	assert.True(t, CheckLevelUp(stats), "still above the next threshold")

	assert.False(t, AwardExperience(rng.Constant{}, &entity.Stats{Level: 1}, 20))
}

func TestInitialPlayerStats(t *testing.T) {
	assert.Equal(t, entity.Stats{
		Health:    100,
		MaxHealth: 100,
		Attack:    10,
		Defense:   5,
		Level:     1,
	}, InitialPlayerStats())
}
