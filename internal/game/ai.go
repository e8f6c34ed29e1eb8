package game

import (
	"time"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

const (
	chaseRange   = 5
	retreatRange = 2
	wanderChance = 0.3
)

// wanderSteps are the candidate steps of a wandering enemy: up, down, left, right.
var wanderSteps = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// enemyAI moves enemies around outside of combat.
type enemyAI struct {
	src      rng.Source
	cooldown time.Duration
	lastMove map[string]time.Time
}

func newEnemyAI(src rng.Source, cooldown time.Duration) *enemyAI {
	return &enemyAI{
		src:      src,
		cooldown: cooldown,
		lastMove: make(map[string]time.Time),
	}
}

// reset forgets all cooldowns. Called when a new floor is entered.
func (ai *enemyAI) reset() {
	clear(ai.lastMove)
}

// step lets every enemy whose cooldown has elapsed act once, in spawn order.
// It returns how many enemies moved.
func (ai *enemyAI) step(now time.Time, state *world.State, player entity.Position) int {
	moved := 0
	for _, id := range state.EnemyIDs() {
		enemy, ok := state.Enemy(id)
		if !ok || !enemy.IsAlive() {
			continue
		}
		if last, ok := ai.lastMove[id]; ok && now.Sub(last) < ai.cooldown {
			continue
		}

		next, ok := ai.decide(*enemy, player)
		if !ok || !canEnter(state, next, player) {
			continue
		}
		state.MoveEnemy(id, next)
		ai.lastMove[id] = now
		moved++
	}
	return moved
}

// decide returns where an enemy wants to go, if anywhere.
func (ai *enemyAI) decide(enemy entity.Enemy, player entity.Position) (entity.Position, bool) {
	distance := enemy.Position.Manhattan(player)

	switch enemy.Behavior {
	case entity.BehaviorAggressive:
		if distance <= chaseRange {
			return stepRelative(enemy.Position, player, 1)
		}
	case entity.BehaviorDefensive:
		if distance <= retreatRange {
			return stepRelative(enemy.Position, player, -1)
		}
	case entity.BehaviorWandering:
		if rng.Chance(ai.src, wanderChance) {
			d := wanderSteps[ai.src.Intn(len(wanderSteps))]
			return enemy.Position.Add(d[0], d[1]), true
		}
	}
	return entity.Position{}, false
}

// stepRelative takes one step toward target (dir 1) or away from it (dir -1),
// resolving the x axis before the y axis.
func stepRelative(from, target entity.Position, dir int) (entity.Position, bool) {
	switch {
	case target.X > from.X:
		return from.Add(dir, 0), true
	case target.X < from.X:
		return from.Add(-dir, 0), true
	case target.Y > from.Y:
		return from.Add(0, dir), true
	case target.Y < from.Y:
		return from.Add(0, -dir), true
	}
	return from, false
}

// canEnter reports whether an enemy may step onto pos.
func canEnter(state *world.State, pos, player entity.Position) bool {
	if pos == player || !state.IsWalkable(pos) {
		return false
	}
	_, occupied := state.EnemyAt(pos)
	return !occupied
}
