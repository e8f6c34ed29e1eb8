package entity

// EnemyType identifies the kind of monster.
type EnemyType string

const (
	EnemyGoblin   EnemyType = "goblin"
	EnemyOrc      EnemyType = "orc"
	EnemySkeleton EnemyType = "skeleton"
	EnemyTroll    EnemyType = "troll"
)

// EnemyTypes lists every enemy type in sampling order.
var EnemyTypes = []EnemyType{EnemyGoblin, EnemyOrc, EnemySkeleton, EnemyTroll}

// String returns the type identifier.
func (t EnemyType) String() string { return string(t) }

// Behavior is an enemy's movement policy outside combat.
type Behavior string

const (
	// BehaviorAggressive chases the player when close.
	BehaviorAggressive Behavior = "aggressive"
	// BehaviorDefensive backs away from the player when close.
	BehaviorDefensive Behavior = "defensive"
	// BehaviorWandering takes occasional random steps.
	BehaviorWandering Behavior = "wandering"
)

// Behaviors lists every behavior in sampling order.
var Behaviors = []Behavior{BehaviorAggressive, BehaviorDefensive, BehaviorWandering}

// Enemy is a hostile creature in the dungeon.
type Enemy struct {
	ID       string
	Position Position
	Stats    Stats
	Type     EnemyType
	Behavior Behavior
}

// EnemyStats returns the stat block for an enemy of the given level.
func EnemyStats(level int) Stats {
	return Stats{
		Health:     20 + level*10,
		MaxHealth:  20 + level*10,
		Attack:     5 + level*3,
		Defense:    2 + level,
		Experience: level * 10,
		Level:      level,
	}
}

// NewEnemy creates an enemy of the given type and level at pos.
func NewEnemy(id string, enemyType EnemyType, behavior Behavior, level int, pos Position) Enemy {
	return Enemy{
		ID:       id,
		Position: pos,
		Stats:    EnemyStats(level),
		Type:     enemyType,
		Behavior: behavior,
	}
}

// IsAlive returns true if the enemy has health remaining.
func (e *Enemy) IsAlive() bool { return e.Stats.IsAlive() }
