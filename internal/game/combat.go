package game

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// fleeChance is the probability that running away succeeds.
const fleeChance = 0.7

// CombatPhase represents the current phase of combat.
type CombatPhase int

const (
	// PhaseInactive - no combat session
	PhaseInactive CombatPhase = iota
	// PhasePlayerTurn - waiting for the player to attack or flee
	PhasePlayerTurn
	// PhaseEnemyTurn - the enemy strikes once its delay elapses
	PhaseEnemyTurn
	// PhaseVictory - the enemy was defeated
	PhaseVictory
	// PhaseDefeat - the player was defeated
	PhaseDefeat
	// PhaseFled - the player ran away
	PhaseFled
)

// String returns a human-readable phase name.
func (p CombatPhase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Resolved reports whether the phase is a final outcome awaiting acknowledgement.
func (p CombatPhase) Resolved() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseFled
}

// CombatSnapshot is a read-only copy of the combat session.
type CombatSnapshot struct {
	Phase            CombatPhase
	EnemyID          string
	Enemy            *entity.Enemy // Copy of the target; nil once it is gone
	Log              []string
	Turns            int
	EnemyTurnPending bool
}

// Active reports whether a combat session exists.
func (s CombatSnapshot) Active() bool {
	return s.Phase != PhaseInactive
}

// CombatEngine runs a one-on-one fight between the player and an enemy.
// The target is held by ID and looked up in the world state on every action.
type CombatEngine struct {
	src    rng.Source
	clock  Clock
	delay  time.Duration
	logger *zap.Logger

	world  *world.State
	player *entity.Player

	phase      CombatPhase
	targetID   string
	targetType entity.EnemyType
	log        *combat.Log
	enemyTurn  deferredAction
	turns      int
}

// NewCombatEngine creates an idle engine. Attach must be called before Start.
func NewCombatEngine(src rng.Source, clock Clock, enemyTurnDelay time.Duration, logger *zap.Logger) *CombatEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombatEngine{
		src:    src,
		clock:  clock,
		delay:  enemyTurnDelay,
		logger: logger,
		log:    combat.NewLog(),
	}
}

// Attach points the engine at the current floor and player.
func (e *CombatEngine) Attach(state *world.State, player *entity.Player) {
	e.world = state
	e.player = player
}

// Phase returns the current phase.
func (e *CombatEngine) Phase() CombatPhase { return e.phase }

// Active reports whether a combat session exists.
func (e *CombatEngine) Active() bool { return e.phase != PhaseInactive }

// Start opens a session against a live enemy. It is a no-op while another
// session exists.
func (e *CombatEngine) Start(ctx context.Context, enemyID string) bool {
	if e.phase != PhaseInactive || e.world == nil {
		return false
	}
	enemy, ok := e.world.Enemy(enemyID)
	if !ok || !enemy.IsAlive() {
		return false
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("enemy.id", enemy.ID),
		attribute.String("enemy.type", string(enemy.Type)),
		attribute.Int("enemy.level", enemy.Stats.Level),
		attribute.Int("player.health", e.player.Stats.Health),
	)
	span.End()

	e.phase = PhasePlayerTurn
	e.targetID = enemy.ID
	e.targetType = enemy.Type
	e.turns = 0
	e.log.Reset(fmt.Sprintf("Combat started with %s!", enemy.Type))

	e.logger.Debug("combat started",
		zap.String("enemy_id", enemy.ID),
		zap.String("enemy_type", string(enemy.Type)),
		zap.Int("enemy_level", enemy.Stats.Level),
	)
	return true
}

// Attack strikes the target. Only valid on the player's turn.
func (e *CombatEngine) Attack(ctx context.Context) bool {
	if e.phase != PhasePlayerTurn {
		return false
	}
	enemy, ok := e.world.Enemy(e.targetID)
	if !ok {
		return false
	}

	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(ctx, "combat.turn")
	defer span.End()

	damage := combat.CalculateDamage(e.src, e.player.Stats, enemy.Stats)
	killed := combat.ApplyDamage(&enemy.Stats, damage)
	e.turns++
	e.log.Append(fmt.Sprintf("You deal %d damage to %s!", damage, enemy.Type))

	span.SetAttributes(
		attribute.String("actor", "player"),
		attribute.String("action", "attack"),
		attribute.Int("damage", damage),
		attribute.Int("turn", e.turns),
	)
	e.logger.Debug("player attacked",
		zap.String("enemy_id", enemy.ID),
		zap.Int("damage", damage),
		zap.Int("enemy_health", enemy.Stats.Health),
	)

	if killed {
		xp := combat.ExperienceGain(e.src, *enemy)
		leveled := combat.AwardExperience(e.src, &e.player.Stats, xp)
		e.log.Append(fmt.Sprintf("%s is defeated! You gain %d experience.", enemy.Type, xp))
		if leveled {
			e.log.Append("You leveled up!")
			e.logger.Info("player leveled up", zap.Int("level", e.player.Stats.Level))
		}
		e.world.RemoveEnemy(enemy.ID)
		e.resolve(ctx, PhaseVictory)
		return true
	}

	e.beginEnemyTurn()
	return true
}

// Flee tries to run away. Only valid on the player's turn.
func (e *CombatEngine) Flee(ctx context.Context) bool {
	if e.phase != PhasePlayerTurn {
		return false
	}

	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(ctx, "combat.turn")
	defer span.End()

	e.turns++
	escaped := rng.Chance(e.src, fleeChance)
	span.SetAttributes(
		attribute.String("actor", "player"),
		attribute.String("action", "flee"),
		attribute.Bool("escaped", escaped),
		attribute.Int("turn", e.turns),
	)

	if escaped {
		e.log.Append("You successfully ran away!")
		e.resolve(ctx, PhaseFled)
		return true
	}

	e.log.Append("You failed to escape!")
	e.beginEnemyTurn()
	return true
}

// Tick fires the pending enemy turn once its delay has elapsed. It reports
// whether the enemy acted.
func (e *CombatEngine) Tick(ctx context.Context, now time.Time) bool {
	if e.phase != PhaseEnemyTurn || !e.enemyTurn.Due(now) {
		return false
	}

	enemy, ok := e.world.Enemy(e.targetID)
	if !ok {
		e.phase = PhasePlayerTurn
		return false
	}

	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(ctx, "combat.turn")
	defer span.End()

	damage := combat.CalculateDamage(e.src, enemy.Stats, e.player.Stats)
	killed := combat.ApplyDamage(&e.player.Stats, damage)
	e.turns++
	e.log.Append(fmt.Sprintf("%s deals %d damage!", enemy.Type, damage))

	span.SetAttributes(
		attribute.String("actor", string(enemy.Type)),
		attribute.String("action", "attack"),
		attribute.Int("damage", damage),
		attribute.Int("turn", e.turns),
	)
	e.logger.Debug("enemy attacked",
		zap.String("enemy_id", enemy.ID),
		zap.Int("damage", damage),
		zap.Int("player_health", e.player.Stats.Health),
	)

	if killed {
		e.log.Append("You have been defeated!")
		e.resolve(ctx, PhaseDefeat)
		return true
	}

	e.phase = PhasePlayerTurn
	return true
}

// Acknowledge closes a resolved session.
func (e *CombatEngine) Acknowledge() bool {
	if !e.phase.Resolved() {
		return false
	}
	e.clear()
	return true
}

// Reset tears the session down from any phase. A pending enemy turn is dropped.
func (e *CombatEngine) Reset() {
	e.clear()
}

// Snapshot returns a copy of the session for display.
func (e *CombatEngine) Snapshot() CombatSnapshot {
	snap := CombatSnapshot{
		Phase:            e.phase,
		EnemyID:          e.targetID,
		Log:              e.log.Lines(),
		Turns:            e.turns,
		EnemyTurnPending: e.enemyTurn.Pending(),
	}
	if e.targetID != "" && e.world != nil {
		if enemy, ok := e.world.Enemy(e.targetID); ok {
			cp := *enemy
			snap.Enemy = &cp
		}
	}
	return snap
}

func (e *CombatEngine) beginEnemyTurn() {
	e.phase = PhaseEnemyTurn
	e.enemyTurn.Schedule(e.clock.Now(), e.delay)
}

// resolve ends the fight with the given outcome.
func (e *CombatEngine) resolve(ctx context.Context, outcome CombatPhase) {
	e.enemyTurn.Stop()
	e.phase = outcome

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", outcome.String()),
		attribute.String("enemy.type", string(e.targetType)),
		attribute.Int("turns_taken", e.turns),
		attribute.Int("player.health", e.player.Stats.Health),
	)
	span.End()

	e.logger.Info("combat resolved",
		zap.String("outcome", outcome.String()),
		zap.String("enemy_id", e.targetID),
		zap.Int("turns", e.turns),
	)
}

func (e *CombatEngine) clear() {
	e.enemyTurn.Stop()
	e.phase = PhaseInactive
	e.targetID = ""
	e.targetType = ""
	e.turns = 0
	e.log.Clear()
}
