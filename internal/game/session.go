package game

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/item"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// MoveOutcome describes what happened to a movement request.
type MoveOutcome int

const (
	// MoveBlocked - target out of bounds or not walkable
	MoveBlocked MoveOutcome = iota
	// MoveCoolingDown - the previous move was too recent
	MoveCoolingDown
	// MoveSuspended - movement is disabled during combat and after death
	MoveSuspended
	// MoveEngaged - a live enemy stood on the target and combat started
	MoveEngaged
	// MoveMoved - the player moved
	MoveMoved
)

// String returns a human-readable outcome name.
func (o MoveOutcome) String() string {
	switch o {
	case MoveBlocked:
		return "blocked"
	case MoveCoolingDown:
		return "cooling_down"
	case MoveSuspended:
		return "suspended"
	case MoveEngaged:
		return "engaged"
	case MoveMoved:
		return "moved"
	default:
		return "unknown"
	}
}

// MoveResult reports the outcome of a movement request.
type MoveResult struct {
	Outcome  MoveOutcome
	EnemyID  string        // Set when combat was started
	PickedUp []entity.Item // Items collected on arrival
}

// Moved reports whether the player changed position.
func (r MoveResult) Moved() bool { return r.Outcome == MoveMoved }

// Option customises a Session.
type Option func(*Session)

// WithSource replaces the seeded random source.
func WithSource(src rng.Source) Option {
	return func(s *Session) { s.src = src }
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithIDs replaces the UUID-based identifier generator.
func WithIDs(f item.IDFunc) Option {
	return func(s *Session) { s.newID = f }
}

// Session is one player's run through the dungeon. It is not safe for
// concurrent use; a single goroutine owns it.
type Session struct {
	cfg    Config
	src    rng.Source
	clock  Clock
	logger *zap.Logger
	newID  item.IDFunc

	generator *world.Generator
	world     *world.State
	player    *entity.Player
	combat    *CombatEngine
	ai        *enemyAI

	lastPlayerMove time.Time
	hasMoved       bool
}

// NewSession creates a session on floor 1 with a fresh player.
func NewSession(ctx context.Context, cfg Config, registry *gamedata.Registry, opts ...Option) *Session {
	s := &Session{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = rng.New(cfg.Seed)
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	factory := item.NewFactory(registry.Items(), s.newID)
	s.generator = world.NewGenerator(s.src, factory, s.logger.Named("world"))
	s.combat = NewCombatEngine(s.src, s.clock, cfg.EnemyTurnDelay, s.logger.Named("combat"))
	s.ai = newEnemyAI(s.src, cfg.EnemyMoveCooldown)
	s.player = entity.NewPlayer(entity.Position{}, combat.InitialPlayerStats())

	s.enterFloor(ctx, 1)
	return s
}

// Dungeon returns the current floor layout.
func (s *Session) Dungeon() *world.Dungeon { return s.world.Dungeon() }

// Floor returns the current floor number.
func (s *Session) Floor() int { return s.world.Floor() }

// Enemies returns a snapshot of the enemies on the floor.
func (s *Session) Enemies() []entity.Enemy { return s.world.Enemies() }

// Items returns a snapshot of the items on the floor.
func (s *Session) Items() []entity.Item { return s.world.Items() }

// Player returns a deep copy of the player.
func (s *Session) Player() entity.Player { return s.player.Clone() }

// Combat returns a snapshot of the combat session.
func (s *Session) Combat() CombatSnapshot { return s.combat.Snapshot() }

// Mode returns what the player is currently doing.
func (s *Session) Mode() Mode {
	switch {
	case !s.player.Stats.IsAlive():
		return ModeGameOver
	case s.combat.Active():
		return ModeCombat
	default:
		return ModeExplore
	}
}

// MoveBy moves the player by a delta.
func (s *Session) MoveBy(ctx context.Context, dx, dy int) MoveResult {
	return s.MovePlayer(ctx, s.player.Position.Add(dx, dy))
}

// MovePlayer moves the player to pos. Walking into a live enemy starts combat
// instead; arriving on items picks them up while the inventory has room.
func (s *Session) MovePlayer(ctx context.Context, pos entity.Position) MoveResult {
	if s.combat.Active() || !s.player.Stats.IsAlive() {
		return MoveResult{Outcome: MoveSuspended}
	}
	if !s.world.IsWalkable(pos) {
		return MoveResult{Outcome: MoveBlocked}
	}
	now := s.clock.Now()
	if s.hasMoved && now.Sub(s.lastPlayerMove) < s.cfg.PlayerMoveCooldown {
		return MoveResult{Outcome: MoveCoolingDown}
	}

	if enemy, ok := s.world.EnemyAt(pos); ok {
		if s.combat.Start(ctx, enemy.ID) {
			return MoveResult{Outcome: MoveEngaged, EnemyID: enemy.ID}
		}
		return MoveResult{Outcome: MoveBlocked}
	}

	s.player.Position = pos
	s.lastPlayerMove = now
	s.hasMoved = true

	var picked []entity.Item
	for _, it := range s.world.ItemsAt(pos) {
		if !s.player.AddItem(it) {
			break
		}
		s.world.RemoveItem(it.ID)
		picked = append(picked, it)
	}
	for _, it := range picked {
		s.logger.Debug("item picked up", zap.String("item", it.Name), zap.String("rarity", string(it.Rarity)))
	}

	return MoveResult{Outcome: MoveMoved, PickedUp: picked}
}

// StartCombat opens a combat session against the given enemy.
func (s *Session) StartCombat(ctx context.Context, enemyID string) bool {
	if !s.player.Stats.IsAlive() {
		return false
	}
	return s.combat.Start(ctx, enemyID)
}

// PlayerAttack attacks the combat target.
func (s *Session) PlayerAttack(ctx context.Context) bool {
	return s.combat.Attack(ctx)
}

// PlayerFlee tries to escape from combat.
func (s *Session) PlayerFlee(ctx context.Context) bool {
	return s.combat.Flee(ctx)
}

// AcknowledgeCombat closes a resolved combat session.
func (s *Session) AcknowledgeCombat() bool {
	return s.combat.Acknowledge()
}

// UseItem uses an inventory item. Unknown IDs are ignored.
func (s *Session) UseItem(id string) string {
	it, ok := s.player.FindItem(id)
	if !ok {
		return ""
	}
	return item.Use(s.player, it)
}

// EquipItem equips an inventory item. Unknown IDs are ignored.
func (s *Session) EquipItem(id string) string {
	it, ok := s.player.FindItem(id)
	if !ok {
		return ""
	}
	return item.Equip(s.player, it)
}

// UnequipItem removes an equipped item.
func (s *Session) UnequipItem(id string) string {
	for _, slot := range []*entity.Item{s.player.Equipment.Weapon, s.player.Equipment.Armor} {
		if slot != nil && slot.ID == id {
			return item.Unequip(s.player, *slot)
		}
	}
	return item.MsgNotEquipped
}

// SortedInventory returns the player's inventory in display order.
func (s *Session) SortedInventory() []entity.Item {
	return item.Sort(s.player.Inventory)
}

// OnStairsDown reports whether the player stands on the way down.
func (s *Session) OnStairsDown() bool {
	return s.Dungeon().GetTile(s.player.Position) == world.TileStairsDown
}

// Descend takes the stairs down when the player is standing on them.
func (s *Session) Descend(ctx context.Context) bool {
	if !s.OnStairsDown() {
		return false
	}
	return s.NextFloor(ctx)
}

// NextFloor generates the next floor and places the player at its start.
// Not allowed during combat.
func (s *Session) NextFloor(ctx context.Context) bool {
	if s.combat.Active() || !s.player.Stats.IsAlive() {
		return false
	}
	s.enterFloor(ctx, s.world.Floor()+1)
	return true
}

// ResetDungeon tears down any combat and regenerates floor 1.
func (s *Session) ResetDungeon(ctx context.Context) {
	s.combat.Reset()
	s.enterFloor(ctx, 1)
}

// ResetPlayer restores the player's starting stats and empties their bags.
func (s *Session) ResetPlayer() {
	*s.player = *entity.NewPlayer(s.player.Position, combat.InitialPlayerStats())
	s.hasMoved = false
}

// Restart begins a new run after death.
func (s *Session) Restart(ctx context.Context) {
	s.ResetPlayer()
	s.ResetDungeon(ctx)
	s.logger.Info("run restarted")
}

// Tick advances time-driven behaviour: the pending enemy turn and, outside
// of combat, enemy movement.
func (s *Session) Tick(ctx context.Context) {
	now := s.clock.Now()
	s.combat.Tick(ctx, now)
	if s.combat.Active() || !s.player.Stats.IsAlive() {
		return
	}
	s.ai.step(now, s.world, s.player.Position)
}

// enterFloor generates a floor and moves the player to its start.
func (s *Session) enterFloor(ctx context.Context, floor int) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.enter_floor")
	defer span.End()

	d := s.generator.Generate(ctx, s.cfg.Dungeon)
	s.world = world.NewState(d, floor)
	s.player.Position = d.StartRoom
	s.hasMoved = false
	s.ai.reset()
	s.combat.Attach(s.world, s.player)

	span.SetAttributes(
		attribute.Int("floor", floor),
		attribute.Int("dungeon.rooms", len(d.Rooms)),
		attribute.Int("player.start_x", d.StartRoom.X),
		attribute.Int("player.start_y", d.StartRoom.Y),
	)
	s.logger.Info("entered floor",
		zap.Int("floor", floor),
		zap.Int("rooms", len(d.Rooms)),
		zap.Int("enemies", len(s.world.EnemyIDs())),
	)
}
