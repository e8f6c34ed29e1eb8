package world

import (
	"github.com/samdwyer/dungeoncrawl/internal/entity"
)

// State is the live view of one floor: the immutable dungeon plus the enemies
// and items that move, die and get picked up during play.
type State struct {
	dungeon *Dungeon
	floor   int
	enemies map[string]*entity.Enemy
	order   []string
	items   []entity.Item
}

// NewState builds the live state for a freshly generated floor, copying every
// room's spawned enemies and items.
func NewState(d *Dungeon, floor int) *State {
	s := &State{
		dungeon: d,
		floor:   floor,
		enemies: make(map[string]*entity.Enemy),
	}
	for _, room := range d.Rooms {
		for _, e := range room.Enemies {
			enemy := e
			s.enemies[enemy.ID] = &enemy
			s.order = append(s.order, enemy.ID)
		}
		for _, it := range room.Items {
			s.items = append(s.items, cloneItem(it))
		}
	}
	return s
}

// Dungeon returns the current floor's layout.
func (s *State) Dungeon() *Dungeon { return s.dungeon }

// Floor returns the 1-based floor number.
func (s *State) Floor() int { return s.floor }

// Enemy returns the authoritative record for id.
func (s *State) Enemy(id string) (*entity.Enemy, bool) {
	e, ok := s.enemies[id]
	return e, ok
}

// EnemyAt returns the live enemy standing on pos, if any.
func (s *State) EnemyAt(pos entity.Position) (*entity.Enemy, bool) {
	for _, id := range s.order {
		e := s.enemies[id]
		if e.Position == pos && e.IsAlive() {
			return e, true
		}
	}
	return nil, false
}

// Enemies returns a snapshot of every enemy in spawn order.
func (s *State) Enemies() []entity.Enemy {
	out := make([]entity.Enemy, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.enemies[id])
	}
	return out
}

// EnemyIDs returns the enemy IDs in spawn order.
func (s *State) EnemyIDs() []string {
	return append([]string(nil), s.order...)
}

// MoveEnemy relocates an enemy. It reports false for unknown IDs.
func (s *State) MoveEnemy(id string, pos entity.Position) bool {
	e, ok := s.enemies[id]
	if !ok {
		return false
	}
	e.Position = pos
	return true
}

// RemoveEnemy deletes an enemy from the floor.
func (s *State) RemoveEnemy(id string) bool {
	if _, ok := s.enemies[id]; !ok {
		return false
	}
	delete(s.enemies, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Items returns a snapshot of the items lying on the floor.
func (s *State) Items() []entity.Item {
	out := make([]entity.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, cloneItem(it))
	}
	return out
}

// ItemsAt returns the items lying on pos, in spawn order.
func (s *State) ItemsAt(pos entity.Position) []entity.Item {
	var out []entity.Item
	for _, it := range s.items {
		if it.Position != nil && *it.Position == pos {
			out = append(out, cloneItem(it))
		}
	}
	return out
}

// RemoveItem takes an item off the floor.
func (s *State) RemoveItem(id string) bool {
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// IsWalkable reports whether pos is in bounds and on a passable tile.
// Occupancy is not considered.
func (s *State) IsWalkable(pos entity.Position) bool {
	return s.dungeon.IsPassable(pos)
}

func cloneItem(it entity.Item) entity.Item {
	if it.Position != nil {
		pos := *it.Position
		it.Position = &pos
	}
	return it
}
