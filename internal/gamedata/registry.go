package gamedata

import (
	"fmt"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
)

// Registry holds every loaded table and checks they cover the entity enums.
type Registry struct {
	items   *ItemTables
	enemies map[entity.EnemyType]*EnemyDef
}

// NewRegistry creates a registry from loaded definitions.
// Returns an error if any item type, rarity or enemy type lacks an entry.
func NewRegistry(items *ItemTables, enemies []EnemyDef) (*Registry, error) {
	r := &Registry{
		items:   items,
		enemies: make(map[entity.EnemyType]*EnemyDef, len(enemies)),
	}
	for i := range enemies {
		r.enemies[enemies[i].ID] = &enemies[i]
	}

	for _, t := range entity.ItemTypes {
		def := items.Type(t)
		if def == nil {
			return nil, fmt.Errorf("item type %q missing from items.json", t)
		}
		if len(def.Nouns) == 0 {
			return nil, fmt.Errorf("item type %q has no nouns", t)
		}
	}
	for _, rr := range entity.Rarities {
		if items.Rarity(rr) == nil {
			return nil, fmt.Errorf("rarity %q missing from items.json", rr)
		}
	}
	for _, et := range entity.EnemyTypes {
		if r.enemies[et] == nil {
			return nil, fmt.Errorf("enemy type %q missing from enemies.json", et)
		}
	}
	return r, nil
}

// LoadRegistry loads and validates the embedded tables.
func LoadRegistry() (*Registry, error) {
	items, err := LoadItemTables()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	return NewRegistry(items, enemies)
}

// MustLoadRegistry loads a registry, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Items returns the item tables.
func (r *Registry) Items() *ItemTables {
	return r.items
}

// Enemy returns the definition for an enemy type, or nil.
func (r *Registry) Enemy(t entity.EnemyType) *EnemyDef {
	return r.enemies[t]
}

// RarityColor returns the display color hex string for a rarity.
func (r *Registry) RarityColor(rr entity.Rarity) string {
	if def := r.items.Rarity(rr); def != nil {
		return def.Color
	}
	return "#FFFFFF"
}
