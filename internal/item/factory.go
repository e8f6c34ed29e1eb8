package item

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
)

// IDFunc produces a unique identifier with the given prefix.
type IDFunc func(prefix string) string

// NewID returns "<prefix>_<uuid>".
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// Factory creates random items from the item tables.
type Factory struct {
	tables *gamedata.ItemTables
	newID  IDFunc
}

// NewFactory creates a factory. A nil newID defaults to NewID.
func NewFactory(tables *gamedata.ItemTables, newID IDFunc) *Factory {
	if newID == nil {
		newID = NewID
	}
	return &Factory{tables: tables, newID: newID}
}

// NextID returns a fresh identifier with the given prefix.
func (f *Factory) NextID(prefix string) string {
	return f.newID(prefix)
}

// Random creates an item of uniformly random type and rarity.
func (f *Factory) Random(src rng.Source) entity.Item {
	itemType := rng.Pick(src, entity.ItemTypes)
	rarity := rng.Pick(src, entity.Rarities)
	return f.Build(src, itemType, rarity)
}

// Build creates an item of the given type and rarity. Only the noun is random.
func (f *Factory) Build(src rng.Source, itemType entity.ItemType, rarity entity.Rarity) entity.Item {
	typeDef := f.tables.Type(itemType)
	rarityDef := f.tables.Rarity(rarity)

	multiplier := 1.0
	prefix := ""
	if rarityDef != nil {
		multiplier = rarityDef.Multiplier
		prefix = rarityDef.Prefix
	}

	var base gamedata.BaseStats
	noun := string(itemType)
	if typeDef != nil {
		base = typeDef.Base
		if len(typeDef.Nouns) > 0 {
			noun = rng.Pick(src, typeDef.Nouns)
		}
	}

	return entity.Item{
		ID:     f.NextID("item"),
		Name:   prefix + noun,
		Type:   itemType,
		Rarity: rarity,
		Stats: entity.StatBonus{
			Health:  scale(base.Health, multiplier),
			Attack:  scale(base.Attack, multiplier),
			Defense: scale(base.Defense, multiplier),
		},
		Value:       scale(f.tables.BaseValue, multiplier),
		Description: fmt.Sprintf("A %s %s", rarity, itemType),
	}
}

func scale(v int, multiplier float64) int {
	return int(math.Floor(float64(v) * multiplier))
}
