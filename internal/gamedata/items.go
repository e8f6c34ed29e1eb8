package gamedata

import (
	"github.com/samdwyer/dungeoncrawl/internal/entity"
)

// RarityDef describes one rarity tier.
type RarityDef struct {
	ID         entity.Rarity `json:"id"`
	Prefix     string        `json:"prefix"`     // Prepended to the item noun
	Multiplier float64       `json:"multiplier"` // Scales base stats and value
	Color      string        `json:"color"`      // Hex color for display
}

// BaseStats is the unscaled stat bonus of an item type.
type BaseStats struct {
	Health  int `json:"health"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// ItemTypeDef describes one item category.
type ItemTypeDef struct {
	ID    entity.ItemType `json:"id"`
	Glyph string          `json:"glyph"`
	Nouns []string        `json:"nouns"`
	Base  BaseStats       `json:"base"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *ItemTypeDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '?'
	}
	return rune(d.Glyph[0])
}

// ItemTables represents the structure of items.json.
type ItemTables struct {
	BaseValue int           `json:"baseValue"`
	Rarities  []RarityDef   `json:"rarities"`
	Types     []ItemTypeDef `json:"types"`
}

// Rarity returns the definition for r, or nil.
func (t *ItemTables) Rarity(r entity.Rarity) *RarityDef {
	for i := range t.Rarities {
		if t.Rarities[i].ID == r {
			return &t.Rarities[i]
		}
	}
	return nil
}

// Type returns the definition for it, or nil.
func (t *ItemTables) Type(it entity.ItemType) *ItemTypeDef {
	for i := range t.Types {
		if t.Types[i].ID == it {
			return &t.Types[i]
		}
	}
	return nil
}

// LoadItemTables loads the embedded items.json file.
func LoadItemTables() (*ItemTables, error) {
	tables, err := Load[ItemTables]("items.json")
	if err != nil {
		return nil, err
	}
	return &tables, nil
}
