package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
)

// EnemyDef holds the presentation data for an enemy type.
type EnemyDef struct {
	ID    entity.EnemyType `json:"id"`    // Matches entity.EnemyType (e.g., "goblin")
	Name  string           `json:"name"`  // Display name (e.g., "Goblin")
	Glyph string           `json:"glyph"` // Single character for rendering (e.g., "g")
	Color string           `json:"color"` // Hex color code (e.g., "#9ACD32")
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	return ColorOr(e.Color, tcell.ColorWhite)
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
