// Package world provides dungeon generation and the live state of a floor.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable floor tile.
	TileFloor Tile = '.'
	// TileDoor is reserved; the generator never places doors.
	TileDoor Tile = '+'
	// TileStairsUp marks the entrance of a floor.
	TileStairsUp Tile = '<'
	// TileStairsDown leads to the next floor.
	TileStairsDown Tile = '>'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor || t == TileStairsUp || t == TileStairsDown
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
