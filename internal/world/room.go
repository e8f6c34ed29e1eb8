package world

import (
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
)

// Room represents a rectangular room in the dungeon, together with what was
// spawned in it at generation time.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
	Enemies       []entity.Enemy
	Items         []entity.Item
}

// Center returns the center coordinates of the room.
func (r Room) Center() entity.Position {
	return entity.Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(p entity.Position) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Expand returns the room's bounding box grown by margin on every side.
func (r Room) Expand(margin int) Room {
	return Room{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// RandomPoint returns a uniformly random position inside the room.
func (r Room) RandomPoint(src rng.Source) entity.Position {
	return entity.Position{
		X: r.X + src.Intn(r.Width),
		Y: r.Y + src.Intn(r.Height),
	}
}
