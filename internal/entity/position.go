// Package entity provides the player, enemies, items and the stat block they share.
package entity

// Position is an integer grid coordinate.
type Position struct {
	X, Y int
}

// Add returns the position offset by the given delta.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the 4-directional distance to o.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
