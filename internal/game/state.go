// Package game holds the rules of a running session: movement, enemy AI,
// the combat turn engine and floor progression.
package game

// Mode represents what the player is currently doing.
type Mode int

const (
	// ModeExplore is free movement around the floor.
	ModeExplore Mode = iota
	// ModeCombat is a combat session, including its unacknowledged outcome.
	ModeCombat
	// ModeGameOver means the player has died.
	ModeGameOver
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeExplore:
		return "explore"
	case ModeCombat:
		return "combat"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
