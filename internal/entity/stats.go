package entity

// Stats is the attribute record shared by the player and enemies.
//
// Invariant: 0 <= Health <= MaxHealth and Level >= 1.
type Stats struct {
	Health     int
	MaxHealth  int
	Attack     int
	Defense    int
	Experience int
	Level      int
}

// IsAlive returns true if the stat block has health remaining.
func (s Stats) IsAlive() bool { return s.Health > 0 }

// ClampHealth pulls Health back into [0, MaxHealth].
func (s *Stats) ClampHealth() {
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	if s.Health < 0 {
		s.Health = 0
	}
}

// Heal restores up to amount health and returns the amount actually restored.
func (s *Stats) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if s.Health+actual > s.MaxHealth {
		actual = s.MaxHealth - s.Health
	}
	if actual < 0 {
		actual = 0
	}
	s.Health += actual
	return actual
}

// StatBonus is the partial stat block carried by an item. Zero fields are absent.
type StatBonus struct {
	Health    int // Restored on use (consumables)
	MaxHealth int
	Attack    int
	Defense   int
}

// IsZero returns true if the bonus carries no stats at all.
func (b StatBonus) IsZero() bool {
	return b == StatBonus{}
}
