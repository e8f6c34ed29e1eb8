package entity

// InventoryCapacity is the maximum number of carried items.
const InventoryCapacity = 50

// Equipment holds one item per equippable category.
type Equipment struct {
	Weapon *Item
	Armor  *Item
}

// Slot returns a pointer to the slot for the item type, or nil if the type
// has no slot.
func (e *Equipment) Slot(t ItemType) **Item {
	switch t {
	case ItemWeapon:
		return &e.Weapon
	case ItemArmor:
		return &e.Armor
	default:
		return nil
	}
}

// Player is the adventurer.
type Player struct {
	Position  Position
	Stats     Stats
	Inventory []Item
	Equipment Equipment
}

// NewPlayer creates a player at pos with the given starting stats.
func NewPlayer(pos Position, stats Stats) *Player {
	return &Player{
		Position:  pos,
		Stats:     stats,
		Inventory: make([]Item, 0),
	}
}

// InventoryFull reports whether the inventory is at capacity.
func (p *Player) InventoryFull() bool { return len(p.Inventory) >= InventoryCapacity }

// AddItem appends an item to the inventory, clearing its world position.
// Returns false when the inventory is full.
func (p *Player) AddItem(it Item) bool {
	if p.InventoryFull() {
		return false
	}
	it.Position = nil
	p.Inventory = append(p.Inventory, it)
	return true
}

// RemoveItem removes the first inventory item with the given ID.
func (p *Player) RemoveItem(id string) (Item, bool) {
	for i, it := range p.Inventory {
		if it.ID == id {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return it, true
		}
	}
	return Item{}, false
}

// FindItem returns the inventory item with the given ID.
func (p *Player) FindItem(id string) (Item, bool) {
	for _, it := range p.Inventory {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Clone returns a deep copy, safe to hand to readers.
func (p *Player) Clone() Player {
	c := *p
	c.Inventory = make([]Item, len(p.Inventory))
	copy(c.Inventory, p.Inventory)
	if p.Equipment.Weapon != nil {
		w := *p.Equipment.Weapon
		c.Equipment.Weapon = &w
	}
	if p.Equipment.Armor != nil {
		a := *p.Equipment.Armor
		c.Equipment.Armor = &a
	}
	return c
}
