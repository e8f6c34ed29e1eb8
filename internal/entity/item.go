package entity

// ItemType is an item's category. It also decides the equipment slot.
type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemArmor      ItemType = "armor"
	ItemConsumable ItemType = "consumable"
	ItemTreasure   ItemType = "treasure"
)

// ItemTypes lists every item type in sampling (and sort) order.
var ItemTypes = []ItemType{ItemWeapon, ItemArmor, ItemConsumable, ItemTreasure}

// Order returns the inventory sort rank of the type.
func (t ItemType) Order() int {
	for i, it := range ItemTypes {
		if it == t {
			return i
		}
	}
	return len(ItemTypes)
}

// Rarity is an item's tier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every rarity from lowest to highest.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// Rank returns 1 for common up to 5 for legendary, 0 if unknown.
func (r Rarity) Rank() int {
	for i, rr := range Rarities {
		if rr == r {
			return i + 1
		}
	}
	return 0
}

// Item is a world or inventory item. Position is nil once the item is carried.
type Item struct {
	ID          string
	Name        string
	Type        ItemType
	Rarity      Rarity
	Stats       StatBonus
	Value       int
	Description string
	Position    *Position
}

// Equippable returns true for weapons and armor.
func (it Item) Equippable() bool {
	return it.Type == ItemWeapon || it.Type == ItemArmor
}
