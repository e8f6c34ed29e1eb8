// Package item implements consumable use, equipment slots, inventory
// ordering and random item creation.
package item

import (
	"fmt"
	"sort"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
)

// Messages returned for rejected actions.
const (
	MsgCannotUse   = "This item cannot be used directly."
	MsgCannotEquip = "This item cannot be equipped."
	MsgNotEquipped = "Item is not equipped."
	MsgFull        = "Inventory is full."
)

// Use consumes a consumable, restoring health up to the player's maximum.
// A consumable without a health bonus is still consumed and yields an empty
// message.
func Use(p *entity.Player, it entity.Item) string {
	if it.Type != entity.ItemConsumable {
		return MsgCannotUse
	}

	message := ""
	if it.Stats.Health > 0 {
		restored := p.Stats.Heal(it.Stats.Health)
		message = fmt.Sprintf("Restored %d health.", restored)
	}

	p.RemoveItem(it.ID)
	return message
}

// Equip puts a weapon or armor into its slot, swapping out whatever was there.
// The displaced item goes back to the inventory with its stats intact. A swap
// that would push the inventory past capacity is refused.
func Equip(p *entity.Player, it entity.Item) string {
	slot := p.Equipment.Slot(it.Type)
	if slot == nil {
		return MsgCannotEquip
	}

	displaced := *slot
	if displaced != nil && displaced.ID == it.ID {
		return fmt.Sprintf("%s is already equipped.", it.Name)
	}
	if _, carried := p.FindItem(it.ID); displaced != nil && !carried && p.InventoryFull() {
		return MsgFull
	}
	equipped := it
	equipped.Position = nil
	*slot = &equipped
	applyBonus(&p.Stats, it.Stats, 1)

	p.RemoveItem(it.ID)

	if displaced != nil {
		applyBonus(&p.Stats, displaced.Stats, -1)
		p.AddItem(*displaced)
	}

	return fmt.Sprintf("Equipped %s.", it.Name)
}

// Unequip clears the slot holding it and returns it to the inventory.
// Nothing changes when the inventory has no room for it.
func Unequip(p *entity.Player, it entity.Item) string {
	slot := p.Equipment.Slot(it.Type)
	if slot == nil || *slot == nil || (*slot).ID != it.ID {
		return MsgNotEquipped
	}
	if p.InventoryFull() {
		return MsgFull
	}

	current := **slot
	*slot = nil
	applyBonus(&p.Stats, current.Stats, -1)
	p.AddItem(current)

	return fmt.Sprintf("Unequipped %s.", current.Name)
}

// applyBonus adds (sign 1) or removes (sign -1) an item's equipment stats.
// Health is clamped when the maximum shrinks.
func applyBonus(stats *entity.Stats, bonus entity.StatBonus, sign int) {
	stats.Attack += bonus.Attack * sign
	stats.Defense += bonus.Defense * sign
	if bonus.MaxHealth != 0 {
		stats.MaxHealth += bonus.MaxHealth * sign
		if sign < 0 {
			stats.ClampHealth()
		}
	}
}

// Sort returns the items ordered by type (weapon, armor, consumable, treasure)
// and then by rarity, highest first. Equal keys keep their relative order.
// The input slice is not modified.
func Sort(items []entity.Item) []entity.Item {
	sorted := make([]entity.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Type.Order() != b.Type.Order() {
			return a.Type.Order() < b.Type.Order()
		}
		return a.Rarity.Rank() > b.Rarity.Rank()
	})
	return sorted
}
