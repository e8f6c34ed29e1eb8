package game

import (
	"fmt"
	"time"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/item"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// openFloor returns a walled grid with an open interior.
func openFloor(width, height int) *world.Dungeon {
	d := world.NewDungeon(width, height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			d.Tiles[y][x] = world.TileFloor
		}
	}
	d.Rooms = []world.Room{{X: 1, Y: 1, Width: width - 2, Height: height - 2}}
	d.StartRoom = d.Rooms[0].Center()
	d.EndRoom = d.StartRoom
	return d
}

// arena builds a 12x12 open floor holding the given enemies and items.
func arena(enemies []entity.Enemy, items ...entity.Item) *world.State {
	d := openFloor(12, 12)
	d.Rooms[0].Enemies = enemies
	d.Rooms[0].Items = items
	return world.NewState(d, 1)
}

func goblinAt(id string, x, y int) entity.Enemy {
	return entity.NewEnemy(id, entity.EnemyGoblin, entity.BehaviorAggressive, 1, entity.Position{X: x, Y: y})
}

func newPlayerAt(x, y int) *entity.Player {
	return entity.NewPlayer(entity.Position{X: x, Y: y}, combat.InitialPlayerStats())
}

func floorItem(id string, t entity.ItemType, bonus entity.StatBonus, x, y int) entity.Item {
	pos := entity.Position{X: x, Y: y}
	return entity.Item{ID: id, Name: id, Type: t, Rarity: entity.RarityCommon, Stats: bonus, Position: &pos}
}

func counterIDs() item.IDFunc {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}
