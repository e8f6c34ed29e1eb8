package world

import (
	"context"
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/item"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
)

func loadTables(t *testing.T) *gamedata.ItemTables {
	t.Helper()
	tables, err := gamedata.LoadItemTables()
	if err != nil {
		t.Fatalf("LoadItemTables() error = %v", err)
	}
	return tables
}

// counterIDs returns an IDFunc producing prefix_1, prefix_2, ...
func counterIDs() item.IDFunc {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}

func newGenerator(tables *gamedata.ItemTables, src rng.Source) *Generator {
	return NewGenerator(src, item.NewFactory(tables, counterIDs()), nil)
}

func generate(tables *gamedata.ItemTables, seed int64, p Params) *Dungeon {
	return newGenerator(tables, rng.New(seed)).Generate(context.Background(), p)
}

func TestDungeonReproducibility(t *testing.T) {
	tables := loadTables(t)
	d1 := generate(tables, 12345, DefaultParams())
	d2 := generate(tables, 12345, DefaultParams())

	// Verify same number of rooms
	if len(d1.Rooms) != len(d2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(d1.Rooms), len(d2.Rooms))
	}

	// Verify rooms and their populations match
	for i := range d1.Rooms {
		r1, r2 := d1.Rooms[i], d2.Rooms[i]
		if r1.X != r2.X || r1.Y != r2.Y || r1.Width != r2.Width || r1.Height != r2.Height {
			t.Errorf("Room %d mismatch: (%d,%d,%d,%d) != (%d,%d,%d,%d)",
				i, r1.X, r1.Y, r1.Width, r1.Height,
				r2.X, r2.Y, r2.Width, r2.Height)
		}
		if len(r1.Enemies) != len(r2.Enemies) || len(r1.Items) != len(r2.Items) {
			t.Errorf("Room %d population mismatch", i)
			continue
		}
		for j := range r1.Enemies {
			if r1.Enemies[j] != r2.Enemies[j] {
				t.Errorf("Room %d enemy %d mismatch: %+v != %+v", i, j, r1.Enemies[j], r2.Enemies[j])
			}
		}
		for j := range r1.Items {
			if r1.Items[j].Name != r2.Items[j].Name || *r1.Items[j].Position != *r2.Items[j].Position {
				t.Errorf("Room %d item %d mismatch", i, j)
			}
		}
	}

	// Verify tiles are identical
	for y := 0; y < d1.Height; y++ {
		for x := 0; x < d1.Width; x++ {
			if d1.Tiles[y][x] != d2.Tiles[y][x] {
				t.Errorf("Tile mismatch at (%d,%d): %c != %c", x, y, d1.Tiles[y][x], d2.Tiles[y][x])
			}
		}
	}
}

func TestDungeonDifferentSeeds(t *testing.T) {
	tables := loadTables(t)
	d1 := generate(tables, 12345, DefaultParams())
	d2 := generate(tables, 54321, DefaultParams())

	// With different seeds, at least room positions should differ
	identical := len(d1.Rooms) == len(d2.Rooms)
	for i := 0; identical && i < len(d1.Rooms); i++ {
		r1, r2 := d1.Rooms[i], d2.Rooms[i]
		if r1.X != r2.X || r1.Y != r2.Y {
			identical = false
		}
	}

	if identical {
		t.Error("Dungeons with different seeds should not be identical")
	}
}

func TestGenerateScripted(t *testing.T) {
	tables := loadTables(t)
	src := &rng.Scripted{Ints: []int{
		// room 1: 4x4 at (1,1)
		0, 0, 0, 0,
		// room 2: 4x4 at (21,11), then a horizontal-first corridor
		0, 0, 20, 10, 0,
		// one aggressive level 3 troll at (22,13), no items
		0, 1, 2, 2, 3, 0, 0,
	}}
	p := Params{Width: 40, Height: 20, MaxRooms: 2, MinRoomSize: 4, MaxRoomSize: 5}

	d := newGenerator(tables, src).Generate(context.Background(), p)

	if len(d.Rooms) != 2 {
		t.Fatalf("len(Rooms) = %d, want 2", len(d.Rooms))
	}
	if d.StartRoom != (entity.Position{X: 3, Y: 3}) || d.EndRoom != (entity.Position{X: 23, Y: 13}) {
		t.Errorf("StartRoom/EndRoom = %v/%v", d.StartRoom, d.EndRoom)
	}
	if got := d.GetTile(d.StartRoom); got != TileStairsUp {
		t.Errorf("start tile = %c, want <", got)
	}
	if got := d.GetTile(d.EndRoom); got != TileStairsDown {
		t.Errorf("end tile = %c, want >", got)
	}

	tileTests := []struct {
		pos  entity.Position
		want Tile
	}{
		{entity.Position{X: 10, Y: 3}, TileFloor},  // horizontal leg
		{entity.Position{X: 23, Y: 8}, TileFloor},  // vertical leg
		{entity.Position{X: 10, Y: 8}, TileWall},   // outside corridor
		{entity.Position{X: 0, Y: 0}, TileWall},    // border
		{entity.Position{X: -1, Y: 5}, TileWall},   // out of bounds
		{entity.Position{X: 24, Y: 14}, TileFloor}, // room 2 corner
	}
	for _, tt := range tileTests {
		if got := d.GetTile(tt.pos); got != tt.want {
			t.Errorf("GetTile(%v) = %c, want %c", tt.pos, got, tt.want)
		}
	}

	if len(d.Rooms[0].Enemies) != 0 || len(d.Rooms[0].Items) != 0 {
		t.Error("first room must stay empty")
	}
	enemies := d.Rooms[1].Enemies
	if len(enemies) != 1 {
		t.Fatalf("room 2 enemies = %d, want 1", len(enemies))
	}
	want := entity.NewEnemy("enemy_1", entity.EnemyTroll, entity.BehaviorAggressive, 3, entity.Position{X: 22, Y: 13})
	if enemies[0] != want {
		t.Errorf("enemy = %+v, want %+v", enemies[0], want)
	}
	if len(d.Rooms[1].Items) != 0 {
		t.Errorf("room 2 items = %d, want 0", len(d.Rooms[1].Items))
	}
}

func TestGenerateDegenerateParams(t *testing.T) {
	tables := loadTables(t)
	tests := []struct {
		name string
		p    Params
	}{
		{"zero grid", Params{Width: 0, Height: 0, MaxRooms: 5, MinRoomSize: 6, MaxRoomSize: 12}},
		{"negative grid", Params{Width: -3, Height: -1, MaxRooms: 5, MinRoomSize: 6, MaxRoomSize: 12}},
		{"rooms larger than grid", Params{Width: 10, Height: 10, MaxRooms: 5, MinRoomSize: 20, MaxRoomSize: 30}},
		{"zero room size", Params{Width: 40, Height: 40, MaxRooms: 5}},
		{"negative room size", Params{Width: 40, Height: 40, MaxRooms: 5, MinRoomSize: -4, MaxRoomSize: 1}},
		{"no attempts", Params{Width: 40, Height: 40, MaxRooms: 0, MinRoomSize: 6, MaxRoomSize: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := generate(tables, 7, tt.p)
			if len(d.Rooms) != 0 {
				t.Errorf("len(Rooms) = %d, want 0", len(d.Rooms))
			}
			if d.StartRoom != (entity.Position{X: 1, Y: 1}) {
				t.Errorf("StartRoom = %v, want (1,1)", d.StartRoom)
			}
			if want := (entity.Position{X: d.Width - 2, Y: d.Height - 2}); d.EndRoom != want {
				t.Errorf("EndRoom = %v, want %v", d.EndRoom, want)
			}
		})
	}
}

func TestGeneratedFloorProperties(t *testing.T) {
	tables := loadTables(t)

	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64Range(1, 1<<40).Draw(rt, "seed")
		p := Params{
			Width:       rapid.IntRange(20, 100).Draw(rt, "width"),
			Height:      rapid.IntRange(20, 80).Draw(rt, "height"),
			MaxRooms:    rapid.IntRange(1, 25).Draw(rt, "maxRooms"),
			MinRoomSize: rapid.IntRange(3, 8).Draw(rt, "minRoom"),
		}
		p.MaxRoomSize = p.MinRoomSize + rapid.IntRange(0, 6).Draw(rt, "roomSpread")

		d := generate(tables, seed, p)

		if len(d.Rooms) > p.MaxRooms {
			rt.Fatalf("placed %d rooms with only %d attempts", len(d.Rooms), p.MaxRooms)
		}
		checkBorder(rt, d)
		checkSeparation(rt, d)
		checkConnectivity(rt, d)
		checkPopulation(rt, d)
	})
}

func checkBorder(rt *rapid.T, d *Dungeon) {
	for x := 0; x < d.Width; x++ {
		if d.Tiles[0][x] != TileWall || d.Tiles[d.Height-1][x] != TileWall {
			rt.Fatalf("border breached at column %d", x)
		}
	}
	for y := 0; y < d.Height; y++ {
		if d.Tiles[y][0] != TileWall || d.Tiles[y][d.Width-1] != TileWall {
			rt.Fatalf("border breached at row %d", y)
		}
	}
}

// checkSeparation compares raw coordinates: two boxes each grown by 2 stay
// disjoint only when at least 4 tiles lie between the rooms on some axis.
func checkSeparation(rt *rapid.T, d *Dungeon) {
	const gap = 4
	for i := range d.Rooms {
		for j := i + 1; j < len(d.Rooms); j++ {
			a, b := d.Rooms[i], d.Rooms[j]
			apart := a.X+a.Width+gap <= b.X || b.X+b.Width+gap <= a.X ||
				a.Y+a.Height+gap <= b.Y || b.Y+b.Height+gap <= a.Y
			if !apart {
				rt.Fatalf("rooms %d and %d are too close: %+v %+v", i, j, d.Rooms[i], d.Rooms[j])
			}
		}
	}
}

// checkConnectivity flood-fills from the start and expects to reach every
// passable tile.
func checkConnectivity(rt *rapid.T, d *Dungeon) {
	if len(d.Rooms) == 0 {
		return
	}

	total := 0
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if d.Tiles[y][x].IsPassable() {
				total++
			}
		}
	}

	seen := map[entity.Position]bool{d.StartRoom: true}
	queue := []entity.Position{d.StartRoom}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, step := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := cur.Add(step[0], step[1])
			if !seen[next] && d.IsPassable(next) {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	if len(seen) != total {
		rt.Fatalf("reached %d of %d passable tiles", len(seen), total)
	}
}

func checkPopulation(rt *rapid.T, d *Dungeon) {
	for i, room := range d.Rooms {
		if i == 0 {
			if len(room.Enemies) != 0 || len(room.Items) != 0 {
				rt.Fatalf("first room is populated")
			}
			continue
		}
		if n := len(room.Enemies); n < 1 || n > 3 {
			rt.Fatalf("room %d has %d enemies", i, n)
		}
		if n := len(room.Items); n > 2 {
			rt.Fatalf("room %d has %d items", i, n)
		}
		for _, e := range room.Enemies {
			if !room.Contains(e.Position) {
				rt.Fatalf("enemy %s outside room %d", e.ID, i)
			}
			if e.Stats.Level < 1 || e.Stats.Level > 5 || e.Stats != entity.EnemyStats(e.Stats.Level) {
				rt.Fatalf("enemy %s has bad stats %+v", e.ID, e.Stats)
			}
		}
		for _, it := range room.Items {
			if it.Position == nil || !room.Contains(*it.Position) {
				rt.Fatalf("item %s outside room %d", it.ID, i)
			}
		}
	}
}

func TestRoomGeometry(t *testing.T) {
	r := Room{X: 2, Y: 3, Width: 5, Height: 4}

	if c := r.Center(); c != (entity.Position{X: 4, Y: 5}) {
		t.Errorf("Center() = %v, want (4,5)", c)
	}
	if !r.Contains(entity.Position{X: 6, Y: 6}) || r.Contains(entity.Position{X: 7, Y: 6}) {
		t.Error("Contains() boundary mismatch")
	}

	// Rooms closer than the margin intersect once expanded.
	other := Room{X: 10, Y: 3, Width: 3, Height: 3}
	if r.Intersects(other) {
		t.Error("rooms should not intersect without margin")
	}
	if !r.Expand(2).Intersects(other.Expand(2)) {
		t.Error("expanded rooms should intersect")
	}
}

func TestTilePassable(t *testing.T) {
	tests := []struct {
		tile Tile
		want bool
	}{
		{TileWall, false},
		{TileDoor, false},
		{TileFloor, true},
		{TileStairsUp, true},
		{TileStairsDown, true},
	}
	for _, tt := range tests {
		if got := tt.tile.IsPassable(); got != tt.want {
			t.Errorf("%c.IsPassable() = %v, want %v", tt.tile, got, tt.want)
		}
	}
}
