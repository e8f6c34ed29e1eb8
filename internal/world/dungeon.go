package world

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/item"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

// roomMargin is the clearance kept around every room's bounding box.
const roomMargin = 2

// Params controls the size and density of a generated floor.
type Params struct {
	Width       int
	Height      int
	MaxRooms    int // Placement attempts; each failed attempt is skipped
	MinRoomSize int // Inclusive
	MaxRoomSize int // Exclusive
}

// DefaultParams returns the standard floor layout parameters.
func DefaultParams() Params {
	return Params{
		Width:       80,
		Height:      60,
		MaxRooms:    15,
		MinRoomSize: 6,
		MaxRoomSize: 12,
	}
}

// Dungeon represents one generated floor. Tiles are not modified after
// generation.
type Dungeon struct {
	Width     int
	Height    int
	Tiles     [][]Tile
	Rooms     []Room
	StartRoom entity.Position
	EndRoom   entity.Position
}

// NewDungeon creates a new dungeon filled with walls.
func NewDungeon(width, height int) *Dungeon {
	width, height = max(width, 0), max(height, 0)
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Dungeon{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		Rooms:  make([]Room, 0),
	}
}

// InBounds returns true if p lies on the grid.
func (d *Dungeon) InBounds(p entity.Position) bool {
	return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
}

// IsPassable returns true if the given position can be walked on.
func (d *Dungeon) IsPassable(p entity.Position) bool {
	if !d.InBounds(p) {
		return false
	}
	return d.Tiles[p.Y][p.X].IsPassable()
}

// GetTile returns the tile at the given position.
func (d *Dungeon) GetTile(p entity.Position) Tile {
	if !d.InBounds(p) {
		return TileWall
	}
	return d.Tiles[p.Y][p.X]
}

// Generator builds dungeons from a random source.
type Generator struct {
	src    rng.Source
	items  *item.Factory
	logger *zap.Logger
}

// NewGenerator creates a generator. A nil logger disables logging.
func NewGenerator(src rng.Source, items *item.Factory, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{src: src, items: items, logger: logger}
}

// Generate creates a floor: rooms by rejection sampling, each room chained to
// the previous one by an L-shaped corridor, then populated and given stairs.
func (g *Generator) Generate(ctx context.Context, p Params) *Dungeon {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()
	d := NewDungeon(p.Width, p.Height)

	attempts := 0
	for i := 0; i < p.MaxRooms; i++ {
		attempts++
		room, ok := g.sampleRoom(d, p)
		if !ok || d.overlaps(room) {
			continue
		}

		d.carveRoom(room)
		if len(d.Rooms) > 0 {
			d.carveCorridor(g.src, d.Rooms[len(d.Rooms)-1], room)
		}
		d.Rooms = append(d.Rooms, room)
	}

	// The first room is the safe arrival room.
	for i := 1; i < len(d.Rooms); i++ {
		g.populateRoom(&d.Rooms[i])
	}

	d.placeStairs()

	enemies, items := d.population()
	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.room_attempts", attempts),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.enemy_count", enemies),
		attribute.Int("dungeon.item_count", items),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	g.logger.Debug("dungeon generated",
		zap.Int("width", d.Width),
		zap.Int("height", d.Height),
		zap.Int("rooms", len(d.Rooms)),
		zap.Int("enemies", enemies),
		zap.Int("items", items),
	)

	return d
}

// sampleRoom draws one candidate room. It reports false when a room of the
// drawn size cannot fit inside the 1-tile border.
func (g *Generator) sampleRoom(d *Dungeon, p Params) (Room, bool) {
	width := rng.Range(g.src, p.MinRoomSize, p.MaxRoomSize)
	height := rng.Range(g.src, p.MinRoomSize, p.MaxRoomSize)
	if width < 1 || height < 1 {
		return Room{}, false
	}

	spanX := d.Width - width - 2
	spanY := d.Height - height - 2
	if spanX <= 0 || spanY <= 0 {
		return Room{}, false
	}

	return Room{
		X:      g.src.Intn(spanX) + 1,
		Y:      g.src.Intn(spanY) + 1,
		Width:  width,
		Height: height,
	}, true
}

// overlaps reports whether room, with its margin, touches any accepted room's margin.
func (d *Dungeon) overlaps(room Room) bool {
	candidate := room.Expand(roomMargin)
	for _, existing := range d.Rooms {
		if candidate.Intersects(existing.Expand(roomMargin)) {
			return true
		}
	}
	return false
}

// carveRoom sets all tiles within the room to floor.
func (d *Dungeon) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.carve(x, y)
		}
	}
}

// carveCorridor joins the centers of two rooms with an L-shaped corridor.
func (d *Dungeon) carveCorridor(src rng.Source, room1, room2 Room) {
	c1 := room1.Center()
	c2 := room2.Center()

	// Randomly choose to go horizontal-then-vertical or vertical-then-horizontal
	if src.Intn(2) == 0 {
		d.carveHorizontalTunnel(c1.X, c2.X, c1.Y)
		d.carveVerticalTunnel(c1.Y, c2.Y, c2.X)
	} else {
		d.carveVerticalTunnel(c1.Y, c2.Y, c1.X)
		d.carveHorizontalTunnel(c1.X, c2.X, c2.Y)
	}
}

// carveHorizontalTunnel carves a horizontal tunnel.
func (d *Dungeon) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		d.carve(x, y)
	}
}

// carveVerticalTunnel carves a vertical tunnel.
func (d *Dungeon) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		d.carve(x, y)
	}
}

// carve turns an interior tile into floor. The outer ring always stays wall.
func (d *Dungeon) carve(x, y int) {
	if x > 0 && x < d.Width-1 && y > 0 && y < d.Height-1 {
		d.Tiles[y][x] = TileFloor
	}
}

// placeStairs puts the stairs in the first and last rooms, or falls back to
// the default corners when no room was placed.
func (d *Dungeon) placeStairs() {
	if len(d.Rooms) == 0 {
		d.StartRoom = entity.Position{X: 1, Y: 1}
		d.EndRoom = entity.Position{X: d.Width - 2, Y: d.Height - 2}
		return
	}

	d.StartRoom = d.Rooms[0].Center()
	d.EndRoom = d.Rooms[len(d.Rooms)-1].Center()
	d.Tiles[d.StartRoom.Y][d.StartRoom.X] = TileStairsUp
	d.Tiles[d.EndRoom.Y][d.EndRoom.X] = TileStairsDown
}

// population counts the enemies and items spawned across all rooms.
func (d *Dungeon) population() (enemies, items int) {
	for _, room := range d.Rooms {
		enemies += len(room.Enemies)
		items += len(room.Items)
	}
	return enemies, items
}
