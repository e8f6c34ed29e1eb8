package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

const (
	sidebarWidth = 32
	maxInventory = 9
)

var (
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// View is everything the renderer needs for one frame.
type View struct {
	Dungeon       *world.Dungeon
	Floor         int
	Mode          game.Mode
	Player        entity.Player
	Enemies       []entity.Enemy
	Items         []entity.Item
	Combat        game.CombatSnapshot
	Inventory     []entity.Item // Sorted for display
	ShowInventory bool
	Message       string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen   *Screen
	registry *gamedata.Registry
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, registry *gamedata.Registry) *Renderer {
	return &Renderer{screen: screen, registry: registry}
}

// Render draws a full frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	width, height := r.screen.Size()
	mapWidth := max(width-sidebarWidth, 0)
	mapHeight := max(height-1, 0)
	camX, camY := camera(v.Player.Position, v.Dungeon, mapWidth, mapHeight)

	r.renderMap(v, camX, camY, mapWidth, mapHeight)
	r.renderSidebar(v, mapWidth+1, height)
	if v.Message != "" {
		r.screen.DrawText(0, height-1, width, v.Message, textStyle)
	}

	r.screen.Show()
}

// camera returns the top-left map cell of a viewport centered on the player.
func camera(focus entity.Position, d *world.Dungeon, viewW, viewH int) (int, int) {
	x := clamp(focus.X-viewW/2, 0, max(d.Width-viewW, 0))
	y := clamp(focus.Y-viewH/2, 0, max(d.Height-viewH, 0))
	return x, y
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func (r *Renderer) renderMap(v View, camX, camY, viewW, viewH int) {
	visible := func(p entity.Position) (int, int, bool) {
		sx, sy := p.X-camX, p.Y-camY
		return sx, sy, sx >= 0 && sx < viewW && sy >= 0 && sy < viewH
	}

	// Draw dungeon tiles
	for y := camY; y < min(camY+viewH, v.Dungeon.Height); y++ {
		for x := camX; x < min(camX+viewW, v.Dungeon.Width); x++ {
			tile := v.Dungeon.Tiles[y][x]
			r.screen.SetContent(x-camX, y-camY, tile.Rune(), tileStyle(tile))
		}
	}

	for _, it := range v.Items {
		if it.Position == nil {
			continue
		}
		if sx, sy, ok := visible(*it.Position); ok {
			r.screen.SetContent(sx, sy, r.itemGlyph(it), r.rarityStyle(it.Rarity))
		}
	}

	for _, e := range v.Enemies {
		if !e.IsAlive() {
			continue
		}
		if sx, sy, ok := visible(e.Position); ok {
			glyph, style := r.enemyAppearance(e.Type)
			r.screen.SetContent(sx, sy, glyph, style)
		}
	}

	// Draw player on top
	if sx, sy, ok := visible(v.Player.Position); ok {
		r.screen.SetContent(sx, sy, '@', playerStyle)
	}
}

func (r *Renderer) renderSidebar(v View, x, height int) {
	w := sidebarWidth - 1
	y := 0
	line := func(text string, style tcell.Style) {
		if y < height-1 {
			r.screen.DrawText(x, y, w, text, style)
		}
		y++
	}

	p := v.Player
	line(fmt.Sprintf("Floor %d", v.Floor), titleStyle)
	line(fmt.Sprintf("HP  %d/%d", p.Stats.Health, p.Stats.MaxHealth), textStyle)
	line(fmt.Sprintf("ATK %d  DEF %d", p.Stats.Attack, p.Stats.Defense), textStyle)
	line(fmt.Sprintf("LVL %d  XP %d/%d", p.Stats.Level, p.Stats.Experience, combat.LevelThreshold(p.Stats.Level)), textStyle)
	line("Weapon: "+equippedName(p.Equipment.Weapon), dimStyle)
	line("Armor:  "+equippedName(p.Equipment.Armor), dimStyle)
	line(fmt.Sprintf("Bag: %d/%d", len(p.Inventory), entity.InventoryCapacity), dimStyle)
	y++

	switch {
	case v.Mode == game.ModeGameOver:
		line("GAME OVER", alertStyle)
		line("You have fallen in the dungeon...", textStyle)
		line("Enter: restart  q: quit", dimStyle)
		y++
		for _, msg := range v.Combat.Log {
			line(msg, dimStyle)
		}
	case v.Combat.Active():
		r.renderCombat(v.Combat, line)
	case v.ShowInventory:
		r.renderInventory(v.Inventory, line)
	default:
		line("arrows/wasd move  > descend", dimStyle)
		line("i inventory  q quit", dimStyle)
	}
}

func (r *Renderer) renderCombat(c game.CombatSnapshot, line func(string, tcell.Style)) {
	if c.Enemy != nil {
		name := string(c.Enemy.Type)
		if def := r.registry.Enemy(c.Enemy.Type); def != nil {
			name = def.Name
		}
		line(fmt.Sprintf("Combat with %s", name), titleStyle)
		line(fmt.Sprintf("Enemy HP %d/%d", c.Enemy.Stats.Health, c.Enemy.Stats.MaxHealth), alertStyle)
	} else {
		line("Combat", titleStyle)
	}

	switch c.Phase {
	case game.PhasePlayerTurn:
		line("Your Turn - a: attack  f: flee", textStyle)
	case game.PhaseEnemyTurn:
		line("Enemy Turn", alertStyle)
	default:
		line("Enter: continue", textStyle)
	}

	for _, msg := range c.Log {
		line(msg, dimStyle)
	}
}

func (r *Renderer) renderInventory(items []entity.Item, line func(string, tcell.Style)) {
	line("Inventory (1-9 use/equip, x/z unequip)", titleStyle)
	if len(items) == 0 {
		line("Your inventory is empty.", dimStyle)
		return
	}
	for i, it := range items {
		if i >= maxInventory {
			line(fmt.Sprintf("... and %d more", len(items)-maxInventory), dimStyle)
			return
		}
		line(fmt.Sprintf("%d %c %s", i+1, r.itemGlyph(it), it.Name), r.rarityStyle(it.Rarity))
	}
}

func (r *Renderer) itemGlyph(it entity.Item) rune {
	if def := r.registry.Items().Type(it.Type); def != nil {
		return def.GlyphRune()
	}
	return '?'
}

func (r *Renderer) rarityStyle(rarity entity.Rarity) tcell.Style {
	return tcell.StyleDefault.Foreground(gamedata.ColorOr(r.registry.RarityColor(rarity), tcell.ColorWhite))
}

func (r *Renderer) enemyAppearance(t entity.EnemyType) (rune, tcell.Style) {
	def := r.registry.Enemy(t)
	if def == nil {
		return '?', alertStyle
	}
	return def.GlyphRune(), tcell.StyleDefault.Foreground(def.TCellColor())
}

func equippedName(it *entity.Item) string {
	if it == nil {
		return "-"
	}
	return it.Name
}

// tileStyle returns the appropriate style for a tile type.
func tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileStairsUp, world.TileStairsDown:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	default:
		return tcell.StyleDefault
	}
}
