package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// App runs the terminal frontend for a session. Only the goroutine calling
// Run touches the session; terminal events arrive over a channel.
type App struct {
	screen   *Screen
	renderer *Renderer
	session  *game.Session
	tick     time.Duration
	logger   *zap.Logger

	showInventory bool
	message       string
	running       bool
}

// NewApp creates the frontend. tick is how often time-driven game logic runs.
func NewApp(screen *Screen, session *game.Session, registry *gamedata.Registry, tick time.Duration, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen, registry),
		session:  session,
		tick:     tick,
		logger:   logger,
		running:  true,
	}
}

// Run executes the main loop until the player quits or ctx is cancelled.
// The screen is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Close()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event)
	go a.pollEvents(events, done)

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	for a.running {
		a.renderer.Render(a.View())

		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handleEvent(ctx, ev)
		case <-ticker.C:
			a.session.Tick(ctx)
		}
	}

	a.logger.Info("player quit", zap.Int("floor", a.session.Floor()))
	return nil
}

// pollEvents forwards terminal events until the screen closes or done fires.
func (a *App) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// View assembles the current frame from the session.
func (a *App) View() View {
	return View{
		Dungeon:       a.session.Dungeon(),
		Floor:         a.session.Floor(),
		Mode:          a.session.Mode(),
		Player:        a.session.Player(),
		Enemies:       a.session.Enemies(),
		Items:         a.session.Items(),
		Combat:        a.session.Combat(),
		Inventory:     a.session.SortedInventory(),
		ShowInventory: a.showInventory,
		Message:       a.message,
	}
}

// Running reports whether the loop should continue.
func (a *App) Running() bool { return a.running }

func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.HandleKey(ctx, ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

// HandleKey processes keyboard input for the current mode.
func (a *App) HandleKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
		a.running = false
		return
	}

	switch a.session.Mode() {
	case game.ModeGameOver:
		if isConfirm(ev) {
			a.session.AcknowledgeCombat()
			a.session.Restart(ctx)
			a.message = "A new adventure begins."
		}
	case game.ModeCombat:
		a.handleCombatKey(ctx, ev)
	default:
		a.handleExploreKey(ctx, ev)
	}
}

func (a *App) handleCombatKey(ctx context.Context, ev *tcell.EventKey) {
	phase := a.session.Combat().Phase
	if phase.Resolved() {
		if isConfirm(ev) {
			a.session.AcknowledgeCombat()
		}
		return
	}

	switch {
	case ev.Key() == tcell.KeyEnter:
		a.session.PlayerAttack(ctx)
	case ev.Key() == tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			a.session.PlayerAttack(ctx)
		case 'f', 'F':
			a.session.PlayerFlee(ctx)
		default:
			a.handleInventoryKey(ev.Rune())
		}
	}
}

func (a *App) handleExploreKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		a.move(ctx, 0, -1)
	case tcell.KeyDown:
		a.move(ctx, 0, 1)
	case tcell.KeyLeft:
		a.move(ctx, -1, 0)
	case tcell.KeyRight:
		a.move(ctx, 1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			a.move(ctx, 0, -1)
		case 's', 'S':
			a.move(ctx, 0, 1)
		case 'a', 'A':
			a.move(ctx, -1, 0)
		case 'd', 'D':
			a.move(ctx, 1, 0)
		case '>':
			if a.session.Descend(ctx) {
				a.message = "You descend deeper into the dungeon."
			} else {
				a.message = "There are no stairs down here."
			}
		default:
			a.handleInventoryKey(ev.Rune())
		}
	}
}

// handleInventoryKey covers the inventory keys shared by explore and combat.
func (a *App) handleInventoryKey(r rune) {
	switch {
	case r == 'i' || r == 'I':
		a.showInventory = !a.showInventory
	case r >= '1' && r <= '9':
		a.activateItem(int(r - '1'))
	case r == 'x' || r == 'X':
		a.unequip(a.session.Player().Equipment.Weapon)
	case r == 'z' || r == 'Z':
		a.unequip(a.session.Player().Equipment.Armor)
	}
}

// activateItem equips or uses the n-th item of the sorted inventory.
func (a *App) activateItem(n int) {
	inv := a.session.SortedInventory()
	if n < 0 || n >= len(inv) {
		return
	}
	it := inv[n]
	if it.Equippable() {
		a.message = a.session.EquipItem(it.ID)
	} else {
		a.message = a.session.UseItem(it.ID)
	}
}

func (a *App) unequip(it *entity.Item) {
	if it == nil {
		a.message = "Nothing to unequip."
		return
	}
	a.message = a.session.UnequipItem(it.ID)
}

func (a *App) move(ctx context.Context, dx, dy int) {
	res := a.session.MoveBy(ctx, dx, dy)
	switch {
	case res.Outcome == game.MoveEngaged:
		a.message = ""
	case len(res.PickedUp) == 1:
		a.message = "You pick up " + res.PickedUp[0].Name + "."
	case len(res.PickedUp) > 1:
		a.message = "You pick up several items."
	case res.Moved() && a.session.OnStairsDown():
		a.message = "Stairs lead down. Press > to descend."
	case res.Moved():
		a.message = ""
	}
}

func isConfirm(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ')
}
