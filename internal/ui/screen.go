// Package ui provides the terminal frontend using tcell.
package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen    tcell.Screen
	closeOnce sync.Once
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes an existing tcell screen, such as a simulation
// screen in tests.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state. Safe to call more
// than once.
func (s *Screen) Close() {
	s.closeOnce.Do(s.screen.Fini)
}

// PollEvent waits for and returns the next terminal event.
// It returns nil once the screen has been closed.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes a string starting at (x, y), clipped at maxWidth cells.
func (s *Screen) DrawText(x, y, maxWidth int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= maxWidth {
			return
		}
		s.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}
