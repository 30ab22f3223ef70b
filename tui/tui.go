// Package tui renders the world map display on a tcell screen and runs the
// fixed-rate render loop.
package tui

import (
	"github.com/gdamore/tcell/v2"
)

// Style assignment by glyph class: the marker and highlight runes get their
// own colors, every other non-space glyph is land.
var (
	styleHeader    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHeaderVal = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleSeparator = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLand      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDense     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleOcean     = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleMarker    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// MarkerGlyph overwrites the cell at the projected location.
const MarkerGlyph = 'X'

// TUI wraps a tcell screen with the drawing and event handling the render
// loop needs.
type TUI struct {
	screen tcell.Screen
	quit   chan struct{}
}

// New initializes a real terminal screen.
func New() (*TUI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an already-initialized screen. Tests hand in a
// tcell simulation screen.
func NewWithScreen(screen tcell.Screen) *TUI {
	return &TUI{
		screen: screen,
		quit:   make(chan struct{}),
	}
}

// Close restores the terminal.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// Size returns the current terminal dimensions in cells.
func (t *TUI) Size() (width, height int) {
	return t.screen.Size()
}

// Quit is closed when the user asks to exit.
func (t *TUI) Quit() <-chan struct{} {
	return t.quit
}

// StartEventLoop consumes terminal events in the background: exit keys
// close the quit channel, resize events resync the screen (the render loop
// picks the new size up on its next tick).
func (t *TUI) StartEventLoop() {
	go func() {
		for {
			ev := t.screen.PollEvent()
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyCtrlC, tcell.KeyEscape:
					close(t.quit)
					return
				case tcell.KeyRune:
					switch ev.Rune() {
					case 'q', 'Q', 'x', 'X':
						close(t.quit)
						return
					}
				}
			case *tcell.EventResize:
				t.screen.Sync()
			case nil:
				return
			}
		}
	}()
}

// Draw flushes a composed frame: header line, separator, then the map grid
// with per-rune styling. The whole screen is cleared and redrawn; tcell
// diffs cells against the terminal on Show.
func (t *TUI) Draw(f Frame, markOcean bool) {
	t.screen.Clear()
	width, height := t.screen.Size()

	t.drawHeader(f, width)

	for y, row := range f.Rows {
		sy := headerRows + y
		if sy >= height {
			break
		}
		x, col := 0, 0
		for _, r := range row {
			if x >= width {
				break
			}
			style := styleLand
			switch {
			case y == f.MarkerRow && col == f.MarkerCol:
				style = styleMarker
			case r == '@':
				style = styleDense
			case r == ' ':
				if !markOcean {
					x++
					col++
					continue
				}
				r = '.'
				style = styleOcean
			}
			t.screen.SetContent(x, sy, r, nil, style)
			x += runeDisplayWidth(r)
			col++
		}
	}

	t.screen.Show()
}

// drawHeader renders the info line and a separator under it. Label text is
// cyan, values yellow, matching the upstream layout.
func (t *TUI) drawHeader(f Frame, width int) {
	x := 0
	x = t.drawText(x, 0, "External IP: ", styleHeader)
	x = t.drawText(x, 0, f.IP, styleHeaderVal)
	x = t.drawText(x, 0, " -- Location: ", styleHeader)
	x = t.drawText(x, 0, f.Place, styleHeaderVal)
	t.drawText(x, 0, " -- (Updates every "+f.Interval+")", styleSeparator)

	for i := 0; i < width; i++ {
		t.screen.SetContent(i, 1, '-', nil, styleSeparator)
	}
}

func (t *TUI) drawText(x, y int, text string, style tcell.Style) int {
	width, _ := t.screen.Size()
	for _, r := range text {
		if x >= width {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
