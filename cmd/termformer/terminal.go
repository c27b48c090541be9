package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/lxecs/internal/platformer"
)

// termCanvas draws sprites as glyph blocks on a tcell screen. World units are
// scaled down so the whole arena fits the terminal.
type termCanvas struct {
	screen         tcell.Screen
	worldW, worldH int
	scaleX, scaleY int
}

func newTermCanvas(screen tcell.Screen, worldW, worldH int) *termCanvas {
	c := &termCanvas{screen: screen, worldW: worldW, worldH: worldH}
	c.Resize()
	return c
}

// Resize recomputes the scale from the current screen size.
func (c *termCanvas) Resize() {
	cols, rows := c.screen.Size()
	c.scaleX = ceilDiv(c.worldW, max(cols, 1))
	c.scaleY = ceilDiv(c.worldH, max(rows, 1))
}

func ceilDiv(a, b int) int {
	return max(1, (a+b-1)/b)
}

// Cell maps a world position to a screen cell.
func (c *termCanvas) Cell(x, y int) (int, int) {
	return x / c.scaleX, y / c.scaleY
}

func styleOf(sprite platformer.Sprite) tcell.Style {
	fg := tcell.NewRGBColor(int32(sprite.Color.R), int32(sprite.Color.G), int32(sprite.Color.B))
	return tcell.StyleDefault.Foreground(fg)
}

func (c *termCanvas) Clear() {
	c.screen.Clear()
}

func (c *termCanvas) Draw(sprite platformer.Sprite) {
	x0, y0 := c.Cell(sprite.Rect.X, sprite.Rect.Y)
	w := max(1, sprite.Rect.W/c.scaleX)
	h := max(1, sprite.Rect.H/c.scaleY)
	style := styleOf(sprite)

	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			c.screen.SetContent(x, y, sprite.Glyph, nil, style)
		}
	}
}

func (c *termCanvas) Present() {
	c.screen.Show()
}

// termKeys turns arrow key events into one step per event. Terminals report
// presses and repeats but never releases.
type termKeys struct {
	dx, dy int
}

func (k *termKeys) Axis() (int, int) {
	dx, dy := k.dx, k.dy
	k.dx, k.dy = 0, 0
	return dx, dy
}

// Handle records an arrow key and reports whether ev asks to quit.
func (k *termKeys) Handle(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		k.dx = -1
	case tcell.KeyRight:
		k.dx = 1
	case tcell.KeyUp:
		k.dy = -1
	case tcell.KeyDown:
		k.dy = 1
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
