package main

import (
	"github.com/plus3/lxecs/internal/platformer"
)

// frameBuffer is the Canvas of the window host. The render system fills the
// back buffer during Update and Present swaps it with the front buffer that
// Draw paints, since ebiten only allows drawing inside Game.Draw.
type frameBuffer struct {
	back   []platformer.Sprite
	front  []platformer.Sprite
	frames uint64
}

func (b *frameBuffer) Clear() {
	b.back = b.back[:0]
}

func (b *frameBuffer) Draw(sprite platformer.Sprite) {
	b.back = append(b.back, sprite)
}

func (b *frameBuffer) Present() {
	b.front, b.back = b.back, b.front
	b.frames++
}

// Frame returns the sprites of the last presented frame.
func (b *frameBuffer) Frame() []platformer.Sprite {
	return b.front
}
