// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Store it as a World resource so hosts and systems can reach it.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The imgui.ini file is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Frame wraps a world update in an ImGui frame, so render functions deferred
// by the debug systems run between BeginFrame and EndFrame.
func (b ImguiBackend) Frame(update func()) {
	b.BeginFrame()
	defer b.EndFrame()
	update()
}

// Overlay draws the ImGui output on top of the screen.
func (b ImguiBackend) Overlay(screen *ebiten.Image) {
	b.Draw(screen)
}
