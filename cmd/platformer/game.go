package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/lxecs/ecs"
	"github.com/plus3/lxecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/lxecs/ecs/debugui/ebiten"
	"github.com/plus3/lxecs/internal/platformer"
)

// keyboard reads the arrow keys. Keys are ignored while the debug UI has
// keyboard focus.
type keyboard struct {
	imgui *debugui.ImguiInputState
}

func axis(negative, positive ebiten.Key) int {
	d := 0
	if ebiten.IsKeyPressed(negative) {
		d--
	}
	if ebiten.IsKeyPressed(positive) {
		d++
	}
	return d
}

func (k *keyboard) Axis() (int, int) {
	if k.imgui != nil && k.imgui.WantCaptureKeyboard {
		return 0, 0
	}
	return axis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight), axis(ebiten.KeyArrowUp, ebiten.KeyArrowDown)
}

// Game implements ebiten.Game around a platformer world.
type Game struct {
	world   *ecs.World
	canvas  *frameBuffer
	backend *debugui_ebiten.ImguiBackend
	width   int
	height  int
}

func (g *Game) Update() error {
	if g.backend == nil {
		g.world.Tick()
		return nil
	}
	// Systems run inside the ImGui frame so deferred render calls land in it
	g.backend.Frame(g.world.Tick)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, sprite := range g.canvas.Frame() {
		r := sprite.Rect
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), sprite.Color, false)
	}

	if g.backend != nil {
		g.backend.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.width, g.height
}

// newWorld builds the demo world. With a backend the debug UI systems run
// after the game systems.
func newWorld(devices platformer.Devices, arena platformer.Arena, backend *debugui_ebiten.ImguiBackend, extra ...ecs.System) *ecs.World {
	if backend == nil {
		return platformer.NewWorld(devices, arena, extra...)
	}

	registry := platformer.NewRegistry()
	debugui.RegisterDebugUIComponents(registry)

	debugSystem := &debugui.DebugUISystem{Registry: registry}
	systems := append(platformer.Systems(devices), extra...)
	systems = append(systems, &debugui.ImguiSystem{}, debugSystem)

	world := ecs.NewWorld(registry,
		ecs.WithSystems(systems...),
		ecs.WithResources(arena, debugui.ImguiInputState{}, *backend),
	)
	debugSystem.Stats = world.Dispatcher().Stats
	debugui.SpawnDebugUI(world.Storage())
	return world
}
