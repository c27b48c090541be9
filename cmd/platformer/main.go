// Command platformer runs the demo in a window: move the green square with the
// arrow keys until it touches the red one.
//
// Settings come from LXECS_* environment variables (see internal/config);
// LXECS_DEBUG=true adds the ImGui debug panels.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/lxecs/ecs"
	"github.com/plus3/lxecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/lxecs/ecs/debugui/ebiten"
	"github.com/plus3/lxecs/internal/config"
	"github.com/plus3/lxecs/internal/platformer"
	"github.com/plus3/lxecs/internal/sound"
	"github.com/plus3/lxecs/internal/worldlog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, true))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadHost()
	if err != nil {
		return eris.Wrap(err, "loading config")
	}

	debug := flag.Bool("debug", cfg.Debug, "Show the ImGui debug panels.")
	mute := flag.Bool("mute", !cfg.Sound, "Disable the collision sound.")
	speed := flag.Int("speed", 4, "Player speed in pixels per tick.")
	flag.Parse()

	logger := worldlog.NewConsole(cfg.Level())

	devices := platformer.Devices{Canvas: &frameBuffer{}}
	keys := &keyboard{}
	devices.Keys = keys

	if !*mute {
		player := sound.NewPlayer()
		if err := player.Init(); err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, running silent")
		} else {
			defer player.Close()
			devices.Sound = player
		}
	}

	var backend *debugui_ebiten.ImguiBackend
	if *debug {
		b := debugui_ebiten.NewImguiBackend("lxecs platformer", cfg.Width, cfg.Height)
		backend = &b
	} else {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowTitle("lxecs platformer")
	}
	ebiten.SetTPS(cfg.TickRate)

	stats := &worldlog.StatsSystem{
		Logger: logger.CreateSystemLogger("stats"),
		Level:  zerolog.DebugLevel,
		Every:  uint64(cfg.TickRate) * 10,
		Shape:  ecs.Shape1[platformer.XY](),
	}
	arena := platformer.Arena{Width: cfg.Width, Height: cfg.Height, Speed: *speed}
	world := newWorld(devices, arena, backend, stats)
	stats.Dispatcher = world.Dispatcher().Stats

	if state, ok := ecs.GetResource[debugui.ImguiInputState](world.Resources()); ok {
		keys.imgui = state
	}

	demo := platformer.SpawnDemo(world)
	logger.LogWorld(world, zerolog.InfoLevel)
	logger.LogEntity(zerolog.DebugLevel, world.Storage(), demo.Player)
	logger.LogEntity(zerolog.DebugLevel, world.Storage(), demo.Enemy)

	game := &Game{
		world:   world,
		canvas:  devices.Canvas.(*frameBuffer),
		backend: backend,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	if err := ebiten.RunGame(game); err != nil {
		return eris.Wrap(err, "running game")
	}
	logger.Info().Uint64("ticks", world.TickCount()).Msg("window closed")
	return nil
}
