package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/lxecs/ecs"
	"github.com/plus3/lxecs/internal/platformer"
	"github.com/plus3/lxecs/internal/worldlog"
)

// host drives a platformer world from a tcell screen.
type host struct {
	screen tcell.Screen
	world  *ecs.World
	canvas *termCanvas
	keys   *termKeys
	demo   platformer.Demo
	logger worldlog.Logger
}

func newHost(screen tcell.Screen, arena platformer.Arena, sound platformer.Sounder, logger worldlog.Logger, extra ...ecs.System) *host {
	h := &host{
		screen: screen,
		canvas: newTermCanvas(screen, arena.Width, arena.Height),
		keys:   &termKeys{},
		logger: logger,
	}
	devices := platformer.Devices{Keys: h.keys, Canvas: h.canvas, Sound: sound}
	h.world = platformer.NewWorld(devices, arena, extra...)
	h.demo = platformer.SpawnDemo(h.world)
	return h
}

// handle applies one terminal event and reports whether the host should stop.
func (h *host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.keys.Handle(ev)
	case *tcell.EventResize:
		h.screen.Sync()
		h.canvas.Resize()
	}
	return false
}

func (h *host) tick() {
	touching := platformer.Touching(h.world.Storage(), h.demo.Player)
	h.world.Tick()
	if !touching && platformer.Touching(h.world.Storage(), h.demo.Player) {
		h.logger.Debug().Uint64("tick", h.world.TickCount()).Msg("player hit enemy")
	}
}

// run ticks the world at interval until ctx is done or a quit key arrives.
func (h *host) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go h.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || h.handle(ev) {
				return
			}
		case <-ticker.C:
			h.tick()
		}
	}
}
