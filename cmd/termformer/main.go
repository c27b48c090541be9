// Command termformer runs the demo in a terminal: move '@' with the arrow keys
// until it touches 'X'. Esc or q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

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

func openLogger(path string, level zerolog.Level) (worldlog.Logger, io.Closer, error) {
	if path == "" {
		return worldlog.New(io.Discard, zerolog.Disabled), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return worldlog.Logger{}, nil, eris.Wrapf(err, "opening log file %s", path)
	}
	return worldlog.New(f, level), f, nil
}

func run() error {
	cfg, err := config.LoadHost()
	if err != nil {
		return eris.Wrap(err, "loading config")
	}

	logPath := flag.String("log", "", "Write JSON logs to this file; the terminal is busy drawing.")
	mute := flag.Bool("mute", !cfg.Sound, "Disable the collision sound.")
	speed := flag.Int("speed", 8, "Player speed in world units per key press.")
	flag.Parse()

	logger, closer, err := openLogger(*logPath, cfg.Level())
	if err != nil {
		return err
	}
	defer closer.Close()

	var sounder platformer.Sounder
	if !*mute {
		player := sound.NewPlayer()
		if err := player.Init(); err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, running silent")
		} else {
			defer player.Close()
			sounder = player
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return eris.Wrap(err, "creating screen")
	}
	if err := screen.Init(); err != nil {
		return eris.Wrap(err, "initializing screen")
	}
	defer screen.Fini()

	arena := platformer.Arena{Width: cfg.Width, Height: cfg.Height, Speed: *speed}
	h := newHost(screen, arena, sounder, logger)
	logger.LogWorld(h.world, zerolog.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h.run(ctx, cfg.TickInterval())
	logger.Info().Uint64("ticks", h.world.TickCount()).Msg("quit")
	return nil
}
