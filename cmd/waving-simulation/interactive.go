package main

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/waving-simulation/audio"
	"github.com/lixenwraith/waving-simulation/config"
	"github.com/lixenwraith/waving-simulation/engine"
	"github.com/lixenwraith/waving-simulation/render"
	"github.com/lixenwraith/waving-simulation/scene"
)

// runInteractive owns the terminal for the lifetime of the animation
func runInteractive(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Runs before main's panic recovery, restoring the terminal on crash
	defer screen.Fini()

	screen.HideCursor()
	screen.Clear()
	return animate(ctx, screen, cfg, logger)
}

type cellSize struct{ w, h int }

// guard converts a goroutine panic into an error so the errgroup unwinds and the screen is restored
func guard(name string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s crashed: %v\n%s", name, r, debug.Stack())
			}
		}()
		return fn()
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// animate drives the scene on screen until ctx ends or a quit key is pressed
// Only the tick goroutine touches the scene and canvas; input forwards resizes through a channel
func animate(ctx context.Context, screen tcell.Screen, cfg config.Config, logger *zap.Logger) error {
	w, h := screen.Size()
	pw, ph := render.PixelSizeForCells(w, h)
	canvas := render.NewCanvas(pw, ph, 1)
	sc, err := scene.New(cfg, canvas, logger)
	if err != nil {
		return err
	}

	player := audio.NewPlayer(cfg.Audio, logger)
	if err := player.Start(); err != nil {
		if !errors.Is(err, audio.ErrDisabled) {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		}
	}
	defer player.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	resizes := make(chan cellSize, 1)
	events := make(chan tcell.Event, 64)

	g.Go(guard("event poller", func() error {
		screen.ChannelEvents(events, gctx.Done())
		return nil
	}))

	g.Go(guard("input", func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if isQuit(ev) {
						logger.Info("quit requested")
						cancel()
						return nil
					}
				case *tcell.EventResize:
					ew, eh := ev.Size()
					// Keep only the latest size
					select {
					case <-resizes:
					default:
					}
					resizes <- cellSize{ew, eh}
				}
			}
		}
	}))

	var cells []render.Cell
	sched := engine.NewScheduler(cfg.TickInterval, func(uint64) error {
		select {
		case size := <-resizes:
			sc.Resize(render.PixelSizeForCells(size.w, size.h))
			screen.Clear()
		default:
		}

		sc.Update()
		player.SetSwing(sc.RootSwing())

		var cw, ch int
		cells, cw, ch = render.Cells(canvas, cells)
		render.FlushToScreen(screen, cells, cw, ch)
		return nil
	})
	g.Go(guard("scheduler", func() error {
		return sched.Run(gctx)
	}))

	err = g.Wait()
	logger.Info("stopped",
		zap.Uint64("ticks", sched.Ticks()),
		zap.Duration("interval", sched.Interval()),
		zap.Error(err),
	)
	return err
}
