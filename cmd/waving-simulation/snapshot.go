package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/lixenwraith/waving-simulation/config"
	"github.com/lixenwraith/waving-simulation/render"
	"github.com/lixenwraith/waving-simulation/scene"
)

type snapshotOptions struct {
	Width, Height int // cells
	Frames        int
	Digest        bool
}

// runSnapshot advances the scene Frames times without a terminal
// Each frame is written as ANSI art, or as "frame N <digest>" when Digest is set
func runSnapshot(w io.Writer, cfg config.Config, logger *zap.Logger, opts snapshotOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	pw, ph := render.PixelSizeForCells(opts.Width, opts.Height)
	canvas := render.NewCanvas(pw, ph, 1)
	sc, err := scene.New(cfg, canvas, logger)
	if err != nil {
		return err
	}

	var cells []render.Cell
	for frame := 1; frame <= opts.Frames; frame++ {
		sc.Update()

		if opts.Digest {
			if _, err := fmt.Fprintf(w, "frame %d %016x\n", frame, canvas.Digest()); err != nil {
				return err
			}
			continue
		}

		var cw, ch int
		cells, cw, ch = render.Cells(canvas, cells)
		if err := render.WriteANSI(w, cells, cw, ch, render.ANSIOptions{Home: frame > 1}); err != nil {
			return fmt.Errorf("write frame %d: %w", frame, err)
		}
	}

	logger.Debug("snapshot done", zap.Int("frames", opts.Frames), zap.Uint64("ticks", sc.Tick()))
	return nil
}
