// Package scene composes the chains, background and optional grid into one animated frame.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/waving-simulation/chain"
	"github.com/lixenwraith/waving-simulation/config"
	"github.com/lixenwraith/waving-simulation/render"
	"github.com/lixenwraith/waving-simulation/vmath"
)

// Scene owns the chains and draws them onto a canvas once per tick
// Not safe for concurrent use; the tick goroutine is the only caller
type Scene struct {
	cfg    config.Config
	chain  chain.Config
	canvas *render.Canvas
	logger *zap.Logger

	chains     []*chain.Chain
	background render.RGB
	resolution float64
	tick       uint64
}

// New builds cfg.Chains chains, chain i positioned at (grid.scale*i, 0)
func New(cfg config.Config, canvas *render.Canvas, logger *zap.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cc, err := cfg.ChainConfig()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scene{
		cfg:        cfg,
		chain:      cc,
		canvas:     canvas,
		logger:     logger,
		chains:     make([]*chain.Chain, 0, cfg.Chains),
		background: cfg.BackgroundRGB(),
	}

	for i := 0; i < cfg.Chains; i++ {
		c, err := chain.New(cc)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", i, err)
		}
		c.SetPos(vmath.V2(cfg.Grid.Scale*float64(i), 0))
		s.chains = append(s.chains, c)
	}

	s.layout()
	return s, nil
}

// FitZoom returns the world-to-pixel scale that keeps every chain's reach inside a pw x ph canvas
func FitZoom(pw, ph, chains int, cc chain.Config, gridScale float64) float64 {
	reach := float64(cc.Length+1)*chain.SegmentThickness + chain.SegmentLength
	spread := 0.0
	if cc.Anchor == chain.AnchorOffset && chains > 1 {
		spread = gridScale * float64(chains-1)
	}

	zoom := min(float64(ph)/2/reach, float64(pw)/2/(spread+reach))
	if zoom <= 0 || !vmath.IsFinite(zoom) {
		return 1
	}
	return zoom
}

// layout applies the zoom and recomputes the grid spacing for the current canvas size
func (s *Scene) layout() {
	zoom := s.cfg.Zoom
	if zoom == 0 {
		pw, ph := s.canvas.PixelSize()
		zoom = FitZoom(pw, ph, len(s.chains), s.chain, s.cfg.Grid.Scale)
	}
	s.canvas.SetZoom(zoom)
	s.resolution = float64(s.canvas.Width()) / 2 / s.cfg.Grid.Scale
}

// Resize changes the canvas pixel size, then re-fits zoom and grid
func (s *Scene) Resize(pw, ph int) {
	s.canvas.Resize(pw, ph)
	s.layout()
	s.logger.Debug("scene resized",
		zap.Int("pixel_width", pw),
		zap.Int("pixel_height", ph),
		zap.Float64("zoom", s.canvas.Zoom()),
		zap.Float64("grid_resolution", s.resolution),
	)
}

// Update clears the frame, draws the grid if enabled and advances every chain once
func (s *Scene) Update() {
	s.canvas.Reset()
	s.canvas.Clear(s.background)

	if s.cfg.Grid.Show {
		s.drawGrid()
	}
	for _, c := range s.chains {
		c.Update(s.canvas)
	}
	s.tick++
}

// drawGrid draws light lines every resolution units mirrored from the center, then the axes
func (s *Scene) drawGrid() {
	if s.resolution <= 0 || !vmath.IsFinite(s.resolution) {
		return
	}

	w, h := float64(s.canvas.Width()), float64(s.canvas.Height())
	cx, cy := w/2, h/2
	// One pixel in world units
	line := 1 / s.canvas.Zoom()

	s.canvas.Save()
	s.canvas.SetFill(render.RGBGridLine.Opaque())
	for k := 0.0; k*s.resolution <= cx; k++ {
		s.canvas.FillRect(cx+k*s.resolution, 0, line, h)
		s.canvas.FillRect(cx-k*s.resolution, 0, line, h)
	}
	for k := 0.0; k*s.resolution <= cy; k++ {
		s.canvas.FillRect(0, cy+k*s.resolution, w, line)
		s.canvas.FillRect(0, cy-k*s.resolution, w, line)
	}

	s.canvas.SetFill(render.RGBRed.Opaque())
	s.canvas.FillRect(cx, 0, line, h)
	s.canvas.SetFill(render.RGBGreen.Opaque())
	s.canvas.FillRect(0, cy, w, line)
	s.canvas.Restore()
}

// Canvas returns the drawing surface
func (s *Scene) Canvas() *render.Canvas {
	return s.canvas
}

// Chains returns the chains in draw order
func (s *Scene) Chains() []*chain.Chain {
	return s.chains
}

// Tick returns the number of completed updates
func (s *Scene) Tick() uint64 {
	return s.tick
}

// GridResolution returns the grid line spacing in world units
func (s *Scene) GridResolution() float64 {
	return s.resolution
}

// RootSwing returns the first chain's root rotation normalized to [-1, 1] by the amplitude
// Zero when there are no chains, no frame has been built, or the amplitude is zero
func (s *Scene) RootSwing() float64 {
	if len(s.chains) == 0 || s.chain.Amplitude == 0 {
		return 0
	}
	root, ok := s.chains[0].Root()
	if !ok {
		return 0
	}
	return vmath.Clamp(root.Rotation/vmath.DegToRad(s.chain.Amplitude), -1, 1)
}
