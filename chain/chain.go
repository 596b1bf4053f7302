package chain

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/lixenwraith/waving-simulation/render"
	"github.com/lixenwraith/waving-simulation/vmath"
)

// ErrInvalidConfig is wrapped by every chain configuration error
var ErrInvalidConfig = errors.New("invalid chain configuration")

// Default chain parameters
const (
	DefaultLength    = 30
	DefaultAmplitude = 20.0 // degrees
	DefaultFrequency = 0.05 // phase per tick
)

// DefaultColor is the base chain color, rgb(28,252,252)
var DefaultColor = render.RGB{R: 28, G: 252, B: 252}

// Anchor selects how the chain position affects drawing
type Anchor uint8

const (
	// AnchorOffset translates the drawing by the chain position, so the root appears at center+position
	AnchorOffset Anchor = iota
	// AnchorCenter ignores the chain position; every chain roots at the surface center
	AnchorCenter
)

func (a Anchor) String() string {
	switch a {
	case AnchorOffset:
		return "offset"
	case AnchorCenter:
		return "center"
	default:
		return fmt.Sprintf("anchor(%d)", uint8(a))
	}
}

// ParseAnchor accepts "offset" or "center", case-insensitive
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "offset", "":
		return AnchorOffset, nil
	case "center", "centre":
		return AnchorCenter, nil
	default:
		return 0, fmt.Errorf("%w: unknown anchor %q", ErrInvalidConfig, s)
	}
}

// Config holds the chain parameters
type Config struct {
	Length    int        // segment count parameter; the chain holds Length+1 segments
	Amplitude float64    // maximum rotation swing in degrees
	Frequency float64    // phase advance per Update
	Color     render.RGB // base color; alpha is derived per segment
	Anchor    Anchor
}

// DefaultConfig returns the default parameters
func DefaultConfig() Config {
	return Config{
		Length:    DefaultLength,
		Amplitude: DefaultAmplitude,
		Frequency: DefaultFrequency,
		Color:     DefaultColor,
		Anchor:    AnchorOffset,
	}
}

// Validate rejects parameters that would produce non-finite segments
func (c Config) Validate() error {
	if c.Length <= 0 {
		return fmt.Errorf("%w: length must be positive, got %d", ErrInvalidConfig, c.Length)
	}
	if !vmath.IsFinite(c.Amplitude) || c.Amplitude < 0 {
		return fmt.Errorf("%w: amplitude must be finite and non-negative, got %v", ErrInvalidConfig, c.Amplitude)
	}
	if !vmath.IsFinite(c.Frequency) || c.Frequency < 0 {
		return fmt.Errorf("%w: frequency must be finite and non-negative, got %v", ErrInvalidConfig, c.Frequency)
	}
	if c.Anchor > AnchorCenter {
		return fmt.Errorf("%w: unknown anchor %d", ErrInvalidConfig, c.Anchor)
	}
	return nil
}

// Chain owns an ordered sequence of segments rebuilt from (delta, position) on every Build
type Chain struct {
	cfg      Config
	segments []Segment
	delta    float64
	position vmath.Vector2
}

// New creates a chain with zero phase at position (0, 0)
func New(cfg Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chain{
		cfg:      cfg,
		segments: make([]Segment, 0, cfg.Length+1),
	}, nil
}

// RotationAt returns the rotation in degrees of segment i for phase delta
// Each index lags the previous by 1/length, so the wave travels root to tail as delta grows
func RotationAt(delta float64, i, length int, amplitude float64) float64 {
	return math.Sin(delta-float64(i)/float64(length)) * amplitude
}

// AlphaAt returns the opacity of segment i: 0 at the root, 1 at the tail
func AlphaAt(i, length int) float64 {
	return float64(i) / float64(length)
}

// Build discards the current segments and reconstructs them from the current phase, then draws them
func (c *Chain) Build(surface Surface) {
	c.segments = c.segments[:0]

	surface.Save()
	if c.cfg.Anchor == AnchorOffset {
		surface.Translate(c.position.X, c.position.Y)
	}

	var parent *Segment
	for i := 0; i <= c.cfg.Length; i++ {
		rotation := RotationAt(c.delta, i, c.cfg.Length, c.cfg.Amplitude)
		color := c.cfg.Color.WithAlpha(AlphaAt(i, c.cfg.Length))
		c.segments = append(c.segments, NewSegment(surface, parent, rotation, color))
		parent = &c.segments[i]
	}

	for _, s := range c.segments {
		s.Show(surface)
	}

	surface.Restore()
}

// Update advances the phase by the configured frequency and rebuilds
func (c *Chain) Update(surface Surface) {
	c.delta += c.cfg.Frequency
	c.Build(surface)
}

// SetPos replaces the chain position; it takes effect on the next Build
func (c *Chain) SetPos(position vmath.Vector2) {
	c.position.Set(position)
}

// Position returns the chain position
func (c *Chain) Position() vmath.Vector2 {
	return c.position
}

// Delta returns the phase accumulator
func (c *Chain) Delta() float64 {
	return c.delta
}

// Segments returns a copy of the segments from the last Build
func (c *Chain) Segments() []Segment {
	return slices.Clone(c.segments)
}

// Root returns the first segment of the last Build
func (c *Chain) Root() (Segment, bool) {
	if len(c.segments) == 0 {
		return Segment{}, false
	}
	return c.segments[0], true
}
