// Package config loads simulation settings from defaults, a YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/waving-simulation/chain"
	"github.com/lixenwraith/waving-simulation/render"
)

// ErrInvalid is wrapped by validation failures
var ErrInvalid = errors.New("invalid config")

// ErrUnsupportedFormat is returned for config files that are not YAML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Defaults: 10 chains, 33ms tick, 20-unit grid
const (
	DefaultTickInterval = 33 * time.Millisecond
	DefaultChains       = 10
	DefaultBackground   = "#222222"
	DefaultGridScale    = 20.0
	DefaultAudioBase    = 110.0
	DefaultAudioSpread  = 0.5
	DefaultAudioVolume  = 0.2
)

// Config is the full simulation configuration
type Config struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Chains       int           `yaml:"chains"`
	Background   string        `yaml:"background"`
	// Zoom is the world-to-pixel scale; 0 fits the chain reach to the surface height
	Zoom   float64     `yaml:"zoom"`
	Anchor string      `yaml:"anchor"`
	Chain  ChainConfig `yaml:"chain"`
	Grid   GridConfig  `yaml:"grid"`
	Audio  AudioConfig `yaml:"audio"`
}

// ChainConfig is the per-chain section; Color is "#rrggbb"
type ChainConfig struct {
	Length    int     `yaml:"length"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Color     string  `yaml:"color"`
}

// GridConfig controls the background grid and its line spacing divisor
type GridConfig struct {
	Show  bool    `yaml:"show"`
	Scale float64 `yaml:"scale"`
}

// AudioConfig controls the optional drone
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
	// BaseFreq is the drone pitch in Hz at zero root rotation
	BaseFreq float64 `yaml:"base_freq"`
	// Spread is the relative pitch swing at full amplitude
	Spread float64 `yaml:"spread"`
	Volume float64 `yaml:"volume"`
}

// Default returns the built-in configuration
func Default() Config {
	def := chain.DefaultConfig()
	return Config{
		TickInterval: DefaultTickInterval,
		Chains:       DefaultChains,
		Background:   DefaultBackground,
		Zoom:         0,
		Anchor:       def.Anchor.String(),
		Chain: ChainConfig{
			Length:    def.Length,
			Amplitude: def.Amplitude,
			Frequency: def.Frequency,
			Color:     def.Color.Hex(),
		},
		Grid: GridConfig{
			Show:  false,
			Scale: DefaultGridScale,
		},
		Audio: AudioConfig{
			Enabled:  false,
			BaseFreq: DefaultAudioBase,
			Spread:   DefaultAudioSpread,
			Volume:   DefaultAudioVolume,
		},
	}
}

// Load returns defaults overlaid with the file at path (if non-empty), then validates
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Read returns defaults overlaid with the file at path (if non-empty) without validating,
// so later overrides can still correct file values
func Read(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(filepath.Ext(path), data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays data onto cfg; fields absent from data keep their values
// Unknown keys are rejected
func Decode(ext string, data []byte, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			// Empty document leaves defaults untouched
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Validate checks ranges and that derived values parse
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive, got %v", ErrInvalid, c.TickInterval)
	}
	if c.Chains < 0 {
		return fmt.Errorf("%w: chains must not be negative, got %d", ErrInvalid, c.Chains)
	}
	if c.Zoom < 0 {
		return fmt.Errorf("%w: zoom must not be negative, got %v", ErrInvalid, c.Zoom)
	}
	if _, err := render.ParseHex(c.Background); err != nil {
		return fmt.Errorf("%w: background %q: %v", ErrInvalid, c.Background, err)
	}
	if c.Grid.Scale <= 0 {
		return fmt.Errorf("%w: grid.scale must be positive, got %v", ErrInvalid, c.Grid.Scale)
	}
	if c.Audio.BaseFreq <= 0 {
		return fmt.Errorf("%w: audio.base_freq must be positive, got %v", ErrInvalid, c.Audio.BaseFreq)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be in [0, 1], got %v", ErrInvalid, c.Audio.Volume)
	}
	if _, err := c.ChainConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ChainConfig converts the chain section into chain parameters
func (c Config) ChainConfig() (chain.Config, error) {
	color, err := render.ParseHex(c.Chain.Color)
	if err != nil {
		return chain.Config{}, fmt.Errorf("chain.color %q: %w", c.Chain.Color, err)
	}
	anchor, err := chain.ParseAnchor(c.Anchor)
	if err != nil {
		return chain.Config{}, err
	}
	cc := chain.Config{
		Length:    c.Chain.Length,
		Amplitude: c.Chain.Amplitude,
		Frequency: c.Chain.Frequency,
		Color:     color,
		Anchor:    anchor,
	}
	return cc, cc.Validate()
}

// BackgroundRGB returns the parsed background, falling back to the default
func (c Config) BackgroundRGB() render.RGB {
	bg, err := render.ParseHex(c.Background)
	if err != nil {
		return render.RGBBackground
	}
	return bg
}
