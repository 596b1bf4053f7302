package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/waving-simulation/chain"
	"github.com/lixenwraith/waving-simulation/render"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 33*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 10, cfg.Chains)
	assert.Equal(t, 20.0, cfg.Grid.Scale)
	assert.False(t, cfg.Grid.Show)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, render.RGBBackground, cfg.BackgroundRGB())

	cc, err := cfg.ChainConfig()
	require.NoError(t, err)
	assert.Equal(t, chain.DefaultConfig(), cc)
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := writeFile(t, "sim.yaml", `
tick_interval: 50ms
chains: 3
anchor: center
chain:
  length: 12
  color: "#ff8800"
grid:
  show: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 3, cfg.Chains)
	assert.True(t, cfg.Grid.Show)
	assert.Equal(t, DefaultGridScale, cfg.Grid.Scale, "absent keys keep defaults")

	cc, err := cfg.ChainConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cc.Length)
	assert.Equal(t, chain.DefaultAmplitude, cc.Amplitude)
	assert.Equal(t, render.RGB{R: 0xff, G: 0x88, B: 0x00}, cc.Color)
	assert.Equal(t, chain.AnchorCenter, cc.Anchor)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yaml", "chainz: 4\n"))
		require.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "sim.json", "{}"))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("zero length is a configuration error", func(t *testing.T) {
		_, err := Load(writeFile(t, "zero.yaml", "chain:\n  length: 0\n"))
		require.ErrorIs(t, err, ErrInvalid)
		require.ErrorIs(t, err, chain.ErrInvalidConfig)
	})

	t.Run("bad color", func(t *testing.T) {
		_, err := Load(writeFile(t, "color.yaml", "background: teal\n"))
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("bad anchor", func(t *testing.T) {
		_, err := Load(writeFile(t, "anchor.yaml", "anchor: sideways\n"))
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestRead_DefersValidationToOverrides(t *testing.T) {
	path := writeFile(t, "zero.yaml", "chain:\n  length: 0\n")

	cfg, err := Read(path)
	require.NoError(t, err, "read does not validate")
	assert.Equal(t, 0, cfg.Chain.Length)

	lookup := func(key string) (string, bool) {
		if key == EnvLength {
			return "8", true
		}
		return "", false
	}
	require.NoError(t, cfg.ApplyLookup(lookup))
	assert.Equal(t, 8, cfg.Chain.Length)
}

func TestValidate_Ranges(t *testing.T) {
	cases := map[string]func(*Config){
		"tick":      func(c *Config) { c.TickInterval = 0 },
		"chains":    func(c *Config) { c.Chains = -1 },
		"zoom":      func(c *Config) { c.Zoom = -0.5 },
		"gridscale": func(c *Config) { c.Grid.Scale = 0 },
		"basefreq":  func(c *Config) { c.Audio.BaseFreq = 0 },
		"volume":    func(c *Config) { c.Audio.Volume = 1.5 },
		"frequency": func(c *Config) { c.Chain.Frequency = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestApplyLookup(t *testing.T) {
	env := map[string]string{
		EnvChains:    "4",
		EnvLength:    "16",
		EnvAmplitude: "35.5",
		EnvFrequency: "0.1",
		EnvTick:      "16ms",
		EnvZoom:      "0.5",
		EnvGrid:      "true",
		EnvAudio:     "1",
		EnvAnchor:    "center",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyLookup(lookup))

	assert.Equal(t, 4, cfg.Chains)
	assert.Equal(t, 16, cfg.Chain.Length)
	assert.Equal(t, 35.5, cfg.Chain.Amplitude)
	assert.Equal(t, 0.1, cfg.Chain.Frequency)
	assert.Equal(t, 16*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 0.5, cfg.Zoom)
	assert.True(t, cfg.Grid.Show)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, "center", cfg.Anchor)
}

func TestApplyLookup_Errors(t *testing.T) {
	env := map[string]string{
		EnvChains: "many",
		EnvTick:   "soon",
	}
	cfg := Default()
	err := cfg.ApplyLookup(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), EnvChains)
	assert.Contains(t, err.Error(), EnvTick)

	cfg = Default()
	err = cfg.ApplyLookup(func(k string) (string, bool) {
		if k == EnvLength {
			return "0", true
		}
		return "", false
	})
	require.True(t, errors.Is(err, chain.ErrInvalidConfig))
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	const key = "WAVING_TEST_ONLY_KEY"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeFile(t, ".env", key+"=42\n")
	require.NoError(t, LoadEnvFile(path))
	v, ok := os.LookupEnv(key)
	require.True(t, ok)
	assert.Equal(t, "42", v)
}
