package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvChains    = "WAVING_CHAINS"
	EnvLength    = "WAVING_LENGTH"
	EnvAmplitude = "WAVING_AMPLITUDE"
	EnvFrequency = "WAVING_FREQUENCY"
	EnvTick      = "WAVING_TICK"
	EnvZoom      = "WAVING_ZOOM"
	EnvGrid      = "WAVING_GRID"
	EnvAudio     = "WAVING_AUDIO"
	EnvAnchor    = "WAVING_ANCHOR"
	EnvConfig    = "WAVING_CONFIG"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// Variables already set are not overridden; a missing file is not an error
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays WAVING_* variables from the process environment
func (c *Config) ApplyEnv() error {
	return c.ApplyLookup(os.LookupEnv)
}

// ApplyLookup overlays variables resolved by lookup, then validates
func (c *Config) ApplyLookup(lookup func(string) (string, bool)) error {
	var errs []error
	parse := func(key string, apply func(string) error) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		if err := apply(v); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err))
		}
	}

	parse(EnvChains, func(v string) (err error) {
		c.Chains, err = strconv.Atoi(v)
		return err
	})
	parse(EnvLength, func(v string) (err error) {
		c.Chain.Length, err = strconv.Atoi(v)
		return err
	})
	parse(EnvAmplitude, func(v string) (err error) {
		c.Chain.Amplitude, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse(EnvFrequency, func(v string) (err error) {
		c.Chain.Frequency, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse(EnvTick, func(v string) (err error) {
		c.TickInterval, err = time.ParseDuration(v)
		return err
	})
	parse(EnvZoom, func(v string) (err error) {
		c.Zoom, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse(EnvGrid, func(v string) (err error) {
		c.Grid.Show, err = strconv.ParseBool(v)
		return err
	})
	parse(EnvAudio, func(v string) (err error) {
		c.Audio.Enabled, err = strconv.ParseBool(v)
		return err
	})
	parse(EnvAnchor, func(v string) error {
		c.Anchor = v
		return nil
	})

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return c.Validate()
}
