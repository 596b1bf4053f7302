// Package audio plays a continuous drone whose pitch follows the tentacle sway.
package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/waving-simulation/vmath"
)

// Drone is an endless sine streamer; frequency = base * (1 + spread * swing)
// Swing is written by the tick goroutine and read by the audio goroutine through an atomic
type Drone struct {
	base   float64
	spread float64
	rate   beep.SampleRate

	swing atomic.Uint64 // float64 bits
	phase float64
}

// NewDrone creates a drone at base Hz with the given relative pitch swing
func NewDrone(base, spread float64, rate beep.SampleRate) *Drone {
	return &Drone{base: base, spread: spread, rate: rate}
}

// SetSwing stores the normalized sway in [-1, 1]; out of range values are clamped, NaN is treated as 0
func (d *Drone) SetSwing(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	d.swing.Store(math.Float64bits(vmath.Clamp(v, -1, 1)))
}

// Swing returns the last stored sway
func (d *Drone) Swing() float64 {
	return math.Float64frombits(d.swing.Load())
}

// Frequency returns the current pitch in Hz
func (d *Drone) Frequency() float64 {
	return d.base * (1 + d.spread*d.Swing())
}

func (d *Drone) Stream(samples [][2]float64) (n int, ok bool) {
	step := d.Frequency() / float64(d.rate)
	for i := range samples {
		val := math.Sin(2 * math.Pi * d.phase)
		samples[i][0] = val
		samples[i][1] = val

		d.phase += step
		d.phase -= math.Floor(d.phase)
	}
	return len(samples), true
}

func (d *Drone) Err() error { return nil }

// newVolume wraps s with a linear gain; zero or negative volume is silent
// math.Log2(0) is -Inf, so silence is set explicitly
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
