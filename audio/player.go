package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/waving-simulation/config"
)

const (
	sampleRate = beep.SampleRate(48000)
	bufferSize = 100 * time.Millisecond
)

// ErrDisabled is returned by Start when audio is turned off in the configuration
var ErrDisabled = errors.New("audio disabled")

// Player routes the drone to the system speaker
// SetSwing is safe to call whether or not the speaker started
type Player struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	logger      *zap.Logger
	drone       *Drone
	ctrl        *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a stopped player
func NewPlayer(cfg config.AudioConfig, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	drone := NewDrone(cfg.BaseFreq, cfg.Spread, sampleRate)
	return &Player{
		cfg:    cfg,
		logger: logger,
		drone:  drone,
		ctrl:   &beep.Ctrl{Streamer: newVolume(drone, cfg.Volume), Paused: true},
		mixer:  &beep.Mixer{},
	}
}

// Start initializes the speaker and begins the drone
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled {
		return ErrDisabled
	}
	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return err
	}

	p.mixer.Add(p.ctrl)
	speaker.Play(p.mixer)

	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()

	p.initialized = true
	p.logger.Info("audio started",
		zap.Int("sample_rate", int(sampleRate)),
		zap.Float64("base_freq", p.cfg.BaseFreq),
		zap.Float64("volume", p.cfg.Volume),
	)
	return nil
}

// Stop silences the drone and clears the mixer
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.ctrl.Paused = true
	p.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	p.initialized = false
	p.logger.Info("audio stopped")
}

// SetSwing forwards the normalized root sway to the drone pitch
func (p *Player) SetSwing(v float64) {
	p.drone.SetSwing(v)
}
