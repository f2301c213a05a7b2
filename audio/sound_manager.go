package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-racer/constants"
)

// SoundManager manages all game audio
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	engine      *EngineDrone
	engineCtrl  *beep.Ctrl
	initialized bool
	muted       atomic.Bool
}

// NewSoundManager creates a sound manager; a nil config uses defaults
func NewSoundManager(cfg *Config) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	sm.engine = NewEngineDrone(rate, sm.cfg.MasterVolume)
	sm.engineCtrl = &beep.Ctrl{Streamer: sm.engine, Paused: true}
	sm.mixer.Add(sm.engineCtrl)

	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Debug("audio initialized", "rate", sm.cfg.SampleRate)
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.engineCtrl.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Clear()
	sm.initialized = false
}

// Play starts a one-shot cue unless muted
func (sm *SoundManager) Play(cue Cue) {
	if sm.muted.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := GetCueSound(cue, sm.cfg)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// StartEngine unpauses the engine drone unless muted
func (sm *SoundManager) StartEngine() {
	sm.setEnginePaused(sm.muted.Load())
}

// StopEngine pauses the engine drone
func (sm *SoundManager) StopEngine() {
	sm.setEnginePaused(true)
}

func (sm *SoundManager) setEnginePaused(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.engineCtrl.Paused = paused
	speaker.Unlock()
}

// SetEngineSpeed retunes the drone to the vehicle speed
func (sm *SoundManager) SetEngineSpeed(speed float64) {
	sm.mu.Lock()
	engine := sm.engine
	sm.mu.Unlock()

	if engine != nil {
		engine.SetSpeed(speed)
	}
}

// SetMuted mutes or unmutes all audio; muting also silences the drone
func (sm *SoundManager) SetMuted(muted bool) {
	sm.muted.Store(muted)
	if muted {
		sm.StopEngine()
	}
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// IsInitialized reports whether the speaker is open
func (sm *SoundManager) IsInitialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}
