package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/vi-racer/constants"
)

// Config holds audio settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
	CueVolumes   [cueCount]float64
}

// DefaultConfig returns the built-in audio settings
func DefaultConfig() *Config {
	cfg := &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   constants.AudioSampleRate,
	}
	cfg.CueVolumes[CueCountdown] = 0.2
	cfg.CueVolumes[CueGo] = 0.2
	cfg.CueVolumes[CueCollision] = 0.6
	cfg.CueVolumes[CueNitro] = 0.2
	cfg.CueVolumes[CueVictory] = 0.1
	cfg.CueVolumes[CueDefeat] = 0.05
	return cfg
}

// LoadConfig loads audio configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("VI_RACER_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is given as 0-100
	if volume := os.Getenv("VI_RACER_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		}
	}

	// Per-cue volumes as JSON, e.g. {"collision":0.4}
	if cueVols := os.Getenv("VI_RACER_SFX_VOLUMES"); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			for name, v := range volumes {
				if cue, ok := ParseCue(name); ok {
					cfg.CueVolumes[cue] = clampUnit(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv("VI_RACER_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
