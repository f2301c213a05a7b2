package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-racer/constants"
)

// EngineParams maps vehicle speed to drone pitch, rumble rate and gain
func EngineParams(speed float64) (freq, rumble, gain float64) {
	if speed < 0 {
		speed = 0
	}
	freq = constants.EngineIdleFreq + speed*constants.EngineFreqPerUnit
	rumble = constants.EngineRumbleBase + speed*constants.EngineRumbleUnit
	gain = constants.EngineVolumeBase + speed*constants.EngineVolumeUnit
	return freq, rumble, gain
}

// EngineDrone is an endless saw tone whose pitch wobbles at the rumble rate
// Parameters are written by the game goroutine and read on the speaker goroutine
type EngineDrone struct {
	rate       beep.SampleRate
	master     float64
	freqBits   atomic.Uint64
	rumbleBits atomic.Uint64
	gainBits   atomic.Uint64
	phase      float64
	lfoPhase   float64
}

// NewEngineDrone creates a drone at idle
func NewEngineDrone(rate beep.SampleRate, master float64) *EngineDrone {
	e := &EngineDrone{rate: rate, master: master}
	e.SetSpeed(0)
	return e
}

// SetSpeed retunes the drone
func (e *EngineDrone) SetSpeed(speed float64) {
	freq, rumble, gain := EngineParams(speed)
	e.freqBits.Store(math.Float64bits(freq))
	e.rumbleBits.Store(math.Float64bits(rumble))
	e.gainBits.Store(math.Float64bits(gain))
}

// Frequency returns the current base pitch
func (e *EngineDrone) Frequency() float64 {
	return math.Float64frombits(e.freqBits.Load())
}

func (e *EngineDrone) Stream(samples [][2]float64) (n int, ok bool) {
	freq := math.Float64frombits(e.freqBits.Load())
	rumble := math.Float64frombits(e.rumbleBits.Load())
	gain := math.Float64frombits(e.gainBits.Load()) * e.master
	sr := float64(e.rate)

	for i := range samples {
		f := freq + constants.EngineRumbleDepth*waveAt(WaveSquare, e.lfoPhase)
		val := gain * waveAt(WaveSaw, e.phase)
		samples[i][0] = val
		samples[i][1] = val

		e.phase += f / sr
		e.phase -= math.Floor(e.phase)
		e.lfoPhase += rumble / sr
		e.lfoPhase -= math.Floor(e.lfoPhase)
	}
	return len(samples), true
}

func (e *EngineDrone) Err() error { return nil }
