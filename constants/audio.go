package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)

// Engine Drone (pitch and level follow vehicle speed)
const (
	EngineIdleFreq    = 60.0
	EngineFreqPerUnit = 12.0
	EngineRumbleBase  = 20.0
	EngineRumbleUnit  = 2.0
	EngineVolumeBase  = 0.05
	EngineVolumeUnit  = 0.001
	EngineRumbleDepth = 20.0
)

// Cue Timing
const (
	CountdownSoundDuration = 400 * time.Millisecond
	GoSoundDuration        = 1000 * time.Millisecond
	CollisionSoundDuration = 300 * time.Millisecond
	NitroSoundDuration     = 1200 * time.Millisecond
	VictoryNoteSpacing     = 100 * time.Millisecond
	VictoryNoteDuration    = 600 * time.Millisecond
	DefeatNoteSpacing      = 300 * time.Millisecond
	DefeatNoteDuration     = 500 * time.Millisecond
	CueAttack              = 5 * time.Millisecond
)
