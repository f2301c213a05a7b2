package audio

import "errors"

// Cue is a one-shot sound effect
type Cue int

const (
	CueCountdown Cue = iota // 3-2-1 beep
	CueGo                   // Race start
	CueCollision            // Obstacle impact
	CueNitro                // Boost sweep
	CueVictory              // Rising arpeggio
	CueDefeat               // Falling minor line
	cueCount
)

var cueNames = [cueCount]string{"countdown", "go", "collision", "nitro", "victory", "defeat"}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// ParseCue matches a cue name
func ParseCue(name string) (Cue, bool) {
	for i, n := range cueNames {
		if n == name {
			return Cue(i), true
		}
	}
	return 0, false
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled by configuration")
)
