package engine

// GamePhase is the session lifecycle state
type GamePhase int

const (
	PhaseIdle GamePhase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns the phase name
func (p GamePhase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhasePlaying:
		return "PLAYING"
	case PhasePaused:
		return "PAUSED"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "Unknown"
	}
}

// validTransitions lists the allowed edges; GAME_OVER leaves only through Reset
var validTransitions = map[GamePhase][]GamePhase{
	PhaseIdle:     {PhasePlaying},
	PhasePlaying:  {PhasePaused, PhaseGameOver},
	PhasePaused:   {PhasePlaying, PhaseGameOver},
	PhaseGameOver: {},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to GamePhase) bool {
	for _, phase := range validTransitions[from] {
		if phase == to {
			return true
		}
	}
	return false
}
