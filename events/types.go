package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventAdvisoryDecision delivers a difficulty decision from the advisor
	// Trigger: Advisor goroutine | Consumer: DifficultySystem
	// Payload: *AdvisoryDecisionPayload
	EventAdvisoryDecision EventType = iota

	// EventAdvisoryFailed reports an advisor error or timeout
	// Consumer: DifficultySystem (stays neutral) | Payload: *AdvisoryFailedPayload
	EventAdvisoryFailed

	// EventCommentary delivers a commentary line
	// Trigger: Advisor goroutine | Consumer: Game (HUD text) | Payload: *CommentaryPayload
	EventCommentary

	// EventCountdownTick signals a countdown step (3, 2, 1, 0 for GO)
	// Payload: *CountdownPayload
	EventCountdownTick

	// EventRaceStarted signals the end of the countdown | Payload: nil
	EventRaceStarted

	// EventCollision signals a vehicle-obstacle hit
	// Consumer: Audio, Game (commentary) | Payload: *CollisionPayload
	EventCollision

	// EventBoostStarted signals boost activation | Payload: *BoostPayload
	EventBoostStarted

	// EventLapCompleted signals a finished lap | Payload: *LapPayload
	EventLapCompleted

	// EventGameOver signals the terminal transition, emitted exactly once per race
	// Consumer: Game (result callback), Lobby, Audio | Payload: *GameOverPayload
	EventGameOver

	// EventDifficultyChanged signals a modifier applied or reverted
	// Payload: *DifficultyPayload
	EventDifficultyChanged

	// EventAdvisoryRequest asks the frame loop owner to consult the game master
	// Trigger: DifficultySystem interval | Consumer: Game -> advisor.Dispatcher
	// Payload: *AdvisoryRequestPayload
	EventAdvisoryRequest

	// EventCommentaryRequest asks for a commentary line on a race situation
	// Consumer: Game -> advisor.Dispatcher | Payload: *CommentaryRequestPayload
	EventCommentaryRequest
)

// String returns the event type name
func (t EventType) String() string {
	switch t {
	case EventAdvisoryDecision:
		return "AdvisoryDecision"
	case EventAdvisoryFailed:
		return "AdvisoryFailed"
	case EventCommentary:
		return "Commentary"
	case EventCountdownTick:
		return "CountdownTick"
	case EventRaceStarted:
		return "RaceStarted"
	case EventCollision:
		return "Collision"
	case EventBoostStarted:
		return "BoostStarted"
	case EventLapCompleted:
		return "LapCompleted"
	case EventGameOver:
		return "GameOver"
	case EventDifficultyChanged:
		return "DifficultyChanged"
	case EventAdvisoryRequest:
		return "AdvisoryRequest"
	case EventCommentaryRequest:
		return "CommentaryRequest"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64
	Timestamp time.Time
}
