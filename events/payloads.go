package events

import (
	"github.com/lixenwraith/vi-racer/components"
)

// AdvisoryDecisionPayload is a validated difficulty decision
type AdvisoryDecisionPayload struct {
	RequestID              string
	SpeedModifier          float64
	ObstacleRateMultiplier float64
	EventLabel             string
}

// AdvisoryFailedPayload carries the failure reason; the simulation stays neutral
type AdvisoryFailedPayload struct {
	RequestID string
	Err       error
}

// CommentaryPayload carries one commentary line
type CommentaryPayload struct {
	RequestID string
	Text      string
}

// CountdownPayload carries the remaining countdown step, 0 means GO
type CountdownPayload struct {
	Step int
}

// CollisionPayload describes a resolved hit
type CollisionPayload struct {
	Kind   components.ObstacleKind
	Damage int
	Health int // Health after the hit
	X, Y   float64
}

// BoostPayload describes a boost activation
type BoostPayload struct {
	Source components.BoostSource
}

// LapPayload reports lap progress
type LapPayload struct {
	Lap    int // Laps completed
	Target int
}

// GameOverPayload is the race result
type GameOverPayload struct {
	Score int
	IsWin bool
	Laps  int
}

// DifficultyPayload reports the modifier now in effect
type DifficultyPayload struct {
	Modifier components.DifficultyModifier
	Reverted bool
}

// AdvisoryRequestPayload carries the race figures the game master decides on
type AdvisoryRequestPayload struct {
	Score int
	Speed float64
}

// CommentaryRequestPayload describes the situation to comment on
// Forced requests bypass the commentary throttle
type CommentaryRequestPayload struct {
	Situation string
	Force     bool
}
