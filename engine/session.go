package engine

import (
	"time"

	"github.com/segmentio/ksuid"

	"github.com/lixenwraith/vi-racer/components"
)

// RaceSession holds the per-race identity and stakes, fixed when the race is created
type RaceSession struct {
	ID        ksuid.KSUID
	Vehicle   components.VehicleSpec
	Theme     string
	LapTarget int
	Wager     float64
	Pot       float64
	Seed      uint64
	CreatedAt time.Time
}

// NewRaceSession creates a session with a fresh sortable ID
func NewRaceSession(vehicle components.VehicleSpec, theme string, lapTarget int, wager, pot float64, seed uint64, now time.Time) *RaceSession {
	id, err := ksuid.NewRandomWithTime(now)
	if err != nil {
		id = ksuid.New()
	}
	return &RaceSession{
		ID:        id,
		Vehicle:   vehicle,
		Theme:     theme,
		LapTarget: lapTarget,
		Wager:     wager,
		Pot:       pot,
		Seed:      seed,
		CreatedAt: now,
	}
}

// SessionResult is delivered to the host exactly once per session
type SessionResult struct {
	SessionID string  `json:"sessionId" msgpack:"sessionId"`
	Score     int     `json:"score" msgpack:"score"`
	IsWin     bool    `json:"isWin" msgpack:"isWin"`
	Wager     float64 `json:"wager" msgpack:"wager"`
	Pot       float64 `json:"pot" msgpack:"pot"`
	Laps      int     `json:"laps" msgpack:"laps"`
}

// Result builds the session result from final race figures
func (s *RaceSession) Result(score int, isWin bool, laps int) SessionResult {
	return SessionResult{
		SessionID: s.ID.String(),
		Score:     score,
		IsWin:     isWin,
		Wager:     s.Wager,
		Pot:       s.Pot,
		Laps:      laps,
	}
}
