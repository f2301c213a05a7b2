package systems

import (
	"fmt"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
)

// ProgressSystem accrues score and distance and completes laps
type ProgressSystem struct{}

func NewProgressSystem() *ProgressSystem {
	return &ProgressSystem{}
}

func (ps *ProgressSystem) Priority() int {
	return constants.PriorityProgress
}

func (ps *ProgressSystem) Update(s *engine.SimulationState, f *Frame) {
	if !s.Racing || s.Over() {
		return
	}

	s.Score++
	s.Distance += s.WorldSpeed()

	laps := int(s.Distance / constants.TrackLength)
	if laps <= s.Laps {
		return
	}
	s.Laps = laps
	f.emit(s, events.EventLapCompleted, &events.LapPayload{Lap: laps, Target: s.LapTarget})

	if laps >= s.LapTarget {
		finish(s, f, engine.OutcomeWin)
		return
	}

	spawnText(s, s.Vehicle.PositionX, constants.VehicleRowY-30, fmt.Sprintf("LAP %d/%d", laps+1, s.LapTarget), colorGold)
	f.emit(s, events.EventCommentaryRequest, &events.CommentaryRequestPayload{
		Situation: fmt.Sprintf("Lap %d of %d complete, score %d", laps, s.LapTarget, s.Score),
	})
}

// finish records the terminal outcome; the Over guard in every caller makes this run once
func finish(s *engine.SimulationState, f *Frame, outcome engine.Outcome) {
	if s.Over() {
		return
	}
	s.Outcome = outcome
	s.RaceEnd = f.Now

	situation := "Defeat!"
	if outcome == engine.OutcomeWin {
		situation = "A spectacular victory!"
	}

	f.emit(s, events.EventGameOver, &events.GameOverPayload{
		Score: s.Score,
		IsWin: outcome == engine.OutcomeWin,
		Laps:  s.Laps,
	})
	f.emit(s, events.EventCommentaryRequest, &events.CommentaryRequestPayload{Situation: situation, Force: true})
}
