package systems

import (
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
)

// CountdownSystem runs 3-2-1-GO and starts the race
type CountdownSystem struct{}

func NewCountdownSystem() *CountdownSystem {
	return &CountdownSystem{}
}

func (cs *CountdownSystem) Priority() int {
	return constants.PriorityCountdown
}

func (cs *CountdownSystem) Update(s *engine.SimulationState, f *Frame) {
	if s.Racing || s.Over() {
		return
	}

	elapsed := f.Now.Sub(s.CountdownStart)
	if elapsed >= constants.CountdownDuration {
		s.Racing = true
		s.RaceStart = f.Now
		s.LastSpawn = f.Now
		s.NextAdvisory = f.Now.Add(constants.AdvisoryInterval)
		s.CountdownStep = 0

		spawnText(s, s.Vehicle.PositionX, constants.VehicleRowY-20, "GO!", colorGold)
		f.emit(s, events.EventCountdownTick, &events.CountdownPayload{Step: 0})
		f.emit(s, events.EventRaceStarted, nil)
		f.emit(s, events.EventCommentaryRequest, &events.CommentaryRequestPayload{Situation: "GO! GO! GO!", Force: true})
		return
	}

	step := constants.CountdownSteps - int(elapsed/constants.CountdownStep)
	if step != s.CountdownStep {
		s.CountdownStep = step
		f.emit(s, events.EventCountdownTick, &events.CountdownPayload{Step: step})
	}
}
