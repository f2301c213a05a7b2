package systems

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// newRacingState returns a state past its countdown, racing since now
func newRacingState(t *testing.T, now time.Time) *engine.SimulationState {
	t.Helper()
	s := engine.NewSimulationState(components.VehicleSpec{ID: "test", NitroPower: 1}, 3, now)
	s.Racing = true
	s.RaceStart = now
	s.LastSpawn = now
	s.NextAdvisory = now.Add(time.Hour)
	s.CountdownStep = 0
	return s
}

func newFrame(now time.Time, in components.Input) *Frame {
	return &Frame{
		Now:   now,
		Input: in,
		Rand:  rand.New(rand.NewPCG(1, 2)),
		FX:    rand.New(rand.NewPCG(3, 4)),
		Queue: events.NewEventQueue(),
	}
}

func held(controls ...components.Control) components.Input {
	var in components.Input
	for _, c := range controls {
		in.Held |= c
	}
	return in
}

// drainTypes consumes the queue and returns the event types in order
func drainTypes(q *events.EventQueue) []events.EventType {
	var out []events.EventType
	for _, ev := range q.Consume() {
		out = append(out, ev.Type)
	}
	return out
}

func countType(types []events.EventType, want events.EventType) int {
	n := 0
	for _, t := range types {
		if t == want {
			n++
		}
	}
	return n
}
