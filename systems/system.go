package systems

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
)

// Frame carries the per-frame collaborators every system reads
type Frame struct {
	Now   time.Time
	Input components.Input
	Rand  *rand.Rand // Gameplay draws: spawn lanes and kinds
	FX    *rand.Rand // Particles and starfield only
	Queue *events.EventQueue

	// Starfield turns smoke into stars and drifts a starfield (space themes)
	Starfield bool
}

// emit pushes an event stamped with the current frame
func (f *Frame) emit(s *engine.SimulationState, t events.EventType, payload any) {
	if f.Queue == nil {
		return
	}
	f.Queue.Push(events.GameEvent{
		Type:      t,
		Payload:   payload,
		Frame:     s.Frame,
		Timestamp: f.Now,
	})
}

// System is one stage of the simulation step
type System interface {
	Priority() int
	Update(s *engine.SimulationState, f *Frame)
}
