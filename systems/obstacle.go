package systems

import (
	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
)

// ObstacleSystem scrolls obstacles at world speed and culls those past the bottom edge
type ObstacleSystem struct{}

func NewObstacleSystem() *ObstacleSystem {
	return &ObstacleSystem{}
}

func (obs *ObstacleSystem) Priority() int {
	return constants.PriorityObstacle
}

func (obs *ObstacleSystem) Update(s *engine.SimulationState, f *Frame) {
	if !s.Racing || s.Over() {
		return
	}

	ws := s.WorldSpeed()
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		o.Y += ws
		if o.Kind == components.ObstacleRotating {
			o.Rotation += constants.RotatingHazardSpin
		}
		if o.Y > constants.TrackHeight {
			continue
		}
		kept = append(kept, o)
	}
	clear(s.Obstacles[len(kept):])
	s.Obstacles = kept
}
