package systems

import (
	"strconv"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
)

// CollisionSystem resolves vehicle-obstacle overlaps; each obstacle damages at most once
type CollisionSystem struct{}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

func (cs *CollisionSystem) Priority() int {
	return constants.PriorityCollision
}

func (cs *CollisionSystem) Update(s *engine.SimulationState, f *Frame) {
	if !s.Racing || s.Over() {
		return
	}

	vehicle := s.Vehicle.Bounds(constants.VehicleRowY, constants.VehicleWidth, constants.VehicleHeight)

	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if !s.Over() && vehicle.Intersects(o.Bounds()) {
			cs.resolve(s, f, o)
			continue
		}
		kept = append(kept, o)
	}
	clear(s.Obstacles[len(kept):])
	s.Obstacles = kept
}

// resolve applies damage, slowdown and effects for one hit
func (cs *CollisionSystem) resolve(s *engine.SimulationState, f *Frame, o components.Obstacle) {
	v := &s.Vehicle
	v.Health -= o.Damage
	if v.Health < 0 {
		v.Health = 0
	}
	v.Speed *= constants.CollisionSpeedRetain
	s.Shake = constants.CollisionShake

	hitX := o.CenterX()
	hitY := o.Y + o.H
	spawnParticles(s, f, hitX, hitY, components.ParticleSpark, constants.CollisionBurstCount)
	spawnText(s, hitX, hitY, "-"+strconv.Itoa(o.Damage), colorDamage)

	f.emit(s, events.EventCollision, &events.CollisionPayload{
		Kind:   o.Kind,
		Damage: o.Damage,
		Health: v.Health,
		X:      hitX,
		Y:      hitY,
	})

	if v.Health == 0 {
		finish(s, f, engine.OutcomeLoss)
	}
}
