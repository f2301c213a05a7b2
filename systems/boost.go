package systems

import (
	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
)

// BoostSystem owns boost activation and expiry
// Boost raises the speed ceiling and acceleration; it never adds speed directly
type BoostSystem struct{}

func NewBoostSystem() *BoostSystem {
	return &BoostSystem{}
}

func (bs *BoostSystem) Priority() int {
	return constants.PriorityBoost
}

func (bs *BoostSystem) Update(s *engine.SimulationState, f *Frame) {
	if !s.Racing || s.Over() {
		return
	}

	b := &s.Boost
	if b.Active && !f.Now.Before(b.Until) {
		b.Active = false
		b.Source = components.BoostSourceNone
		s.Vehicle.CurrentMax = constants.BaseMaxSpeed
		if s.Vehicle.Speed > s.Vehicle.CurrentMax {
			s.Vehicle.Speed = s.Vehicle.CurrentMax
		}
	}

	if s.Spec.AutoBoost {
		if b.NextAuto.IsZero() {
			b.NextAuto = f.Now.Add(constants.AutoBoostInterval)
		} else if !f.Now.Before(b.NextAuto) {
			b.NextAuto = f.Now.Add(constants.AutoBoostInterval)
			bs.activate(s, f, components.BoostSourceAuto)
		}
	}

	if f.Input.Has(components.ControlBoost) && !f.Now.Before(b.CooldownUntil) {
		if bs.activate(s, f, components.BoostSourceManual) {
			b.CooldownUntil = f.Now.Add(constants.BoostCooldown)
		}
	}
}

// activate engages boost unless one is already running
func (bs *BoostSystem) activate(s *engine.SimulationState, f *Frame, source components.BoostSource) bool {
	b := &s.Boost
	if b.Active {
		return false
	}

	b.Active = true
	b.Source = source
	b.Until = f.Now.Add(constants.BoostDuration)
	s.Vehicle.CurrentMax = BoostedMaxSpeed(s.Spec.NitroPower)
	s.Shake = max(s.Shake, constants.BoostShake)

	cx := s.Vehicle.PositionX + constants.VehicleWidth/2
	spawnParticles(s, f, cx, constants.VehicleRowY+constants.VehicleHeight, components.ParticleFire, constants.BoostBurstCount)
	spawnText(s, s.Vehicle.PositionX, constants.VehicleRowY-10, "BOOST", colorBoost)
	f.emit(s, events.EventBoostStarted, &events.BoostPayload{Source: source})
	return true
}

// BoostedMaxSpeed returns the speed ceiling while boost is engaged
func BoostedMaxSpeed(nitroPower float64) float64 {
	if nitroPower <= 0 {
		nitroPower = 1
	}
	return constants.BaseMaxSpeed + constants.BoostSpeedBonus*nitroPower
}
