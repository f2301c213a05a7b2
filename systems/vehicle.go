package systems

import (
	"math"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
)

// VehicleSystem integrates longitudinal speed, steering with grip loss, tilt and wall contact
type VehicleSystem struct{}

func NewVehicleSystem() *VehicleSystem {
	return &VehicleSystem{}
}

func (vs *VehicleSystem) Priority() int {
	return constants.PriorityVehicle
}

func (vs *VehicleSystem) Update(s *engine.SimulationState, f *Frame) {
	if !s.Racing || s.Over() {
		return
	}

	v := &s.Vehicle
	vs.longitudinal(v, s.Boost.Active, f.Input)
	clampSpeed(v)

	ratio := v.SpeedRatio()
	dir := f.Input.SteerDirection()
	turning := dir != 0

	sensitivity := SteeringSensitivity(ratio)
	grip := GripFactor(ratio, turning)
	v.Grip = grip

	if grip < 1.0 {
		v.Speed -= ratio * constants.ScrubFactor
		cx := v.PositionX + constants.VehicleWidth/2
		spawnParticles(s, f, cx, constants.VehicleRowY+constants.VehicleHeight, components.ParticleSmoke, constants.GripSmokeCount)
	}

	v.LateralVelocity += dir * sensitivity * grip
	v.LateralVelocity *= constants.LateralFriction
	v.PositionX += v.LateralVelocity

	if turning {
		v.Rotation += (dir*constants.MaxTilt - v.Rotation) * constants.TiltEase
	} else {
		v.Rotation *= constants.TiltRelax
	}
	v.Rotation = clamp(v.Rotation, -constants.MaxTilt, constants.MaxTilt)

	vs.walls(s)
	clampSpeed(v)
}

func (vs *VehicleSystem) longitudinal(v *components.VehicleState, boosting bool, in components.Input) {
	accel := constants.AccelRate
	if boosting {
		accel *= constants.BoostAccelMultiplier
	}

	switch {
	case in.Has(components.ControlAccelerate) || boosting:
		v.Speed = math.Min(v.Speed+accel, v.CurrentMax)
	case in.Has(components.ControlBrake):
		v.Speed -= constants.BrakeRate
	case v.Speed > constants.BaseSpeed:
		v.Speed = math.Max(constants.BaseSpeed, v.Speed-constants.NaturalDecel)
	case v.Speed < constants.BaseSpeed:
		v.Speed = math.Min(constants.BaseSpeed, v.Speed+constants.NaturalDecel)
	}
}

// walls clamps the vehicle to the track and bounces it off the edge it hit
func (vs *VehicleSystem) walls(s *engine.SimulationState) {
	v := &s.Vehicle
	maxX := constants.TrackWidth - constants.VehicleWidth

	hit := false
	if v.PositionX < 0 {
		v.PositionX = 0
		hit = true
	} else if v.PositionX > maxX {
		v.PositionX = maxX
		hit = true
	}
	if !hit {
		return
	}

	v.LateralVelocity = -v.LateralVelocity * constants.WallRestitution
	v.Speed *= constants.WallSpeedRetain
	s.Shake = max(s.Shake, constants.WallShake)
}

// SteeringSensitivity returns lateral authority at a speed ratio, strictly decreasing on [0, 1]
func SteeringSensitivity(ratio float64) float64 {
	ratio = clamp(ratio, 0, 1)
	return constants.BaseSensitivity * (1 - math.Pow(ratio, constants.SensitivityExponent)*constants.SensitivityFalloff)
}

// GripFactor returns 1.0 unless turning past the grip threshold, then falls linearly to the floor
func GripFactor(ratio float64, turning bool) float64 {
	if !turning || ratio <= constants.GripThreshold {
		return 1.0
	}
	return math.Max(constants.GripFloor, 1-(ratio-constants.GripThreshold)*constants.GripSlope)
}

func clampSpeed(v *components.VehicleState) {
	v.Speed = clamp(v.Speed, 0, v.CurrentMax)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
