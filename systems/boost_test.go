package systems

import (
	"testing"
	"time"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/events"
)

func TestBoostRaisesCeilingWithoutKick(t *testing.T) {
	s := newRacingState(t, testEpoch)
	s.Vehicle.Speed = 10
	bs := NewBoostSystem()
	f := newFrame(testEpoch, held(components.ControlBoost))

	bs.Update(s, f)

	if !s.Boost.Active {
		t.Fatal("Expected boost active")
	}
	if s.Vehicle.CurrentMax != constants.BaseMaxSpeed+constants.BoostSpeedBonus {
		t.Errorf("Expected raised ceiling, got %f", s.Vehicle.CurrentMax)
	}
	if s.Vehicle.Speed != 10 {
		t.Errorf("Boost must not change speed directly, got %f", s.Vehicle.Speed)
	}
	if countType(drainTypes(f.Queue), events.EventBoostStarted) != 1 {
		t.Error("Expected one boost started event")
	}
}

// TestBoostDoesNotStack verifies a second trigger while active adds nothing
func TestBoostDoesNotStack(t *testing.T) {
	s := newRacingState(t, testEpoch)
	s.Spec.NitroPower = 1.5
	bs := NewBoostSystem()

	bs.Update(s, newFrame(testEpoch, held(components.ControlBoost)))
	until := s.Boost.Until
	ceiling := s.Vehicle.CurrentMax
	speed := s.Vehicle.Speed

	// Auto-boost and manual trigger both land while active
	s.Spec.AutoBoost = true
	s.Boost.NextAuto = testEpoch
	s.Boost.CooldownUntil = time.Time{}
	f := newFrame(testEpoch.Add(500*time.Millisecond), held(components.ControlBoost))
	bs.Update(s, f)

	if s.Boost.Until != until {
		t.Errorf("Boost extended while active: %v -> %v", until, s.Boost.Until)
	}
	if s.Vehicle.CurrentMax != ceiling {
		t.Errorf("Ceiling changed while active: %f -> %f", ceiling, s.Vehicle.CurrentMax)
	}
	if s.Vehicle.Speed != speed {
		t.Errorf("Speed changed by repeated trigger: %f -> %f", speed, s.Vehicle.Speed)
	}
	if countType(drainTypes(f.Queue), events.EventBoostStarted) != 0 {
		t.Error("Expected no boost event while active")
	}
}

func TestBoostExpiryAndCooldown(t *testing.T) {
	s := newRacingState(t, testEpoch)
	bs := NewBoostSystem()

	bs.Update(s, newFrame(testEpoch, held(components.ControlBoost)))
	s.Vehicle.Speed = 28

	// Expired after duration, speed clamped to base ceiling
	bs.Update(s, newFrame(testEpoch.Add(constants.BoostDuration), components.Input{}))
	if s.Boost.Active {
		t.Fatal("Boost should expire at its duration")
	}
	if s.Vehicle.CurrentMax != constants.BaseMaxSpeed || s.Vehicle.Speed != constants.BaseMaxSpeed {
		t.Errorf("Expected ceiling and speed back to %f, got max=%f speed=%f",
			constants.BaseMaxSpeed, s.Vehicle.CurrentMax, s.Vehicle.Speed)
	}

	// Still cooling down
	bs.Update(s, newFrame(testEpoch.Add(3*time.Second), held(components.ControlBoost)))
	if s.Boost.Active {
		t.Error("Boost should respect cooldown")
	}

	bs.Update(s, newFrame(testEpoch.Add(constants.BoostCooldown), held(components.ControlBoost)))
	if !s.Boost.Active {
		t.Error("Boost should be available after cooldown")
	}
}

func TestAutoBoostInterval(t *testing.T) {
	s := newRacingState(t, testEpoch)
	s.Spec.AutoBoost = true
	bs := NewBoostSystem()

	bs.Update(s, newFrame(testEpoch, components.Input{}))
	if s.Boost.Active {
		t.Fatal("Auto-boost should wait one interval")
	}

	bs.Update(s, newFrame(testEpoch.Add(constants.AutoBoostInterval), components.Input{}))
	if !s.Boost.Active || s.Boost.Source != components.BoostSourceAuto {
		t.Errorf("Expected auto boost, got %+v", s.Boost)
	}
}

func TestBoostedMaxSpeed(t *testing.T) {
	if got := BoostedMaxSpeed(0); got != constants.BaseMaxSpeed+constants.BoostSpeedBonus {
		t.Errorf("Zero nitro should default to 1, got %f", got)
	}
	if got := BoostedMaxSpeed(2); got != constants.BaseMaxSpeed+2*constants.BoostSpeedBonus {
		t.Errorf("Expected doubled bonus, got %f", got)
	}
}
