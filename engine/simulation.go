package engine

import (
	"time"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
)

// Outcome is the terminal result of a race
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// SimulationState is the complete simulation value owned by the frame loop
// Systems receive it by pointer within one step; the renderer only sees Snapshot copies
type SimulationState struct {
	Vehicle components.VehicleState
	Boost   components.BoostState
	Spec    components.VehicleSpec

	Obstacles []components.Obstacle
	Particles []components.Particle
	Texts     []components.FloatingText

	Modifier components.DifficultyModifier

	// Race progress
	Score     int
	Distance  float64 // World units since GO
	Laps      int     // Completed laps
	LapTarget int
	Outcome   Outcome

	// Countdown, racing starts at GO
	Racing         bool
	CountdownStart time.Time
	CountdownStep  int // Last announced step, counts down to 0
	RaceStart      time.Time
	RaceEnd        time.Time

	// Scheduling timestamps
	LastSpawn    time.Time
	NextAdvisory time.Time

	Shake          float64
	NextObstacleID uint64
	Frame          int64
}

// NewSimulationState returns the initial state for a race that begins its countdown at now
func NewSimulationState(spec components.VehicleSpec, lapTarget int, now time.Time) *SimulationState {
	if lapTarget <= 0 {
		lapTarget = constants.DefaultLapTarget
	}
	return &SimulationState{
		Vehicle: components.VehicleState{
			PositionX:  (constants.TrackWidth - constants.VehicleWidth) / 2,
			Speed:      constants.BaseSpeed,
			CurrentMax: constants.BaseMaxSpeed,
			Grip:       1.0,
			Health:     constants.MaxHealth,
		},
		Spec:           spec,
		Obstacles:      make([]components.Obstacle, 0, constants.MaxObstacles),
		Particles:      make([]components.Particle, 0, constants.MaxParticles),
		Modifier:       components.NeutralModifier(),
		LapTarget:      lapTarget,
		CountdownStart: now,
		CountdownStep:  constants.CountdownSteps,
		NextObstacleID: 1,
	}
}

// Over reports whether the race has reached a terminal outcome
func (s *SimulationState) Over() bool {
	return s.Outcome != OutcomeNone
}

// Elapsed returns race time since GO, frozen at the terminal frame
func (s *SimulationState) Elapsed(now time.Time) time.Duration {
	if !s.Racing {
		return 0
	}
	if !s.RaceEnd.IsZero() {
		return s.RaceEnd.Sub(s.RaceStart)
	}
	return now.Sub(s.RaceStart)
}

// WorldSpeed returns the scroll speed after the difficulty modifier, never below the floor
func (s *SimulationState) WorldSpeed() float64 {
	ws := s.Vehicle.Speed + s.Modifier.SpeedModifier
	if ws < constants.MinWorldSpeed {
		return constants.MinWorldSpeed
	}
	return ws
}

// Snapshot is an immutable copy of the state for rendering and publishing
type Snapshot struct {
	Vehicle   components.VehicleState
	Boost     components.BoostState
	Spec      components.VehicleSpec
	Obstacles []components.Obstacle
	Particles []components.Particle
	Texts     []components.FloatingText
	Modifier  components.DifficultyModifier

	Score         int
	Distance      float64
	Laps          int
	LapTarget     int
	Outcome       Outcome
	Racing        bool
	CountdownStep int
	Elapsed       time.Duration
	Shake         float64
	WorldSpeed    float64
	Frame         int64
}

// Snapshot copies the state; slices are cloned so the renderer never aliases live data
func (s *SimulationState) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Vehicle:       s.Vehicle,
		Boost:         s.Boost,
		Spec:          s.Spec,
		Obstacles:     append([]components.Obstacle(nil), s.Obstacles...),
		Particles:     append([]components.Particle(nil), s.Particles...),
		Texts:         append([]components.FloatingText(nil), s.Texts...),
		Modifier:      s.Modifier,
		Score:         s.Score,
		Distance:      s.Distance,
		Laps:          s.Laps,
		LapTarget:     s.LapTarget,
		Outcome:       s.Outcome,
		Racing:        s.Racing,
		CountdownStep: s.CountdownStep,
		Elapsed:       s.Elapsed(now),
		Shake:         s.Shake,
		WorldSpeed:    s.WorldSpeed(),
		Frame:         s.Frame,
	}
}
