package systems

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
)

// SpawnSystem places one lane-aligned obstacle whenever the speed-scaled interval elapses
type SpawnSystem struct{}

func NewSpawnSystem() *SpawnSystem {
	return &SpawnSystem{}
}

func (ss *SpawnSystem) Priority() int {
	return constants.PrioritySpawn
}

func (ss *SpawnSystem) Update(s *engine.SimulationState, f *Frame) {
	if !s.Racing || s.Over() {
		return
	}

	interval := SpawnInterval(s.WorldSpeed(), s.Modifier.ObstacleRateMultiplier)
	if f.Now.Sub(s.LastSpawn) <= interval {
		return
	}
	s.LastSpawn = f.Now

	if len(s.Obstacles) >= constants.MaxObstacles {
		return
	}

	lane := f.Rand.IntN(constants.LaneCount)
	s.Obstacles = append(s.Obstacles, newObstacle(f.Rand, s.NextObstacleID, lane))
	s.NextObstacleID++
}

// SpawnInterval returns the delay between spawns at a world speed and rate multiplier
func SpawnInterval(worldSpeed, rateMultiplier float64) time.Duration {
	if worldSpeed < constants.MinWorldSpeed {
		worldSpeed = constants.MinWorldSpeed
	}
	if rateMultiplier <= 0 {
		rateMultiplier = 1
	}
	scale := (worldSpeed / constants.SpawnSpeedNormalizer) * rateMultiplier
	return time.Duration(float64(constants.SpawnBaseInterval) / scale)
}

// PickObstacleKind maps a roll in [0, 100) onto the weighted subtype bands
func PickObstacleKind(roll int) components.ObstacleKind {
	acc := 0
	for kind, p := range components.ObstacleProfiles {
		acc += p.Weight
		if roll < acc {
			return components.ObstacleKind(kind)
		}
	}
	return components.ObstacleHazard
}

func newObstacle(r *rand.Rand, id uint64, lane int) components.Obstacle {
	kind := PickObstacleKind(r.IntN(100))
	p := components.ObstacleProfiles[kind]
	center := constants.LaneCenters()[lane]

	return components.Obstacle{
		ID:     id,
		Kind:   kind,
		X:      center - p.Width/2,
		Y:      constants.ObstacleSpawnY,
		W:      p.Width,
		H:      p.Height,
		Damage: p.Damage,
		Lane:   lane,
	}
}
