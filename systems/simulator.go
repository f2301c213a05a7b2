package systems

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
)

// PCG stream words; the seed selects the sequence within each stream
const (
	pcgStream   = 0x9e3779b97f4a7c15
	pcgFXStream = 0xc2b2ae3d27d4eb4f
)

// Simulator composes the systems into one pure step over SimulationState
type Simulator struct {
	systems   []System
	rand      *rand.Rand
	fx        *rand.Rand
	queue     *events.EventQueue
	starfield bool
}

// SimulatorOption configures a Simulator
type SimulatorOption func(*Simulator)

// WithStarfield enables space-theme particle behavior
func WithStarfield(enabled bool) SimulatorOption {
	return func(sim *Simulator) {
		sim.starfield = enabled
	}
}

// WithSystems replaces the default system set
func WithSystems(systems ...System) SimulatorOption {
	return func(sim *Simulator) {
		sim.systems = systems
	}
}

// NewSimulator creates a simulator with a deterministic random source for the seed
func NewSimulator(seed uint64, queue *events.EventQueue, opts ...SimulatorOption) *Simulator {
	sim := &Simulator{
		rand:  rand.New(rand.NewPCG(seed, pcgStream)),
		fx:    rand.New(rand.NewPCG(seed, pcgFXStream)),
		queue: queue,
		systems: []System{
			NewCountdownSystem(),
			NewDifficultySystem(),
			NewBoostSystem(),
			NewVehicleSystem(),
			NewSpawnSystem(),
			NewObstacleSystem(),
			NewCollisionSystem(),
			NewProgressSystem(),
			NewEffectsSystem(),
		},
	}
	for _, opt := range opts {
		opt(sim)
	}

	sort.SliceStable(sim.systems, func(i, j int) bool {
		return sim.systems[i].Priority() < sim.systems[j].Priority()
	})
	return sim
}

// Step advances the state by one frame and returns it
// A terminal outcome reached mid-step ends the frame: later systems do not run
func (sim *Simulator) Step(s *engine.SimulationState, in components.Input, now time.Time) *engine.SimulationState {
	if s.Over() {
		return s
	}

	s.Frame++
	f := &Frame{
		Now:       now,
		Input:     in,
		Rand:      sim.rand,
		FX:        sim.fx,
		Queue:     sim.queue,
		Starfield: sim.starfield,
	}

	for _, sys := range sim.systems {
		sys.Update(s, f)
		if s.Over() {
			break
		}
	}
	return s
}

// Queue returns the event queue systems emit into
func (sim *Simulator) Queue() *events.EventQueue {
	return sim.queue
}
