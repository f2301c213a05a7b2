package systems

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
)

var (
	colorGold   = tcell.NewHexColor(0xfacc15)
	colorBoost  = tcell.NewHexColor(0x60a5fa)
	colorDamage = tcell.NewHexColor(0xef4444)
	colorAlert  = tcell.NewHexColor(0xf97316)
)

// particleStyle is the spawn template for a particle kind
type particleStyle struct {
	color  tcell.Color
	size   float64
	spread float64 // Velocity scale applied to the random direction
	vy     float64 // Fixed vertical velocity, 0 uses the random direction
}

var particleStyles = map[components.ParticleKind]particleStyle{
	components.ParticleSpark:  {color: tcell.NewHexColor(0xfbbf24), size: 3, spread: 8},
	components.ParticleSmoke:  {color: tcell.NewHexColor(0x9ca3af), size: 2, spread: 2},
	components.ParticleFire:   {color: tcell.NewHexColor(0xdc2626), size: 4, spread: 4},
	components.ParticleDebris: {color: tcell.NewHexColor(0x6b7280), size: 2, spread: 6},
	components.ParticleBoost:  {color: tcell.NewHexColor(0x60a5fa), size: 3, spread: 4},
	components.ParticleStar:   {color: tcell.ColorWhite, size: 1, spread: 1, vy: 10},
	components.ParticleBubble: {color: tcell.NewHexColor(0xbae6fd), size: 3, spread: 2, vy: -2},
	components.ParticleDirt:   {color: tcell.NewHexColor(0x78350f), size: 3, spread: 3},
	components.ParticleCloud:  {color: tcell.NewHexColor(0xe5e7eb), size: 4, spread: 1},
	components.ParticleMagic:  {color: tcell.NewHexColor(0xd8b4fe), size: 3, spread: 4},
}

// spawnParticles emits a burst; new particles are dropped once the pool is full
func spawnParticles(s *engine.SimulationState, f *Frame, x, y float64, kind components.ParticleKind, count int) {
	if f.FX == nil {
		return
	}
	if f.Starfield && kind == components.ParticleSmoke {
		kind = components.ParticleStar
	}
	style := particleStyles[kind]

	for i := 0; i < count; i++ {
		if len(s.Particles) >= constants.MaxParticles {
			return
		}
		vx := (f.FX.Float64() - 0.5) * style.spread
		vy := (f.FX.Float64() - 0.5) * style.spread
		if style.vy != 0 {
			vy = style.vy
		}
		s.Particles = append(s.Particles, components.Particle{
			X: x, Y: y,
			VX: vx, VY: vy,
			Life:  1.0,
			Color: style.color,
			Size:  style.size,
			Kind:  kind,
		})
	}
}

func spawnText(s *engine.SimulationState, x, y float64, text string, color tcell.Color) {
	s.Texts = append(s.Texts, components.FloatingText{
		X: x, Y: y,
		VY:    -constants.FloatingTextRise,
		Text:  text,
		Color: color,
		Life:  1.0,
	})
}

// EffectsSystem ages particles and floating texts and decays camera shake
// Nothing here feeds back into the simulation
type EffectsSystem struct{}

func NewEffectsSystem() *EffectsSystem {
	return &EffectsSystem{}
}

func (es *EffectsSystem) Priority() int {
	return constants.PriorityEffects
}

func (es *EffectsSystem) Update(s *engine.SimulationState, f *Frame) {
	if f.Starfield && f.FX != nil && f.FX.Float64() < constants.StarfieldChance {
		spawnParticles(s, f, f.FX.Float64()*constants.TrackWidth, 0, components.ParticleStar, 1)
	}

	s.Particles = UpdateParticles(s.Particles)
	s.Texts = UpdateTexts(s.Texts)

	s.Shake *= constants.ShakeDecay
	if s.Shake < constants.ShakeEpsilon {
		s.Shake = 0
	}
}

// UpdateParticles advances and ages particles, compacting out the dead ones in place
func UpdateParticles(ps []components.Particle) []components.Particle {
	n := len(ps)
	for i := 0; i < n; {
		p := &ps[i]
		p.X += p.VX
		p.Y += p.VY
		p.Life -= constants.ParticleLifeDecay
		if p.Life <= 0 {
			// Swap with last live particle, order is not significant
			n--
			ps[i] = ps[n]
			continue
		}
		i++
	}
	return ps[:n]
}

// UpdateTexts drifts and fades floating labels
func UpdateTexts(ts []components.FloatingText) []components.FloatingText {
	kept := ts[:0]
	for _, t := range ts {
		t.Y += t.VY
		t.Life -= constants.FloatingTextDecay
		if t.Life <= 0 {
			continue
		}
		kept = append(kept, t)
	}
	clear(ts[len(kept):])
	return kept
}
