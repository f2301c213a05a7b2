package components

import "github.com/gdamore/tcell/v2"

// ParticleKind selects a particle's look and motion
type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota
	ParticleSmoke
	ParticleFire
	ParticleDebris
	ParticleBoost
	ParticleStar
	ParticleBubble
	ParticleDirt
	ParticleCloud
	ParticleMagic
)

// Particle is a purely visual effect element
// Life is in (0, 1]; the particle is culled at Life <= 0
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Color  tcell.Color
	Size   float64
	Kind   ParticleKind
}

// FloatingText is a short label drifting upward and fading, culled like a particle
type FloatingText struct {
	X, Y  float64
	VY    float64
	Text  string
	Color tcell.Color
	Life  float64
}
