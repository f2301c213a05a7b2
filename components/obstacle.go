package components

// ObstacleKind is the hazard subtype, which fixes size and damage
type ObstacleKind uint8

const (
	ObstacleHazard ObstacleKind = iota
	ObstacleCone
	ObstacleBarrier
	ObstacleRotating
)

// String returns the kind's display name
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleHazard:
		return "Hazard"
	case ObstacleCone:
		return "Cone"
	case ObstacleBarrier:
		return "Barrier"
	case ObstacleRotating:
		return "Rotating"
	default:
		return "Unknown"
	}
}

// ObstacleProfile holds the fixed traits of a kind
type ObstacleProfile struct {
	Width  float64
	Height float64
	Damage int
	Weight int // Relative spawn probability band
}

// ObstacleProfiles maps each kind to its traits, ordered by kind
var ObstacleProfiles = [...]ObstacleProfile{
	ObstacleHazard:   {Width: 40, Height: 40, Damage: 25, Weight: 40},
	ObstacleCone:     {Width: 24, Height: 24, Damage: 10, Weight: 30},
	ObstacleBarrier:  {Width: 80, Height: 30, Damage: 40, Weight: 20},
	ObstacleRotating: {Width: 40, Height: 40, Damage: 30, Weight: 10},
}

// Obstacle is a lane-aligned hazard scrolling toward the vehicle
type Obstacle struct {
	ID       uint64
	Kind     ObstacleKind
	X, Y     float64 // Top-left corner
	W, H     float64
	Damage   int
	Lane     int
	Rotation float64 // Only rotating hazards spin
}

// Bounds returns the obstacle's bounding box
func (o Obstacle) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// CenterX returns the horizontal center, which equals its lane center
func (o Obstacle) CenterX() float64 {
	return o.X + o.W/2
}
