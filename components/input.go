package components

// Control is a bitmask of held driving controls
type Control uint8

const (
	ControlAccelerate Control = 1 << iota
	ControlBrake
	ControlLeft
	ControlRight
	ControlBoost
)

// Input is the held-control set read by the physics step
// Boost is a trigger: it is consumed on the frame it is seen
type Input struct {
	Held Control
}

// Has reports whether a control is held
func (in Input) Has(c Control) bool {
	return in.Held&c != 0
}

// SteerDirection returns -1 for left, +1 for right, 0 for none or both
func (in Input) SteerDirection() float64 {
	left, right := in.Has(ControlLeft), in.Has(ControlRight)
	switch {
	case left && !right:
		return -1
	case right && !left:
		return 1
	default:
		return 0
	}
}
