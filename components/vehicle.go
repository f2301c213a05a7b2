package components

// VehicleState is the player vehicle's physical state, mutated once per frame
type VehicleState struct {
	PositionX       float64 // Left edge, within [0, TrackWidth-VehicleWidth]
	LateralVelocity float64 // Signed, damped by friction each frame
	Speed           float64 // Within [0, CurrentMax]
	CurrentMax      float64 // BaseMaxSpeed, raised while boost is active
	Rotation        float64 // Visual lean in radians, within ±MaxTilt
	Grip            float64 // Last computed grip factor (1.0 = full)
	Health          int     // 0..MaxHealth, 0 is terminal
}

// Bounds returns the vehicle's bounding box at its fixed row
func (v VehicleState) Bounds(rowY, width, height float64) Rect {
	return Rect{X: v.PositionX, Y: rowY, W: width, H: height}
}

// SpeedRatio returns speed over the maximum attainable speed at this instant
func (v VehicleState) SpeedRatio() float64 {
	if v.CurrentMax <= 0 {
		return 0
	}
	return v.Speed / v.CurrentMax
}

// VehicleSpec describes the intrinsic traits of the driven vehicle
type VehicleSpec struct {
	ID         string
	Name       string
	NitroPower float64 // Scales the boost top-speed bonus
	AutoBoost  bool    // Periodic vehicle-intrinsic boost
	Color      string  // Hex color, e.g. "#64748b"
}
