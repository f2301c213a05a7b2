package constants

import (
	"math"
	"testing"
	"time"
)

// TestLaneCentersInsideTrack verifies every lane can hold the widest obstacle
func TestLaneCentersInsideTrack(t *testing.T) {
	centers := LaneCenters()
	for i, c := range centers {
		if c-40 < 0 || c+40 > TrackWidth {
			t.Errorf("Lane %d center %.2f leaves no room for an 80-wide barrier", i, c)
		}
	}
	if !(centers[0] < centers[1] && centers[1] < centers[2]) {
		t.Errorf("Lane centers not ordered left to right: %v", centers)
	}
	if math.Abs(centers[1]-TrackWidth/2) > 1e-9 {
		t.Errorf("Middle lane should be centered, got %.2f", centers[1])
	}
}

// TestCountdownDuration verifies the countdown is the sum of its steps
func TestCountdownDuration(t *testing.T) {
	if CountdownDuration != 3*time.Second {
		t.Errorf("CountdownDuration = %v, want 3s", CountdownDuration)
	}
}

// TestKeyHoldWindows verifies the repeat window is shorter than the first-press window
func TestKeyHoldWindows(t *testing.T) {
	if KeyHoldRepeat >= KeyHoldInitial {
		t.Errorf("KeyHoldRepeat (%v) must be shorter than KeyHoldInitial (%v)", KeyHoldRepeat, KeyHoldInitial)
	}
	if KeyHoldRepeat < FrameUpdateInterval {
		t.Errorf("KeyHoldRepeat (%v) shorter than one frame (%v)", KeyHoldRepeat, FrameUpdateInterval)
	}
}

// TestVehicleFitsTrack verifies the vehicle row is inside the visible area
func TestVehicleFitsTrack(t *testing.T) {
	if VehicleRowY+VehicleHeight > TrackHeight {
		t.Errorf("Vehicle bottom %.1f exceeds track height %.1f", VehicleRowY+VehicleHeight, TrackHeight)
	}
	if BaseSpeed > BaseMaxSpeed {
		t.Errorf("BaseSpeed %.1f above BaseMaxSpeed %.1f", BaseSpeed, BaseMaxSpeed)
	}
}
