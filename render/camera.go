package render

import (
	"math"
	"strings"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
)

// CameraMode selects a fixed framing of the track
type CameraMode uint8

const (
	CameraChase CameraMode = iota
	CameraDriver
	CameraDrone
	CameraOverhead
	CameraCinematic
	cameraModeCount
)

var cameraNames = [cameraModeCount]string{"CHASE", "DRIVER", "DRONE", "OVERHEAD", "CINEMATIC"}

func (m CameraMode) String() string {
	if m < cameraModeCount {
		return cameraNames[m]
	}
	return "Unknown"
}

// Next returns the following mode, wrapping after the last
func (m CameraMode) Next() CameraMode {
	return (m + 1) % cameraModeCount
}

// ParseCameraMode matches a mode name case-insensitively
func ParseCameraMode(s string) (CameraMode, bool) {
	for i, name := range cameraNames {
		if strings.EqualFold(name, s) {
			return CameraMode(i), true
		}
	}
	return CameraChase, false
}

// cameraRig is a mode's offset+scale formula
// The world point (focusX, FocusY) lands at viewport fraction (0.5, ScreenY), zoomed by Zoom
// focusX = track center + Follow * (vehicle center - track center) + sway
type cameraRig struct {
	Zoom    float64
	Follow  float64
	FocusY  float64
	ScreenY float64
	Sway    float64 // Horizontal sway amplitude in world units
}

var cameraRigs = [cameraModeCount]cameraRig{
	CameraChase:     {Zoom: 1.0, Follow: 0, FocusY: constants.TrackHeight / 2, ScreenY: 0.5},
	CameraDriver:    {Zoom: 1.8, Follow: 1, FocusY: constants.VehicleRowY, ScreenY: 0.8},
	CameraDrone:     {Zoom: 1.3, Follow: 0.5, FocusY: constants.VehicleRowY - 100, ScreenY: 0.6},
	CameraOverhead:  {Zoom: 0.75, Follow: 0, FocusY: constants.TrackHeight / 2, ScreenY: 0.5},
	CameraCinematic: {Zoom: 1.4, Follow: 0.8, FocusY: constants.VehicleRowY - 40, ScreenY: 0.7, Sway: 30},
}

// Viewport is the screen region the track is drawn into
type Viewport struct {
	X, Y, W, H int
}

// Transform maps world coordinates to screen cells for one frame
type Transform struct {
	view           Viewport
	focusX, focusY float64
	anchorX        float64
	anchorY        float64
	scaleX, scaleY float64 // Cells per world unit
}

// NewTransform builds the frame's transform; shake and sway are derived from the frame number
func NewTransform(mode CameraMode, v components.VehicleState, shake float64, frame int64, view Viewport) Transform {
	if mode >= cameraModeCount {
		mode = CameraChase
	}
	rig := cameraRigs[mode]

	trackCenter := constants.TrackWidth / 2
	vehicleCenter := v.PositionX + constants.VehicleWidth/2
	focusX := trackCenter + rig.Follow*(vehicleCenter-trackCenter)
	focusY := rig.FocusY
	if rig.Sway != 0 {
		focusX += math.Sin(float64(frame)*0.02) * rig.Sway
	}
	if shake > 0 {
		focusX += math.Sin(float64(frame)*1.7) * shake
		focusY += math.Cos(float64(frame)*2.3) * shake
	}

	return Transform{
		view:    view,
		focusX:  focusX,
		focusY:  focusY,
		anchorX: float64(view.X) + float64(view.W)/2,
		anchorY: float64(view.Y) + float64(view.H)*rig.ScreenY,
		scaleX:  float64(view.W) / constants.TrackWidth * rig.Zoom,
		scaleY:  float64(view.H) / constants.TrackHeight * rig.Zoom,
	}
}

// Project maps a world point to a screen cell
func (t Transform) Project(x, y float64) (col, row int) {
	col = int(math.Floor(t.anchorX + (x-t.focusX)*t.scaleX))
	row = int(math.Floor(t.anchorY + (y-t.focusY)*t.scaleY))
	return col, row
}

// Unproject maps a cell center back to world coordinates
func (t Transform) Unproject(col, row int) (x, y float64) {
	x = t.focusX + (float64(col)+0.5-t.anchorX)/t.scaleX
	y = t.focusY + (float64(row)+0.5-t.anchorY)/t.scaleY
	return x, y
}

// ProjectRect maps a world rectangle to a cell rectangle at least one cell in size
func (t Transform) ProjectRect(r components.Rect) (col, row, w, h int) {
	col, row = t.Project(r.X, r.Y)
	right, bottom := t.Project(r.Right(), r.Bottom())
	w, h = right-col, bottom-row
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return col, row, w, h
}

// Visible reports whether a cell lies inside the viewport
func (t Transform) Visible(col, row int) bool {
	return col >= t.view.X && col < t.view.X+t.view.W && row >= t.view.Y && row < t.view.Y+t.view.H
}
