package constants

import "time"

// World Geometry (world units, origin top-left of the visible track)
const (
	// TrackWidth is the drivable width of the road
	TrackWidth = 400.0

	// TrackHeight is the height of the visible road area
	TrackHeight = 600.0

	// VehicleWidth and VehicleHeight are the fixed player bounding box dimensions
	VehicleWidth  = 44.0
	VehicleHeight = 76.0

	// VehicleRowY is the fixed top edge of the player vehicle
	VehicleRowY = TrackHeight - 100.0

	// LaneCount is the number of fixed lanes obstacles align to
	LaneCount = 3

	// ObstacleSpawnY is the off-screen-top spawn row
	ObstacleSpawnY = -100.0

	// TrackLength is the distance covered by one lap
	TrackLength = 3000.0

	// DefaultLapTarget is the number of laps that completes a race
	DefaultLapTarget = 3
)

// LaneCenters returns the x coordinate of each lane center
func LaneCenters() [LaneCount]float64 {
	return [LaneCount]float64{TrackWidth / 6, TrackWidth / 2, TrackWidth / 6 * 5}
}

// Session Lifecycle
const (
	// CountdownStep is the duration of each countdown number before GO
	CountdownStep = 1 * time.Second

	// CountdownSteps is the number of countdown numbers shown (3, 2, 1)
	CountdownSteps = 3

	// CountdownDuration is the delay between session start and racing
	CountdownDuration = CountdownSteps * CountdownStep

	// MaxHealth is the starting and maximum vehicle health
	MaxHealth = 100
)
