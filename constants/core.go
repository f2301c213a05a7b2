package constants

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the simulation and render interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FramesPerSecond is the nominal frame rate the per-frame tuning values assume
	FramesPerSecond = 60

	// SchedulerInboxSize is the capacity of the work channel feeding the frame goroutine
	SchedulerInboxSize = 256
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
