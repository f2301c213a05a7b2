package constants

import "time"

// HUD Layout (terminal rows)
const (
	// HUDTopRows is the number of rows reserved above the track for title, score and health
	HUDTopRows = 2

	// HUDBottomRows is the number of rows reserved below the track for commentary and status
	HUDBottomRows = 2

	// HealthBarWidth is the width of the health bar in cells
	HealthBarWidth = 20

	// LowHealthThreshold switches the health bar to its warning color
	LowHealthThreshold = 30

	// ScoreDigits is the zero-padded width of the score readout
	ScoreDigits = 5
)

// Input
const (
	// KeyHoldInitial keeps a key held after its first press, bridging the terminal's
	// auto-repeat delay
	KeyHoldInitial = 550 * time.Millisecond

	// KeyHoldRepeat keeps a key held after an auto-repeat press
	KeyHoldRepeat = 120 * time.Millisecond
)

// Lobby Feed
const (
	// LobbyFrameEvery publishes one HUD frame every N simulation frames (~10 Hz)
	LobbyFrameEvery = 6

	// LobbyClientBuffer is the per-client outbound message buffer
	LobbyClientBuffer = 64

	// LobbyWriteWait bounds a single websocket write
	LobbyWriteWait = 2 * time.Second
)
