package engine

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-racer/constants"
)

// GameState centralizes UI-observable state with clear ownership boundaries
// The frame loop is the only writer; HUD readers, audio and the lobby feed read concurrently
type GameState struct {
	// ===== HUD MIRROR (lock-free atomics) =====

	Score      atomic.Int64
	Health     atomic.Int64
	Laps       atomic.Int64
	LapTarget  atomic.Int64
	speedBits  atomic.Uint64 // float64 bits
	gripBits   atomic.Uint64 // float64 bits
	elapsedNs  atomic.Int64
	BoostOn    atomic.Bool
	Muted      atomic.Bool
	CameraMode atomic.Int32

	// Frame counter, incremented each published tick
	FrameNumber atomic.Int64

	// ===== LIFECYCLE STATE (mutex protected) =====

	mu sync.RWMutex

	CurrentPhase   GamePhase
	PhaseStartTime time.Time

	Session    *RaceSession
	EventLabel string // Active difficulty event, empty when neutral
	Commentary string
	Countdown  int // Countdown step on screen, -1 when hidden
	Outcome    Outcome
}

// NewGameState creates a new game state in IDLE
func NewGameState(now time.Time) *GameState {
	gs := &GameState{}
	gs.reset(now)
	return gs
}

func (gs *GameState) reset(now time.Time) {
	gs.Score.Store(0)
	gs.Health.Store(constants.MaxHealth)
	gs.Laps.Store(0)
	gs.LapTarget.Store(0)
	gs.speedBits.Store(0)
	gs.gripBits.Store(math.Float64bits(1.0))
	gs.elapsedNs.Store(0)
	gs.BoostOn.Store(false)
	gs.FrameNumber.Store(0)

	gs.CurrentPhase = PhaseIdle
	gs.PhaseStartTime = now
	gs.Session = nil
	gs.EventLabel = ""
	gs.Countdown = -1
	gs.Outcome = OutcomeNone
}

// Reset returns to IDLE; the only way out of GAME_OVER
// Mute and camera survive a reset
func (gs *GameState) Reset(now time.Time) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.reset(now)
}

// ===== PHASE STATE ACCESSORS (mutex protected) =====

// GetPhase returns the current game phase
func (gs *GameState) GetPhase() GamePhase {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.CurrentPhase
}

// TransitionPhase attempts to transition to a new phase with validation
// Returns true if transition succeeded, false if transition is invalid
func (gs *GameState) TransitionPhase(to GamePhase, now time.Time) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if !CanTransition(gs.CurrentPhase, to) {
		return false
	}

	gs.CurrentPhase = to
	gs.PhaseStartTime = now
	return true
}

// GetPhaseDuration returns how long the current phase has been active
func (gs *GameState) GetPhaseDuration(now time.Time) time.Duration {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return now.Sub(gs.PhaseStartTime)
}

// BeginSession attaches a session; must precede the IDLE to PLAYING transition
func (gs *GameState) BeginSession(session *RaceSession) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.Session = session
	gs.LapTarget.Store(int64(session.LapTarget))
}

// GetSession returns the active session, nil in IDLE
func (gs *GameState) GetSession() *RaceSession {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.Session
}

// SetCommentary replaces the commentary line
func (gs *GameState) SetCommentary(text string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.Commentary = text
}

// SetEventLabel records the active difficulty event label
func (gs *GameState) SetEventLabel(label string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.EventLabel = label
}

// ===== HUD PUBLISH =====

// Publish mirrors a simulation snapshot into observable state
func (gs *GameState) Publish(snap *Snapshot) {
	gs.Score.Store(int64(snap.Score))
	gs.Health.Store(int64(snap.Vehicle.Health))
	gs.Laps.Store(int64(snap.Laps))
	gs.speedBits.Store(math.Float64bits(snap.Vehicle.Speed))
	gs.gripBits.Store(math.Float64bits(snap.Vehicle.Grip))
	gs.elapsedNs.Store(int64(snap.Elapsed))
	gs.BoostOn.Store(snap.Boost.Active)
	gs.FrameNumber.Add(1)

	gs.mu.Lock()
	if snap.Racing {
		gs.Countdown = -1
	} else {
		gs.Countdown = snap.CountdownStep
	}
	gs.Outcome = snap.Outcome
	gs.mu.Unlock()
}

// GetSpeed returns the last published speed
func (gs *GameState) GetSpeed() float64 {
	return math.Float64frombits(gs.speedBits.Load())
}

// GetGrip returns the last published grip factor
func (gs *GameState) GetGrip() float64 {
	return math.Float64frombits(gs.gripBits.Load())
}

// HUDSnapshot provides a consistent view of the observable state
type HUDSnapshot struct {
	Phase      GamePhase     `msgpack:"phase"`
	SessionID  string        `msgpack:"session"`
	Score      int           `msgpack:"score"`
	Health     int           `msgpack:"health"`
	Speed      float64       `msgpack:"speed"`
	Grip       float64       `msgpack:"grip"`
	Laps       int           `msgpack:"laps"`
	LapTarget  int           `msgpack:"lapTarget"`
	Elapsed    time.Duration `msgpack:"elapsedNs"`
	Boost      bool          `msgpack:"boost"`
	EventLabel string        `msgpack:"event"`
	Commentary string        `msgpack:"commentary"`
	Countdown  int           `msgpack:"countdown"`
	Outcome    Outcome       `msgpack:"outcome"`
	Frame      int64         `msgpack:"frame"`
}

// ReadHUD returns a consistent snapshot of the observable state
func (gs *GameState) ReadHUD() HUDSnapshot {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	snap := HUDSnapshot{
		Phase:      gs.CurrentPhase,
		Score:      int(gs.Score.Load()),
		Health:     int(gs.Health.Load()),
		Speed:      gs.GetSpeed(),
		Grip:       gs.GetGrip(),
		Laps:       int(gs.Laps.Load()),
		LapTarget:  int(gs.LapTarget.Load()),
		Elapsed:    time.Duration(gs.elapsedNs.Load()),
		Boost:      gs.BoostOn.Load(),
		EventLabel: gs.EventLabel,
		Commentary: gs.Commentary,
		Countdown:  gs.Countdown,
		Outcome:    gs.Outcome,
		Frame:      gs.FrameNumber.Load(),
	}
	if gs.Session != nil {
		snap.SessionID = gs.Session.ID.String()
	}
	return snap
}
