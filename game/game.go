// Package game owns the session lifecycle and composes one frame of the race:
// advisory results, simulation step, HUD publish, sound cues and the lobby feed.
package game

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-racer/advisor"
	"github.com/lixenwraith/vi-racer/audio"
	"github.com/lixenwraith/vi-racer/catalog"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/core"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/render"
	"github.com/lixenwraith/vi-racer/systems"
)

// Sound is the audio surface the game drives
type Sound interface {
	Play(cue audio.Cue)
	StartEngine()
	StopEngine()
	SetEngineSpeed(speed float64)
	SetMuted(muted bool)
}

// Feed receives observable state for the surrounding lobby
type Feed interface {
	PublishHUD(hud engine.HUDSnapshot) error
	PublishResult(res engine.SessionResult) error
}

// Options configures a Game; zero values fall back to defaults
type Options struct {
	Vehicle   catalog.Vehicle
	Theme     render.Theme
	Camera    render.CameraMode
	LapTarget int
	Wager     float64
	Pot       float64
	Seed      uint64 // 0 derives a fresh seed per session
	Interval  time.Duration

	Advisor         advisor.Advisor
	AdvisoryTimeout time.Duration
	Sound           Sound
	Feed            Feed

	// OnResult is called once per finished session, on the frame goroutine
	OnResult func(engine.SessionResult)
}

// TickContext is handed to event handlers during dispatch
type TickContext struct {
	Sim *engine.SimulationState
	Now time.Time
}

// Game runs sessions against one screen
// Start, HandleAction, IdleTick and Stop are called from the owner goroutine;
// everything inside a session runs on the frame scheduler goroutine
type Game struct {
	opts  Options
	clock engine.TimeProvider

	state      *engine.GameState
	queue      *events.EventQueue
	router     *events.Router[*TickContext]
	dispatcher *advisor.Dispatcher
	keys       *input.KeyState
	sound      Sound

	scheduler *engine.FrameScheduler
	simulator *systems.Simulator
	sim       *engine.SimulationState
	snapshot  atomic.Pointer[engine.Snapshot]
	finished  bool // Result already emitted for the current session

	feedWG sync.WaitGroup

	manual bool // Set in tests to drive tick directly
}

// New creates an idle game
func New(clock engine.TimeProvider, opts Options) *Game {
	if opts.Vehicle.ID == "" {
		if cat, err := catalog.Builtin(); err == nil {
			opts.Vehicle, _ = cat.Lookup(catalog.DefaultVehicleID)
		}
	}
	if opts.Theme.Name == "" {
		opts.Theme = render.DefaultTheme()
	}
	if opts.LapTarget <= 0 {
		opts.LapTarget = constants.DefaultLapTarget
	}
	if opts.Interval <= 0 {
		opts.Interval = constants.FrameUpdateInterval
	}
	if opts.Sound == nil {
		opts.Sound = silent{}
	}

	queue := events.NewEventQueue()
	g := &Game{
		opts:       opts,
		clock:      clock,
		state:      engine.NewGameState(clock.Now()),
		queue:      queue,
		router:     events.NewRouter[*TickContext](queue),
		dispatcher: advisor.NewDispatcher(opts.Advisor, queue, clock, opts.AdvisoryTimeout),
		keys:       input.NewKeyState(),
		sound:      opts.Sound,
	}
	g.state.CameraMode.Store(int32(opts.Camera))
	g.state.SetCommentary(constants.DefaultCommentary)
	g.registerHandlers()
	return g
}

// State returns the observable state
func (g *Game) State() *engine.GameState {
	return g.state
}

// Snapshot returns the latest published simulation snapshot, nil before the first frame
func (g *Game) Snapshot() *engine.Snapshot {
	return g.snapshot.Load()
}

// Frame assembles everything the renderer needs for one draw
func (g *Game) Frame() *render.Frame {
	return &render.Frame{
		HUD:     g.state.ReadHUD(),
		Sim:     g.snapshot.Load(),
		Theme:   g.opts.Theme,
		Camera:  g.Camera(),
		Vehicle: g.opts.Vehicle.Name,
		Muted:   g.state.Muted.Load(),
	}
}

// Camera returns the active camera mode
func (g *Game) Camera() render.CameraMode {
	return render.CameraMode(g.state.CameraMode.Load())
}

// CycleCamera advances to the next camera mode
func (g *Game) CycleCamera() render.CameraMode {
	next := g.Camera().Next()
	g.state.CameraMode.Store(int32(next))
	return next
}

// ToggleMute flips the mute state; unmuting after GO restarts the engine drone
func (g *Game) ToggleMute() bool {
	muted := !g.state.Muted.Load()
	g.state.Muted.Store(muted)
	g.sound.SetMuted(muted)
	if !muted && g.racing() {
		g.sound.StartEngine()
	}
	return muted
}

// racing reports whether the current session is past its countdown
func (g *Game) racing() bool {
	if g.state.GetPhase() != engine.PhasePlaying {
		return false
	}
	snap := g.snapshot.Load()
	return snap != nil && snap.Racing
}

// Start begins a new session: IDLE to PLAYING, or a full reset first from GAME_OVER
// Returns false while a session is already running
func (g *Game) Start() bool {
	now := g.clock.Now()

	switch g.state.GetPhase() {
	case engine.PhasePlaying, engine.PhasePaused:
		return false
	case engine.PhaseGameOver:
		g.Reset()
	}

	// The previous loop has already exited on its own; Stop only joins it
	if g.scheduler != nil {
		g.scheduler.Stop()
		g.scheduler = nil
	}

	seed := g.opts.Seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}

	session := engine.NewRaceSession(g.opts.Vehicle.Spec(), g.opts.Theme.Name, g.opts.LapTarget,
		g.opts.Wager, g.opts.Pot, seed, now)

	// Advisor calls still in flight from the previous session are retired before the drain
	g.dispatcher.NewSession()
	g.queue.Consume()
	g.keys.Clear()
	g.finished = false
	g.sim = engine.NewSimulationState(session.Vehicle, session.LapTarget, now)
	g.simulator = systems.NewSimulator(seed, g.queue, systems.WithStarfield(g.opts.Theme.Starfield))

	snap := g.sim.Snapshot(now)
	g.snapshot.Store(&snap)

	g.state.BeginSession(session)
	if !g.state.TransitionPhase(engine.PhasePlaying, now) {
		return false
	}
	g.state.Publish(&snap)
	g.state.SetCommentary(constants.DefaultCommentary)
	g.sound.Play(audio.CueCountdown)

	log.Info("session started", "id", session.ID.String(), "vehicle", session.Vehicle.ID,
		"theme", session.Theme, "laps", session.LapTarget, "seed", seed)

	if g.manual {
		return true
	}
	g.scheduler = engine.NewFrameScheduler(g.clock, g.opts.Interval, g.tick)
	g.scheduler.Start()
	return true
}

// Reset abandons any session and returns to IDLE
func (g *Game) Reset() {
	if g.scheduler != nil {
		g.scheduler.Stop()
		g.scheduler = nil
	}
	g.sound.StopEngine()
	g.sim = nil
	g.snapshot.Store(nil)
	g.state.Reset(g.clock.Now())
	g.state.SetCommentary(constants.DefaultCommentary)
}

// HandleAction applies one input action; returns false when the player quits
func (g *Game) HandleAction(a input.Action) bool {
	switch a {
	case input.ActionQuit:
		return false
	case input.ActionStart:
		g.Start()
	case input.ActionCamera:
		g.CycleCamera()
	case input.ActionMute:
		g.ToggleMute()
	case input.ActionAccelerate, input.ActionBrake, input.ActionLeft, input.ActionRight, input.ActionBoost:
		// Key state belongs to the frame goroutine
		if g.scheduler != nil {
			g.scheduler.Post(func() {
				g.keys.Press(a, g.clock.Now())
			})
		}
	}
	return true
}

// IdleTick drains late events once the frame loop has stopped, so the
// finishing commentary still reaches the HUD on the game-over screen
func (g *Game) IdleTick() {
	if g.sim == nil || !g.loopDone() {
		return
	}
	g.router.DispatchAll(&TickContext{Sim: g.sim, Now: g.clock.Now()})
}

// Done is closed when the current session loop exits; nil when no loop exists
func (g *Game) Done() <-chan struct{} {
	if g.scheduler == nil {
		return nil
	}
	return g.scheduler.Done()
}

// Stop ends the loop and releases the advisor and pending feed writes
func (g *Game) Stop() {
	if g.scheduler != nil {
		g.scheduler.Stop()
	}
	g.sound.StopEngine()
	g.dispatcher.Close()
	g.feedWG.Wait()
}

func (g *Game) loopDone() bool {
	if g.scheduler == nil {
		return true
	}
	select {
	case <-g.scheduler.Done():
		return true
	default:
		return false
	}
}

// tick runs one frame: advisory results, step, publish, then the step's own events
// Returns false once the session has left PLAYING
func (g *Game) tick(now time.Time) bool {
	ctx := &TickContext{Sim: g.sim, Now: now}

	g.router.DispatchAll(ctx)

	g.simulator.Step(g.sim, g.keys.Snapshot(now), now)
	snap := g.sim.Snapshot(now)
	g.state.Publish(&snap)
	g.snapshot.Store(&snap)
	g.sound.SetEngineSpeed(snap.Vehicle.Speed)

	// Terminal transitions land on the frame that caused them
	g.router.DispatchAll(ctx)

	if g.opts.Feed != nil && snap.Frame%constants.LobbyFrameEvery == 0 {
		g.publishHUD()
	}

	return g.state.GetPhase() == engine.PhasePlaying
}

func (g *Game) publishHUD() {
	if err := g.opts.Feed.PublishHUD(g.state.ReadHUD()); err != nil {
		log.Debug("lobby hud publish failed", "err", err)
	}
}

// finish moves to GAME_OVER and emits the session result exactly once
func (g *Game) finish(p *events.GameOverPayload, now time.Time) {
	if g.finished {
		return
	}
	g.finished = true

	if !g.state.TransitionPhase(engine.PhaseGameOver, now) {
		log.Warn("game over outside PLAYING", "phase", g.state.GetPhase().String())
	}

	g.sound.StopEngine()
	if p.IsWin {
		g.sound.Play(audio.CueVictory)
	} else {
		g.sound.Play(audio.CueDefeat)
	}

	session := g.state.GetSession()
	if session == nil {
		return
	}
	res := session.Result(p.Score, p.IsWin, p.Laps)
	log.Info("session finished", "id", res.SessionID, "score", res.Score, "win", res.IsWin, "laps", res.Laps)

	if g.opts.OnResult != nil {
		g.opts.OnResult(res)
	}

	if feed := g.opts.Feed; feed != nil {
		hud := g.state.ReadHUD()
		g.feedWG.Add(1)
		core.Go(func() {
			defer g.feedWG.Done()
			if err := feed.PublishResult(res); err != nil {
				log.Warn("lobby result publish failed", "err", err)
			}
			if err := feed.PublishHUD(hud); err != nil {
				log.Debug("lobby final hud publish failed", "err", err)
			}
		})
	}
}

// silent is the Sound used when audio is unavailable
type silent struct{}

func (silent) Play(audio.Cue)         {}
func (silent) StartEngine()           {}
func (silent) StopEngine()            {}
func (silent) SetEngineSpeed(float64) {}
func (silent) SetMuted(bool)          {}
