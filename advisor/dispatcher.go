package advisor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/core"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
)

// Dispatcher issues advisor calls off the frame loop and delivers results through the event queue
// Callers never block: each request runs in its own goroutine bounded by a timeout
type Dispatcher struct {
	advisor Advisor
	queue   *events.EventQueue
	clock   engine.TimeProvider
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu             sync.Mutex
	session        uint64 // Results issued under an older session are dropped
	lastCommentary time.Time
	deciding       bool // One game-master consultation at a time
	closed         bool
}

// NewDispatcher creates a dispatcher; a nil advisor behaves as Nop
func NewDispatcher(advisor Advisor, queue *events.EventQueue, clock engine.TimeProvider, timeout time.Duration) *Dispatcher {
	if advisor == nil {
		advisor = Nop{}
	}
	if timeout <= 0 {
		timeout = constants.AdvisoryTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		advisor: advisor,
		queue:   queue,
		clock:   clock,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// NewSession retires every request issued so far; their results never reach the queue
func (d *Dispatcher) NewSession() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.session++
	d.deciding = false
	d.lastCommentary = time.Time{}
}

// RequestDecision starts a game-master consultation
// Returns the request ID, or "" when a consultation is already in flight
func (d *Dispatcher) RequestDecision(score int, speed float64) string {
	d.mu.Lock()
	if d.closed || d.deciding {
		d.mu.Unlock()
		return ""
	}
	d.deciding = true
	session := d.session
	d.wg.Add(1)
	d.mu.Unlock()

	id := uuid.NewString()
	d.spawn(func(ctx context.Context) {
		defer func() {
			d.mu.Lock()
			if d.session == session {
				d.deciding = false
			}
			d.mu.Unlock()
		}()

		decision, err := d.advisor.Decide(ctx, score, speed)
		if err == nil {
			decision, err = decision.Validate()
		}
		if err != nil {
			d.logFailure("decision", id, err)
			d.push(session, events.EventAdvisoryFailed, &events.AdvisoryFailedPayload{RequestID: id, Err: err})
			return
		}

		log.Debug("game master decision", "id", id, "event", decision.Event,
			"speedMod", decision.SpeedMod, "obstacleMod", decision.ObstacleMod)
		d.push(session, events.EventAdvisoryDecision, &events.AdvisoryDecisionPayload{
			RequestID:              id,
			SpeedModifier:          decision.SpeedMod,
			ObstacleRateMultiplier: decision.ObstacleMod,
			EventLabel:             decision.Event,
		})
	})
	return id
}

// RequestCommentary asks for a commentary line
// Unforced requests within CommentaryThrottle of the previous one are dropped
func (d *Dispatcher) RequestCommentary(situation string, force bool) string {
	now := d.clock.Now()

	d.mu.Lock()
	if d.closed || (!force && !d.lastCommentary.IsZero() && now.Sub(d.lastCommentary) < constants.CommentaryThrottle) {
		d.mu.Unlock()
		return ""
	}
	d.lastCommentary = now
	session := d.session
	d.wg.Add(1)
	d.mu.Unlock()

	id := uuid.NewString()
	d.spawn(func(ctx context.Context) {
		text, err := d.advisor.Commentary(ctx, situation)
		if err == nil && text == "" {
			err = ErrNoAdvice
		}
		if err != nil {
			d.logFailure("commentary", id, err)
			return
		}
		d.push(session, events.EventCommentary, &events.CommentaryPayload{RequestID: id, Text: text})
	})
	return id
}

// Close cancels outstanding requests and waits for their goroutines
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}

// spawn runs fn with a bounded context; the caller has already added to wg under mu
func (d *Dispatcher) spawn(fn func(ctx context.Context)) {
	core.Go(func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
		defer cancel()
		fn(ctx)
	})
}

// push delivers a result unless its session has been retired
// The check and the push share mu so NewSession followed by a queue drain leaves nothing stale
func (d *Dispatcher) push(session uint64, t events.EventType, payload any) {
	if d.queue == nil || d.ctx.Err() != nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session != session {
		log.Debug("stale advisor result dropped", "type", t)
		return
	}
	d.queue.Push(events.GameEvent{Type: t, Payload: payload, Timestamp: d.clock.Now()})
}

func (d *Dispatcher) logFailure(kind, id string, err error) {
	switch {
	case errors.Is(err, ErrDisabled):
		log.Debug("advisor disabled", "kind", kind, "id", id)
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("advisor timed out", "kind", kind, "id", id)
	default:
		log.Warn("advisor failed", "kind", kind, "id", id, "err", err)
	}
}
