package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/core"
)

// TickFunc runs one frame; returning false stops the scheduler
type TickFunc func(now time.Time) bool

// FrameScheduler drives the simulation on a fixed tick from a single goroutine
// Work posted from other goroutines (input, resize) runs on the same goroutine between ticks,
// so frame state never needs locking
type FrameScheduler struct {
	clock    TimeProvider
	interval time.Duration
	tick     TickFunc

	inbox chan func()

	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewFrameScheduler creates a scheduler; tick is invoked once per interval until it returns false
func NewFrameScheduler(clock TimeProvider, interval time.Duration, tick TickFunc) *FrameScheduler {
	if interval <= 0 {
		interval = constants.FrameUpdateInterval
	}
	return &FrameScheduler{
		clock:    clock,
		interval: interval,
		tick:     tick,
		inbox:    make(chan func(), constants.SchedulerInboxSize),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (fs *FrameScheduler) Start() {
	if fs.running.CompareAndSwap(false, true) {
		fs.wg.Add(1)
		core.Go(fs.loop)
	}
}

// Stop halts the scheduler loop and waits for the current tick to finish
func (fs *FrameScheduler) Stop() {
	fs.stopOnce.Do(func() {
		close(fs.stopChan)
		fs.wg.Wait()
	})
}

// Post queues work to run on the frame goroutine
// Returns false if the scheduler is not running or the inbox is full
func (fs *FrameScheduler) Post(fn func()) bool {
	if !fs.running.Load() {
		return false
	}
	select {
	case fs.inbox <- fn:
		return true
	default:
		return false
	}
}

// Done is closed when the loop exits, by Stop or by the tick returning false
func (fs *FrameScheduler) Done() <-chan struct{} {
	return fs.done
}

// Running reports whether the loop is active
func (fs *FrameScheduler) Running() bool {
	return fs.running.Load()
}

// TickCount returns the number of ticks executed
func (fs *FrameScheduler) TickCount() uint64 {
	return fs.tickCount.Load()
}

func (fs *FrameScheduler) loop() {
	defer fs.wg.Done()
	defer close(fs.done)
	defer fs.running.Store(false)

	ticker := time.NewTicker(fs.interval)
	defer ticker.Stop()

	for {
		select {
		case <-fs.stopChan:
			return

		case fn := <-fs.inbox:
			fn()

		case <-ticker.C:
			// Apply input that arrived before this tick so it lands on this frame
			fs.drainInbox()

			fs.tickCount.Add(1)
			if !fs.tick(fs.clock.Now()) {
				return
			}
		}
	}
}

func (fs *FrameScheduler) drainInbox() {
	for {
		select {
		case fn := <-fs.inbox:
			fn()
		default:
			return
		}
	}
}
