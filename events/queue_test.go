package events

import (
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/vi-racer/constants"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	now := time.Now()

	for i := 0; i < 5; i++ {
		q.Push(GameEvent{Type: EventCountdownTick, Payload: &CountdownPayload{Step: 3 - i}, Frame: int64(i), Timestamp: now})
	}

	if q.Len() != 5 {
		t.Errorf("Expected 5 pending events, got %d", q.Len())
	}

	evs := q.Consume()
	if len(evs) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(evs))
	}
	for i, ev := range evs {
		if ev.Frame != int64(i) {
			t.Errorf("Event %d out of order: frame %d", i, ev.Frame)
		}
	}

	if again := q.Consume(); again != nil {
		t.Errorf("Expected nil after drain, got %d events", len(again))
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue()
	total := constants.EventQueueSize + 10

	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventCollision, Frame: int64(i)})
	}

	evs := q.Consume()
	if len(evs) != constants.EventQueueSize {
		t.Fatalf("Expected %d events after overflow, got %d", constants.EventQueueSize, len(evs))
	}
	if evs[0].Frame != 10 {
		t.Errorf("Expected oldest surviving frame 10, got %d", evs[0].Frame)
	}
	if evs[len(evs)-1].Frame != int64(total-1) {
		t.Errorf("Expected newest frame %d, got %d", total-1, evs[len(evs)-1].Frame)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup

	producers := 4
	perProducer := 20

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(GameEvent{Type: EventCommentary, Payload: &CommentaryPayload{RequestID: "p", Text: "x"}, Frame: int64(id)})
			}
		}(p)
	}
	wg.Wait()

	evs := q.Consume()
	if len(evs) != producers*perProducer {
		t.Errorf("Expected %d events, got %d", producers*perProducer, len(evs))
	}
}

type recordingHandler struct {
	types []EventType
	seen  []EventType
}

func (h *recordingHandler) HandleEvent(ctx *int, ev GameEvent) {
	*ctx++
	h.seen = append(h.seen, ev.Type)
}

func (h *recordingHandler) EventTypes() []EventType { return h.types }

func TestRouterDispatch(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter[*int](q)

	advisory := &recordingHandler{types: []EventType{EventAdvisoryDecision, EventAdvisoryFailed}}
	r.Register(advisory)

	overCount := 0
	r.Register(HandlerFunc[*int]{
		Types: []EventType{EventGameOver},
		Fn: func(ctx *int, ev GameEvent) {
			overCount++
			if p, ok := ev.Payload.(*GameOverPayload); !ok || p.Score != 42 {
				t.Errorf("Unexpected game over payload: %#v", ev.Payload)
			}
		},
	})

	q.Push(GameEvent{Type: EventAdvisoryDecision})
	q.Push(GameEvent{Type: EventCollision})
	q.Push(GameEvent{Type: EventAdvisoryFailed})
	q.Push(GameEvent{Type: EventGameOver, Payload: &GameOverPayload{Score: 42}})

	calls := 0
	if n := r.DispatchAll(&calls); n != 4 {
		t.Errorf("Expected 4 events consumed, got %d", n)
	}

	if calls != 2 {
		t.Errorf("Expected 2 advisory handler calls, got %d", calls)
	}
	if len(advisory.seen) != 2 || advisory.seen[0] != EventAdvisoryDecision || advisory.seen[1] != EventAdvisoryFailed {
		t.Errorf("Unexpected advisory order: %v", advisory.seen)
	}
	if overCount != 1 {
		t.Errorf("Expected 1 game over call, got %d", overCount)
	}
	if r.HandlerCount(EventCollision) != 0 {
		t.Error("Expected no collision handlers")
	}
}

func TestEventTypeString(t *testing.T) {
	if EventGameOver.String() != "GameOver" {
		t.Errorf("Expected GameOver, got %s", EventGameOver.String())
	}
	if EventType(999).String() != "Unknown" {
		t.Errorf("Expected Unknown for invalid type")
	}
}
