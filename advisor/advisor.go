// Package advisor talks to the external collaborator that supplies race commentary and
// game-master difficulty decisions. Every failure is absorbed into "no advice".
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrNoAdvice is returned when the collaborator answers with nothing usable
	ErrNoAdvice = errors.New("advisor: no advice")

	// ErrDisabled is returned by advisors with no backing service
	ErrDisabled = errors.New("advisor: disabled")
)

// Decision bounds, values outside are clamped
const (
	MinSpeedMod    = -5.0
	MaxSpeedMod    = 10.0
	MinObstacleMod = 0.25
	MaxObstacleMod = 4.0
)

// Decision is the game master's answer
type Decision struct {
	Event       string  `json:"event"`
	SpeedMod    float64 `json:"speedMod"`
	ObstacleMod float64 `json:"obstacleMod"`
}

// Advisor produces commentary lines and difficulty decisions
// Implementations must honor ctx cancellation
type Advisor interface {
	Commentary(ctx context.Context, situation string) (string, error)
	Decide(ctx context.Context, score int, speed float64) (Decision, error)
}

// ParseDecision decodes and validates a JSON decision
func ParseDecision(text string) (Decision, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Decision{}, ErrNoAdvice
	}

	var d Decision
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return Decision{}, fmt.Errorf("decode decision: %w", err)
	}
	return d.Validate()
}

// Validate rejects unusable decisions and clamps modifiers into range
func (d Decision) Validate() (Decision, error) {
	d.Event = strings.TrimSpace(d.Event)
	if d.Event == "" {
		return Decision{}, ErrNoAdvice
	}
	if math.IsNaN(d.SpeedMod) || math.IsInf(d.SpeedMod, 0) {
		return Decision{}, fmt.Errorf("speed modifier %v: %w", d.SpeedMod, ErrNoAdvice)
	}
	if math.IsNaN(d.ObstacleMod) || math.IsInf(d.ObstacleMod, 0) || d.ObstacleMod <= 0 {
		return Decision{}, fmt.Errorf("obstacle modifier %v: %w", d.ObstacleMod, ErrNoAdvice)
	}

	d.SpeedMod = min(max(d.SpeedMod, MinSpeedMod), MaxSpeedMod)
	d.ObstacleMod = min(max(d.ObstacleMod, MinObstacleMod), MaxObstacleMod)
	return d, nil
}

// Nop is the advisor used when no collaborator is configured
type Nop struct{}

func (Nop) Commentary(ctx context.Context, situation string) (string, error) {
	return "", ErrDisabled
}

func (Nop) Decide(ctx context.Context, score int, speed float64) (Decision, error) {
	return Decision{}, ErrDisabled
}
