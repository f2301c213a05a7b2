package systems

import (
	"strings"
	"time"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/events"
)

// DifficultySystem expires the active modifier and schedules game-master consultations
// Decisions arrive asynchronously and are applied through ApplyDecision
type DifficultySystem struct{}

func NewDifficultySystem() *DifficultySystem {
	return &DifficultySystem{}
}

func (ds *DifficultySystem) Priority() int {
	return constants.PriorityDifficulty
}

func (ds *DifficultySystem) Update(s *engine.SimulationState, f *Frame) {
	if !s.Modifier.IsNeutral() && !f.Now.Before(s.Modifier.ExpiresAt) {
		s.Modifier = components.NeutralModifier()
		f.emit(s, events.EventDifficultyChanged, &events.DifficultyPayload{Modifier: s.Modifier, Reverted: true})
	}

	if !s.Racing || s.Over() {
		return
	}

	if f.Now.Before(s.NextAdvisory) {
		return
	}
	s.NextAdvisory = f.Now.Add(constants.AdvisoryInterval)

	if s.Score > constants.AdvisoryMinScore {
		f.emit(s, events.EventAdvisoryRequest, &events.AdvisoryRequestPayload{
			Score: s.Score,
			Speed: s.Vehicle.Speed,
		})
	}
}

// IsNeutralLabel reports whether a decision label means "no change"
func IsNeutralLabel(label string) bool {
	label = strings.TrimSpace(label)
	return label == "" || strings.EqualFold(label, constants.NeutralEventLabel)
}

// ApplyDecision installs a game-master decision for ModifierDuration
// Neutral labels and decisions arriving after the race ended are ignored
func ApplyDecision(s *engine.SimulationState, d *events.AdvisoryDecisionPayload, now time.Time, queue *events.EventQueue) bool {
	if d == nil || s.Over() || !s.Racing || IsNeutralLabel(d.EventLabel) {
		return false
	}

	s.Modifier = components.DifficultyModifier{
		SpeedModifier:          d.SpeedModifier,
		ObstacleRateMultiplier: d.ObstacleRateMultiplier,
		EventLabel:             strings.TrimSpace(d.EventLabel),
		ExpiresAt:              now.Add(constants.ModifierDuration),
	}

	f := &Frame{Now: now, Queue: queue}
	spawnText(s, constants.TrackWidth/2-40, constants.TrackHeight/3, s.Modifier.EventLabel, colorAlert)
	f.emit(s, events.EventDifficultyChanged, &events.DifficultyPayload{Modifier: s.Modifier})
	f.emit(s, events.EventCommentaryRequest, &events.CommentaryRequestPayload{
		Situation: "ALERT: " + s.Modifier.EventLabel,
		Force:     true,
	})
	return true
}
