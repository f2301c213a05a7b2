package components

import "time"

// DifficultyModifier is an advisory event applied to world speed and spawn rate
// At most one is active; expiry reverts to neutral
type DifficultyModifier struct {
	SpeedModifier          float64
	ObstacleRateMultiplier float64
	EventLabel             string
	ExpiresAt              time.Time
}

// NeutralModifier returns the no-op modifier
func NeutralModifier() DifficultyModifier {
	return DifficultyModifier{SpeedModifier: 0, ObstacleRateMultiplier: 1.0}
}

// IsNeutral reports whether the modifier has no effect
func (m DifficultyModifier) IsNeutral() bool {
	return m.SpeedModifier == 0 && m.ObstacleRateMultiplier == 1.0 && m.EventLabel == ""
}

// Active reports whether a non-neutral modifier is in effect at now
func (m DifficultyModifier) Active(now time.Time) bool {
	return !m.IsNeutral() && now.Before(m.ExpiresAt)
}
