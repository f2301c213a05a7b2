package components

import "time"

// BoostSource identifies what engaged the boost
type BoostSource uint8

const (
	BoostSourceNone BoostSource = iota
	BoostSourceManual
	BoostSourceAuto
)

// BoostState tracks boost activation with expiry timestamps
// Active iff now < Until; a trigger while active is a no-op
type BoostState struct {
	Active        bool
	Source        BoostSource
	Until         time.Time // Expiry of the current boost
	CooldownUntil time.Time // Earliest next manual activation
	NextAuto      time.Time // Next auto-boost trigger (zero when vehicle has none)
}

// Remaining returns the time left on an active boost
func (b BoostState) Remaining(now time.Time) time.Duration {
	if !b.Active || !now.Before(b.Until) {
		return 0
	}
	return b.Until.Sub(now)
}
