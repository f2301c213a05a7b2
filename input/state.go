package input

import (
	"time"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
)

// heldActions are the actions tracked as held controls, in Control bit order
var heldActions = [...]struct {
	action  Action
	control components.Control
}{
	{ActionAccelerate, components.ControlAccelerate},
	{ActionBrake, components.ControlBrake},
	{ActionLeft, components.ControlLeft},
	{ActionRight, components.ControlRight},
}

// KeyState tracks simultaneously held driving keys
// Terminals report presses and auto-repeats but no releases, so a key counts as held
// until its hold window lapses: KeyHoldInitial after the first press (covers the
// auto-repeat delay), KeyHoldRepeat after each repeat
type KeyState struct {
	until        [len(heldActions)]time.Time
	boostPending bool
}

// NewKeyState creates an empty key state
func NewKeyState() *KeyState {
	return &KeyState{}
}

// Press records a key press for an action; non-driving actions are ignored
func (ks *KeyState) Press(a Action, now time.Time) {
	if a == ActionBoost {
		ks.boostPending = true
		return
	}

	for i, h := range heldActions {
		if h.action != a {
			continue
		}
		window := constants.KeyHoldInitial
		if now.Before(ks.until[i]) {
			window = constants.KeyHoldRepeat
		}
		if expiry := now.Add(window); expiry.After(ks.until[i]) {
			ks.until[i] = expiry
		}

		// Opposite direction cancels the other immediately
		switch a {
		case ActionLeft:
			ks.release(ActionRight)
		case ActionRight:
			ks.release(ActionLeft)
		case ActionAccelerate:
			ks.release(ActionBrake)
		case ActionBrake:
			ks.release(ActionAccelerate)
		}
		return
	}
}

func (ks *KeyState) release(a Action) {
	for i, h := range heldActions {
		if h.action == a {
			ks.until[i] = time.Time{}
		}
	}
}

// Held reports whether an action is held at now
func (ks *KeyState) Held(a Action, now time.Time) bool {
	for i, h := range heldActions {
		if h.action == a {
			return now.Before(ks.until[i])
		}
	}
	return false
}

// Snapshot returns the controls held at now and consumes a pending boost trigger
func (ks *KeyState) Snapshot(now time.Time) components.Input {
	var in components.Input
	for i, h := range heldActions {
		if now.Before(ks.until[i]) {
			in.Held |= h.control
		}
	}
	if ks.boostPending {
		in.Held |= components.ControlBoost
		ks.boostPending = false
	}
	return in
}

// Clear drops all held keys and pending triggers
func (ks *KeyState) Clear() {
	*ks = KeyState{}
}
