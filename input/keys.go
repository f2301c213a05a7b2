package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Action is a game-level meaning of a key
type Action int

const (
	ActionNone Action = iota
	ActionAccelerate
	ActionBrake
	ActionLeft
	ActionRight
	ActionBoost
	ActionCamera
	ActionStart
	ActionMute
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:       "none",
	ActionAccelerate: "accelerate",
	ActionBrake:      "brake",
	ActionLeft:       "left",
	ActionRight:      "right",
	ActionBoost:      "boost",
	ActionCamera:     "camera",
	ActionStart:      "start",
	ActionMute:       "mute",
	ActionQuit:       "quit",
}

// String returns the action name
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// keyTable maps special keys
var keyTable = map[tcell.Key]Action{
	tcell.KeyUp:     ActionAccelerate,
	tcell.KeyDown:   ActionBrake,
	tcell.KeyLeft:   ActionLeft,
	tcell.KeyRight:  ActionRight,
	tcell.KeyEnter:  ActionStart,
	tcell.KeyEscape: ActionQuit,
	tcell.KeyCtrlC:  ActionQuit,
	tcell.KeyCtrlQ:  ActionQuit,
}

// runeTable maps printable keys, matched case-insensitively
var runeTable = map[rune]Action{
	'w': ActionAccelerate,
	's': ActionBrake,
	'a': ActionLeft,
	'd': ActionRight,
	' ': ActionBoost,
	'c': ActionCamera,
	'm': ActionMute,
	'q': ActionQuit,
}

// MapKey translates a key event into an action
func MapKey(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		if a, ok := runeTable[unicode.ToLower(ev.Rune())]; ok {
			return a
		}
		return ActionNone
	}
	if a, ok := keyTable[ev.Key()]; ok {
		return a
	}
	return ActionNone
}
