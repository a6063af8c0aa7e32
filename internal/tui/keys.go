package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"racer/internal/sim"
)

// Terminals report key presses and auto-repeats but never releases, so a
// driving key counts as held until a window passes without a repeat. The
// first window covers the terminal's initial repeat delay; once repeats
// arrive the shorter window lets a released key drop quickly.
const (
	firstHoldWindow = 600 * time.Millisecond
	repeatWindow    = 220 * time.Millisecond
)

type action int

const (
	actNone action = iota
	actForward
	actBackward
	actLeft
	actRight
	actHandbrake
	actStart
	actPause
	actReset
	actQuit
)

// actionFor maps a key event to a driver action.
func actionFor(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyUp:
		return actForward
	case tcell.KeyDown:
		return actBackward
	case tcell.KeyLeft:
		return actLeft
	case tcell.KeyRight:
		return actRight
	case tcell.KeyEnter:
		return actStart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return actForward
		case 's', 'S':
			return actBackward
		case 'a', 'A':
			return actLeft
		case 'd', 'D':
			return actRight
		case ' ':
			return actHandbrake
		case 'p', 'P':
			return actPause
		case 'r', 'R':
			return actReset
		case 'q', 'Q':
			return actQuit
		}
	}
	return actNone
}

// holds remembers when each driving action was last seen and whether it
// is being auto-repeated.
type holds struct {
	last      map[action]time.Time
	repeating map[action]bool
}

func newHolds() *holds {
	return &holds{
		last:      make(map[action]time.Time),
		repeating: make(map[action]bool),
	}
}

func (h *holds) press(a action, now time.Time) {
	h.repeating[a] = h.held(a, now)
	h.last[a] = now
	if o, ok := opposite[a]; ok {
		delete(h.last, o)
		delete(h.repeating, o)
	}
}

func (h *holds) window(a action) time.Duration {
	if h.repeating[a] {
		return repeatWindow
	}
	return firstHoldWindow
}

func (h *holds) held(a action, now time.Time) bool {
	t, ok := h.last[a]
	return ok && now.Sub(t) < h.window(a)
}

func (h *holds) clear() {
	clear(h.last)
	clear(h.repeating)
}

// intent is the driving controls held at now.
func (h *holds) intent(now time.Time) sim.Intent {
	return sim.Intent{
		Forward:   h.held(actForward, now),
		Backward:  h.held(actBackward, now),
		Left:      h.held(actLeft, now),
		Right:     h.held(actRight, now),
		Handbrake: h.held(actHandbrake, now),
	}
}

// Pressing one direction drops a stale hold on its opposite so taps reverse
// promptly.
var opposite = map[action]action{
	actForward:  actBackward,
	actBackward: actForward,
	actLeft:     actRight,
	actRight:    actLeft,
}
