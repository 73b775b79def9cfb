package emulator

import (
	"github.com/ezrec/chip8/display"
)

// EventKind is the kind of a host event.
type EventKind int

//go:generate go tool stringer -linecomment -type=EventKind
const (
	EVENT_QUIT    = EventKind(0) // quit
	EVENT_KEY     = EventKind(1) // key
	EVENT_PAUSE   = EventKind(2) // pause
	EVENT_DUMP    = EventKind(3) // dump
	EVENT_STEP    = EventKind(4) // step
	EVENT_PALETTE = EventKind(5) // palette
)

// Event is a host event reported by a Frontend.
type Event struct {
	Kind    EventKind
	Key     uint8                   // EVENT_KEY: keypad key.
	Pressed bool                    // EVENT_KEY: true on press, false on release.
	Colors  map[uint8]display.Color // EVENT_PALETTE: colors to replace.
}

// KeyEvent returns a keypad transition event.
func KeyEvent(key uint8, pressed bool) Event {
	return Event{Kind: EVENT_KEY, Key: key, Pressed: pressed}
}

// Frontend renders the display and reports host input.
// The run loop calls it from a single goroutine.
type Frontend interface {
	Poll() (events []Event, err error)        // Poll drains pending host events without blocking.
	Render(disp *display.Display) (err error) // Render presents the display.
	Beep()                                    // Beep signals the sound timer expiring.
}
