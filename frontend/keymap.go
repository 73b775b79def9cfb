package frontend

import (
	"unicode"

	"github.com/ezrec/chip8/emulator"
)

const (
	KEY_PAUSE = '\t'   // Toggles pause, in debug mode.
	KEY_DUMP  = 'p'    // Dumps the machine state, in debug mode.
	KEY_STEP  = 'n'    // Steps one frame while paused, in debug mode.
	KEY_QUIT  = '\x1b' // Escape quits.
)

// KEYPAD_LAYOUT is the keypad, row by row.
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
var KEYPAD_LAYOUT = [16]uint8{
	0x1, 0x2, 0x3, 0xc,
	0x4, 0x5, 0x6, 0xd,
	0x7, 0x8, 0x9, 0xe,
	0xa, 0x0, 0xb, 0xf,
}

// DEFAULT_KEYS are the host keys of KEYPAD_LAYOUT.
const DEFAULT_KEYS = "1234qwerasdfyxcv"

// Keymap maps host keys to keypad keys.
type Keymap map[rune]uint8

// DEFAULT_KEYMAP is the keymap of DEFAULT_KEYS.
var DEFAULT_KEYMAP = MustKeymap(DEFAULT_KEYS)

// ParseKeymap builds a keymap from 16 host keys, given in the order
// of KEYPAD_LAYOUT. Control keys may not be used.
func ParseKeymap(keys string) (km Keymap, err error) {
	runes := []rune(keys)
	if len(runes) != len(KEYPAD_LAYOUT) {
		err = ErrKeymapSize
		return
	}

	km = make(Keymap, len(runes))
	for n, r := range runes {
		r = unicode.ToLower(r)
		_, control := Control(r)
		if control {
			km = nil
			err = ErrKeymapReserved(r)
			return
		}
		_, dup := km[r]
		if dup {
			km = nil
			err = ErrKeymapDuplicate
			return
		}
		km[r] = KEYPAD_LAYOUT[n]
	}

	return
}

// MustKeymap is ParseKeymap, which panics on error.
func MustKeymap(keys string) Keymap {
	km, err := ParseKeymap(keys)
	if err != nil {
		panic(err)
	}

	return km
}

// Key returns the keypad key of a host key. Letters match either case.
func (km Keymap) Key(r rune) (key uint8, ok bool) {
	key, ok = km[unicode.ToLower(r)]
	return
}

// Control returns the control event of a host key, if it has one.
func Control(r rune) (ev emulator.Event, ok bool) {
	ok = true
	switch r {
	case KEY_PAUSE:
		ev.Kind = emulator.EVENT_PAUSE
	case KEY_DUMP, 'P':
		ev.Kind = emulator.EVENT_DUMP
	case KEY_STEP, 'N':
		ev.Kind = emulator.EVENT_STEP
	case KEY_QUIT:
		ev.Kind = emulator.EVENT_QUIT
	default:
		ok = false
	}

	return
}
