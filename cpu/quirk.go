package cpu

import (
	"strings"
)

// Mode selects between the original COSMAC VIP behavior of an opcode
// family, and the CHIP-48 (and later) behavior.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_LEGACY = Mode(0) // legacy
	MODE_MODERN = Mode(1) // modern
)

// MarshalText implements encoding.TextMarshaler.
func (mode Mode) MarshalText() ([]byte, error) {
	return []byte(mode.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Accepts the mode names, and 0 or 1.
func (mode *Mode) UnmarshalText(text []byte) (err error) {
	switch strings.ToLower(string(text)) {
	case "legacy", "vip", "0":
		*mode = MODE_LEGACY
	case "modern", "chip48", "1":
		*mode = MODE_MODERN
	default:
		err = ErrModeInvalid(string(text))
	}

	return
}

// Set implements flag.Value.
func (mode *Mode) Set(value string) error {
	return mode.UnmarshalText([]byte(value))
}

// Quirks is the set of opcode family behaviors, fixed for a run.
type Quirks struct {
	Shift Mode // 8XY6/8XYE: legacy shifts a copy of VY into VX.
	Jump  Mode // BNNN: legacy adds V0, modern adds VX of BXNN.
	Io    Mode // FX55/FX65: legacy advances I past the block.
}

// DefaultQuirks is the CHIP-48 behavior.
var DefaultQuirks = NewQuirks(MODE_MODERN)

// NewQuirks returns quirks with every family in the same mode.
func NewQuirks(mode Mode) Quirks {
	return Quirks{Shift: mode, Jump: mode, Io: mode}
}
