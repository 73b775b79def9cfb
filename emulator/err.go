package emulator

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrConfigFps = errors.New(f("frames per second must be positive"))
	ErrConfigIpt = errors.New(f("instructions per tick must not be negative"))
	ErrConfig    = errors.New(f("configuration invalid"))

	ErrConfigFrontend = errors.New(f("frontend must be one of term, sdl"))
	ErrConfigScale    = errors.New(f("scale must be positive"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint16 // Address of the faulting instruction.
	LineNo int    // Source line, if the program was assembled.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("0x%03x (line %d) %v", err.Pc, err.LineNo, err.Err)
	}
	return f("0x%03x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
