package io

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// ROM errors
	ErrRomMissing  = errors.New(f("rom file could not be found"))
	ErrRomNotFile  = errors.New(f("rom path does not point to a file"))
	ErrRomTooLarge = errors.New(f("rom does not fit in memory"))
)

// ErrRom indicates the path of a ROM that could not be loaded.
type ErrRom struct {
	Path string
	Err  error
}

func (err *ErrRom) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrRom) Unwrap() error {
	return err.Err
}
