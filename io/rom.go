package io

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

// ROM_LIMIT is the largest ROM image that fits between 0x200 and 0xFFF.
const ROM_LIMIT = 0x1000 - 0x200

// ReadRom reads a ROM image from path. The path must exist, be a regular file
// and fit in memory.
func ReadRom(path string) (rom []byte, err error) {
	defer func() {
		if err != nil {
			err = &ErrRom{Path: path, Err: err}
		}
	}()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		err = ErrRomMissing
		return
	}
	if err != nil {
		return
	}

	if !info.Mode().IsRegular() {
		err = ErrRomNotFile
		return
	}

	if info.Size() > ROM_LIMIT {
		err = ErrRomTooLarge
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return ReadRomFrom(inf)
}

// ReadRomFrom reads a ROM image from a stream.
func ReadRomFrom(r io.Reader) (rom []byte, err error) {
	rom, err = io.ReadAll(io.LimitReader(r, ROM_LIMIT+1))
	if err != nil {
		return
	}

	if len(rom) > ROM_LIMIT {
		rom = nil
		err = ErrRomTooLarge
		return
	}

	return
}
