//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package term

import (
	"errors"
)

type rawState struct{}

func makeRaw(fd int) (*rawState, error) {
	return nil, errors.ErrUnsupported
}

func restoreRaw(fd int, saved *rawState) error {
	return errors.ErrUnsupported
}

func readRaw(fd int, buf []byte) (int, error) {
	return 0, errors.ErrUnsupported
}
