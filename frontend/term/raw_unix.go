//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package term

import (
	"golang.org/x/sys/unix"
)

type rawState = unix.Termios

// makeRaw disables line editing, echo and signals on the terminal, and
// makes reads return immediately.
func makeRaw(fd int) (saved *rawState, err error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}

	saved = &rawState{}
	*saved = *termios
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN | unix.ISIG
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	state.Cc[unix.VMIN] = 0
	state.Cc[unix.VTIME] = 0

	err = unix.IoctlSetTermios(fd, ioctlSetTermios, &state)
	if err != nil {
		saved = nil
	}

	return
}

func restoreRaw(fd int, saved *rawState) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, saved)
}

func readRaw(fd int, buf []byte) (n int, err error) {
	n, err = unix.Read(fd, buf)
	if err == unix.EAGAIN || err == unix.EINTR {
		n, err = 0, nil
	}

	return
}
