// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package term implements a CHIP-8 frontend on an ANSI terminal.
//
// Two display rows are drawn per text line, using upper half block
// characters in 24-bit color. Terminals report no key releases, so a
// key is held until its autorepeat stops.
package term

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/frontend"
)

const (
	HOLD_FIRST  = 30 // Polls a new key stays pressed, covering the autorepeat delay.
	HOLD_REPEAT = 6  // Polls a repeating key stays pressed.

	CTRL_C = '\x03'
)

const (
	ansiHome       = "\x1b[H"
	ansiClear      = "\x1b[2J"
	ansiReset      = "\x1b[0m"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	halfBlock      = "▀"
)

// Term is a terminal frontend.
type Term struct {
	Verbose bool            // If set, logs key transitions.
	Keymap  frontend.Keymap // Host keys to keypad keys.

	read  func(buf []byte) (int, error) // Non-blocking input.
	out   io.Writer
	fd    int
	saved *rawState

	held  map[uint8]int // Keys down, and polls left until release.
	seen  [16]bool      // Keys seen in the current poll.
	drawn bool
	buf   []byte
}

var _ emulator.Frontend = (*Term)(nil)

func newTerm(out io.Writer, keymap frontend.Keymap) (term *Term) {
	if keymap == nil {
		keymap = frontend.DEFAULT_KEYMAP
	}

	term = &Term{
		Keymap: keymap,
		out:    out,
		fd:     -1,
		held:   map[uint8]int{},
		buf:    make([]byte, 256),
	}

	return
}

// NewTerm puts the input terminal in raw mode, and returns a frontend
// drawing to out. Close restores the terminal.
func NewTerm(in *os.File, out *os.File, keymap frontend.Keymap) (term *Term, err error) {
	term = newTerm(out, keymap)
	term.fd = int(in.Fd())

	term.saved, err = makeRaw(term.fd)
	if err != nil {
		term = nil
		return
	}

	term.read = func(buf []byte) (int, error) {
		return readRaw(term.fd, buf)
	}

	_, err = io.WriteString(out, ansiHideCursor+ansiClear)
	if err != nil {
		restoreRaw(term.fd, term.saved)
		term = nil
	}

	return
}

// Close restores the terminal.
func (term *Term) Close() (err error) {
	_, err = io.WriteString(term.out, ansiReset+ansiShowCursor+"\r\n")

	if term.saved != nil {
		rerr := restoreRaw(term.fd, term.saved)
		if err == nil {
			err = rerr
		}
		term.saved = nil
	}

	return
}

// Poll reads the pending host input.
func (term *Term) Poll() (events []emulator.Event, err error) {
	clear(term.seen[:])

	if term.read != nil {
		for {
			var n int
			n, err = term.read(term.buf)
			if err != nil {
				return
			}
			if n == 0 {
				break
			}
			events = append(events, term.parse(term.buf[:n])...)
			if n < len(term.buf) {
				break
			}
		}
	}

	events = append(events, term.release()...)

	return
}

// parse converts raw input to events. Escape sequences are skipped,
// while a lone escape requests a quit.
func (term *Term) parse(data []byte) (events []emulator.Event) {
	text := []rune(string(data))

	for n := 0; n < len(text); n++ {
		r := text[n]

		if r == CTRL_C {
			events = append(events, emulator.Event{Kind: emulator.EVENT_QUIT})
			continue
		}

		if r == frontend.KEY_QUIT && n+1 < len(text) && (text[n+1] == '[' || text[n+1] == 'O') {
			n += 2
			for n < len(text) && (text[n] < 0x40 || text[n] > 0x7e) {
				n++
			}
			continue
		}

		key, ok := term.Keymap.Key(r)
		if ok {
			term.seen[key] = true
			_, down := term.held[key]
			if down {
				term.held[key] = HOLD_REPEAT
				continue
			}
			if term.Verbose {
				log.Printf("term: key %X down", key)
			}
			term.held[key] = HOLD_FIRST
			events = append(events, emulator.KeyEvent(key, true))
			continue
		}

		ev, ok := frontend.Control(r)
		if ok {
			events = append(events, ev)
		}
	}

	return
}

// release counts down the held keys not seen in this poll.
func (term *Term) release() (events []emulator.Event) {
	for key := range uint8(len(term.seen)) {
		left, down := term.held[key]
		if !down || term.seen[key] {
			continue
		}

		left--
		if left > 0 {
			term.held[key] = left
			continue
		}

		if term.Verbose {
			log.Printf("term: key %X up", key)
		}
		delete(term.held, key)
		events = append(events, emulator.KeyEvent(key, false))
	}

	return
}

// Render redraws the display when it changed.
func (term *Term) Render(disp *display.Display) (err error) {
	if term.drawn && !disp.Dirty() {
		return
	}

	_, err = term.out.Write(draw(disp))
	if err != nil {
		return
	}

	term.drawn = true

	return
}

// Beep rings the terminal bell.
func (term *Term) Beep() {
	_, err := io.WriteString(term.out, "\a")
	if err != nil && term.Verbose {
		log.Printf("term: beep: %v", err)
	}
}

// draw renders the display as ANSI text, two rows per line.
func draw(disp *display.Display) []byte {
	var buf bytes.Buffer

	palette := disp.Palette()

	buf.WriteString(ansiHome)
	for y := 0; y < display.HEIGHT; y += 2 {
		fg, bg := -1, -1
		for x := range display.WIDTH {
			top := int(disp.Get(x, y))
			bottom := int(disp.Get(x, y+1))
			if top != fg {
				c := palette[top]
				fmt.Fprintf(&buf, "\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
				fg = top
			}
			if bottom != bg {
				c := palette[bottom]
				fmt.Fprintf(&buf, "\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
				bg = bottom
			}
			buf.WriteString(halfBlock)
		}
		buf.WriteString(ansiReset + "\r\n")
	}

	return buf.Bytes()
}
