package sdl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/frontend"
)

func TestLitRects(t *testing.T) {
	assert := assert.New(t)

	disp := display.NewDisplay()
	assert.Empty(litRects(disp, 10))

	disp.Set(0, 0, 1)
	disp.Set(63, 31, 1)
	assert.Equal([]sdl.Rect{
		{X: 0, Y: 0, W: 10, H: 10},
		{X: 630, Y: 310, W: 10, H: 10},
	}, litRects(disp, 10))
}

func TestTranslate(t *testing.T) {
	assert := assert.New(t)

	ui := &Sdl{Keymap: frontend.DEFAULT_KEYMAP, Scale: 1}

	keyboard := func(typ uint32, sym sdl.Keycode, repeat uint8) sdl.Event {
		return &sdl.KeyboardEvent{Type: typ, Repeat: repeat, Keysym: sdl.Keysym{Sym: sym}}
	}

	table := [](struct {
		ev     sdl.Event
		events []emulator.Event
	}){
		{&sdl.QuitEvent{Type: sdl.QUIT}, []emulator.Event{{Kind: emulator.EVENT_QUIT}}},
		{keyboard(sdl.KEYDOWN, sdl.K_1, 0), []emulator.Event{emulator.KeyEvent(0x1, true)}},
		{keyboard(sdl.KEYUP, sdl.K_1, 0), []emulator.Event{emulator.KeyEvent(0x1, false)}},
		{keyboard(sdl.KEYDOWN, sdl.K_v, 0), []emulator.Event{emulator.KeyEvent(0xf, true)}},
		{keyboard(sdl.KEYDOWN, sdl.K_v, 1), nil},
		{keyboard(sdl.KEYDOWN, sdl.K_TAB, 0), []emulator.Event{{Kind: emulator.EVENT_PAUSE}}},
		{keyboard(sdl.KEYDOWN, sdl.K_p, 0), []emulator.Event{{Kind: emulator.EVENT_DUMP}}},
		{keyboard(sdl.KEYDOWN, sdl.K_n, 0), []emulator.Event{{Kind: emulator.EVENT_STEP}}},
		{keyboard(sdl.KEYDOWN, sdl.K_ESCAPE, 0), []emulator.Event{{Kind: emulator.EVENT_QUIT}}},
		{keyboard(sdl.KEYUP, sdl.K_ESCAPE, 0), nil},
		{keyboard(sdl.KEYDOWN, sdl.K_z, 0), nil},
		{&sdl.DropEvent{Type: sdl.DROPFILE, File: "nothing.ch8"}, nil},
	}

	for n, entry := range table {
		assert.Equal(entry.events, ui.translate(entry.ev), n)
	}
}

func TestTranslateDrop(t *testing.T) {
	assert := assert.New(t)

	ui := &Sdl{Keymap: frontend.DEFAULT_KEYMAP, Scale: 1}

	path := filepath.Join(t.TempDir(), "red.c8t")
	assert.NoError(os.WriteFile(path, []byte(`{"1": [255, 0, 0]}`), 0o644))

	events := ui.translate(&sdl.DropEvent{Type: sdl.DROPFILE, File: path})
	assert.Equal([]emulator.Event{{
		Kind:   emulator.EVENT_PALETTE,
		Colors: map[uint8]display.Color{1: {R: 255}},
	}}, events)
}

func TestBeep(t *testing.T) {
	assert := assert.New(t)

	bell := &bytes.Buffer{}
	ui := &Sdl{Bell: bell}

	ui.Beep()
	ui.Beep()
	assert.Equal("\a\a", bell.String())

	ui.Bell = nil
	ui.Beep()
}
