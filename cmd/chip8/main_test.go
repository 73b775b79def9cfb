package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/frontend"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	assert.NoError(disassemble(out, []byte{0x00, 0xe0, 0x6a, 0x02, 0xd0, 0x15, 0x7f}))
	assert.Equal(""+
		"200: 00e0     cls\n"+
		"202: 6a02     ld va 0x02\n"+
		"204: d015     drw v0 v1 5\n"+
		"206: 7f       .byte 0x7f\n",
		out.String())

	out.Reset()
	assert.NoError(disassemble(out, nil))
	assert.Empty(out.String())
}

func TestOptionsApply(t *testing.T) {
	assert := assert.New(t)

	opt := options{
		mode:     cpu.MODE_LEGACY,
		jump:     cpu.MODE_LEGACY,
		debug:    true,
		fps:      30,
		ipt:      9,
		scale:    4,
		frontend: "sdl",
		keys:     "1234QWERASDFZXCV",
	}

	// Nothing given on the command line.
	cfg := emulator.DefaultConfig()
	opt.apply(&cfg, map[string]bool{})
	assert.Equal(emulator.DefaultConfig(), cfg)

	cfg = emulator.DefaultConfig()
	opt.apply(&cfg, map[string]bool{"jump": true, "fps": true, "frontend": true, "keys": true})
	assert.Equal(cpu.Quirks{Shift: cpu.MODE_MODERN, Jump: cpu.MODE_LEGACY, Io: cpu.MODE_MODERN}, cfg.Quirks())
	assert.Equal(30, cfg.Fps)
	assert.Equal(emulator.DEFAULT_IPT, cfg.InstructionsPerTick)
	assert.Equal("sdl", cfg.Frontend)
	assert.Equal("1234QWERASDFZXCV", cfg.Keys)
	assert.False(cfg.Debug)

	cfg = emulator.DefaultConfig()
	opt.apply(&cfg, map[string]bool{"mode": true, "debug": true, "ipt": true, "scale": true})
	assert.Equal(cpu.NewQuirks(cpu.MODE_LEGACY), cfg.Quirks())
	assert.True(cfg.Debug)
	assert.Equal(9, cfg.InstructionsPerTick)
	assert.Equal(4, cfg.Scale)

	// The mode is copied, not shared.
	opt.mode = cpu.MODE_MODERN
	assert.Equal(cpu.MODE_LEGACY, *cfg.Mode)
}

func TestNewFrontendErrors(t *testing.T) {
	assert := assert.New(t)

	cfg := emulator.DefaultConfig()
	cfg.Keys = "abc"
	_, err := newFrontend(cfg, "test")
	assert.Error(err)

	cfg = emulator.DefaultConfig()
	cfg.Frontend = "x11"
	_, err = newFrontend(cfg, "test")
	assert.ErrorIs(err, emulator.ErrConfigFrontend)
}

func TestApplyTheme(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "blue.c8t")
	assert.NoError(os.WriteFile(path, []byte(`{"1": [0, 0, 255]}`), 0o644))

	emu := emulator.NewEmulator(emulator.DefaultConfig(), nil)
	assert.NoError(applyTheme(emu, path))

	// Applied by the next frame.
	assert.Equal(display.DefaultPalette, emu.Cpu.Display.Palette())
	_, err := emu.Frame()
	assert.NoError(err)
	assert.Equal(display.Palette{display.DefaultPalette[0], {B: 255}}, emu.Cpu.Display.Palette())

	assert.ErrorIs(applyTheme(emu, filepath.Join(dir, "blue.json")), frontend.ErrThemeExtension)
	assert.ErrorIs(applyTheme(emu, filepath.Join(dir, "missing.c8t")), os.ErrNotExist)
}
