// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package sdl implements a windowed CHIP-8 frontend using SDL2.
package sdl

import (
	"errors"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/ezrec/chip8/display"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/frontend"
)

// Sdl is a window frontend.
type Sdl struct {
	Verbose bool            // If set, logs events.
	Keymap  frontend.Keymap // Host keys to keypad keys.
	Scale   int32           // Window pixels per display pixel.
	Bell    io.Writer       // Receives a terminal bell on Beep.

	window   *sdl.Window
	renderer *sdl.Renderer
	drawn    bool
}

var _ emulator.Frontend = (*Sdl)(nil)

// NewSdl opens a window scaled from the display size.
func NewSdl(title string, scale int, keymap frontend.Keymap) (ui *Sdl, err error) {
	if scale < 1 {
		scale = 1
	}
	if keymap == nil {
		keymap = frontend.DEFAULT_KEYMAP
	}

	// SDL calls must all be made from the main thread.
	runtime.LockOSThread()

	err = sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return
	}

	ui = &Sdl{
		Keymap: keymap,
		Scale:  int32(scale),
		Bell:   os.Stdout,
	}

	ui.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		display.WIDTH*ui.Scale, display.HEIGHT*ui.Scale,
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		ui = nil
		return
	}

	ui.renderer, err = sdl.CreateRenderer(ui.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		_ = ui.window.Destroy()
		sdl.Quit()
		ui = nil
		return
	}

	return
}

// Close destroys the window, and shuts down SDL.
func (ui *Sdl) Close() (err error) {
	err = errors.Join(ui.renderer.Destroy(), ui.window.Destroy())
	sdl.Quit()

	return
}

// translate converts an SDL event to emulator events.
func (ui *Sdl) translate(ev sdl.Event) (events []emulator.Event) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		events = append(events, emulator.Event{Kind: emulator.EVENT_QUIT})
	case *sdl.KeyboardEvent:
		r := rune(ev.Keysym.Sym)
		switch ev.Type {
		case sdl.KEYDOWN:
			if ev.Repeat != 0 {
				break
			}
			key, ok := ui.Keymap.Key(r)
			if ok {
				events = append(events, emulator.KeyEvent(key, true))
				break
			}
			cev, ok := frontend.Control(r)
			if ok {
				events = append(events, cev)
			}
		case sdl.KEYUP:
			key, ok := ui.Keymap.Key(r)
			if ok {
				events = append(events, emulator.KeyEvent(key, false))
			}
		}
	case *sdl.DropEvent:
		if ev.Type != sdl.DROPFILE {
			break
		}
		colors, err := frontend.LoadTheme(ev.File)
		if err != nil {
			log.Printf("sdl: %v: %v", ev.File, err)
			break
		}
		events = append(events, emulator.Event{Kind: emulator.EVENT_PALETTE, Colors: colors})
	}

	if ui.Verbose {
		for _, ev := range events {
			log.Printf("sdl: event %v", ev.Kind)
		}
	}

	return
}

// Poll drains the SDL event queue.
func (ui *Sdl) Poll() (events []emulator.Event, err error) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		events = append(events, ui.translate(ev)...)
	}

	return
}

// Render redraws the window when the display changed.
func (ui *Sdl) Render(disp *display.Display) (err error) {
	if ui.drawn && !disp.Dirty() {
		return
	}

	palette := disp.Palette()

	off := palette[0]
	err = ui.renderer.SetDrawColor(off.R, off.G, off.B, 255)
	if err != nil {
		return
	}
	err = ui.renderer.Clear()
	if err != nil {
		return
	}

	on := palette[1]
	err = ui.renderer.SetDrawColor(on.R, on.G, on.B, 255)
	if err != nil {
		return
	}

	rects := litRects(disp, ui.Scale)
	if len(rects) != 0 {
		err = ui.renderer.FillRects(rects)
		if err != nil {
			return
		}
	}

	ui.renderer.Present()
	ui.drawn = true

	return
}

// litRects returns the window rectangles of the lit pixels.
func litRects(disp *display.Display, scale int32) (rects []sdl.Rect) {
	for y := range display.HEIGHT {
		for x := range display.WIDTH {
			if disp.Get(x, y) == 0 {
				continue
			}
			rects = append(rects, sdl.Rect{
				X: int32(x) * scale,
				Y: int32(y) * scale,
				W: scale,
				H: scale,
			})
		}
	}

	return
}

// Beep rings the bell of the launching terminal.
func (ui *Sdl) Beep() {
	if ui.Bell == nil {
		return
	}

	_, err := io.WriteString(ui.Bell, "\a")
	if err != nil && ui.Verbose {
		log.Printf("sdl: beep: %v", err)
	}
}
