// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

var _emulator_defines = map[string]string{
	"TIMER_HZ": fmt.Sprintf("%v", cpu.TIMER_HZ),
	"KEY_NONE": fmt.Sprintf("%v", io.KEY_NONE),
}

// Emulator state. CPU + keypad + frontend.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Listing of the running program, if assembled.

	Config   Config    // Construction-time configuration.
	Keypad   io.Keypad // Keypad, as seen by the CPU.
	Frontend Frontend  // Renderer and host input.

	Paused    bool        // Set to stop timers and execution.
	Interrupt atomic.Bool // Set to stop Run at the next frame.
	Frames    int         // Frame ticks since a reset.

	pending []Event // Events posted outside of the frontend.
	step    bool    // Run a single frame while paused.
	divider int     // Timer divider accumulator.
}

// NewEmulator creates a new emulator.
func NewEmulator(cfg Config, frontend Frontend) (emu *Emulator) {
	emu = &Emulator{
		Verbose:  cfg.Verbose,
		Config:   cfg,
		Frontend: frontend,
	}

	emu.Cpu = cpu.NewCpu(cfg.Quirks(), &emu.Keypad)
	emu.Cpu.Strict = cfg.Strict
	emu.Cpu.Verbose = cfg.Verbose
	emu.Cpu.Display.Verbose = cfg.Verbose
	emu.Keypad.Verbose = cfg.Verbose

	emu.Reset()

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Chain2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Cpu.Display.Defines(),
	)
}

// Reset the machine, keeping the configured palette.
func (emu *Emulator) Reset() {
	emu.Cpu.Reset()
	emu.Cpu.Display.SetPalette(emu.Config.Palette)
	emu.Keypad.Reset()

	emu.Paused = false
	emu.Frames = 0
	emu.step = false
	emu.divider = 0
}

// LoadRom resets the machine and loads a ROM image.
func (emu *Emulator) LoadRom(rom []byte) (err error) {
	emu.Reset()
	emu.Program = nil

	err = emu.Cpu.Load(rom)

	return
}

// LoadProgram resets the machine and loads an assembled program.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	err = emu.LoadRom(prog.Binary())
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// LineNo returns the source line of the instruction at addr, or 0.
func (emu *Emulator) LineNo(addr uint16) int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(addr)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Dump returns the machine state as text.
func (emu *Emulator) Dump() string {
	text := emu.Cpu.String()

	if emu.Program != nil {
		dbg := emu.Program.Debug(emu.Cpu.Pc)
		if dbg.Opcode != nil {
			text += fmt.Sprintf("% 5s: %d %v\n", "line", dbg.LineNo, strings.Join(dbg.Words, " "))
		}
	}

	text += fmt.Sprintf("% 5s: %d\n", "frame", emu.Frames)

	return text
}

// Post queues an event, handled ahead of the frontend events of the next frame.
func (emu *Emulator) Post(ev Event) {
	emu.pending = append(emu.pending, ev)
}

// timerTicks advances the timer divider by one frame, and returns the
// number of 60 Hz timer ticks that elapsed.
func (emu *Emulator) timerTicks() (ticks int) {
	if emu.Config.Fps <= 0 {
		return
	}

	emu.divider += cpu.TIMER_HZ
	for emu.divider >= emu.Config.Fps {
		emu.divider -= emu.Config.Fps
		ticks++
	}

	return
}

// countSound counts down the sound timer, and beeps when it expires.
func (emu *Emulator) countSound(ticks int) {
	for range ticks {
		if emu.Cpu.Sound.CountDown() {
			if emu.Verbose {
				log.Printf("emulator: beep")
			}
			if emu.Frontend != nil {
				emu.Frontend.Beep()
			}
		}
	}
}

// handle applies a single event. Returns true on a quit request.
func (emu *Emulator) handle(ev Event) (done bool) {
	if emu.Verbose {
		log.Printf("emulator: event %v", ev.Kind)
	}

	switch ev.Kind {
	case EVENT_QUIT:
		done = true
	case EVENT_KEY:
		emu.Keypad.Post(ev.Key, ev.Pressed)
	case EVENT_PALETTE:
		emu.Cpu.Display.ReplaceColors(ev.Colors)
	case EVENT_PAUSE:
		if emu.Config.Debug {
			emu.Paused = !emu.Paused
			log.Printf("emulator: paused=%v", emu.Paused)
		}
	case EVENT_DUMP:
		if emu.Config.Debug {
			log.Print(emu.Dump())
		}
	case EVENT_STEP:
		if emu.Config.Debug && emu.Paused {
			emu.step = true
		}
	}

	return
}

// Frame performs a single frame tick of the emulator.
// Emulated program errors are logged, and do not stop the frame.
func (emu *Emulator) Frame() (done bool, err error) {
	ticks := 0
	if !emu.Paused {
		ticks = emu.timerTicks()
		emu.countSound(ticks)
	}

	var polled []Event
	if emu.Frontend != nil {
		polled, err = emu.Frontend.Poll()
		if err != nil {
			return
		}
	}

	events := internal.Chain(slices.Values(emu.pending), slices.Values(polled))
	for ev := range events {
		if emu.handle(ev) {
			done = true
		}
	}
	emu.pending = nil
	emu.Keypad.Ingest()

	if done {
		return
	}

	if emu.Paused && emu.step {
		ticks = emu.timerTicks()
		emu.countSound(ticks)
	}

	if !emu.Paused || emu.step {
		emu.step = false

		for range ticks {
			emu.Cpu.Delay.CountDown()
		}

		for range emu.Config.InstructionsPerTick {
			pc := emu.Cpu.Pc
			terr := emu.Cpu.Tick()
			if terr != nil {
				terr = &ErrRuntime{Pc: pc, LineNo: emu.LineNo(pc), Err: terr}
				log.Printf("emulator: %v", terr)
			}
		}

		emu.Frames++
	}

	if emu.Frontend != nil {
		err = emu.Frontend.Render(emu.Cpu.Display)
		if err != nil {
			return
		}
		emu.Cpu.Display.Drawn()
	}

	return
}

// Run performs frame ticks at the configured rate until the context is
// done, the frontend requests a quit, or Interrupt is set.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	err = emu.Config.Validate()
	if err != nil {
		return
	}

	ticker := time.NewTicker(time.Second / time.Duration(emu.Config.Fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if emu.Interrupt.Load() {
			return
		}

		var done bool
		done, err = emu.Frame()
		if err != nil || done {
			return
		}
	}
}
