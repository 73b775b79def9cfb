// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/frontend"
	"github.com/ezrec/chip8/frontend/sdl"
	"github.com/ezrec/chip8/frontend/term"
	chipio "github.com/ezrec/chip8/io"
	"github.com/ezrec/chip8/translate"
)

// closer is a frontend holding host resources.
type closer interface {
	emulator.Frontend
	Close() error
}

// options are the command line settings that override the configuration file.
type options struct {
	mode, shift, jump, io cpu.Mode

	debug, strict, verbose bool
	fps, ipt, scale        int
	frontend, theme, keys  string
}

// apply copies the flags given on the command line into cfg.
func (opt *options) apply(cfg *emulator.Config, set map[string]bool) {
	if set["mode"] {
		mode := opt.mode
		cfg.Mode = &mode
	}
	if set["shift"] {
		cfg.Shift = opt.shift
	}
	if set["jump"] {
		cfg.Jump = opt.jump
	}
	if set["io"] {
		cfg.Io = opt.io
	}
	if set["debug"] {
		cfg.Debug = opt.debug
	}
	if set["strict"] {
		cfg.Strict = opt.strict
	}
	if set["v"] {
		cfg.Verbose = opt.verbose
	}
	if set["fps"] {
		cfg.Fps = opt.fps
	}
	if set["ipt"] {
		cfg.InstructionsPerTick = opt.ipt
	}
	if set["scale"] {
		cfg.Scale = opt.scale
	}
	if set["frontend"] {
		cfg.Frontend = opt.frontend
	}
	if set["theme"] {
		cfg.Theme = opt.theme
	}
	if set["keys"] {
		cfg.Keys = opt.keys
	}
}

// disassemble writes a listing of a ROM image.
func disassemble(w io.Writer, rom []byte) (err error) {
	for n := 0; n < len(rom); n += 2 {
		addr := cpu.ROM_START + n
		if n+1 == len(rom) {
			_, err = fmt.Fprintf(w, "%03x: %02x       .byte %#x\n", addr, rom[n], rom[n])
			return
		}
		code := cpu.Code(uint16(rom[n])<<8 | uint16(rom[n+1]))
		_, err = fmt.Fprintf(w, "%03x: %04x     %v\n", addr, uint16(code), code)
		if err != nil {
			return
		}
	}

	return
}

// applyTheme queues the colors of a theme file for the first frame.
func applyTheme(emu *emulator.Emulator, path string) (err error) {
	colors, err := frontend.LoadTheme(path)
	if err != nil {
		return
	}

	emu.Post(emulator.Event{Kind: emulator.EVENT_PALETTE, Colors: colors})

	return
}

func newFrontend(cfg emulator.Config, title string) (fe closer, err error) {
	keymap := frontend.DEFAULT_KEYMAP
	if len(cfg.Keys) != 0 {
		keymap, err = frontend.ParseKeymap(cfg.Keys)
		if err != nil {
			return
		}
	}

	switch cfg.Frontend {
	case "term":
		var tm *term.Term
		tm, err = term.NewTerm(os.Stdin, os.Stdout, keymap)
		if err != nil {
			return
		}
		tm.Verbose = cfg.Verbose
		fe = tm
	case "sdl":
		var ui *sdl.Sdl
		ui, err = sdl.NewSdl(title, cfg.Scale, keymap)
		if err != nil {
			return
		}
		ui.Verbose = cfg.Verbose
		fe = ui
	default:
		err = emulator.ErrConfigFrontend
	}

	return
}

func main() {
	var opt options
	var config string
	var assemble string
	var save string
	var list bool

	log.SetFlags(0)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")

	f := translate.From

	flag.Var(&opt.mode, "mode", f("Quirk mode for all quirks (legacy, modern)"))
	flag.Var(&opt.shift, "shift", f("Quirk mode for 8XY6/8XYE"))
	flag.Var(&opt.jump, "jump", f("Quirk mode for BNNN"))
	flag.Var(&opt.io, "io", f("Quirk mode for FX55/FX65"))
	flag.BoolVar(&opt.debug, "debug", false, f("Enable the pause (TAB), dump (p) and step (n) keys"))
	flag.BoolVar(&opt.strict, "strict", false, f("Report emulated program errors"))
	flag.BoolVar(&opt.verbose, "v", false, f("Verbose mode"))
	flag.IntVar(&opt.fps, "fps", emulator.DEFAULT_FPS, f("Frames per second"))
	flag.IntVar(&opt.ipt, "ipt", emulator.DEFAULT_IPT, f("Instructions per frame tick"))
	flag.IntVar(&opt.scale, "scale", emulator.DEFAULT_SCALE, f("Window pixels per display pixel"))
	flag.StringVar(&opt.frontend, "frontend", "term", f("Frontend (term, sdl)"))
	flag.StringVar(&opt.theme, "theme", "", f("%v theme file to apply", frontend.THEME_EXTENSION))
	flag.StringVar(&opt.keys, "keys", frontend.DEFAULT_KEYS, f("Host keys of the keypad, row by row"))
	flag.StringVar(&config, "config", "", f(".toml configuration file"))
	flag.StringVar(&assemble, "a", "", f(".c8s file to assemble"))
	flag.StringVar(&save, "s", "", f("Save the assembled ROM to this file, do not execute"))
	flag.BoolVar(&list, "l", false, f("List the disassembled ROM, do not execute"))

	flag.Usage = func() {
		p := translate.Printer()
		out := flag.CommandLine.Output()
		p.Fprintf(out, "Usage: %v [options] [rom.ch8]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})

	switch {
	case len(assemble) != 0 && flag.NArg() != 0:
		log.Fatal(f("Unknown arguments: %v", flag.Args()))
	case len(assemble) == 0 && flag.NArg() != 1:
		flag.Usage()
		os.Exit(2)
	}

	cfg := emulator.DefaultConfig()
	if len(config) != 0 {
		var err error
		cfg, err = emulator.LoadConfigFile(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}
	opt.apply(&cfg, set)

	err := cfg.Validate()
	if err != nil {
		log.Fatal(err)
	}

	emu := emulator.NewEmulator(cfg, nil)

	var title string
	if len(assemble) != 0 {
		title = assemble

		inf, err := os.Open(assemble)
		if err != nil {
			log.Fatalf("%v: %v", assemble, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: cfg.Verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}

		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", assemble, err)
		}

		if len(save) != 0 {
			err = os.WriteFile(save, prog.Binary(), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", save, err)
			}
			return
		}

		err = emu.LoadProgram(prog)
		if err != nil {
			log.Fatalf("%v: %v", assemble, err)
		}
	} else {
		title = flag.Arg(0)

		rom, err := chipio.ReadRom(title)
		if err != nil {
			log.Fatal(err)
		}

		if list {
			err = disassemble(os.Stdout, rom)
			if err != nil {
				log.Fatal(err)
			}
			return
		}

		err = emu.LoadRom(rom)
		if err != nil {
			log.Fatalf("%v: %v", title, err)
		}
	}

	if len(cfg.Theme) != 0 {
		err = applyTheme(emu, cfg.Theme)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Theme, err)
		}
	}

	fe, err := newFrontend(cfg, filepath.Base(title))
	if err != nil {
		log.Fatal(err)
	}
	emu.Frontend = fe

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = emu.Run(ctx)
	stop()

	cerr := fe.Close()
	if err != nil {
		log.Fatal(err)
	}
	if cerr != nil {
		log.Fatal(cerr)
	}
}
