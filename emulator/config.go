package emulator

import (
	"errors"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/display"
)

const (
	DEFAULT_FPS   = 60 // Frames per second.
	DEFAULT_IPT   = 1  // Instructions per frame tick.
	DEFAULT_SCALE = 10 // Host pixels per CHIP-8 pixel.
)

// FRONTENDS are the frontend names.
var FRONTENDS = []string{"term", "sdl"}

// Config is the construction-time configuration of an Emulator.
// It may be loaded from a TOML file:
//
//	mode = "legacy"
//	fps = 60
//	ipt = 10
//	palette = ["#000000", "#ffffff"]
type Config struct {
	Mode  *cpu.Mode `toml:"mode"`  // If set, overrides all quirks.
	Shift cpu.Mode  `toml:"shift"` // 8XY6/8XYE quirk.
	Jump  cpu.Mode  `toml:"jump"`  // BNNN quirk.
	Io    cpu.Mode  `toml:"io"`    // FX55/FX65 quirk.

	Debug   bool `toml:"debug"`   // Enables the pause, dump and step controls.
	Strict  bool `toml:"strict"`  // Reports emulated program errors.
	Verbose bool `toml:"verbose"` // Verbose logging.

	Fps                 int `toml:"fps"` // Frame ticks per second.
	InstructionsPerTick int `toml:"ipt"` // Instructions executed per frame tick.

	Palette display.Palette `toml:"palette"` // Initial colors.

	Frontend string `toml:"frontend"` // Frontend name.
	Scale    int    `toml:"scale"`    // Window scale, for windowed frontends.
	Theme    string `toml:"theme"`    // Theme file applied at start.
	Keys     string `toml:"keys"`     // Host keys of the keypad, row by row.
}

// DefaultConfig returns the CHIP-48 configuration at 60 frames per second.
func DefaultConfig() Config {
	return Config{
		Shift:               cpu.MODE_MODERN,
		Jump:                cpu.MODE_MODERN,
		Io:                  cpu.MODE_MODERN,
		Fps:                 DEFAULT_FPS,
		InstructionsPerTick: DEFAULT_IPT,
		Palette:             display.DefaultPalette,
		Frontend:            "term",
		Scale:               DEFAULT_SCALE,
	}
}

// LoadConfig reads a TOML configuration. Settings absent from the
// input keep their default values.
func LoadConfig(r io.Reader) (cfg Config, err error) {
	cfg = DefaultConfig()

	_, err = toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		err = errors.Join(ErrConfig, err)
		return
	}

	err = cfg.Validate()

	return
}

// LoadConfigFile reads a TOML configuration file.
func LoadConfigFile(path string) (cfg Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return LoadConfig(inf)
}

// Validate checks the configuration ranges.
func (cfg Config) Validate() (err error) {
	var errs []error

	if cfg.Fps <= 0 {
		errs = append(errs, ErrConfigFps)
	}
	if cfg.InstructionsPerTick < 0 {
		errs = append(errs, ErrConfigIpt)
	}
	if !slices.Contains(FRONTENDS, cfg.Frontend) {
		errs = append(errs, ErrConfigFrontend)
	}
	if cfg.Scale <= 0 {
		errs = append(errs, ErrConfigScale)
	}

	err = errors.Join(errs...)
	return
}

// Quirks returns the quirks selected by the configuration.
func (cfg Config) Quirks() cpu.Quirks {
	if cfg.Mode != nil {
		return cpu.NewQuirks(*cfg.Mode)
	}

	return cpu.Quirks{Shift: cfg.Shift, Jump: cfg.Jump, Io: cfg.Io}
}
