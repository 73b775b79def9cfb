// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand"

	"github.com/ezrec/chip8/display"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", MEMORY_SIZE),
	"ROM_START":   fmt.Sprintf("0x%x", ROM_START),
	"FONT_START":  fmt.Sprintf("0x%x", FONT_START),
	"FONT_SIZE":   fmt.Sprintf("%v", FONT_SIZE),
}

// Input is the keypad as seen by the interpreter.
type Input interface {
	Pressed(key uint8) bool // Pressed returns true if the key is held.
	Any() int               // Any returns a held key, or a negative value if none.
}

// Cpu is the CHIP-8 interpreter and the machine state it owns.
type Cpu struct {
	Verbose bool   // Set to enable verbose logging.
	Strict  bool   // Set to report emulated program errors.
	Quirks  Quirks // Opcode family behaviors.

	Memory   [MEMORY_SIZE]uint8    // Main memory.
	Register [REGISTER_COUNT]uint8 // V0 to VF.
	I        uint16                // Index register.
	Pc       uint16                // Program counter.
	Stack    Stack                 // Return address stack.
	Delay    Timer                 // Delay timer.
	Sound    Timer                 // Sound timer.

	Display *display.Display // Framebuffer.
	Input   Input            // Keypad.
	Rand    *rand.Rand       // Source for CXNN. If nil, the global source.

	Ticks int // Instructions executed since a reset.
}

// NewCpu creates a reset CPU with its own display.
func NewCpu(quirks Quirks, input Input) (cpu *Cpu) {
	cpu = &Cpu{
		Quirks:  quirks,
		Display: display.NewDisplay(),
		Input:   input,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	hi, _ := cpu.read(cpu.Pc)
	lo, _ := cpu.read(cpu.Pc + 1)

	text += fmt.Sprintf("% 5s: 0x%03x %v\n", "pc", cpu.Pc, Decode(hi, lo))
	text += fmt.Sprintf("% 5s: 0x%03x\n", "i", cpu.I)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: 0x%02x\n", fmt.Sprintf("v%x", n), val)
	}
	text += fmt.Sprintf("% 5s: %d\n", "dt", cpu.Delay.Read())
	text += fmt.Sprintf("% 5s: %d\n", "st", cpu.Sound.Read())

	stack := "---"
	if !cpu.Stack.Empty() {
		stack = ""
		for n, addr := range cpu.Stack.Frames() {
			if n > 0 {
				stack += " "
			}
			stack += fmt.Sprintf("0x%03x", addr)
		}
	}
	text += fmt.Sprintf("% 5s: %v\n", "stack", stack)

	return
}

// Reset the CPU state.
// - Clears memory and reloads the font.
// - Clears the registers, stack, timers and display.
// - Sets the program counter to the ROM start.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[FONT_START:], FONT_DATA[:])

	clear(cpu.Register[:])
	cpu.I = 0
	cpu.Pc = ROM_START
	cpu.Stack.Reset()
	cpu.Delay.Set(0)
	cpu.Sound.Set(0)
	cpu.Ticks = 0

	if cpu.Display != nil {
		cpu.Display.Reset()
	}
}

// Load copies a program image to the ROM start.
func (cpu *Cpu) Load(rom []uint8) (err error) {
	if len(rom) > ROM_SIZE {
		err = ErrProgramSize
		return
	}

	copy(cpu.Memory[ROM_START:], rom)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(rom))
	}

	return
}

// Fetch reads the instruction at the program counter, and advances it.
// The program counter advances even if the read fails.
func (cpu *Cpu) Fetch() (code Code, err error) {
	pc := cpu.Pc
	cpu.Pc += INSTRUCTION_SIZE

	hi, err := cpu.read(pc)
	if err != nil {
		return
	}
	lo, err := cpu.read(pc + 1)
	if err != nil {
		return
	}

	code = Decode(hi, lo)
	return
}

// Tick executes a single fetch-decode-execute cycle.
// In strict mode an error leaves the faulting instruction skipped.
func (cpu *Cpu) Tick() (err error) {
	pc := cpu.Pc

	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%03x: %v", pc, code)
	}

	cpu.Ticks++

	err = cpu.Execute(code)

	return
}

// Execute executes a single decoded instruction.
// The program counter must already point past the instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	v := &cpu.Register
	x := code.X()
	y := code.Y()

	switch code.Op() {
	case OP_SYS:
		// Machine code routines are not emulated.
	case OP_CLS:
		cpu.Display.Clear()
	case OP_RET:
		addr, serr := cpu.Stack.Pop()
		if serr != nil {
			if cpu.Strict {
				err = serr
			}
			return
		}
		cpu.Pc = addr
	case OP_JP:
		cpu.Pc = code.NNN()
	case OP_CALL:
		serr := cpu.Stack.Push(cpu.Pc)
		if serr != nil && cpu.Strict {
			err = serr
			return
		}
		cpu.Pc = code.NNN()
	case OP_SE_IMM:
		cpu.skipIf(v[x] == code.NN())
	case OP_SNE_IMM:
		cpu.skipIf(v[x] != code.NN())
	case OP_SE_REG:
		cpu.skipIf(v[x] == v[y])
	case OP_SNE_REG:
		cpu.skipIf(v[x] != v[y])
	case OP_LD_IMM:
		v[x] = code.NN()
	case OP_ADD_IMM:
		v[x] += code.NN()
	case OP_LD_REG:
		v[x] = v[y]
	case OP_OR:
		v[x] |= v[y]
		v[REG_VF] = 0
	case OP_AND:
		v[x] &= v[y]
		v[REG_VF] = 0
	case OP_XOR:
		v[x] ^= v[y]
		v[REG_VF] = 0
	case OP_ADD_REG:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = uint8(sum)
		v[REG_VF] = boolFlag(sum > 0xff)
	case OP_SUB:
		carry := boolFlag(v[x] > v[y])
		v[x] = v[x] - v[y]
		v[REG_VF] = carry
	case OP_SUBN:
		carry := boolFlag(v[y] > v[x])
		v[x] = v[y] - v[x]
		v[REG_VF] = carry
	case OP_SHR:
		if cpu.Quirks.Shift == MODE_LEGACY {
			v[x] = v[y]
		}
		carry := v[x] & 0x01
		v[x] >>= 1
		v[REG_VF] = carry
	case OP_SHL:
		if cpu.Quirks.Shift == MODE_LEGACY {
			v[x] = v[y]
		}
		carry := v[x] >> 7
		v[x] <<= 1
		v[REG_VF] = carry
	case OP_LD_I:
		cpu.I = code.NNN()
	case OP_JP_V0:
		reg := 0
		if cpu.Quirks.Jump == MODE_MODERN {
			reg = x
		}
		cpu.Pc = uint16(v[reg]) + code.NNN()
	case OP_RND:
		v[x] = cpu.random() & code.NN()
	case OP_DRW:
		err = cpu.draw(v[x], v[y], code.N())
	case OP_SKP:
		cpu.skipIf(cpu.Input != nil && cpu.Input.Pressed(v[x]))
	case OP_SKNP:
		cpu.skipIf(cpu.Input == nil || !cpu.Input.Pressed(v[x]))
	case OP_LD_VX_DT:
		v[x] = cpu.Delay.Read()
	case OP_LD_VX_K:
		key := -1
		if cpu.Input != nil {
			key = cpu.Input.Any()
		}
		if key < 0 {
			// Spin on this instruction until a key is held.
			cpu.Pc -= INSTRUCTION_SIZE
		} else {
			v[x] = uint8(key)
		}
	case OP_LD_DT_VX:
		cpu.Delay.Set(v[x])
	case OP_LD_ST_VX:
		cpu.Sound.Set(v[x])
	case OP_ADD_I_VX:
		cpu.I += uint16(v[x])
		v[REG_VF] = boolFlag(cpu.I > ADDRESS_MASK)
		cpu.I &= ADDRESS_MASK
	case OP_LD_F_VX:
		cpu.I = FONT_START + uint16(v[x])*FONT_SIZE
	case OP_LD_B_VX:
		value := v[x]
		digits := [3]uint8{value / 100, (value % 100) / 10, value % 10}
		for n, digit := range digits {
			err = cpu.write(cpu.I+uint16(n), digit)
			if err != nil {
				return
			}
		}
	case OP_LD_MEM_VX:
		for n := 0; n <= x; n++ {
			err = cpu.write(cpu.I+uint16(n), v[n])
			if err != nil {
				return
			}
		}
		if cpu.Quirks.Io == MODE_LEGACY {
			cpu.I = (cpu.I + uint16(x) + 1) & ADDRESS_MASK
		}
	case OP_LD_VX_MEM:
		for n := 0; n <= x; n++ {
			v[n], err = cpu.read(cpu.I + uint16(n))
			if err != nil {
				return
			}
		}
		if cpu.Quirks.Io == MODE_LEGACY {
			cpu.I = (cpu.I + uint16(x) + 1) & ADDRESS_MASK
		}
	default:
		if cpu.Strict {
			err = ErrOpcodeUnknown
		}
	}

	return
}

// skipIf skips the next instruction if cond is true.
func (cpu *Cpu) skipIf(cond bool) {
	if cond {
		cpu.Pc += INSTRUCTION_SIZE
	}
}

// draw XORs an n row sprite from I onto the display at (vx, vy).
// VF is set if any lit pixel was turned off.
func (cpu *Cpu) draw(vx, vy uint8, n uint8) (err error) {
	x := int(vx) % display.WIDTH
	y := int(vy) % display.HEIGHT

	cpu.Register[REG_VF] = 0

	// Rows below the bottom edge are clipped, and never read.
	rows := make([]uint8, min(int(n), display.HEIGHT-y))
	for row := range rows {
		rows[row], err = cpu.read(cpu.I + uint16(row))
		if err != nil {
			return
		}
	}

	if cpu.Display.Blit(x, y, rows) {
		cpu.Register[REG_VF] = 1
	}

	return
}

// random returns a random byte.
func (cpu *Cpu) random() uint8 {
	if cpu.Rand != nil {
		return uint8(cpu.Rand.Intn(256))
	}

	return uint8(rand.Intn(256))
}

// boolFlag converts a condition to a VF value.
func boolFlag(cond bool) uint8 {
	if cond {
		return 1
	}

	return 0
}
