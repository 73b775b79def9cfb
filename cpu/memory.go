package cpu

const (
	MEMORY_SIZE      = 4096   // Bytes of addressable memory.
	ADDRESS_MASK     = 0x0fff // Mask of a 12-bit address.
	ROM_START        = 0x200  // Load address of programs.
	ROM_SIZE         = MEMORY_SIZE - ROM_START
	FONT_START       = 0x050 // Address of the hexadecimal font.
	FONT_SIZE        = 5     // Bytes per font glyph.
	REGISTER_COUNT   = 16    // V0 to VF.
	REG_VF           = 0xf   // Flag register.
	INSTRUCTION_SIZE = 2     // Bytes per instruction word.
)

// FONT_DATA holds the 4x5 glyphs of the hexadecimal digits 0-F.
var FONT_DATA = [16 * FONT_SIZE]uint8{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// read a byte of memory. Out of range reads are 0, or an error when strict.
func (cpu *Cpu) read(addr uint16) (value uint8, err error) {
	if int(addr) >= MEMORY_SIZE {
		if cpu.Strict {
			err = ErrMemoryRange(addr)
		}
		return
	}

	value = cpu.Memory[addr]
	return
}

// write a byte of memory. Out of range writes are dropped, or an error when strict.
func (cpu *Cpu) write(addr uint16, value uint8) (err error) {
	if int(addr) >= MEMORY_SIZE {
		if cpu.Strict {
			err = ErrMemoryRange(addr)
		}
		return
	}

	cpu.Memory[addr] = value
	return
}
