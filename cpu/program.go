package cpu

import (
	"iter"
)

// Opcode is a single assembled source line.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      uint16   // Load address.
	Words     []string // Source words, after equate and macro expansion.
	Codes     []Code   // Instruction words.
	Bytes     []uint8  // Data bytes, following any instruction words.
	LinkLabel string   // Label linked into the NNN field of the last code.
}

// Size returns the number of bytes the opcode occupies.
func (op *Opcode) Size() uint16 {
	return uint16(INSTRUCTION_SIZE*len(op.Codes) + len(op.Bytes))
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Offset int // Byte offset of the address in the opcode.
}

// Debug finds the source opcode that covers an address.
// The returned Opcode is nil if no opcode covers it.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Addr && addr < op.Addr+op.Size() {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Offset: int(addr - op.Addr),
			}
			break
		}
	}

	return
}

// Binary returns the ROM image, starting at ROM_START.
func (prog *Program) Binary() (rom []uint8) {
	for _, op := range prog.Opcodes {
		for _, code := range op.Codes {
			b := code.Bytes()
			rom = append(rom, b[:]...)
		}
		rom = append(rom, op.Bytes...)
	}

	return
}

// Codes iterates over the instruction words and their addresses.
// Data bytes are skipped.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			addr := op.Addr
			for n, code := range op.Codes {
				if !yield(addr+uint16(INSTRUCTION_SIZE*n), code) {
					return
				}
			}
		}
	}
}
