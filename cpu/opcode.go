package cpu

import (
	"fmt"
)

// Op is a decoded CHIP-8 operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_UNKNOWN   = Op(0)  // .word
	OP_SYS       = Op(1)  // sys
	OP_CLS       = Op(2)  // cls
	OP_RET       = Op(3)  // ret
	OP_JP        = Op(4)  // jp
	OP_CALL      = Op(5)  // call
	OP_SE_IMM    = Op(6)  // se
	OP_SNE_IMM   = Op(7)  // sne
	OP_SE_REG    = Op(8)  // se
	OP_LD_IMM    = Op(9)  // ld
	OP_ADD_IMM   = Op(10) // add
	OP_LD_REG    = Op(11) // ld
	OP_OR        = Op(12) // or
	OP_AND       = Op(13) // and
	OP_XOR       = Op(14) // xor
	OP_ADD_REG   = Op(15) // add
	OP_SUB       = Op(16) // sub
	OP_SHR       = Op(17) // shr
	OP_SUBN      = Op(18) // subn
	OP_SHL       = Op(19) // shl
	OP_SNE_REG   = Op(20) // sne
	OP_LD_I      = Op(21) // ld
	OP_JP_V0     = Op(22) // jp
	OP_RND       = Op(23) // rnd
	OP_DRW       = Op(24) // drw
	OP_SKP       = Op(25) // skp
	OP_SKNP      = Op(26) // sknp
	OP_LD_VX_DT  = Op(27) // ld
	OP_LD_VX_K   = Op(28) // ld
	OP_LD_DT_VX  = Op(29) // ld
	OP_LD_ST_VX  = Op(30) // ld
	OP_ADD_I_VX  = Op(31) // add
	OP_LD_F_VX   = Op(32) // ld
	OP_LD_B_VX   = Op(33) // ld
	OP_LD_MEM_VX = Op(34) // ld
	OP_LD_VX_MEM = Op(35) // ld
)

// OP_COUNT is the number of defined opcodes, OP_UNKNOWN excluded.
const OP_COUNT = 35

// Code is a single 16-bit instruction word.
type Code uint16

// Decode a big-endian instruction word.
func Decode(hi, lo uint8) Code {
	return Code(uint16(hi)<<8 | uint16(lo))
}

// Bytes returns the big-endian encoding of the word.
func (code Code) Bytes() [2]uint8 {
	return [2]uint8{uint8(code >> 8), uint8(code)}
}

// Nibble returns the top nibble, which selects the opcode family.
func (code Code) Nibble() int {
	return int(code >> 12)
}

// X returns the first register operand.
func (code Code) X() int {
	return int(code>>8) & 0xf
}

// Y returns the second register operand.
func (code Code) Y() int {
	return int(code>>4) & 0xf
}

// N returns the 4-bit constant.
func (code Code) N() uint8 {
	return uint8(code & 0xf)
}

// NN returns the 8-bit constant.
func (code Code) NN() uint8 {
	return uint8(code & 0xff)
}

// NNN returns the 12-bit address.
func (code Code) NNN() uint16 {
	return uint16(code & ADDRESS_MASK)
}

// _decode is the dispatch table of opcode families, keyed by the top nibble.
var _decode = [16]func(code Code) Op{
	0x0: func(code Code) Op {
		switch code {
		case 0x00e0:
			return OP_CLS
		case 0x00ee:
			return OP_RET
		}
		return OP_SYS
	},
	0x1: func(Code) Op { return OP_JP },
	0x2: func(Code) Op { return OP_CALL },
	0x3: func(Code) Op { return OP_SE_IMM },
	0x4: func(Code) Op { return OP_SNE_IMM },
	0x5: func(Code) Op { return OP_SE_REG },
	0x6: func(Code) Op { return OP_LD_IMM },
	0x7: func(Code) Op { return OP_ADD_IMM },
	0x8: func(code Code) Op {
		switch code.N() {
		case 0x0:
			return OP_LD_REG
		case 0x1:
			return OP_OR
		case 0x2:
			return OP_AND
		case 0x3:
			return OP_XOR
		case 0x4:
			return OP_ADD_REG
		case 0x5:
			return OP_SUB
		case 0x6:
			return OP_SHR
		case 0x7:
			return OP_SUBN
		case 0xe:
			return OP_SHL
		}
		return OP_UNKNOWN
	},
	0x9: func(Code) Op { return OP_SNE_REG },
	0xa: func(Code) Op { return OP_LD_I },
	0xb: func(Code) Op { return OP_JP_V0 },
	0xc: func(Code) Op { return OP_RND },
	0xd: func(Code) Op { return OP_DRW },
	0xe: func(code Code) Op {
		switch code.NN() {
		case 0x9e:
			return OP_SKP
		case 0xa1:
			return OP_SKNP
		}
		return OP_UNKNOWN
	},
	0xf: func(code Code) Op {
		switch code.NN() {
		case 0x07:
			return OP_LD_VX_DT
		case 0x0a:
			return OP_LD_VX_K
		case 0x15:
			return OP_LD_DT_VX
		case 0x18:
			return OP_LD_ST_VX
		case 0x1e:
			return OP_ADD_I_VX
		case 0x29:
			return OP_LD_F_VX
		case 0x33:
			return OP_LD_B_VX
		case 0x55:
			return OP_LD_MEM_VX
		case 0x65:
			return OP_LD_VX_MEM
		}
		return OP_UNKNOWN
	},
}

// Op decodes the operation of the word.
func (code Code) Op() Op {
	return _decode[code.Nibble()](code)
}

// String returns the disassembly of the word.
func (code Code) String() string {
	op := code.Op()
	x := code.X()
	y := code.Y()

	switch op {
	case OP_CLS, OP_RET:
		return op.String()
	case OP_SYS, OP_JP, OP_CALL:
		return fmt.Sprintf("%v 0x%03x", op, code.NNN())
	case OP_LD_I:
		return fmt.Sprintf("%v i 0x%03x", op, code.NNN())
	case OP_JP_V0:
		return fmt.Sprintf("%v v0 0x%03x", op, code.NNN())
	case OP_SE_IMM, OP_SNE_IMM, OP_LD_IMM, OP_ADD_IMM, OP_RND:
		return fmt.Sprintf("%v v%x 0x%02x", op, x, code.NN())
	case OP_SE_REG, OP_SNE_REG, OP_LD_REG, OP_OR, OP_AND, OP_XOR,
		OP_ADD_REG, OP_SUB, OP_SHR, OP_SUBN, OP_SHL:
		return fmt.Sprintf("%v v%x v%x", op, x, y)
	case OP_DRW:
		return fmt.Sprintf("%v v%x v%x %d", op, x, y, code.N())
	case OP_SKP, OP_SKNP:
		return fmt.Sprintf("%v v%x", op, x)
	case OP_LD_VX_DT:
		return fmt.Sprintf("%v v%x dt", op, x)
	case OP_LD_VX_K:
		return fmt.Sprintf("%v v%x k", op, x)
	case OP_LD_DT_VX:
		return fmt.Sprintf("%v dt v%x", op, x)
	case OP_LD_ST_VX:
		return fmt.Sprintf("%v st v%x", op, x)
	case OP_ADD_I_VX:
		return fmt.Sprintf("%v i v%x", op, x)
	case OP_LD_F_VX:
		return fmt.Sprintf("%v f v%x", op, x)
	case OP_LD_B_VX:
		return fmt.Sprintf("%v b v%x", op, x)
	case OP_LD_MEM_VX:
		return fmt.Sprintf("%v [i] v%x", op, x)
	case OP_LD_VX_MEM:
		return fmt.Sprintf("%v v%x [i]", op, x)
	}

	return fmt.Sprintf("%v 0x%04x", op, uint16(code))
}
