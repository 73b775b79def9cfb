package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert := assert.New(t)

	code := Decode(0xd1, 0x2f)
	assert.Equal(Code(0xd12f), code)
	assert.Equal([2]uint8{0xd1, 0x2f}, code.Bytes())
	assert.Equal(0xd, code.Nibble())
	assert.Equal(1, code.X())
	assert.Equal(2, code.Y())
	assert.Equal(uint8(0xf), code.N())
	assert.Equal(uint8(0x2f), code.NN())
	assert.Equal(uint16(0x12f), code.NNN())
}

func TestCodeOp(t *testing.T) {
	table := [](struct {
		code Code
		op   Op
		text string
	}){
		{0x0000, OP_SYS, "sys 0x000"},
		{0x0123, OP_SYS, "sys 0x123"},
		{0x00e0, OP_CLS, "cls"},
		{0x00ee, OP_RET, "ret"},
		{0x1abc, OP_JP, "jp 0xabc"},
		{0x2abc, OP_CALL, "call 0xabc"},
		{0x3a12, OP_SE_IMM, "se va 0x12"},
		{0x4a12, OP_SNE_IMM, "sne va 0x12"},
		{0x5ab0, OP_SE_REG, "se va vb"},
		{0x5ab7, OP_SE_REG, "se va vb"},
		{0x6a12, OP_LD_IMM, "ld va 0x12"},
		{0x7a12, OP_ADD_IMM, "add va 0x12"},
		{0x8ab0, OP_LD_REG, "ld va vb"},
		{0x8ab1, OP_OR, "or va vb"},
		{0x8ab2, OP_AND, "and va vb"},
		{0x8ab3, OP_XOR, "xor va vb"},
		{0x8ab4, OP_ADD_REG, "add va vb"},
		{0x8ab5, OP_SUB, "sub va vb"},
		{0x8ab6, OP_SHR, "shr va vb"},
		{0x8ab7, OP_SUBN, "subn va vb"},
		{0x8abe, OP_SHL, "shl va vb"},
		{0x8ab8, OP_UNKNOWN, ".word 0x8ab8"},
		{0x9ab0, OP_SNE_REG, "sne va vb"},
		{0xa123, OP_LD_I, "ld i 0x123"},
		{0xb123, OP_JP_V0, "jp v0 0x123"},
		{0xca12, OP_RND, "rnd va 0x12"},
		{0xdab5, OP_DRW, "drw va vb 5"},
		{0xea9e, OP_SKP, "skp va"},
		{0xeaa1, OP_SKNP, "sknp va"},
		{0xea00, OP_UNKNOWN, ".word 0xea00"},
		{0xfa07, OP_LD_VX_DT, "ld va dt"},
		{0xfa0a, OP_LD_VX_K, "ld va k"},
		{0xfa15, OP_LD_DT_VX, "ld dt va"},
		{0xfa18, OP_LD_ST_VX, "ld st va"},
		{0xfa1e, OP_ADD_I_VX, "add i va"},
		{0xfa29, OP_LD_F_VX, "ld f va"},
		{0xfa33, OP_LD_B_VX, "ld b va"},
		{0xfa55, OP_LD_MEM_VX, "ld [i] va"},
		{0xfa65, OP_LD_VX_MEM, "ld va [i]"},
		{0xfaff, OP_UNKNOWN, ".word 0xfaff"},
	}

	for _, entry := range table {
		t.Run(entry.text, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(entry.op, entry.code.Op())
			assert.Equal(entry.text, entry.code.String())
		})
	}
}

func TestCodeOpCoverage(t *testing.T) {
	assert := assert.New(t)

	// Every operation is reachable from some word.
	seen := map[Op]bool{}
	for word := range 0x10000 {
		seen[Code(word).Op()] = true
	}

	assert.Equal(OP_COUNT+1, len(seen))
	for op := range Op(OP_COUNT + 1) {
		assert.True(seen[op], op.String())
	}
}
