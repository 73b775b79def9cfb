package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0x200, Words: []string{"ld", "v0", "0x10"},
				Codes: []Code{0x6010}},
			{LineNo: 2, Addr: 0x202, Words: []string{".word", "0x1234", "0x5678"},
				Codes: []Code{0x1234, 0x5678}},
			{LineNo: 4, Addr: 0x206, Words: []string{".byte", "1", "2", "3"},
				Bytes: []uint8{1, 2, 3}},
			{LineNo: 5, Addr: 0x209, Words: []string{"ret"},
				Codes: []Code{0x00ee}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	table := [](struct {
		addr   uint16
		lineno int
		offset int
	}){
		{0x200, 1, 0},
		{0x201, 1, 1},
		{0x202, 2, 0},
		{0x204, 2, 2},
		{0x205, 2, 3},
		{0x208, 4, 2},
		{0x209, 5, 0},
		{0x20a, 5, 1},
	}

	for _, entry := range table {
		dbg := prog.Debug(entry.addr)
		if assert.NotNil(dbg.Opcode, entry.addr) {
			assert.Equal(entry.lineno, dbg.LineNo, entry.addr)
			assert.Equal(entry.offset, dbg.Offset, entry.addr)
		}
	}
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	for _, addr := range []uint16{0x000, 0x1ff, 0x20b, 0xfff} {
		dbg := prog.Debug(addr)
		assert.Nil(dbg.Opcode, addr)
		assert.Equal(0, dbg.Offset, addr)
	}

	empty := &Program{}
	assert.Nil(empty.Debug(0x200).Opcode)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal([]uint8{
		0x60, 0x10,
		0x12, 0x34, 0x56, 0x78,
		0x01, 0x02, 0x03,
		0x00, 0xee,
	}, prog.Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	addrs := []uint16{}
	codes := []Code{}
	for addr, code := range prog.Codes() {
		addrs = append(addrs, addr)
		codes = append(codes, code)
	}

	assert.Equal([]uint16{0x200, 0x202, 0x204, 0x209}, addrs)
	assert.Equal([]Code{0x6010, 0x1234, 0x5678, 0x00ee}, codes)

	// Early termination
	count := 0
	for range prog.Codes() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}

func TestOpcode_Size(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	sizes := []uint16{}
	for _, op := range prog.Opcodes {
		sizes = append(sizes, op.Size())
	}

	assert.Equal([]uint16{2, 4, 3, 2}, sizes)
}
