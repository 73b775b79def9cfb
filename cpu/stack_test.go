package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	assert.True(s.Empty())
	assert.Empty(s.Frames())

	assert.NoError(s.Push(0x234))
	assert.NoError(s.Push(0xabc))
	assert.False(s.Empty())
	assert.Equal([]uint16{0x234, 0xabc}, s.Frames())

	addr, err := s.Pop()
	assert.NoError(err)
	assert.Equal(uint16(0xabc), addr)

	addr, err = s.Pop()
	assert.NoError(err)
	assert.Equal(uint16(0x234), addr)
	assert.True(s.Empty())

	addr, err = s.Pop()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(uint16(0), addr)
	assert.Equal(0, s.Depth)
}

func TestStackLimit(t *testing.T) {
	assert := assert.New(t)

	s := &Stack{}
	for n := range STACK_LIMIT {
		assert.NoError(s.Push(uint16(0x200 + 2*n)))
	}

	assert.ErrorIs(s.Push(0xfff), ErrStackFull)
	assert.Equal(STACK_LIMIT, s.Depth)
	assert.Equal(uint16(0x200+2*(STACK_LIMIT-1)), s.Level[STACK_LIMIT-1])

	s.Reset()
	assert.True(s.Empty())
	assert.Equal([STACK_LIMIT]uint16{}, s.Level)
}
