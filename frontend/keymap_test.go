package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/emulator"
)

func TestKeymapDefault(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		r   rune
		key uint8
	}){
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xc},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xd},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xe},
		{'y', 0xa}, {'x', 0x0}, {'c', 0xb}, {'v', 0xf},
		{'Q', 0x4}, {'V', 0xf},
	}

	for _, entry := range table {
		key, ok := DEFAULT_KEYMAP.Key(entry.r)
		assert.True(ok, string(entry.r))
		assert.Equal(entry.key, key, string(entry.r))
	}

	for _, r := range []rune{'5', 'z', 'p', '\t', ' ', '\x1b'} {
		_, ok := DEFAULT_KEYMAP.Key(r)
		assert.False(ok, string(r))
	}
}

func TestParseKeymap(t *testing.T) {
	assert := assert.New(t)

	km, err := ParseKeymap("1234QWERASDFZXCV")
	assert.NoError(err)
	key, ok := km.Key('z')
	assert.True(ok)
	assert.Equal(uint8(0xa), key)
	_, ok = km.Key('y')
	assert.False(ok)

	table := [](struct {
		keys string
		err  error
	}){
		{"", ErrKeymapSize},
		{"123", ErrKeymapSize},
		{"1234qwerasdfyxcvb", ErrKeymapSize},
		{"1134qwerasdfyxcv", ErrKeymapDuplicate},
		{"1234qwerasdfyxcQ", ErrKeymapDuplicate},
		{"1234qwerasdfyxcp", ErrKeymapReserved('p')},
		{"1234qwerasdfyxcP", ErrKeymapReserved('p')},
		{"1234qwerasdfyxnv", ErrKeymapReserved('n')},
		{"1234qwerasdf\txcv", ErrKeymapReserved('\t')},
		{"1234qwerasdfyx\x1bv", ErrKeymapReserved('\x1b')},
	}

	for _, entry := range table {
		km, err = ParseKeymap(entry.keys)
		assert.ErrorIs(err, entry.err, "%q", entry.keys)
		assert.Nil(km, "%q", entry.keys)
	}

	// Reserved keys stay controls with the default keymap.
	for _, r := range []rune{KEY_PAUSE, KEY_DUMP, KEY_STEP, KEY_QUIT} {
		_, ok := DEFAULT_KEYMAP.Key(r)
		assert.False(ok, "%q", r)
	}
}

func TestControl(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		r    rune
		kind emulator.EventKind
	}){
		{'\t', emulator.EVENT_PAUSE},
		{'p', emulator.EVENT_DUMP},
		{'P', emulator.EVENT_DUMP},
		{'n', emulator.EVENT_STEP},
		{'N', emulator.EVENT_STEP},
		{'\x1b', emulator.EVENT_QUIT},
	}

	for _, entry := range table {
		ev, ok := Control(entry.r)
		assert.True(ok, string(entry.r))
		assert.Equal(entry.kind, ev.Kind, string(entry.r))
	}

	_, ok := Control('q')
	assert.False(ok)
}
