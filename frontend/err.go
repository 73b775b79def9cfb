package frontend

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrKeymapSize      = errors.New(f("keymap must name 16 keys"))
	ErrKeymapDuplicate = errors.New(f("keymap names a key twice"))
	ErrThemeSyntax     = errors.New(f("theme syntax"))
	ErrThemeExtension  = errors.New(f("theme files end in " + THEME_EXTENSION))
)

// ErrThemeColor is an invalid color entry of a theme.
type ErrThemeColor string

func (err ErrThemeColor) Error() string {
	return f("theme color '%v' must be three values from 0 to 255", string(err))
}

// ErrKeymapReserved is a keymap entry using a control key.
type ErrKeymapReserved rune

func (err ErrKeymapReserved) Error() string {
	return f("keymap key %q is reserved for a control", rune(err))
}
