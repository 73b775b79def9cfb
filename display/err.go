package display

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrColorSyntax is returned for a color that is not #rrggbb.
type ErrColorSyntax string

func (err ErrColorSyntax) Error() string {
	return f("'%v' is not a #rrggbb color", string(err))
}
