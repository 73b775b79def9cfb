package display

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// String returns the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses #rrggbb.
func (c *Color) UnmarshalText(text []byte) (err error) {
	str := strings.TrimPrefix(string(text), "#")
	if len(str) != 6 {
		err = ErrColorSyntax(string(text))
		return
	}

	rgb, err := strconv.ParseUint(str, 16, 24)
	if err != nil {
		err = ErrColorSyntax(string(text))
		return
	}

	*c = Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)}
	return
}

// Palette maps a pixel value (0 or 1) to its color.
type Palette [2]Color

// DefaultPalette is the light green on dark green scheme.
var DefaultPalette = Palette{
	{R: 212, G: 252, B: 217},
	{R: 71, G: 115, B: 77},
}

// Palette returns the current color table.
func (disp *Display) Palette() Palette {
	return disp.palette
}

// SetPalette replaces the whole color table.
func (disp *Display) SetPalette(palette Palette) {
	disp.palette = palette
	disp.dirty = true
}

// ReplaceColors hot-swaps the color table entries present in colors.
// Keys other than 0 and 1 are ignored.
func (disp *Display) ReplaceColors(colors map[uint8]Color) {
	for value, color := range colors {
		if int(value) >= len(disp.palette) {
			if disp.Verbose {
				log.Printf("display: ignoring color for pixel value %v", value)
			}
			continue
		}
		disp.palette[value] = color
		disp.dirty = true
	}

	if disp.Verbose {
		log.Printf("display: palette %v %v", disp.palette[0], disp.palette[1])
	}
}
