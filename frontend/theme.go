package frontend

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ezrec/chip8/display"
)

// THEME_EXTENSION is the file extension of palette themes.
const THEME_EXTENSION = ".c8t"

// IsTheme returns true if the path names a theme file.
func IsTheme(path string) bool {
	return strings.EqualFold(filepath.Ext(path), THEME_EXTENSION)
}

// ParseTheme reads a JSON theme, mapping pixel values to RGB triples:
//
//	{"0": [212, 252, 217], "1": [71, 115, 77]}
//
// Entries for pixel values other than 0 and 1 are returned, and are
// ignored by the display.
func ParseTheme(r io.Reader) (colors map[uint8]display.Color, err error) {
	var theme map[string][]int

	err = json.NewDecoder(r).Decode(&theme)
	if err != nil {
		err = errors.Join(ErrThemeSyntax, err)
		return
	}

	colors = make(map[uint8]display.Color, len(theme))
	for key, rgb := range theme {
		value, perr := strconv.ParseUint(key, 10, 8)
		if perr != nil {
			err = errors.Join(ErrThemeSyntax, perr)
			colors = nil
			return
		}

		if len(rgb) != 3 {
			err = ErrThemeColor(key)
			colors = nil
			return
		}
		for _, c := range rgb {
			if c < 0 || c > 255 {
				err = ErrThemeColor(key)
				colors = nil
				return
			}
		}

		colors[uint8(value)] = display.Color{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2])}
	}

	return
}

// LoadTheme reads a theme file.
func LoadTheme(path string) (colors map[uint8]display.Color, err error) {
	if !IsTheme(path) {
		err = ErrThemeExtension
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return ParseTheme(inf)
}
