// Package display implements the 64x32 monochrome framebuffer of the CHIP-8.
package display

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	WIDTH  = 64 // Pixels per row.
	HEIGHT = 32 // Rows.

	SPRITE_WIDTH = 8 // Pixels per sprite row.
)

var _display_defines = map[string]string{
	"DISPLAY_WIDTH":  fmt.Sprintf("%v", WIDTH),
	"DISPLAY_HEIGHT": fmt.Sprintf("%v", HEIGHT),
}

// Display is the framebuffer. Pixel values are always 0 or 1.
type Display struct {
	Verbose bool // Set to log clears and palette swaps.

	Pixel   [HEIGHT][WIDTH]uint8 // Pixel grid, row major.
	Flipped int                  // Pixel flips since the last Reset.

	palette Palette
	dirty   bool
}

// NewDisplay creates a cleared display with the default palette.
func NewDisplay() (disp *Display) {
	disp = &Display{}

	disp.Reset()

	return
}

// Defines for the display.
func (disp *Display) Defines() iter.Seq2[string, string] {
	return maps.All(_display_defines)
}

// Reset clears the grid, restores the default palette and statistics.
func (disp *Display) Reset() {
	disp.Clear()
	disp.palette = DefaultPalette
	disp.Flipped = 0
}

// Clear turns all pixels off.
func (disp *Display) Clear() {
	if disp.Verbose {
		log.Printf("display: clear")
	}

	clear(disp.Pixel[:])
	disp.dirty = true
}

// Get the value of the pixel at (x, y).
func (disp *Display) Get(x, y int) uint8 {
	return disp.Pixel[y][x]
}

// Set the pixel at (x, y). Any nonzero value lights the pixel.
func (disp *Display) Set(x, y int, value uint8) {
	if value != 0 {
		value = 1
	}

	if disp.Pixel[y][x] != value {
		disp.Pixel[y][x] = value
		disp.Flipped++
		disp.dirty = true
	}
}

// Blit XORs a sprite onto the grid with its top-left corner at (x, y).
// Each byte of rows is one sprite row, MSB leftmost. The origin must be on
// the grid; the sprite is clipped at the right and bottom edges.
// Returns true if any lit pixel was turned off.
func (disp *Display) Blit(x, y int, rows []uint8) (collision bool) {
	for n, row := range rows {
		py := y + n
		if py >= HEIGHT {
			break
		}
		for bit := range SPRITE_WIDTH {
			px := x + bit
			if px >= WIDTH {
				break
			}
			if (row>>(SPRITE_WIDTH-1-bit))&1 == 0 {
				continue
			}
			if disp.Get(px, py) == 1 {
				disp.Set(px, py, 0)
				collision = true
			} else {
				disp.Set(px, py, 1)
			}
		}
	}

	return
}

// Dirty returns true if the grid or palette changed since the last Drawn.
func (disp *Display) Dirty() bool {
	return disp.dirty
}

// Drawn marks the current grid as rendered.
func (disp *Display) Drawn() {
	disp.dirty = false
}

// String renders the grid as text, one line per row.
func (disp *Display) String() (text string) {
	for y := range HEIGHT {
		line := make([]byte, WIDTH)
		for x := range WIDTH {
			line[x] = '.'
			if disp.Pixel[y][x] != 0 {
				line[x] = '#'
			}
		}
		text += string(line) + "\n"
	}

	return
}
