// Package frontend holds the pieces shared by the CHIP-8 frontends:
// the host keyboard map, and the palette theme files.
//
// Renderers live in the term and sdl subpackages, and implement
// emulator.Frontend.
package frontend
