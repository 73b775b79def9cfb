// Package io provides the host-facing devices of the CHIP-8: the 16-key
// keypad with its pending host event queue, and ROM image loading.
package io
