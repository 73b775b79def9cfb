package io

import (
	"log"
)

const (
	KEY_COUNT = 16 // Keys 0x0 to 0xF.
	KEY_NONE  = -1 // No key pressed.
)

// KeyEvent is a host key transition waiting to be applied to the keypad.
type KeyEvent struct {
	Key     uint8
	Pressed bool
}

// Keypad is the 16-key hexadecimal keypad.
type Keypad struct {
	Verbose bool // If set, logs applied key events.

	State   [KEY_COUNT]bool // Pressed state of each key.
	Pending []KeyEvent      // Host events not yet applied.
}

// Reset releases all keys and drops pending events.
func (kp *Keypad) Reset() {
	clear(kp.State[:])
	kp.Pending = nil
}

// Set a key's pressed state. Keys out of range are ignored.
func (kp *Keypad) Set(key uint8, pressed bool) {
	if int(key) >= KEY_COUNT {
		return
	}

	kp.State[key] = pressed
}

// Pressed returns true if the key is held down.
func (kp *Keypad) Pressed(key uint8) bool {
	if int(key) >= KEY_COUNT {
		return false
	}

	return kp.State[key]
}

// Any returns the lowest pressed key, or KEY_NONE.
func (kp *Keypad) Any() int {
	for key, pressed := range kp.State {
		if pressed {
			return key
		}
	}

	return KEY_NONE
}

// Post queues a host key event until the next Ingest.
func (kp *Keypad) Post(key uint8, pressed bool) {
	kp.Pending = append(kp.Pending, KeyEvent{Key: key, Pressed: pressed})
}

// Ingest applies all pending events in the order they were posted,
// and returns how many were applied.
func (kp *Keypad) Ingest() (count int) {
	for len(kp.Pending) > 0 {
		event := kp.Pending[0]
		kp.Pending = kp.Pending[1:]
		if kp.Verbose {
			log.Printf("keypad: %X pressed=%v", event.Key, event.Pressed)
		}
		kp.Set(event.Key, event.Pressed)
		count++
	}

	return
}
