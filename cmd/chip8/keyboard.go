package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices/chip8/keypad"
)

// keyRunes names the keyboard keys of the keypad layout. glfw key codes
// refer to physical positions, so the layout holds on non-US keyboards.
var keyRunes = map[glfw.Key]rune{
	glfw.Key1: '1', glfw.Key2: '2', glfw.Key3: '3', glfw.Key4: '4',
	glfw.KeyQ: 'q', glfw.KeyW: 'w', glfw.KeyE: 'e', glfw.KeyR: 'r',
	glfw.KeyA: 'a', glfw.KeyS: 's', glfw.KeyD: 'd', glfw.KeyF: 'f',
	glfw.KeyZ: 'z', glfw.KeyX: 'x', glfw.KeyC: 'c', glfw.KeyV: 'v',
}

// keypadKey returns the keypad key for the given keyboard key.
func keypadKey(key glfw.Key) (int, bool) {
	r, ok := keyRunes[key]
	if !ok {
		return 0, false
	}
	return keypad.KeyForRune(r)
}
