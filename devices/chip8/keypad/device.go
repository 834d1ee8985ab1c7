// Package keypad implements the 16-key hexadecimal keypad.
package keypad

import (
	"log"
	"unicode"

	"github.com/hexaflex/chip8/devices"
)

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// Layout maps keyboard keys to keypad keys by position:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
const Layout = "1234qwerasdfzxcv"

var layoutKeys = [KeyCount]int{
	0x1, 0x2, 0x3, 0xc,
	0x4, 0x5, 0x6, 0xd,
	0x7, 0x8, 0x9, 0xe,
	0xa, 0x0, 0xb, 0xf,
}

// KeyForRune returns the keypad key mapped to the given keyboard rune.
// Returns false if the rune is not part of the layout.
func KeyForRune(r rune) (int, bool) {
	r = unicode.ToLower(r)
	for i, c := range Layout {
		if c == r {
			return layoutKeys[i], true
		}
	}
	return 0, false
}

// Keys receives keypad state. It is implemented by the CPU.
type Keys interface {
	SetKey(k int, down bool)
}

type state struct {
	pressed bool
	hold    int // Frames left before an auto-release; 0 if held explicitly.
}

// Device tracks keypad state and forwards it to the machine.
type Device struct {
	keys       Keys
	state      [KeyCount]state
	holdFrames int
}

var _ devices.Device = &Device{}

// New creates a new keypad feeding the given keys. holdFrames is the
// number of frames a key reported through Press stays held.
func New(keys Keys, holdFrames int) *Device {
	if holdFrames < 1 {
		holdFrames = 1
	}
	return &Device{
		keys:       keys,
		holdFrames: holdFrames,
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0004)
}

// Startup releases all keys.
func (d *Device) Startup() error {
	d.releaseAll()
	return nil
}

// Shutdown releases all keys.
func (d *Device) Shutdown() error {
	d.releaseAll()
	return nil
}

// Set sets the state of key k. It is meant for input sources which
// report both key-down and key-up events.
func (d *Device) Set(k int, down bool) {
	if k < 0 || k >= KeyCount {
		return
	}

	st := &d.state[k]
	if st.pressed != down {
		log.Printf("%s key %X down=%v", d.ID(), k, down)
	}

	st.pressed = down
	st.hold = 0
	d.keys.SetKey(k, down)
}

// Press holds key k for a fixed number of frames. It is meant for input
// sources which only report key presses, like terminals.
func (d *Device) Press(k int) {
	if k < 0 || k >= KeyCount {
		return
	}

	d.state[k] = state{pressed: true, hold: d.holdFrames}
	d.keys.SetKey(k, true)
}

// Held returns true if key k is currently held.
func (d *Device) Held(k int) bool {
	return k >= 0 && k < KeyCount && d.state[k].pressed
}

// Update ages keys held through Press and releases expired ones.
// Call it once per frame.
func (d *Device) Update() {
	for k := range d.state {
		st := &d.state[k]
		if !st.pressed || st.hold == 0 {
			continue
		}

		st.hold--
		if st.hold == 0 {
			st.pressed = false
			d.keys.SetKey(k, false)
		}
	}
}

func (d *Device) releaseAll() {
	for k := range d.state {
		d.state[k] = state{}
		d.keys.SetKey(k, false)
	}
}
