// Package display implements the monochrome CHIP-8 framebuffer.
package display

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer defines a grid of on/off pixels.
// The zero value is a cleared framebuffer.
type Framebuffer struct {
	pixels Snapshot
	dirty  bool // Changed since the last ClearDirty?
}

// Contains returns true if (x, y) lies on the display.
func (f *Framebuffer) Contains(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Toggle flips the pixel at (x, y) and returns true if it is now lit.
// Coordinates outside the display are clipped: nothing changes and
// false is returned.
func (f *Framebuffer) Toggle(x, y int) bool {
	if !f.Contains(x, y) {
		return false
	}

	lit := !f.pixels[y][x]
	f.pixels[y][x] = lit
	f.dirty = true
	return lit
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	f.pixels = Snapshot{}
	f.dirty = true
}

// Snapshot returns a copy of the current display contents.
func (f *Framebuffer) Snapshot() Snapshot {
	return f.pixels
}

// Dirty returns true if the display changed since the last ClearDirty.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// ClearDirty marks the current contents as presented.
func (f *Framebuffer) ClearDirty() {
	f.dirty = false
}

// Snapshot is a copy of the display contents, indexed [y][x].
type Snapshot [Height][Width]bool

// At returns true if the pixel at (x, y) is lit.
// Coordinates outside the display are never lit.
func (s *Snapshot) At(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return s[y][x]
}

// Lit returns the number of lit pixels.
func (s *Snapshot) Lit() int {
	var n int
	for y := range s {
		for _, on := range s[y] {
			if on {
				n++
			}
		}
	}
	return n
}

// Gray fills p with one byte per pixel, row by row: 0xff for lit
// pixels and 0 otherwise. p must hold at least Width*Height bytes.
func (s *Snapshot) Gray(p []byte) {
	for y := range s {
		row := p[y*Width : y*Width+Width]
		for x, on := range s[y] {
			if on {
				row[x] = 0xff
			} else {
				row[x] = 0
			}
		}
	}
}

// String renders the display as text: '#' for lit pixels, '.' otherwise.
func (s *Snapshot) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)

	for y := range s {
		for _, on := range s[y] {
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
