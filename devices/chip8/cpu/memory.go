package cpu

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

const (
	MemoryCapacity = 0x1000                        // Size of the address space.
	ProgramStart   = 0x200                         // Load address of program images.
	MaxProgramSize = MemoryCapacity - ProgramStart // Largest program image that fits.
	FontStart      = 0x000                         // Address of the built-in glyph table.
	GlyphSize      = 5                             // Bytes per glyph.
	FontSize       = GlyphSize * 16                // Size of the glyph table.
)

// Memory defines the system's address space.
//
// The raw accessors do not check bounds. Callers validate address
// ranges with Check before touching memory.
type Memory struct {
	data        [MemoryCapacity]byte
	programSize int
}

// Reset zeroes the interpreter-owned region and reinstalls the font.
// The program region is left as is.
func (m *Memory) Reset() {
	for i := 0; i < ProgramStart; i++ {
		m.data[i] = 0
	}
	m.InstallFont()
}

// InstallFont writes the hexadecimal digit glyphs at FontStart.
func (m *Memory) InstallFont() {
	copy(m.data[FontStart:], font[:])
}

// Load copies the given program image into the program region.
// Images larger than MaxProgramSize are rejected and leave memory untouched.
func (m *Memory) Load(p []byte) error {
	if len(p) > MaxProgramSize {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes; limit is %d", len(p), MaxProgramSize)
	}

	region := m.data[ProgramStart:]
	for i := range region {
		region[i] = 0
	}

	copy(region, p)
	m.programSize = len(p)
	return nil
}

// LoadFrom reads a program image from r and loads it.
func (m *Memory) LoadFrom(r io.Reader) error {
	p, err := ReadProgram(r)
	if err != nil {
		return err
	}
	return m.Load(p)
}

// ReadProgram reads a program image from r without loading it.
// Images larger than MaxProgramSize yield ErrProgramTooLarge.
func ReadProgram(r io.Reader) ([]byte, error) {
	p, err := ioutil.ReadAll(io.LimitReader(r, MaxProgramSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read program image")
	}

	if len(p) > MaxProgramSize {
		return nil, errors.Wrapf(ErrProgramTooLarge, "more than %d bytes", MaxProgramSize)
	}

	return p, nil
}

// ProgramSize returns the size of the most recently loaded program.
func (m *Memory) ProgramSize() int {
	return m.programSize
}

// Check returns an error if the n bytes starting at addr are not
// all inside the address space.
func (m *Memory) Check(addr, n int) error {
	if addr < 0 || n < 0 || addr+n > MemoryCapacity {
		return errors.Wrapf(ErrAddress, "0x%04x..0x%04x", addr, addr+n)
	}
	return nil
}

// U8 returns the 8-bit value at the given address.
func (m *Memory) U8(addr int) byte {
	return m.data[addr]
}

// SetU8 sets the 8-bit value at the given address.
func (m *Memory) SetU8(addr int, value byte) {
	m.data[addr] = value
}

// U16 returns the big-endian 16-bit value at the given address.
func (m *Memory) U16(addr int) uint16 {
	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1])
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m *Memory) Write(address int, p []byte) {
	copy(m.data[address:], p)
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m *Memory) Read(address int, p []byte) {
	copy(p, m.data[address:])
}

// font holds the 4x5 glyphs for the digits 0-F.
var font = [FontSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}
