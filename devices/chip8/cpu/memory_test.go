package cpu

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryFont(t *testing.T) {
	var m Memory
	m.Reset()

	assert.Equal(t, byte(0xf0), m.U8(FontStart))
	assert.Equal(t, byte(0x90), m.U8(FontStart+1))
	assert.Equal(t, byte(0x80), m.U8(FontStart+FontSize-1))
}

func TestMemoryLoadMax(t *testing.T) {
	var m Memory

	p := bytes.Repeat([]byte{0xab}, MaxProgramSize)
	assert.NoError(t, m.Load(p))
	assert.Equal(t, MaxProgramSize, m.ProgramSize())
	assert.Equal(t, byte(0xab), m.U8(MemoryCapacity-1))
}

func TestMemoryLoadTooLarge(t *testing.T) {
	var m Memory
	assert.NoError(t, m.Load([]byte{0x12, 0x34}))

	err := m.Load(make([]byte, MaxProgramSize+1))
	assert.Equal(t, ErrProgramTooLarge, errors.Cause(err))

	// The previous program is untouched.
	assert.Equal(t, uint16(0x1234), m.U16(ProgramStart))
	assert.Equal(t, 2, m.ProgramSize())
}

func TestMemoryLoadClearsProgramRegion(t *testing.T) {
	var m Memory
	assert.NoError(t, m.Load([]byte{1, 2, 3, 4}))
	assert.NoError(t, m.Load([]byte{5}))

	assert.Equal(t, byte(5), m.U8(ProgramStart))
	assert.Equal(t, byte(0), m.U8(ProgramStart+1))
}

func TestMemoryLoadFrom(t *testing.T) {
	var m Memory
	assert.NoError(t, m.LoadFrom(bytes.NewReader([]byte{0x00, 0xe0})))
	assert.Equal(t, uint16(0x00e0), m.U16(ProgramStart))

	err := m.LoadFrom(bytes.NewReader(make([]byte, MaxProgramSize+100)))
	assert.Equal(t, ErrProgramTooLarge, errors.Cause(err))
}

func TestMemoryCheck(t *testing.T) {
	var m Memory

	assert.NoError(t, m.Check(0, MemoryCapacity))
	assert.NoError(t, m.Check(MemoryCapacity-2, 2))
	assert.NoError(t, m.Check(MemoryCapacity, 0))
	assert.Equal(t, ErrAddress, errors.Cause(m.Check(MemoryCapacity-1, 2)))
	assert.Equal(t, ErrAddress, errors.Cause(m.Check(-1, 1)))
}

func TestMemoryResetKeepsProgram(t *testing.T) {
	var m Memory
	assert.NoError(t, m.Load([]byte{0xaa}))
	m.SetU8(0x100, 0xff)
	m.Reset()

	assert.Equal(t, byte(0), m.U8(0x100))
	assert.Equal(t, byte(0xaa), m.U8(ProgramStart))
}

func TestReadProgram(t *testing.T) {
	p, err := ReadProgram(bytes.NewReader([]byte{0x12, 0x00}))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(p))

	p, err = ReadProgram(bytes.NewReader(make([]byte, MaxProgramSize)))
	assert.NoError(t, err)
	assert.Equal(t, MaxProgramSize, len(p))

	_, err = ReadProgram(bytes.NewReader(make([]byte, MaxProgramSize+1)))
	assert.Equal(t, ErrProgramTooLarge, errors.Cause(err))
}
