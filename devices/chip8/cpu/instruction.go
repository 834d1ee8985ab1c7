package cpu

import (
	"github.com/hexaflex/chip8/arch"
)

// Instruction defines decoded instruction data. It doubles as the
// diagnostic event handed to the trace handler.
type Instruction struct {
	IP     uint16 // Instruction address.
	Opcode uint16 // Raw instruction word.
	Code   int    // Decoded instruction; arch.Unknown if not recognized.
	Family int    // Top nibble.
	X      int    // First register operand.
	Y      int    // Second register operand.
	N      int    // Lowest nibble.
	KK     byte   // Immediate byte.
	NNN    uint16 // Immediate address.
}

// Decode fetches and decodes the instruction at the given address.
func (i *Instruction) Decode(m *Memory, pc uint16) error {
	i.IP = pc

	if err := m.Check(int(pc), 2); err != nil {
		i.Opcode = 0
		i.Code = arch.Unknown
		return err
	}

	op := m.U16(int(pc))
	i.Opcode = op
	i.Code = arch.Decode(op)
	i.Family = arch.Family(op)
	i.X = arch.X(op)
	i.Y = arch.Y(op)
	i.N = arch.N(op)
	i.KK = arch.KK(op)
	i.NNN = arch.NNN(op)
	return nil
}

// Unknown returns true if the opcode did not map to a known instruction.
func (i *Instruction) Unknown() bool {
	return i.Code == arch.Unknown
}

func (i *Instruction) String() string {
	return arch.Disassemble(i.Opcode)
}
