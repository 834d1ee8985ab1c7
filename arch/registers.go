package arch

import "fmt"

// RegisterCount is the number of general purpose registers.
const RegisterCount = 16

// VF is the flag register. Arithmetic, shift and draw instructions
// overwrite it as a side effect.
const VF = 0xf

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return fmt.Sprintf("V%X", n)
}

// Family returns the instruction family of the opcode: its top nibble.
func Family(opcode uint16) int { return int(opcode >> 12) }

// X returns the first register operand.
func X(opcode uint16) int { return int(opcode>>8) & 0xf }

// Y returns the second register operand.
func Y(opcode uint16) int { return int(opcode>>4) & 0xf }

// N returns the lowest nibble.
func N(opcode uint16) int { return int(opcode) & 0xf }

// KK returns the immediate byte.
func KK(opcode uint16) byte { return byte(opcode) }

// NNN returns the 12-bit address.
func NNN(opcode uint16) uint16 { return opcode & 0xfff }
