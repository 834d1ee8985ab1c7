package cpu

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// Known fatal conditions.
var (
	ErrProgramTooLarge = errors.New("program image too large")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrAddress         = errors.New("address out of range")
)

// Error defines a runtime error. It carries the instruction which
// caused it.
type Error struct {
	Instruction
	Err error
}

// NewError creates a new error for the given instruction.
func NewError(instr *Instruction, err error) *Error {
	return &Error{
		Instruction: *instr,
		Err:         err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %s: %v", e.IP, arch.Disassemble(e.Opcode), e.Err)
}

// Cause returns the underlying error. It satisfies errors.Cause.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }
