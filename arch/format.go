package arch

import "fmt"

// Format defines the operand layout of an instruction.
type Format byte

// Known operand formats.
const (
	None  Format = iota // CLS
	Addr                // JP 0x200
	RegB                // SE V1, 0x12
	RegReg              // ADD V1, V2
	RegRegN             // DRW V1, V2, 5
	Reg                 // SKP V1
	IAddr               // LD I, 0x200
	V0Addr              // JP V0, 0x200
	RegDT               // LD V1, DT
	RegK                // LD V1, K
	DTReg               // LD DT, V1
	STReg               // LD ST, V1
	IReg                // ADD I, V1
	FReg                // LD F, V1
	BReg                // LD B, V1
	MemReg              // LD [I], V1
	RegMem              // LD V1, [I]
)

// FormatOf returns the operand format for the given instruction.
func FormatOf(instr int) Format {
	if instr <= Unknown || instr >= instructionCount {
		return None
	}
	return formats[instr]
}

var formats = [instructionCount]Format{
	CLS:   None,
	RET:   None,
	JP:    Addr,
	CALL:  Addr,
	SEB:   RegB,
	SNEB:  RegB,
	SE:    RegReg,
	LDB:   RegB,
	ADDB:  RegB,
	LD:    RegReg,
	OR:    RegReg,
	AND:   RegReg,
	XOR:   RegReg,
	ADD:   RegReg,
	SUB:   RegReg,
	SHR:   Reg,
	SUBN:  RegReg,
	SHL:   Reg,
	SNE:   RegReg,
	LDI:   IAddr,
	JPV0:  V0Addr,
	RND:   RegB,
	DRW:   RegRegN,
	SKP:   Reg,
	SKNP:  Reg,
	LDVDT: RegDT,
	LDK:   RegK,
	LDDT:  DTReg,
	LDST:  STReg,
	ADDI:  IReg,
	LDF:   FReg,
	BCD:   BReg,
	STM:   MemReg,
	LDM:   RegMem,
}

// Disassemble returns a human readable rendering of the given opcode.
// Unknown opcodes are rendered as a raw data word.
func Disassemble(opcode uint16) string {
	instr := Decode(opcode)
	name, ok := Name(instr)
	if !ok {
		return fmt.Sprintf("DW 0x%04x", opcode)
	}

	x := RegisterName(X(opcode))
	y := RegisterName(Y(opcode))

	switch FormatOf(instr) {
	case Addr:
		return fmt.Sprintf("%s 0x%03x", name, NNN(opcode))
	case RegB:
		return fmt.Sprintf("%s %s, 0x%02x", name, x, KK(opcode))
	case RegReg:
		return fmt.Sprintf("%s %s, %s", name, x, y)
	case RegRegN:
		return fmt.Sprintf("%s %s, %s, %d", name, x, y, N(opcode))
	case Reg:
		return fmt.Sprintf("%s %s", name, x)
	case IAddr:
		return fmt.Sprintf("%s I, 0x%03x", name, NNN(opcode))
	case V0Addr:
		return fmt.Sprintf("%s V0, 0x%03x", name, NNN(opcode))
	case RegDT:
		return fmt.Sprintf("%s %s, DT", name, x)
	case RegK:
		return fmt.Sprintf("%s %s, K", name, x)
	case DTReg:
		return fmt.Sprintf("%s DT, %s", name, x)
	case STReg:
		return fmt.Sprintf("%s ST, %s", name, x)
	case IReg:
		return fmt.Sprintf("%s I, %s", name, x)
	case FReg:
		return fmt.Sprintf("%s F, %s", name, x)
	case BReg:
		return fmt.Sprintf("%s B, %s", name, x)
	case MemReg:
		return fmt.Sprintf("%s [I], %s", name, x)
	case RegMem:
		return fmt.Sprintf("%s %s, [I]", name, x)
	}
	return name
}
