// Package arch defines the CHIP-8 instruction set along with
// some related helper functions.
package arch

// Known instructions.
const (
	Unknown = iota
	CLS     // 00E0
	RET     // 00EE
	JP      // 1nnn
	CALL    // 2nnn
	SEB     // 3xkk
	SNEB    // 4xkk
	SE      // 5xy0
	LDB     // 6xkk
	ADDB    // 7xkk
	LD      // 8xy0
	OR      // 8xy1
	AND     // 8xy2
	XOR     // 8xy3
	ADD     // 8xy4
	SUB     // 8xy5
	SHR     // 8xy6
	SUBN    // 8xy7
	SHL     // 8xyE
	SNE     // 9xy0
	LDI     // Annn
	JPV0    // Bnnn
	RND     // Cxkk
	DRW     // Dxyn
	SKP     // Ex9E
	SKNP    // ExA1
	LDVDT   // Fx07
	LDK     // Fx0A
	LDDT    // Fx15
	LDST    // Fx18
	ADDI    // Fx1E
	LDF     // Fx29
	BCD     // Fx33
	STM     // Fx55
	LDM     // Fx65

	instructionCount
)

// Decode returns the instruction encoded by the given opcode.
// Returns Unknown if the opcode does not map to a known instruction.
func Decode(opcode uint16) int {
	switch Family(opcode) {
	case 0x0:
		switch opcode {
		case 0x00e0:
			return CLS
		case 0x00ee:
			return RET
		}
	case 0x1:
		return JP
	case 0x2:
		return CALL
	case 0x3:
		return SEB
	case 0x4:
		return SNEB
	case 0x5:
		return SE
	case 0x6:
		return LDB
	case 0x7:
		return ADDB
	case 0x8:
		return alu[N(opcode)]
	case 0x9:
		return SNE
	case 0xa:
		return LDI
	case 0xb:
		return JPV0
	case 0xc:
		return RND
	case 0xd:
		return DRW
	case 0xe:
		switch KK(opcode) {
		case 0x9e:
			return SKP
		case 0xa1:
			return SKNP
		}
	case 0xf:
		switch KK(opcode) {
		case 0x07:
			return LDVDT
		case 0x0a:
			return LDK
		case 0x15:
			return LDDT
		case 0x18:
			return LDST
		case 0x1e:
			return ADDI
		case 0x29:
			return LDF
		case 0x33:
			return BCD
		case 0x55:
			return STM
		case 0x65:
			return LDM
		}
	}
	return Unknown
}

// alu maps the low nibble of an 8xyn opcode to its instruction.
var alu = [16]int{
	0x0: LD,
	0x1: OR,
	0x2: AND,
	0x3: XOR,
	0x4: ADD,
	0x5: SUB,
	0x6: SHR,
	0x7: SUBN,
	0xe: SHL,
}

// Name returns the mnemonic for the given instruction.
// Returns false if the instruction is not recognized.
func Name(instr int) (string, bool) {
	if instr <= Unknown || instr >= instructionCount {
		return "", false
	}
	return names[instr], true
}

var names = [instructionCount]string{
	CLS:   "CLS",
	RET:   "RET",
	JP:    "JP",
	CALL:  "CALL",
	SEB:   "SE",
	SNEB:  "SNE",
	SE:    "SE",
	LDB:   "LD",
	ADDB:  "ADD",
	LD:    "LD",
	OR:    "OR",
	AND:   "AND",
	XOR:   "XOR",
	ADD:   "ADD",
	SUB:   "SUB",
	SHR:   "SHR",
	SUBN:  "SUBN",
	SHL:   "SHL",
	SNE:   "SNE",
	LDI:   "LD",
	JPV0:  "JP",
	RND:   "RND",
	DRW:   "DRW",
	SKP:   "SKP",
	SKNP:  "SKNP",
	LDVDT: "LD",
	LDK:   "LD",
	LDDT:  "LD",
	LDST:  "LD",
	ADDI:  "ADD",
	LDF:   "LD",
	BCD:   "LD",
	STM:   "LD",
	LDM:   "LD",
}
