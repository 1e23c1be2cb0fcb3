// Package decode implements the pure opcode decode step: a total function
// from an 8 bit opcode to the operation it names and the addressing-mode
// class it uses. This is deliberately split out from instruction execution
// (unlike the teacher implementation, which inlines decode and execution
// into one 2700-line switch) because the spec calls for decode as its own
// component (C3), independent of the micro-sequencer that walks the
// resulting addressing mode cycle by cycle. See DESIGN.md for the
// rationale.
//
// Only the documented NMOS 6502 instruction set is recognized — 151
// opcodes across 13 addressing-mode classes. Any other byte decodes to
// Entry{Op: Invalid}.
package decode

// Op identifies a 6502 operation, independent of its addressing mode.
type Op int

// The documented NMOS 6502 operations.
const (
	Invalid Op = iota
	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

// Mode identifies an addressing-mode class. Stack-form operations (BRK,
// RTI, RTS, PHA, PHP, PLA, PLP, JSR) each run their own fixed micro-sequence
// rather than sharing one of the generic read/write/RMW shapes, so they
// share a single Mode and are told apart by Op.
type Mode int

const (
	ModeNone      Mode = iota
	ModeStack          // BRK, RTI, RTS, PHA, PHP, PLA, PLP, JSR
	ModeImplied        // includes accumulator-form ops (ASL A, ROL A, ...)
	ModeImmediate
	ModeAbsolute
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsoluteX
	ModeAbsoluteY
	ModeRelative
	ModeIndirectX
	ModeIndirectY
	ModeIndirect // absolute indirect, JMP (a) only
)

// Access classifies how a non-stack, non-implied instruction touches its
// effective operand: a plain load, a store, or a read-modify-write. This
// drives which micro-sequence cycle shape the cpu package's sequencer
// picks for a given Mode.
type Access int

const (
	AccessNone Access = iota
	AccessRead
	AccessWrite
	AccessRMW
)

// Entry is the result of decoding one opcode byte.
type Entry struct {
	Op     Op
	Mode   Mode
	Access Access
}

var table [256]Entry

func e(op Op, mode Mode, access Access) Entry {
	return Entry{Op: op, Mode: mode, Access: access}
}

func init() {
	// Default every slot to Invalid; documented opcodes overwrite below.
	for i := range table {
		table[i] = Entry{Op: Invalid}
	}

	reg := func(opcode uint8, entry Entry) {
		table[opcode] = entry
	}

	// ADC
	reg(0x69, e(ADC, ModeImmediate, AccessRead))
	reg(0x65, e(ADC, ModeZeroPage, AccessRead))
	reg(0x75, e(ADC, ModeZeroPageX, AccessRead))
	reg(0x6D, e(ADC, ModeAbsolute, AccessRead))
	reg(0x7D, e(ADC, ModeAbsoluteX, AccessRead))
	reg(0x79, e(ADC, ModeAbsoluteY, AccessRead))
	reg(0x61, e(ADC, ModeIndirectX, AccessRead))
	reg(0x71, e(ADC, ModeIndirectY, AccessRead))

	// AND
	reg(0x29, e(AND, ModeImmediate, AccessRead))
	reg(0x25, e(AND, ModeZeroPage, AccessRead))
	reg(0x35, e(AND, ModeZeroPageX, AccessRead))
	reg(0x2D, e(AND, ModeAbsolute, AccessRead))
	reg(0x3D, e(AND, ModeAbsoluteX, AccessRead))
	reg(0x39, e(AND, ModeAbsoluteY, AccessRead))
	reg(0x21, e(AND, ModeIndirectX, AccessRead))
	reg(0x31, e(AND, ModeIndirectY, AccessRead))

	// ASL
	reg(0x0A, e(ASL, ModeImplied, AccessNone))
	reg(0x06, e(ASL, ModeZeroPage, AccessRMW))
	reg(0x16, e(ASL, ModeZeroPageX, AccessRMW))
	reg(0x0E, e(ASL, ModeAbsolute, AccessRMW))
	reg(0x1E, e(ASL, ModeAbsoluteX, AccessRMW))

	// Branches
	reg(0x90, e(BCC, ModeRelative, AccessNone))
	reg(0xB0, e(BCS, ModeRelative, AccessNone))
	reg(0xF0, e(BEQ, ModeRelative, AccessNone))
	reg(0x30, e(BMI, ModeRelative, AccessNone))
	reg(0xD0, e(BNE, ModeRelative, AccessNone))
	reg(0x10, e(BPL, ModeRelative, AccessNone))
	reg(0x50, e(BVC, ModeRelative, AccessNone))
	reg(0x70, e(BVS, ModeRelative, AccessNone))

	// BIT
	reg(0x24, e(BIT, ModeZeroPage, AccessRead))
	reg(0x2C, e(BIT, ModeAbsolute, AccessRead))

	// BRK
	reg(0x00, e(BRK, ModeStack, AccessNone))

	// Flag ops
	reg(0x18, e(CLC, ModeImplied, AccessNone))
	reg(0xD8, e(CLD, ModeImplied, AccessNone))
	reg(0x58, e(CLI, ModeImplied, AccessNone))
	reg(0xB8, e(CLV, ModeImplied, AccessNone))
	reg(0x38, e(SEC, ModeImplied, AccessNone))
	reg(0xF8, e(SED, ModeImplied, AccessNone))
	reg(0x78, e(SEI, ModeImplied, AccessNone))

	// CMP/CPX/CPY
	reg(0xC9, e(CMP, ModeImmediate, AccessRead))
	reg(0xC5, e(CMP, ModeZeroPage, AccessRead))
	reg(0xD5, e(CMP, ModeZeroPageX, AccessRead))
	reg(0xCD, e(CMP, ModeAbsolute, AccessRead))
	reg(0xDD, e(CMP, ModeAbsoluteX, AccessRead))
	reg(0xD9, e(CMP, ModeAbsoluteY, AccessRead))
	reg(0xC1, e(CMP, ModeIndirectX, AccessRead))
	reg(0xD1, e(CMP, ModeIndirectY, AccessRead))
	reg(0xE0, e(CPX, ModeImmediate, AccessRead))
	reg(0xE4, e(CPX, ModeZeroPage, AccessRead))
	reg(0xEC, e(CPX, ModeAbsolute, AccessRead))
	reg(0xC0, e(CPY, ModeImmediate, AccessRead))
	reg(0xC4, e(CPY, ModeZeroPage, AccessRead))
	reg(0xCC, e(CPY, ModeAbsolute, AccessRead))

	// DEC/INC (memory) and DEX/DEY/INX/INY (register)
	reg(0xC6, e(DEC, ModeZeroPage, AccessRMW))
	reg(0xD6, e(DEC, ModeZeroPageX, AccessRMW))
	reg(0xCE, e(DEC, ModeAbsolute, AccessRMW))
	reg(0xDE, e(DEC, ModeAbsoluteX, AccessRMW))
	reg(0xCA, e(DEX, ModeImplied, AccessNone))
	reg(0x88, e(DEY, ModeImplied, AccessNone))
	reg(0xE6, e(INC, ModeZeroPage, AccessRMW))
	reg(0xF6, e(INC, ModeZeroPageX, AccessRMW))
	reg(0xEE, e(INC, ModeAbsolute, AccessRMW))
	reg(0xFE, e(INC, ModeAbsoluteX, AccessRMW))
	reg(0xE8, e(INX, ModeImplied, AccessNone))
	reg(0xC8, e(INY, ModeImplied, AccessNone))

	// EOR
	reg(0x49, e(EOR, ModeImmediate, AccessRead))
	reg(0x45, e(EOR, ModeZeroPage, AccessRead))
	reg(0x55, e(EOR, ModeZeroPageX, AccessRead))
	reg(0x4D, e(EOR, ModeAbsolute, AccessRead))
	reg(0x5D, e(EOR, ModeAbsoluteX, AccessRead))
	reg(0x59, e(EOR, ModeAbsoluteY, AccessRead))
	reg(0x41, e(EOR, ModeIndirectX, AccessRead))
	reg(0x51, e(EOR, ModeIndirectY, AccessRead))

	// JMP/JSR
	reg(0x4C, e(JMP, ModeAbsolute, AccessNone))
	reg(0x6C, e(JMP, ModeIndirect, AccessNone))
	reg(0x20, e(JSR, ModeStack, AccessNone))

	// LDA/LDX/LDY
	reg(0xA9, e(LDA, ModeImmediate, AccessRead))
	reg(0xA5, e(LDA, ModeZeroPage, AccessRead))
	reg(0xB5, e(LDA, ModeZeroPageX, AccessRead))
	reg(0xAD, e(LDA, ModeAbsolute, AccessRead))
	reg(0xBD, e(LDA, ModeAbsoluteX, AccessRead))
	reg(0xB9, e(LDA, ModeAbsoluteY, AccessRead))
	reg(0xA1, e(LDA, ModeIndirectX, AccessRead))
	reg(0xB1, e(LDA, ModeIndirectY, AccessRead))
	reg(0xA2, e(LDX, ModeImmediate, AccessRead))
	reg(0xA6, e(LDX, ModeZeroPage, AccessRead))
	reg(0xB6, e(LDX, ModeZeroPageY, AccessRead))
	reg(0xAE, e(LDX, ModeAbsolute, AccessRead))
	reg(0xBE, e(LDX, ModeAbsoluteY, AccessRead))
	reg(0xA0, e(LDY, ModeImmediate, AccessRead))
	reg(0xA4, e(LDY, ModeZeroPage, AccessRead))
	reg(0xB4, e(LDY, ModeZeroPageX, AccessRead))
	reg(0xAC, e(LDY, ModeAbsolute, AccessRead))
	reg(0xBC, e(LDY, ModeAbsoluteX, AccessRead))

	// LSR
	reg(0x4A, e(LSR, ModeImplied, AccessNone))
	reg(0x46, e(LSR, ModeZeroPage, AccessRMW))
	reg(0x56, e(LSR, ModeZeroPageX, AccessRMW))
	reg(0x4E, e(LSR, ModeAbsolute, AccessRMW))
	reg(0x5E, e(LSR, ModeAbsoluteX, AccessRMW))

	// NOP
	reg(0xEA, e(NOP, ModeImplied, AccessNone))

	// ORA
	reg(0x09, e(ORA, ModeImmediate, AccessRead))
	reg(0x05, e(ORA, ModeZeroPage, AccessRead))
	reg(0x15, e(ORA, ModeZeroPageX, AccessRead))
	reg(0x0D, e(ORA, ModeAbsolute, AccessRead))
	reg(0x1D, e(ORA, ModeAbsoluteX, AccessRead))
	reg(0x19, e(ORA, ModeAbsoluteY, AccessRead))
	reg(0x01, e(ORA, ModeIndirectX, AccessRead))
	reg(0x11, e(ORA, ModeIndirectY, AccessRead))

	// Stack operations
	reg(0x48, e(PHA, ModeStack, AccessNone))
	reg(0x08, e(PHP, ModeStack, AccessNone))
	reg(0x68, e(PLA, ModeStack, AccessNone))
	reg(0x28, e(PLP, ModeStack, AccessNone))
	reg(0x40, e(RTI, ModeStack, AccessNone))
	reg(0x60, e(RTS, ModeStack, AccessNone))

	// ROL/ROR
	reg(0x2A, e(ROL, ModeImplied, AccessNone))
	reg(0x26, e(ROL, ModeZeroPage, AccessRMW))
	reg(0x36, e(ROL, ModeZeroPageX, AccessRMW))
	reg(0x2E, e(ROL, ModeAbsolute, AccessRMW))
	reg(0x3E, e(ROL, ModeAbsoluteX, AccessRMW))
	reg(0x6A, e(ROR, ModeImplied, AccessNone))
	reg(0x66, e(ROR, ModeZeroPage, AccessRMW))
	reg(0x76, e(ROR, ModeZeroPageX, AccessRMW))
	reg(0x6E, e(ROR, ModeAbsolute, AccessRMW))
	reg(0x7E, e(ROR, ModeAbsoluteX, AccessRMW))

	// SBC
	reg(0xE9, e(SBC, ModeImmediate, AccessRead))
	reg(0xE5, e(SBC, ModeZeroPage, AccessRead))
	reg(0xF5, e(SBC, ModeZeroPageX, AccessRead))
	reg(0xED, e(SBC, ModeAbsolute, AccessRead))
	reg(0xFD, e(SBC, ModeAbsoluteX, AccessRead))
	reg(0xF9, e(SBC, ModeAbsoluteY, AccessRead))
	reg(0xE1, e(SBC, ModeIndirectX, AccessRead))
	reg(0xF1, e(SBC, ModeIndirectY, AccessRead))

	// STA/STX/STY
	reg(0x85, e(STA, ModeZeroPage, AccessWrite))
	reg(0x95, e(STA, ModeZeroPageX, AccessWrite))
	reg(0x8D, e(STA, ModeAbsolute, AccessWrite))
	reg(0x9D, e(STA, ModeAbsoluteX, AccessWrite))
	reg(0x99, e(STA, ModeAbsoluteY, AccessWrite))
	reg(0x81, e(STA, ModeIndirectX, AccessWrite))
	reg(0x91, e(STA, ModeIndirectY, AccessWrite))
	reg(0x86, e(STX, ModeZeroPage, AccessWrite))
	reg(0x96, e(STX, ModeZeroPageY, AccessWrite))
	reg(0x8E, e(STX, ModeAbsolute, AccessWrite))
	reg(0x84, e(STY, ModeZeroPage, AccessWrite))
	reg(0x94, e(STY, ModeZeroPageX, AccessWrite))
	reg(0x8C, e(STY, ModeAbsolute, AccessWrite))

	// Register transfers
	reg(0xAA, e(TAX, ModeImplied, AccessNone))
	reg(0xA8, e(TAY, ModeImplied, AccessNone))
	reg(0xBA, e(TSX, ModeImplied, AccessNone))
	reg(0x8A, e(TXA, ModeImplied, AccessNone))
	reg(0x9A, e(TXS, ModeImplied, AccessNone))
	reg(0x98, e(TYA, ModeImplied, AccessNone))
}

// Decode returns the Entry for opcode. Undocumented or unimplemented bytes
// return Entry{Op: Invalid}.
func Decode(opcode uint8) Entry {
	return table[opcode]
}

// String gives the canonical 3 letter mnemonic for op, or "???" for Invalid.
func (op Op) String() string {
	if int(op) < 0 || int(op) >= len(opNames) {
		return "???"
	}
	return opNames[op]
}

var opNames = [...]string{
	Invalid: "???",
	ADC:     "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS", BEQ: "BEQ",
	BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL", BRK: "BRK", BVC: "BVC",
	BVS: "BVS", CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP",
	CPX: "CPX", CPY: "CPY", DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA", PHA: "PHA",
	PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL", ROR: "ROR", RTI: "RTI",
	RTS: "RTS", SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI", STA: "STA",
	STX: "STX", STY: "STY", TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA",
	TXS: "TXS", TYA: "TYA",
}
