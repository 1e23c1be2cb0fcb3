// Package disasm renders a single instruction at a given address as a
// human-readable line, for use by trace logs and interactive debuggers.
// It only interprets the documented opcode table in package decode; an
// undocumented byte disassembles as "???" rather than guessing at one of
// the illegal instructions' informal mnemonics.
package disasm

import (
	"fmt"

	"github.com/jmchacon/sixfiveohtwo/decode"
	"github.com/jmchacon/sixfiveohtwo/memory"
)

// Step disassembles the instruction at pc and returns its text along with
// the number of bytes (1-3) it occupies, so a caller can advance to the
// next instruction. It always reads up to two bytes past pc, whether or
// not the decoded instruction uses them, so pc+2 must be a valid address.
func Step(pc uint16, bank memory.Bank) (string, int) {
	opcode := bank.Read(pc)
	b1 := bank.Read(pc + 1)
	b2 := bank.Read(pc + 2)

	entry := decode.Decode(opcode)
	mnemonic := entry.Op.String()

	var operand string
	count := 1
	switch entry.Mode {
	case decode.ModeImmediate:
		operand = fmt.Sprintf("#$%.2X", b1)
		count = 2
	case decode.ModeZeroPage:
		operand = fmt.Sprintf("$%.2X", b1)
		count = 2
	case decode.ModeZeroPageX:
		operand = fmt.Sprintf("$%.2X,X", b1)
		count = 2
	case decode.ModeZeroPageY:
		operand = fmt.Sprintf("$%.2X,Y", b1)
		count = 2
	case decode.ModeIndirectX:
		operand = fmt.Sprintf("($%.2X,X)", b1)
		count = 2
	case decode.ModeIndirectY:
		operand = fmt.Sprintf("($%.2X),Y", b1)
		count = 2
	case decode.ModeAbsolute:
		operand = fmt.Sprintf("$%.2X%.2X", b2, b1)
		count = 3
	case decode.ModeAbsoluteX:
		operand = fmt.Sprintf("$%.2X%.2X,X", b2, b1)
		count = 3
	case decode.ModeAbsoluteY:
		operand = fmt.Sprintf("$%.2X%.2X,Y", b2, b1)
		count = 3
	case decode.ModeIndirect:
		operand = fmt.Sprintf("($%.2X%.2X)", b2, b1)
		count = 3
	case decode.ModeRelative:
		target := uint16(int32(pc) + 2 + int32(int8(b1)))
		operand = fmt.Sprintf("$%.2X ($%.4X)", b1, target)
		count = 2
	case decode.ModeStack:
		if entry.Op == decode.JSR {
			operand = fmt.Sprintf("$%.2X%.2X", b2, b1)
			count = 3
		}
	case decode.ModeImplied:
		// accumulator-form shifts display with an explicit "A"
		switch entry.Op {
		case decode.ASL, decode.LSR, decode.ROL, decode.ROR:
			operand = "A"
		}
	}

	if operand == "" {
		return fmt.Sprintf("%.4X  %.2X        %s", pc, opcode, mnemonic), count
	}
	return fmt.Sprintf("%.4X  %.2X        %s %s", pc, opcode, mnemonic, operand), count
}
