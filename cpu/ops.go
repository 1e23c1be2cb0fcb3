package cpu

import (
	"fmt"

	"github.com/jmchacon/sixfiveohtwo/alu"
	"github.com/jmchacon/sixfiveohtwo/decode"
	"github.com/jmchacon/sixfiveohtwo/status"
)

// processOpcode dispatches the currently decoded instruction (p.inst) to
// the appropriate multi-cycle handler. It is called once per Tick from
// step 2 onward until the instruction's handler reports done.
func (p *Core) processOpcode() (bool, error) {
	entry := p.inst
	switch entry.Mode {
	case decode.ModeStack:
		return p.execStack(entry.Op)
	case decode.ModeImplied:
		return p.execImplied(entry.Op)
	case decode.ModeRelative:
		return p.execBranch(entry.Op)
	case decode.ModeIndirect:
		return p.iJMPIndirect()
	}
	if entry.Op == decode.JMP {
		return p.iJMP()
	}
	switch entry.Access {
	case decode.AccessRead:
		return p.loadOp(entry.Mode, entry.Op)
	case decode.AccessWrite:
		return p.storeOp(entry.Mode, p.storeValue(entry.Op))
	case decode.AccessRMW:
		return p.rmwOp(entry.Mode, entry.Op)
	}
	// entry.Op == decode.Invalid falls through here: an opcode byte with no
	// entry in the decode table. HaltError (not InvalidState) is the
	// documented type for "the core fetched an opcode it refuses to
	// execute."
	return true, HaltError{p.op}
}

func (p *Core) storeValue(op decode.Op) uint8 {
	switch op {
	case decode.STA:
		return p.A
	case decode.STX:
		return p.X
	case decode.STY:
		return p.Y
	}
	return 0
}

// setReg writes v into reg and updates N/Z from it. Every register
// transfer except TXS (which sets no flags), every register
// increment/decrement, and every load funnels through this.
func (p *Core) setReg(reg *uint8, v uint8) (bool, error) {
	*reg = v
	p.Flags.N = status.SetN(v)
	p.Flags.Z = status.SetZ(v)
	return true, nil
}

func (p *Core) loadOp(mode decode.Mode, op decode.Op) (bool, error) {
	if !p.addrDone {
		done, err := p.resolveAddr(mode, decode.AccessRead)
		if err != nil {
			return true, err
		}
		p.addrDone = done
	}
	if p.addrDone {
		return p.execLoad(op)
	}
	return false, nil
}

func (p *Core) storeOp(mode decode.Mode, val uint8) (bool, error) {
	if !p.addrDone {
		done, err := p.resolveAddr(mode, decode.AccessWrite)
		p.addrDone = done
		return false, err
	}
	p.bus.Write(p.addr, val)
	return true, nil
}

func (p *Core) rmwOp(mode decode.Mode, op decode.Op) (bool, error) {
	if !p.addrDone {
		done, err := p.resolveAddr(mode, decode.AccessRMW)
		p.addrDone = done
		return false, err
	}
	return p.execRMW(op)
}

// execLoad applies an already-fetched operand byte (p.temp) to the
// accumulator or index register, or folds it into the flags for a
// comparison/test instruction. These never touch the bus themselves.
func (p *Core) execLoad(op decode.Op) (bool, error) {
	switch op {
	case decode.LDA:
		return p.setReg(&p.A, p.temp)
	case decode.LDX:
		return p.setReg(&p.X, p.temp)
	case decode.LDY:
		return p.setReg(&p.Y, p.temp)
	case decode.AND:
		return p.setReg(&p.A, p.A&p.temp)
	case decode.ORA:
		return p.setReg(&p.A, p.A|p.temp)
	case decode.EOR:
		return p.setReg(&p.A, p.A^p.temp)
	case decode.ADC:
		p.doADC()
		return true, nil
	case decode.SBC:
		p.doSBC()
		return true, nil
	case decode.CMP:
		p.doCompare(p.A)
		return true, nil
	case decode.CPX:
		p.doCompare(p.X)
		return true, nil
	case decode.CPY:
		p.doCompare(p.Y)
		return true, nil
	case decode.BIT:
		p.doBIT()
		return true, nil
	}
	return true, InvalidState{fmt.Sprintf("execLoad: unhandled op %v", op)}
}

// execRMW computes a shift/rotate/inc/dec over p.temp and writes the
// result back to the effective address; the unmodified byte was already
// written back by the address phase.
func (p *Core) execRMW(op decode.Op) (bool, error) {
	var out alu.Out
	setCarry := false
	switch op {
	case decode.ASL:
		out = alu.ASL(p.temp)
		setCarry = true
	case decode.LSR:
		out = alu.LSR(p.temp)
		setCarry = true
	case decode.ROL:
		out = alu.ROL(p.temp, p.Flags.C)
		setCarry = true
	case decode.ROR:
		out = alu.ROR(p.temp, p.Flags.C)
		setCarry = true
	case decode.INC:
		out = alu.INC(p.temp)
	case decode.DEC:
		out = alu.DEC(p.temp)
	default:
		return true, InvalidState{fmt.Sprintf("execRMW: unhandled op %v", op)}
	}
	p.bus.Write(p.addr, out.Result)
	p.Flags.N = out.N
	p.Flags.Z = out.Z
	if setCarry {
		p.Flags.C = out.C
	}
	return true, nil
}

// execImplied runs the 2 cycle accumulator, flag, and register
// transfer instructions. ASL/LSR/ROL/ROR share decode.ModeImplied with
// the true implied-addressing ops; entry.Op (not the mode) tells them
// apart.
func (p *Core) execImplied(op decode.Op) (bool, error) {
	switch op {
	case decode.ASL:
		out := alu.ASL(p.A)
		p.A, p.Flags.N, p.Flags.Z, p.Flags.C = out.Result, out.N, out.Z, out.C
	case decode.LSR:
		out := alu.LSR(p.A)
		p.A, p.Flags.N, p.Flags.Z, p.Flags.C = out.Result, out.N, out.Z, out.C
	case decode.ROL:
		out := alu.ROL(p.A, p.Flags.C)
		p.A, p.Flags.N, p.Flags.Z, p.Flags.C = out.Result, out.N, out.Z, out.C
	case decode.ROR:
		out := alu.ROR(p.A, p.Flags.C)
		p.A, p.Flags.N, p.Flags.Z, p.Flags.C = out.Result, out.N, out.Z, out.C
	case decode.CLC:
		p.Flags.C = false
	case decode.SEC:
		p.Flags.C = true
	case decode.CLI:
		p.Flags.I = false
	case decode.SEI:
		p.Flags.I = true
	case decode.CLD:
		p.Flags.D = false
	case decode.SED:
		p.Flags.D = true
	case decode.CLV:
		p.Flags.V = false
	case decode.DEX:
		return p.setReg(&p.X, p.X-1)
	case decode.DEY:
		return p.setReg(&p.Y, p.Y-1)
	case decode.INX:
		return p.setReg(&p.X, p.X+1)
	case decode.INY:
		return p.setReg(&p.Y, p.Y+1)
	case decode.TAX:
		return p.setReg(&p.X, p.A)
	case decode.TAY:
		return p.setReg(&p.Y, p.A)
	case decode.TXA:
		return p.setReg(&p.A, p.X)
	case decode.TYA:
		return p.setReg(&p.A, p.Y)
	case decode.TSX:
		return p.setReg(&p.X, p.S)
	case decode.TXS:
		p.S = p.X
	case decode.NOP:
	default:
		return true, InvalidState{fmt.Sprintf("execImplied: unhandled op %v", op)}
	}
	return true, nil
}

func (p *Core) decimalActive() bool {
	return p.Flags.D && p.variant != NMOSRicoh
}

func (p *Core) doADC() {
	out := alu.ADC(p.A, p.temp, p.Flags.C, p.decimalActive())
	p.A, p.Flags.N, p.Flags.Z, p.Flags.C, p.Flags.V = out.Result, out.N, out.Z, out.C, out.V
}

func (p *Core) doSBC() {
	out := alu.SBC(p.A, p.temp, p.Flags.C, p.decimalActive())
	p.A, p.Flags.N, p.Flags.Z, p.Flags.C, p.Flags.V = out.Result, out.N, out.Z, out.C, out.V
}

func (p *Core) doCompare(reg uint8) {
	out := alu.Compare(reg, p.temp)
	p.Flags.N, p.Flags.Z, p.Flags.C = out.N, out.Z, out.C
}

func (p *Core) doBIT() {
	out := alu.BIT(p.A, p.temp)
	p.Flags.N, p.Flags.Z, p.Flags.V = out.N, out.Z, out.V
}
