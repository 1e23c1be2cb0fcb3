package cpu

import "github.com/jmchacon/sixfiveohtwo/decode"

// branchTaken evaluates the condition for a relative-mode opcode against
// the current flags.
func (p *Core) branchTaken(op decode.Op) bool {
	switch op {
	case decode.BCC:
		return !p.Flags.C
	case decode.BCS:
		return p.Flags.C
	case decode.BNE:
		return !p.Flags.Z
	case decode.BEQ:
		return p.Flags.Z
	case decode.BPL:
		return !p.Flags.N
	case decode.BMI:
		return p.Flags.N
	case decode.BVC:
		return !p.Flags.V
	case decode.BVS:
		return p.Flags.V
	}
	return false
}

func (p *Core) execBranch(op decode.Op) (bool, error) {
	if p.branchTaken(op) {
		return p.performBranch()
	}
	return p.branchNOP()
}

// branchNOP is the 2 cycle path: the operand byte was already read
// generically into p.temp at step 2, and the branch isn't taken, so only
// PC needs to move past it.
func (p *Core) branchNOP() (bool, error) {
	if p.step != 2 {
		return true, InvalidState{"branchNOP: unexpected step"}
	}
	p.PC++
	return true, nil
}

// performBranch runs the taken-branch path: 3 cycles normally, 4 if the
// target crosses a page. The extra cycle comes from the index adder
// computing the low byte first and needing a second pass to fix the high
// byte, exactly like the indexed addressing modes.
func (p *Core) performBranch() (bool, error) {
	switch {
	case p.step < 2 || p.step > 4:
		return true, InvalidState{"performBranch: unexpected step"}
	case p.step == 2:
		p.PC++
		offset := int8(p.temp)
		base := p.PC
		target := uint16(int32(base) + int32(offset))
		p.addr = target
		p.temp = 0
		if target&0xFF00 != base&0xFF00 {
			p.temp = 1
		}
		return false, nil
	case p.step == 3:
		p.bus.Read(p.PC)
		if p.temp == 0 {
			p.PC = p.addr
			if !p.prevSkipInterrupt {
				p.skipInterrupt = true
			}
			return true, nil
		}
		p.PC = (p.PC & 0xFF00) | (p.addr & 0x00FF)
		return false, nil
	}
	p.bus.Read(p.PC)
	p.PC = p.addr
	if !p.prevSkipInterrupt {
		p.skipInterrupt = true
	}
	return true, nil
}
