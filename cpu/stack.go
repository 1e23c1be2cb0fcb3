package cpu

import (
	"github.com/jmchacon/sixfiveohtwo/decode"
	"github.com/jmchacon/sixfiveohtwo/status"
)

// execStack dispatches the instructions whose addressing is "stack":
// BRK, JSR, RTS, RTI and the four push/pull ops. Each has its own bespoke
// cycle count unrelated to any of the regular addressing modes.
func (p *Core) execStack(op decode.Op) (bool, error) {
	switch op {
	case decode.BRK:
		return p.runInterrupt(srcBRK)
	case decode.JSR:
		return p.iJSR()
	case decode.RTS:
		return p.iRTS()
	case decode.RTI:
		return p.iRTI()
	case decode.PHA:
		return p.iPHA()
	case decode.PHP:
		return p.iPHP()
	case decode.PLA:
		return p.iPLA()
	case decode.PLP:
		return p.iPLP()
	}
	return true, InvalidState{"execStack: unhandled op"}
}

func (p *Core) pushStack(v uint8) {
	p.bus.Write(0x0100+uint16(p.S), v)
	p.S--
}

func (p *Core) popStack() uint8 {
	p.S++
	return p.bus.Read(0x0100 + uint16(p.S))
}

// iJMP: JMP absolute, 3 cycles.
func (p *Core) iJMP() (bool, error) {
	switch {
	case p.step < 2 || p.step > 3:
		return true, InvalidState{"iJMP: unexpected step"}
	case p.step == 2:
		p.addr = uint16(p.temp)
		p.PC++
		return false, nil
	}
	hi := p.bus.Read(p.PC)
	p.PC = uint16(hi)<<8 | p.addr
	return true, nil
}

// iJMPIndirect: JMP (absolute), 5 cycles. Reproduces the well known NMOS
// bug where the high byte of the target is fetched from the start of the
// same page when the pointer's low byte is 0xFF, instead of crossing into
// the next page.
func (p *Core) iJMPIndirect() (bool, error) {
	switch {
	case p.step < 2 || p.step > 5:
		return true, InvalidState{"iJMPIndirect: unexpected step"}
	case p.step == 2:
		p.addr = uint16(p.temp)
		p.PC++
		return false, nil
	case p.step == 3:
		hi := p.bus.Read(p.PC)
		p.PC++
		p.addr |= uint16(hi) << 8
		return false, nil
	case p.step == 4:
		p.temp = p.bus.Read(p.addr)
		return false, nil
	}
	hiAddr := (p.addr & 0xFF00) | uint16(uint8(p.addr)+1)
	hi := p.bus.Read(hiAddr)
	p.PC = uint16(hi)<<8 | uint16(p.temp)
	return true, nil
}

// iJSR: 6 cycles. The address pushed is PC-1 relative to the instruction
// after JSR — i.e. it points at the high byte of JSR's own operand — which
// is why the high address byte isn't fetched until after the push.
func (p *Core) iJSR() (bool, error) {
	switch {
	case p.step < 2 || p.step > 6:
		return true, InvalidState{"iJSR: unexpected step"}
	case p.step == 2:
		p.addr = uint16(p.temp)
		p.PC++
		return false, nil
	case p.step == 3:
		p.bus.Read(0x0100 + uint16(p.S))
		return false, nil
	case p.step == 4:
		p.pushStack(uint8(p.PC >> 8))
		return false, nil
	case p.step == 5:
		p.pushStack(uint8(p.PC))
		return false, nil
	}
	hi := p.bus.Read(p.PC)
	p.PC = uint16(hi)<<8 | p.addr
	return true, nil
}

// iRTS: 6 cycles.
func (p *Core) iRTS() (bool, error) {
	switch {
	case p.step < 2 || p.step > 6:
		return true, InvalidState{"iRTS: unexpected step"}
	case p.step == 2:
		return false, nil
	case p.step == 3:
		p.bus.Read(0x0100 + uint16(p.S))
		return false, nil
	case p.step == 4:
		p.temp = p.popStack()
		return false, nil
	case p.step == 5:
		hi := p.popStack()
		p.PC = uint16(hi)<<8 | uint16(p.temp)
		return false, nil
	}
	p.bus.Read(p.PC)
	p.PC++
	return true, nil
}

// iRTI: 6 cycles. Unlike RTS, the popped PC is used as-is — RTI doesn't
// point at a return address that needs adjusting.
func (p *Core) iRTI() (bool, error) {
	switch {
	case p.step < 2 || p.step > 6:
		return true, InvalidState{"iRTI: unexpected step"}
	case p.step == 2:
		return false, nil
	case p.step == 3:
		p.bus.Read(0x0100 + uint16(p.S))
		return false, nil
	case p.step == 4:
		p.Flags = status.Unpack(p.popStack())
		return false, nil
	case p.step == 5:
		p.temp = p.popStack()
		return false, nil
	}
	hi := p.popStack()
	p.PC = uint16(hi)<<8 | uint16(p.temp)
	return true, nil
}

// iPHA/iPHP: 3 cycles, PHP always pushes with the B flag set.
func (p *Core) iPHA() (bool, error) {
	if p.step == 2 {
		return false, nil
	}
	p.pushStack(p.A)
	return true, nil
}

func (p *Core) iPHP() (bool, error) {
	if p.step == 2 {
		return false, nil
	}
	p.pushStack(status.Pack(p.Flags, true))
	return true, nil
}

// iPLA/iPLP: 4 cycles.
func (p *Core) iPLA() (bool, error) {
	switch {
	case p.step == 2:
		return false, nil
	case p.step == 3:
		p.bus.Read(0x0100 + uint16(p.S))
		return false, nil
	}
	return p.setReg(&p.A, p.popStack())
}

func (p *Core) iPLP() (bool, error) {
	switch {
	case p.step == 2:
		return false, nil
	case p.step == 3:
		p.bus.Read(0x0100 + uint16(p.S))
		return false, nil
	}
	p.Flags = status.Unpack(p.popStack())
	return true, nil
}
