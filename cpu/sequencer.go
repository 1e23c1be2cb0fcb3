package cpu

import "github.com/jmchacon/sixfiveohtwo/decode"

// resolveAddr dispatches to the per-mode address computation, each of which is a
// small state machine driven one step at a time by successive Tick calls.
// Every addrXxx function returns (done, err); done becomes true on the
// cycle the effective address (and, for AccessRead/AccessRMW, the operand
// byte into p.temp) is ready to be consumed. For AccessRMW, reaching done
// also means the unmodified byte has already been written back to the bus
// — the dummy write real 6502 hardware performs before the modified byte
// goes out.
func (p *Core) resolveAddr(mode decode.Mode, acc decode.Access) (bool, error) {
	switch mode {
	case decode.ModeImmediate:
		return p.addrImmediate()
	case decode.ModeZeroPage:
		return p.addrZP(acc)
	case decode.ModeZeroPageX:
		return p.addrZPIndexed(acc, p.X)
	case decode.ModeZeroPageY:
		return p.addrZPIndexed(acc, p.Y)
	case decode.ModeAbsolute:
		return p.addrAbsolute(acc)
	case decode.ModeAbsoluteX:
		return p.addrAbsoluteIndexed(acc, p.X)
	case decode.ModeAbsoluteY:
		return p.addrAbsoluteIndexed(acc, p.Y)
	case decode.ModeIndirectX:
		return p.addrIndirectX(acc)
	case decode.ModeIndirectY:
		return p.addrIndirectY(acc)
	}
	return true, InvalidState{"unsupported addressing mode in generic dispatch"}
}

// addrImmediate: the operand byte was already fetched generically at
// step 2 into p.temp; there's nothing left to compute.
func (p *Core) addrImmediate() (bool, error) {
	p.PC++
	return true, nil
}

// addrZP: zero page direct. 3 cycles load/store, 5 cycles RMW.
func (p *Core) addrZP(acc decode.Access) (bool, error) {
	switch {
	case p.step <= 1 || p.step > 4:
		return true, InvalidState{"addrZP: step out of range"}
	case p.step == 2:
		p.addr = uint16(p.temp)
		p.PC++
		return acc == decode.AccessWrite, nil
	case p.step == 3:
		p.temp = p.bus.Read(p.addr)
		return acc != decode.AccessRMW, nil
	}
	p.bus.Write(p.addr, p.temp)
	return true, nil
}

// addrZPIndexed: zero page,X / zero page,Y. Always wraps within page 0,
// and always spends a cycle reading the unindexed location first (the
// indexing happens inside the CPU, not on the bus). 4 cycles load/store,
// 6 cycles RMW.
func (p *Core) addrZPIndexed(acc decode.Access, reg uint8) (bool, error) {
	switch {
	case p.step <= 1 || p.step > 5:
		return true, InvalidState{"addrZPIndexed: step out of range"}
	case p.step == 2:
		p.addr = uint16(p.temp)
		p.PC++
		return false, nil
	case p.step == 3:
		p.bus.Read(p.addr)
		p.addr = uint16(uint8(p.temp + reg))
		return acc == decode.AccessWrite, nil
	case p.step == 4:
		p.temp = p.bus.Read(p.addr)
		return acc != decode.AccessRMW, nil
	}
	p.bus.Write(p.addr, p.temp)
	return true, nil
}

// addrAbsolute: a 2 byte address follows the opcode. 4 cycles load/store,
// 6 cycles RMW.
func (p *Core) addrAbsolute(acc decode.Access) (bool, error) {
	switch {
	case p.step <= 1 || p.step > 5:
		return true, InvalidState{"addrAbsolute: step out of range"}
	case p.step == 2:
		p.addr = uint16(p.temp)
		p.PC++
		return false, nil
	case p.step == 3:
		p.temp = p.bus.Read(p.PC)
		p.PC++
		p.addr |= uint16(p.temp) << 8
		return acc == decode.AccessWrite, nil
	case p.step == 4:
		p.temp = p.bus.Read(p.addr)
		return acc != decode.AccessRMW, nil
	}
	p.bus.Write(p.addr, p.temp)
	return true, nil
}

// addrAbsoluteIndexed: absolute,X / absolute,Y. Reads take an extra cycle
// only when indexing crosses a page boundary; writes and RMW always pay
// for the extra cycle since the core can't know in advance whether the
// final read will need it. 4-5 cycles load, 5 cycles store, 7 cycles RMW.
func (p *Core) addrAbsoluteIndexed(acc decode.Access, reg uint8) (bool, error) {
	switch {
	case p.step <= 1 || p.step > 6:
		return true, InvalidState{"addrAbsoluteIndexed: step out of range"}
	case p.step == 2:
		p.addr = uint16(p.temp)
		p.PC++
		return false, nil
	case p.step == 3:
		p.temp = p.bus.Read(p.PC)
		p.PC++
		base := p.addr | uint16(p.temp)<<8
		eff := (base & 0xFF00) + uint16(uint8(base)+reg)
		p.temp = 0
		if eff != base+uint16(reg) {
			p.temp = 1
		}
		p.addr = eff
		return false, nil
	case p.step == 4:
		crossed := p.temp != 0
		p.temp = p.bus.Read(p.addr)
		done := true
		if crossed {
			p.addr += 0x0100
			if acc == decode.AccessRead {
				done = false
			}
		}
		if acc == decode.AccessRMW {
			done = false
		}
		return done, nil
	case p.step == 5:
		p.temp = p.bus.Read(p.addr)
		return acc != decode.AccessRMW, nil
	}
	p.bus.Write(p.addr, p.temp)
	return true, nil
}

// addrIndirectX: (zero page,X). The zero page pointer is indexed by X
// (wrapping in page 0) before the two address bytes are read from it.
// 6 cycles load/store, 8 cycles RMW.
func (p *Core) addrIndirectX(acc decode.Access) (bool, error) {
	switch {
	case p.step <= 1 || p.step > 7:
		return true, InvalidState{"addrIndirectX: step out of range"}
	case p.step == 2:
		p.addr = uint16(p.temp)
		p.PC++
		return false, nil
	case p.step == 3:
		p.bus.Read(p.addr)
		p.addr = uint16(uint8(p.temp + p.X))
		return false, nil
	case p.step == 4:
		p.temp = p.bus.Read(p.addr)
		p.addr = uint16(uint8(p.addr) + 1)
		return false, nil
	case p.step == 5:
		p.addr = uint16(p.bus.Read(p.addr))<<8 | uint16(p.temp)
		return acc == decode.AccessWrite, nil
	case p.step == 6:
		p.temp = p.bus.Read(p.addr)
		return acc != decode.AccessRMW, nil
	}
	p.bus.Write(p.addr, p.temp)
	return true, nil
}

// addrIndirectY: (zero page),Y. The pointer is read from zero page first,
// unindexed, and Y is added to the resulting 16 bit address; an extra
// cycle is paid exactly when that addition crosses a page. 5-6 cycles
// load, 6 cycles store, 8 cycles RMW.
func (p *Core) addrIndirectY(acc decode.Access) (bool, error) {
	switch {
	case p.step <= 1 || p.step > 7:
		return true, InvalidState{"addrIndirectY: step out of range"}
	case p.step == 2:
		p.addr = uint16(p.temp)
		p.PC++
		return false, nil
	case p.step == 3:
		p.temp = p.bus.Read(p.addr)
		p.addr = uint16(uint8(p.addr) + 1)
		return false, nil
	case p.step == 4:
		base := uint16(p.bus.Read(p.addr))<<8 | uint16(p.temp)
		eff := (base & 0xFF00) + uint16(uint8(base)+p.Y)
		p.temp = 0
		if eff != base+uint16(p.Y) {
			p.temp = 1
		}
		p.addr = eff
		return false, nil
	case p.step == 5:
		crossed := p.temp != 0
		p.temp = p.bus.Read(p.addr)
		done := true
		if crossed {
			p.addr += 0x0100
			if acc == decode.AccessRead {
				done = false
			}
		}
		if acc == decode.AccessRMW {
			done = false
		}
		return done, nil
	case p.step == 6:
		p.temp = p.bus.Read(p.addr)
		return acc != decode.AccessRMW, nil
	}
	p.bus.Write(p.addr, p.temp)
	return true, nil
}
