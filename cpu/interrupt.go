package cpu

import "github.com/jmchacon/sixfiveohtwo/status"

// runInterrupt drives the 7 cycle sequence shared by BRK, RST, NMI and
// IRQ: push PCH, PCL and P (or, for RST, the would-be writes become reads
// since the stack contents are never actually visible on the physical
// reset line), set I, then load PC from the source's vector.
func (p *Core) runInterrupt(src intSource) (bool, error) {
	switch {
	case p.step < 2 || p.step > 7:
		return true, InvalidState{"runInterrupt: unexpected step"}
	case p.step == 2:
		if src == srcBRK || src == srcRST {
			p.PC++
		}
		return false, nil
	case p.step == 3:
		p.pushOrRead(uint8(p.PC>>8), src != srcRST)
		return false, nil
	case p.step == 4:
		p.pushOrRead(uint8(p.PC), src != srcRST)
		return false, nil
	case p.step == 5:
		push := status.Pack(p.Flags, src == srcBRK)
		p.Flags.I = true
		p.pushOrRead(push, src != srcRST)
		return false, nil
	case p.step == 6:
		p.temp = p.bus.Read(vectorFor(src))
		return false, nil
	}
	hi := p.bus.Read(vectorFor(src) + 1)
	p.PC = uint16(hi)<<8 | uint16(p.temp)
	return true, nil
}

// pushOrRead decrements S exactly as a real push would, but only writes
// to the stack when write is true; RST's "pushes" are reads, since the
// real hardware simply doesn't drive the data bus during reset.
func (p *Core) pushOrRead(val uint8, write bool) {
	if write {
		p.bus.Write(0x0100+uint16(p.S), val)
	} else {
		p.bus.Read(0x0100 + uint16(p.S))
	}
	p.S--
}
