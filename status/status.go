// Package status implements the 6502 processor status word: the six
// independent condition flags N, V, D, I, Z, C and their packing to and
// from the 8 bit representation used by PHP, PLP, BRK and the interrupt
// sequence.
package status

// Bit positions of the packed status byte.
const (
	Negative = uint8(0x80)
	Overflow = uint8(0x40)
	Unused   = uint8(0x20) // Always reads as 1. Never stored separately.
	Break    = uint8(0x10) // Synthesized on push. Never stored in Flags.
	Decimal  = uint8(0x08)
	Interupt = uint8(0x04)
	Zero     = uint8(0x02)
	Carry    = uint8(0x01)
)

// Flags holds the six independent 6502 condition flags. There is
// deliberately no field for bit 5 (always 1) or bit 4 ("B", synthesized
// only when pushed to the stack).
type Flags struct {
	N bool
	V bool
	D bool
	I bool
	Z bool
	C bool
}

// Pack encodes f into an 8 bit status byte. Bit 5 is always set. b
// supplies bit 4 ("B"): true for PHP/BRK pushes, false for IRQ/NMI pushes.
func Pack(f Flags, b bool) uint8 {
	v := Unused
	if f.N {
		v |= Negative
	}
	if f.V {
		v |= Overflow
	}
	if b {
		v |= Break
	}
	if f.D {
		v |= Decimal
	}
	if f.I {
		v |= Interupt
	}
	if f.Z {
		v |= Zero
	}
	if f.C {
		v |= Carry
	}
	return v
}

// Unpack decodes an 8 bit status byte into Flags, ignoring bits 5 and 4.
func Unpack(v uint8) Flags {
	return Flags{
		N: v&Negative != 0,
		V: v&Overflow != 0,
		D: v&Decimal != 0,
		I: v&Interupt != 0,
		Z: v&Zero != 0,
		C: v&Carry != 0,
	}
}

// SetZ reports whether v, treated as an ALU result, should set the Zero flag.
func SetZ(v uint8) bool {
	return v == 0
}

// SetN reports whether v, treated as an ALU result, should set the Negative flag.
func SetN(v uint8) bool {
	return v&Negative != 0
}

// SetC reports whether a 9 bit (or wider, for BCD) intermediate sum carried out of bit 7.
func SetC(sum uint16) bool {
	return sum >= 0x100
}

// SetV reports whether adding a, m and carry as signed 8 bit values overflows
// the signed range, using the standard sign-bit trick: true when the operand
// signs agree with each other but disagree with the result sign.
func SetV(a, m, res uint8) bool {
	return (a^res)&(m^res)&Negative != 0
}
