// Package alu implements the flag-setting arithmetic and logic primitives
// used by the 6502 operation semantics: ADC/SBC (binary and BCD), compare,
// BIT, and the shift/rotate/inc/dec family. Every function here is a pure
// byte-in, byte-and-flags-out transform; none of them know about ticks,
// addressing modes, or the stack. The cpu package supplies the operand
// bytes and merges the returned flags into P.
package alu

import "github.com/jmchacon/sixfiveohtwo/status"

// Out carries the result byte (where the operation produces one) plus the
// subset of N, Z, C, V it affects. Callers merge only the fields the
// instruction documents as touched; D and I are never returned here since
// no ALU primitive affects them.
type Out struct {
	Result uint8
	N, Z, C, V bool
}

// ADC implements binary and decimal-mode addition with carry, following the
// documented NMOS decimal-mode quirks: in BCD, Z is taken from the binary
// sum (not the decimal-adjusted one), N is the sign bit of the pre-adjusted
// high nibble, and V/C are computed against the pre/post adjusted sums
// respectively. See http://www.6502.org/tutorials/decimal_mode.html.
func ADC(a, m uint8, carryIn, decimal bool) Out {
	var carry uint8
	if carryIn {
		carry = 1
	}
	if !decimal {
		sum := uint16(a) + uint16(m) + uint16(carry)
		res := uint8(sum)
		return Out{
			Result: res,
			N:      status.SetN(res),
			Z:      status.SetZ(res),
			C:      status.SetC(sum),
			V:      status.SetV(a, m, res),
		}
	}

	// Decimal (BCD) path.
	lo := (a & 0x0F) + (m & 0x0F) + carry
	if lo >= 0x0A {
		lo = ((lo + 0x06) & 0x0F) + 0x10
	}
	preHigh := uint16(a&0xF0) + uint16(m&0xF0) + uint16(lo)
	sum := preHigh
	if sum >= 0xA0 {
		sum += 0x60
	}
	res := uint8(sum)
	bin := a + m + carry
	return Out{
		Result: res,
		N:      status.SetN(uint8(preHigh)),
		Z:      status.SetZ(bin),
		C:      status.SetC(sum),
		V:      status.SetV(a, m, uint8(preHigh)),
	}
}

// SBC implements binary and decimal-mode subtraction with borrow (carry
// acts as the inverse of borrow, per 6502 convention). The binary-mode
// flags (N, Z, C, V) are always computed from the equivalent ones'
// complement addition so they match ADC's rules exactly; only the result
// byte differs between binary and decimal mode.
func SBC(a, m uint8, carryIn, decimal bool) Out {
	if !decimal {
		return ADC(a, ^m, carryIn, false)
	}

	var carry uint8
	if carryIn {
		carry = 1
	}
	lo := int8(a&0x0F) - int8(m&0x0F) + int8(carry) - 1
	if lo < 0 {
		lo = ((lo - 0x06) & 0x0F) - 0x10
	}
	sum := int16(a&0xF0) - int16(m&0xF0) + int16(lo)
	if sum < 0 {
		sum -= 0x60
	}
	res := uint8(sum)

	// N, Z, C, V follow the binary subtraction regardless of the decimal
	// adjustment made to the result byte.
	bin := ADC(a, ^m, carryIn, false)
	return Out{
		Result: res,
		N:      bin.N,
		Z:      bin.Z,
		C:      bin.C,
		V:      bin.V,
	}
}

// Compare implements CMP/CPX/CPY: a two's complement subtract that sets
// N, Z, C from reg-val without mutating reg. Result is meaningless here;
// callers should only look at the flags.
func Compare(reg, val uint8) Out {
	diff := reg - val
	sum := uint16(reg) + uint16(^val) + 1
	return Out{
		N: status.SetN(diff),
		Z: status.SetZ(diff),
		C: status.SetC(sum),
	}
}

// BIT implements the BIT instruction: Z from A&m, N from bit 7 of m, V from
// bit 6 of m. A is not mutated and Result is meaningless.
func BIT(a, m uint8) Out {
	return Out{
		Z: status.SetZ(a & m),
		N: m&status.Negative != 0,
		V: m&status.Overflow != 0,
	}
}

// ASL shifts v left one bit, setting C from the ejected bit 7 and N/Z from
// the result.
func ASL(v uint8) Out {
	res := v << 1
	return Out{Result: res, N: status.SetN(res), Z: status.SetZ(res), C: v&0x80 != 0}
}

// LSR shifts v right one bit, setting C from the ejected bit 0 and N/Z from
// the result.
func LSR(v uint8) Out {
	res := v >> 1
	return Out{Result: res, N: status.SetN(res), Z: status.SetZ(res), C: v&0x01 != 0}
}

// ROL rotates v left one bit bringing carryIn into bit 0, setting C from
// the ejected bit 7 and N/Z from the result.
func ROL(v uint8, carryIn bool) Out {
	var c uint8
	if carryIn {
		c = 1
	}
	res := (v << 1) | c
	return Out{Result: res, N: status.SetN(res), Z: status.SetZ(res), C: v&0x80 != 0}
}

// ROR rotates v right one bit bringing carryIn into bit 7, setting C from
// the ejected bit 0 and N/Z from the result.
func ROR(v uint8, carryIn bool) Out {
	var c uint8
	if carryIn {
		c = 0x80
	}
	res := (v >> 1) | c
	return Out{Result: res, N: status.SetN(res), Z: status.SetZ(res), C: v&0x01 != 0}
}

// INC increments v by one (wrapping mod 256), setting N/Z from the result.
// Never touches C.
func INC(v uint8) Out {
	res := v + 1
	return Out{Result: res, N: status.SetN(res), Z: status.SetZ(res)}
}

// DEC decrements v by one (wrapping mod 256), setting N/Z from the result.
// Never touches C.
func DEC(v uint8) Out {
	res := v - 1
	return Out{Result: res, N: status.SetN(res), Z: status.SetZ(res)}
}
