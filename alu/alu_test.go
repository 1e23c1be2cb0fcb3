package alu

import (
	"testing"

	"github.com/go-test/deep"
)

func TestADCBinary(t *testing.T) {
	tests := []struct {
		name        string
		a, m        uint8
		carry       bool
		want        Out
	}{
		{"0+0", 0x00, 0x00, false, Out{Result: 0x00, Z: true}},
		{"no overflow", 0x10, 0x20, false, Out{Result: 0x30}},
		{"carry out", 0xFF, 0x01, false, Out{Result: 0x00, Z: true, C: true}},
		{"signed overflow", 0x50, 0x50, false, Out{Result: 0xA0, N: true, V: true}},
		{"carry in", 0x01, 0x01, true, Out{Result: 0x03}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ADC(test.a, test.m, test.carry, false)
			if diff := deep.Equal(got, test.want); diff != nil {
				t.Errorf("ADC(0x%.2X,0x%.2X,%v) diff: %v", test.a, test.m, test.carry, diff)
			}
		})
	}
}

func TestADCDecimal(t *testing.T) {
	// 0x58 + 0x46 BCD = 104 decimal -> result 0x04 with carry set.
	got := ADC(0x58, 0x46, false, true)
	if !got.C {
		t.Errorf("ADC BCD 58+46: carry not set")
	}
	if got.Result != 0x04 {
		t.Errorf("ADC BCD 58+46 = 0x%.2X, want 0x04", got.Result)
	}
}

func TestSBCBinaryInversionLaw(t *testing.T) {
	a := uint8(0x42)
	m := uint8(0x17)
	add := ADC(a, m, false, false)         // CLC: no carry in
	sub := SBC(add.Result, m, true, false) // SEC: carry=1 means no borrow
	if sub.Result != a {
		t.Errorf("ADC then SBC round trip: got 0x%.2X want 0x%.2X", sub.Result, a)
	}
}

func TestCompare(t *testing.T) {
	got := Compare(0x10, 0x10)
	if !got.Z || !got.C {
		t.Errorf("Compare(0x10,0x10) = %+v, want Z=true C=true", got)
	}
	got = Compare(0x10, 0x20)
	if got.C {
		t.Errorf("Compare(0x10,0x20): carry set, want clear (reg<val)")
	}
}

func TestBIT(t *testing.T) {
	got := BIT(0x0F, 0xC0)
	if !got.N || !got.V || !got.Z {
		t.Errorf("BIT(0x0F,0xC0) = %+v, want N,V,Z all true", got)
	}
}

func TestShiftsAndRotates(t *testing.T) {
	if got := ASL(0x80); !got.C || !got.Z {
		t.Errorf("ASL(0x80) = %+v, want C=true Z=true", got)
	}
	if got := LSR(0x01); !got.C || !got.Z {
		t.Errorf("LSR(0x01) = %+v, want C=true Z=true", got)
	}
	if got := ROL(0x80, false); got.Result != 0x00 || !got.C {
		t.Errorf("ROL(0x80,false) = %+v, want Result=0x00 C=true", got)
	}
	if got := ROL(0x00, true); got.Result != 0x01 {
		t.Errorf("ROL(0x00,true) = %+v, want Result=0x01", got)
	}
	if got := ROR(0x01, false); got.Result != 0x00 || !got.C {
		t.Errorf("ROR(0x01,false) = %+v, want Result=0x00 C=true", got)
	}
	if got := ROR(0x00, true); got.Result != 0x80 {
		t.Errorf("ROR(0x00,true) = %+v, want Result=0x80", got)
	}
}

func TestIncDec(t *testing.T) {
	if got := INC(0xFF); got.Result != 0x00 || !got.Z {
		t.Errorf("INC(0xFF) = %+v, want Result=0x00 Z=true", got)
	}
	if got := DEC(0x00); got.Result != 0xFF || !got.N {
		t.Errorf("DEC(0x00) = %+v, want Result=0xFF N=true", got)
	}
}
