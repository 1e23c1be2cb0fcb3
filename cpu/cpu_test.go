package cpu

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/jmchacon/sixfiveohtwo/irq"
	"github.com/jmchacon/sixfiveohtwo/memory"
)

// runInstruction ticks the core until the instruction currently underway
// completes, returning the number of bus cycles it took. On an unexpected
// Tick error or a runaway instruction it dumps the full core state, since a
// bare "Tick: <err>" gives no clue what the sequencer thought it was doing.
func runInstruction(t *testing.T, c *Core) int {
	t.Helper()
	cycles := 0
	for {
		if err := c.Tick(); err != nil {
			t.Fatalf("Tick: %v\n%s", err, spew.Sdump(c))
		}
		c.TickDone()
		cycles++
		if c.InstructionDone() {
			return cycles
		}
		if cycles > 20 {
			t.Fatalf("instruction did not complete within 20 cycles\n%s", spew.Sdump(c))
		}
	}
}

// newTestCore builds a Core over a flat 64k bank, with RST asserted once
// (satisfied by draining the boot reset sequence) and PC parked at 0x0400.
func newTestCore(t *testing.T) (*Core, memory.Bank) {
	t.Helper()
	bank, err := memory.NewFlatBank(65536, nil)
	if err != nil {
		t.Fatalf("NewFlatBank: %v", err)
	}
	memory.LoadAt(bank, ResetVector, []byte{0x00, 0x04})
	c, err := Init(&ChipDef{Variant: NMOS, Bus: bank})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	runInstruction(t, c) // drain the power-on reset sequence
	if c.PC != 0x0400 {
		t.Fatalf("PC after reset = 0x%.4X, want 0x0400", c.PC)
	}
	return c, bank
}

func TestResetVector(t *testing.T) {
	newTestCore(t)
}

func TestLDAImmediate(t *testing.T) {
	c, bank := newTestCore(t)
	memory.LoadAt(bank, 0x0400, []byte{0xA9, 0x00})
	if got, want := runInstruction(t, c), 2; got != want {
		t.Errorf("LDA # cycles = %d, want %d", got, want)
	}
	if c.A != 0x00 {
		t.Errorf("A = 0x%.2X, want 0x00", c.A)
	}
	if !c.Flags.Z || c.Flags.N {
		t.Errorf("Flags after LDA #0 = %+v, want Z set, N clear", c.Flags)
	}
}

func TestLDAAbsoluteXPageCross(t *testing.T) {
	c, bank := newTestCore(t)
	c.X = 0x01
	memory.LoadAt(bank, 0x0400, []byte{0xBD, 0xFF, 0x01}) // LDA $01FF,X -> $0200
	bank.Write(0x0200, 0x42)
	if got, want := runInstruction(t, c), 5; got != want {
		t.Errorf("LDA abs,X crossing a page took %d cycles, want %d", got, want)
	}
	if c.A != 0x42 {
		t.Errorf("A = 0x%.2X, want 0x42", c.A)
	}
}

func TestLDAAbsoluteXNoPageCross(t *testing.T) {
	c, bank := newTestCore(t)
	c.X = 0x01
	memory.LoadAt(bank, 0x0400, []byte{0xBD, 0x00, 0x02}) // LDA $0200,X -> $0201
	bank.Write(0x0201, 0x99)
	if got, want := runInstruction(t, c), 4; got != want {
		t.Errorf("LDA abs,X not crossing a page took %d cycles, want %d", got, want)
	}
}

func TestINCZeroPageDummyWrite(t *testing.T) {
	c, bank := newTestCore(t)
	memory.LoadAt(bank, 0x0400, []byte{0xE6, 0x10}) // INC $10
	bank.Write(0x10, 0x7F)
	if got, want := runInstruction(t, c), 5; got != want {
		t.Errorf("INC zp cycles = %d, want %d", got, want)
	}
	if got, want := bank.Read(0x10), uint8(0x80); got != want {
		t.Errorf("$10 after INC = 0x%.2X, want 0x%.2X", got, want)
	}
	if !c.Flags.N || c.Flags.Z {
		t.Errorf("Flags after INC $7F = %+v, want N set, Z clear", c.Flags)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, bank := newTestCore(t)
	memory.LoadAt(bank, 0x0400, []byte{0x20, 0x00, 0x05}) // JSR $0500
	memory.LoadAt(bank, 0x0500, []byte{0x60})             // RTS
	startS := c.S
	if got, want := runInstruction(t, c), 6; got != want {
		t.Errorf("JSR cycles = %d, want %d", got, want)
	}
	if c.PC != 0x0500 {
		t.Fatalf("PC after JSR = 0x%.4X, want 0x0500", c.PC)
	}
	if got, want := bank.Read(0x0100+uint16(startS)), uint8(0x04); got != want {
		t.Errorf("pushed PCH = 0x%.2X, want 0x04", got)
	}
	if got, want := bank.Read(0x0100+uint16(startS-1)), uint8(0x02); got != want {
		t.Errorf("pushed PCL = 0x%.2X, want 0x02 (points at the last operand byte)", got)
	}
	if got, want := runInstruction(t, c), 6; got != want {
		t.Errorf("RTS cycles = %d, want %d", got, want)
	}
	if c.PC != 0x0403 {
		t.Errorf("PC after RTS = 0x%.4X, want 0x0403", c.PC)
	}
	if c.S != startS {
		t.Errorf("S after JSR/RTS round trip = 0x%.2X, want 0x%.2X", c.S, startS)
	}
}

func TestBRKStackFrame(t *testing.T) {
	c, bank := newTestCore(t)
	memory.LoadAt(bank, IRQVector, []byte{0x00, 0x06})
	memory.LoadAt(bank, 0x0400, []byte{0x00, 0xEA}) // BRK <signature byte>
	c.Flags.C = true
	startS := c.S
	if got, want := runInstruction(t, c), 7; got != want {
		t.Errorf("BRK cycles = %d, want %d", got, want)
	}
	if c.PC != 0x0600 {
		t.Errorf("PC after BRK = 0x%.4X, want 0x0600", c.PC)
	}
	if !c.Flags.I {
		t.Error("I flag not set after BRK")
	}
	pushedP := bank.Read(0x0100 + uint16(startS-2))
	if pushedP&0x10 == 0 {
		t.Errorf("pushed P = 0x%.2X, want B bit (0x10) set", pushedP)
	}
	if pushedP&0x20 == 0 {
		t.Errorf("pushed P = 0x%.2X, want bit 5 set", pushedP)
	}
}

func TestIRQRequiresIUnset(t *testing.T) {
	c, bank := newTestCore(t)
	memory.LoadAt(bank, IRQVector, []byte{0x00, 0x07})
	memory.LoadAt(bank, 0x0400, []byte{0xEA, 0xEA, 0xEA, 0xEA}) // NOPs
	c.Flags.I = true
	var line irq.Level
	c.irqIn = &line
	line.Set()
	runInstruction(t, c) // NOP executes; I masks the IRQ
	if c.PC != 0x0401 {
		t.Fatalf("PC after first NOP = 0x%.4X, want 0x0401 (IRQ should have been masked)", c.PC)
	}
	c.Flags.I = false
	line.Set()
	runInstruction(t, c) // this time the IRQ should be taken instead of the next NOP
	if c.PC != 0x0700 {
		t.Errorf("PC after IRQ = 0x%.4X, want 0x0700", c.PC)
	}
	if !c.Flags.I {
		t.Error("I flag not set after servicing IRQ")
	}
}

func TestNMIPriorityOverIRQ(t *testing.T) {
	c, bank := newTestCore(t)
	memory.LoadAt(bank, NMIVector, []byte{0x00, 0x08})
	memory.LoadAt(bank, IRQVector, []byte{0x00, 0x09})
	memory.LoadAt(bank, 0x0400, []byte{0xEA})
	var nmi irq.Latch
	var irqLine irq.Level
	c.nmi = &nmi
	c.irqIn = &irqLine
	c.Flags.I = false // unmask IRQ so both lines really compete
	nmi.Set()
	irqLine.Set()
	runInstruction(t, c)
	if c.PC != 0x0800 {
		t.Errorf("PC after simultaneous NMI+IRQ = 0x%.4X, want 0x0800 (NMI vector)", c.PC)
	}
}

func TestUndocumentedOpcodeHalts(t *testing.T) {
	c, bank := newTestCore(t)
	memory.LoadAt(bank, 0x0400, []byte{0x02}) // illegal
	// Cycle 1 only fetches the opcode and decodes it; decode.Decode
	// returning Invalid isn't acted on until processOpcode runs at cycle 2.
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick (cycle 1) returned an error early: %v\n%s", err, spew.Sdump(c))
	}
	c.TickDone()
	if c.Halted() {
		t.Fatal("core halted after cycle 1; the invalid opcode isn't detected until cycle 2")
	}
	err := c.Tick()
	c.TickDone()
	if err == nil {
		t.Fatalf("expected an error ticking an undocumented opcode\n%s", spew.Sdump(c))
	}
	var haltErr HaltError
	if !errors.As(err, &haltErr) {
		t.Fatalf("err = %v (%T), want a HaltError", err, err)
	}
	if haltErr.Opcode != 0x02 {
		t.Errorf("HaltError.Opcode = 0x%.2X, want 0x02", haltErr.Opcode)
	}
	if !c.Halted() {
		t.Fatal("core should report Halted() after an undocumented opcode")
	}
	if err2 := c.Tick(); err2 == nil {
		t.Fatal("halted core should keep returning errors")
	}
}

func TestDecimalADC(t *testing.T) {
	c, bank := newTestCore(t)
	memory.LoadAt(bank, 0x0400, []byte{0x69, 0x46}) // ADC #$46
	c.A = 0x58
	c.Flags.C = false
	c.Flags.D = true
	runInstruction(t, c)
	if got, want := c.A, uint8(0x04); got != want {
		t.Errorf("A after decimal 58+46 = 0x%.2X, want 0x%.2X", got, want)
	}
	if !c.Flags.C {
		t.Error("C should be set after decimal 58+46=104")
	}
}
