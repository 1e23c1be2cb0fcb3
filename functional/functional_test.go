// Package functional runs Klaus Dormann's widely used 6502 functional
// test suite (https://github.com/Klaus2m5/6502_functional_tests) against
// the core, when the compiled binary is available under testdata/. The
// suite isn't redistributed here, so the test skips instead of failing
// when it's absent — see testdata/README for how to fetch it.
package functional

import (
	"os"
	"testing"

	"github.com/jmchacon/sixfiveohtwo/cpu"
	"github.com/jmchacon/sixfiveohtwo/irq"
	"github.com/jmchacon/sixfiveohtwo/memory"
)

const (
	testBinary  = "testdata/6502_functional_test.bin"
	startPC     = 0x0400
	successPC   = 0x3469
	maxCycles   = 200000000
)

func TestFunctionalSuite(t *testing.T) {
	raw, err := os.ReadFile(testBinary)
	if err != nil {
		t.Skipf("skipping: %s not present (%v)", testBinary, err)
	}

	bank, err := memory.NewFlatBank(65536, nil)
	if err != nil {
		t.Fatalf("NewFlatBank: %v", err)
	}
	memory.LoadAt(bank, 0, raw)

	// A never-raised Reset line suppresses Init's usual auto-reset (which
	// would otherwise load PC from $FFFC on the first few ticks and
	// silently clobber the explicit PC set below).
	c, err := cpu.Init(&cpu.ChipDef{Variant: cpu.NMOS, Bus: bank, Reset: &irq.Latch{}})
	if err != nil {
		t.Fatalf("cpu.Init: %v", err)
	}
	c.PC = startPC

	var lastPC uint16
	cycles, instructions := 0, 0
	for {
		if err := c.Tick(); err != nil {
			t.Fatalf("halted at PC 0x%.4X after %d instructions: %v", c.PC, instructions, err)
		}
		c.TickDone()
		cycles++
		if c.InstructionDone() {
			instructions++
			if c.PC == lastPC {
				break // the suite traps by jumping to itself on both success and failure
			}
			lastPC = c.PC
		}
		if cycles > maxCycles {
			t.Fatalf("exceeded %d cycles without the suite trapping; stuck near PC 0x%.4X", maxCycles, c.PC)
		}
	}

	if c.PC != successPC {
		t.Fatalf("suite trapped at PC 0x%.4X after %d cycles / %d instructions; want 0x%.4X (success)", c.PC, cycles, instructions, successPC)
	}
	t.Logf("functional suite passed: %d cycles, %d instructions", cycles, instructions)
}
