package disasm

import (
	"strings"
	"testing"

	"github.com/jmchacon/sixfiveohtwo/memory"
)

func TestStep(t *testing.T) {
	bank, err := memory.NewFlatBank(65536, nil)
	if err != nil {
		t.Fatalf("NewFlatBank: %v", err)
	}
	memory.LoadAt(bank, 0x0400, []byte{0xA9, 0x10, 0x8D, 0x00, 0x02, 0x90, 0xFE, 0x0A, 0x02})

	tests := []struct {
		pc       uint16
		wantMn   string
		wantLen  int
	}{
		{0x0400, "LDA #$10", 2},
		{0x0402, "STA $0200", 3},
		{0x0405, "BCC $FE ($0405)", 2},
		{0x0407, "ASL A", 1},
		{0x0408, "???", 1},
	}
	for _, test := range tests {
		got, n := Step(test.pc, bank)
		if n != test.wantLen {
			t.Errorf("Step(0x%.4X) len = %d, want %d", test.pc, n, test.wantLen)
		}
		if !strings.Contains(got, test.wantMn) {
			t.Errorf("Step(0x%.4X) = %q, want it to contain %q", test.pc, got, test.wantMn)
		}
	}
}
