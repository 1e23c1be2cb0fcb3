package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmchacon/sixfiveohtwo/cpu"
	"github.com/jmchacon/sixfiveohtwo/disasm"
	"github.com/jmchacon/sixfiveohtwo/irq"
	"github.com/jmchacon/sixfiveohtwo/memory"
)

type model struct {
	core  *cpu.Core
	bank  memory.Bank
	start uint16

	prevPC uint16
	err    error
}

// Init satisfies tea.Model; the core is already powered on and parked at
// start by the time the program is handed to bubbletea.
func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.core.PC
			for {
				if err := m.core.Tick(); err != nil {
					m.err = err
					return m, tea.Quit
				}
				m.core.TickDone()
				if m.core.InstructionDone() {
					break
				}
			}
		}
	}
	return m, nil
}

const bytesPerLine = 16

func (m model) renderPage(base uint16) string {
	s := fmt.Sprintf("%.4X | ", base)
	for i := uint16(0); i < bytesPerLine; i++ {
		addr := base + i
		b := m.bank.Read(addr)
		if addr == m.core.PC {
			s += fmt.Sprintf("[%.2X] ", b)
		} else {
			s += fmt.Sprintf(" %.2X  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < bytesPerLine; b++ {
		header += fmt.Sprintf("  %X  ", b)
	}
	lines := []string{header}
	base := m.core.PC & 0xFFF0
	for i := -2; i <= 2; i++ {
		lines = append(lines, m.renderPage(base+uint16(i*bytesPerLine)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	flagBits := []bool{
		m.core.Flags.N, m.core.Flags.V, true, false,
		m.core.Flags.D, m.core.Flags.I, m.core.Flags.Z, m.core.Flags.C,
	}
	var flags string
	for _, set := range flagBits {
		if set {
			flags += "1 "
		} else {
			flags += "0 "
		}
	}
	return fmt.Sprintf(`
 PC: %.4X (was %.4X)
  A: %.2X
  X: %.2X
  Y: %.2X
  S: %.2X
N V _ B D I Z C
%s`,
		m.core.PC, m.prevPC, m.core.A, m.core.X, m.core.Y, m.core.S, flags)
}

func (m model) View() string {
	line, _ := disasm.Step(m.core.PC, m.bank)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		line,
		"",
		"space/j: step    q: quit",
	)
}

// Run loads program at offset, parks PC there, and starts the interactive
// monitor. It blocks until the user quits.
func Run(program []byte, offset uint16) error {
	bank, err := memory.NewFlatBank(65536, nil)
	if err != nil {
		return err
	}
	memory.LoadAt(bank, offset, program)
	// A never-raised Reset line suppresses Init's usual auto-reset (which
	// would otherwise load PC from $FFFC on the first few ticks and
	// silently clobber the explicit PC set below).
	c, err := cpu.Init(&cpu.ChipDef{Variant: cpu.NMOS, Bus: bank, Reset: &irq.Latch{}})
	if err != nil {
		return err
	}
	c.PC = offset

	result, err := tea.NewProgram(model{core: c, bank: bank, start: offset}).Run()
	if err != nil {
		return err
	}
	if m, ok := result.(model); ok && m.err != nil {
		fmt.Println("halted:", m.err)
	}
	return nil
}
