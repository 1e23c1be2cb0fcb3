// sixexec loads a flat binary image into memory and either disassembles
// it or runs it against the core until it halts or traps in a loop.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"

	"github.com/jmchacon/sixfiveohtwo/cpu"
	"github.com/jmchacon/sixfiveohtwo/disasm"
	"github.com/jmchacon/sixfiveohtwo/irq"
	"github.com/jmchacon/sixfiveohtwo/memory"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sixexec",
		Short: "Load and run (or disassemble) a flat 6502 memory image",
	}

	var loadAddr string
	var startAddr string
	var maxCycles int
	var trace bool
	var ricoh bool
	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a binary image against the core",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := parseAddr(loadAddr)
			if err != nil {
				return fmt.Errorf("--load: %w", err)
			}
			pc, err := parseAddr(startAddr)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			bank, err := memory.NewFlatBank(65536, nil)
			if err != nil {
				return err
			}
			memory.LoadAt(bank, offset, data)

			variant := cpu.NMOS
			if ricoh {
				variant = cpu.NMOSRicoh
			}
			// A never-raised Reset line suppresses Init's usual auto-reset
			// (which would otherwise load PC from $FFFC on the first few
			// ticks and silently clobber the explicit --start below).
			c, err := cpu.Init(&cpu.ChipDef{Variant: variant, Bus: bank, Reset: &irq.Latch{}})
			if err != nil {
				return err
			}
			c.PC = pc

			var lastPC uint16
			cycles, instructions := 0, 0
			for cycles < maxCycles {
				if trace && (cycles == 0 || c.InstructionDone()) {
					line, _ := disasm.Step(c.PC, bank)
					fmt.Println(line)
				}
				if err := c.Tick(); err != nil {
					fmt.Printf("halted after %d instructions: %v\n", instructions, err)
					if verbose {
						fmt.Println(spew.Sdump(c))
					}
					return err
				}
				c.TickDone()
				cycles++
				if c.InstructionDone() {
					instructions++
					if c.PC == lastPC {
						fmt.Printf("trapped at PC 0x%.4X after %d cycles / %d instructions\n", c.PC, cycles, instructions)
						return nil
					}
					lastPC = c.PC
				}
			}
			fmt.Printf("stopped after reaching --max-cycles (%d); PC=0x%.4X\n", maxCycles, c.PC)
			return nil
		},
	}
	runCmd.Flags().StringVar(&loadAddr, "load", "0x0000", "address to load the image at")
	runCmd.Flags().StringVar(&startAddr, "start", "0x0000", "PC to start execution at")
	runCmd.Flags().IntVar(&maxCycles, "max-cycles", 10_000_000, "cycle budget before giving up")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print a disassembly line before each instruction")
	runCmd.Flags().BoolVar(&ricoh, "ricoh", false, "use the Ricoh (no decimal mode) variant")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "dump full core state on halt")

	var disasmLoadAddr string
	var disasmCount int

	disasmCmd := &cobra.Command{
		Use:   "disasm <file>",
		Short: "Disassemble a binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := parseAddr(disasmLoadAddr)
			if err != nil {
				return fmt.Errorf("--load: %w", err)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			bank, err := memory.NewFlatBank(65536, nil)
			if err != nil {
				return err
			}
			memory.LoadAt(bank, offset, data)

			pc := offset
			end := len(data)
			for i, n := 0, 0; n < end && (disasmCount == 0 || i < disasmCount); i++ {
				line, count := disasm.Step(pc, bank)
				fmt.Println(line)
				pc += uint16(count)
				n += count
			}
			return nil
		},
	}
	disasmCmd.Flags().StringVar(&disasmLoadAddr, "load", "0x0000", "address the image is loaded at")
	disasmCmd.Flags().IntVar(&disasmCount, "count", 0, "number of instructions to print (0 = until the image is exhausted)")

	rootCmd.AddCommand(runCmd, disasmCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
