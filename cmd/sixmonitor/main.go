// sixmonitor is an interactive single-stepping TUI debugger: load a flat
// binary image, then step through it one instruction at a time, watching
// registers, flags and the surrounding memory page update.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func main() {
	var loadAddr string

	rootCmd := &cobra.Command{
		Use:   "sixmonitor <file>",
		Short: "Interactively single-step a 6502 binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.ParseUint(loadAddr, 0, 16)
			if err != nil {
				return fmt.Errorf("--load: %w", err)
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return Run(data, uint16(offset))
		},
	}
	rootCmd.Flags().StringVar(&loadAddr, "load", "0x0000", "address to load the image at, and start execution from")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
