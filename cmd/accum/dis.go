package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/accum/cpu"
)

// disCmd represents the dis command
var disCmd = &cobra.Command{
	Use:   "dis IMAGE",
	Short: f("Disassemble an instruction image"),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		rom, err := readRom(args[0])
		if err != nil {
			return
		}

		out := cmd.OutOrStdout()
		for ip, word := range rom.Words() {
			fmt.Fprintf(out, "%-16s # %03x: %04x\n", cpu.Code(word), ip, word)
		}

		return
	},
}

func init() {
	rootCmd.AddCommand(disCmd)
}
