package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/accum/emulator"
)

var (
	runData   string
	runHz     float64
	runFps    float64
	runResult bool
	runTable  bool
	runSteps  bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run SOURCE|IMAGE",
	Short: f("Run a program in the emulator"),
	Long: f(`Run assembles SOURCE (or reads IMAGE, a .rom file), loads the optional
data initializer, and executes until HLT or a fault. The CPU state is
displayed after every instruction, at a fixed rate with --fps, or only at
the end with --result. Output that is not a terminal defaults to --result.`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := readProgram(args[0])
		if err != nil {
			return
		}

		data, err := readData(runData)
		if err != nil {
			return
		}

		emu := newEmulator()
		err = emu.Load(prog, data)
		if err != nil {
			return
		}

		clk := &emulator.Clock{}
		if runHz != 0 {
			err = clk.SetFrequency(runHz)
			if err != nil {
				return
			}
		}

		err = clk.SetDisplayFrequency(runFps)
		if err != nil {
			return
		}

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		if runResult || (!interactive && !cmd.Flags().Changed("fps")) {
			clk.Mode = emulator.DISPLAY_RESULT
		}

		out := cmd.OutOrStdout()
		if runTable {
			clk.Display = &emulator.Table{Output: out, ShowStep: runSteps}
		} else {
			clk.Display = &emulator.Short{Output: out}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err = clk.Run(ctx, emu)

		logrus.WithFields(logrus.Fields{
			"ticks": emu.Ticks(),
			"acc":   emu.Cpu.Acc,
		}).Debug(f("run complete"))

		if verbose {
			fmt.Fprint(out, emu.Cpu.String())
		}

		return
	},
}

func init() {
	flags := runCmd.Flags()
	flags.StringVarP(&runData, "data", "d", "", f("data memory initializer file"))
	flags.Float64Var(&runHz, "hz", 0, f("instructions per second (0 runs free)"))
	flags.Float64Var(&runFps, "fps", 0, f("displays per second (0 displays every instruction)"))
	flags.BoolVar(&runResult, "result", false, f("display only the final state"))
	flags.BoolVar(&runTable, "table", false, f("display a table instead of short lines"))
	flags.BoolVar(&runSteps, "steps", false, f("add a step column to the table"))
	rootCmd.AddCommand(runCmd)
}
