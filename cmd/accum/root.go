package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/accum/translate"
)

var f = translate.From

var (
	verbose  bool
	language string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "accum",
	Short: f("Accumulator CPU assembler and emulator"),
	Long: f(`Accum assembles programs for a small 32-bit accumulator CPU, writes
and disassembles their instruction images, and runs them in an emulator
that displays the CPU state as it executes.`),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if len(language) != 0 {
			err = translate.SetLanguage(language)
		}
		return
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, f("verbose mode"))
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", f("message language (BCP 47 tag)"))
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
