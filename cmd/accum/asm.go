package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/accum/io"
)

var asmOutput string

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm SOURCE",
	Short: f("Assemble a source file into an instruction image"),
	Long: f(`Asm translates one instruction per line into 16-bit words, and writes
them as a little-endian image. The default output replaces the source
extension with .rom.`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		source := args[0]
		output := asmOutput
		if len(output) == 0 {
			output = strings.TrimSuffix(source, filepath.Ext(source)) + ROM_EXT
		}

		prog, err := assemble(source)
		if err != nil {
			return
		}

		rom := &io.Rom{}
		for _, code := range prog.Binary() {
			rom.Data = append(rom.Data, uint16(code))
		}

		ouf, err := os.Create(output)
		if err != nil {
			return
		}
		defer ouf.Close()

		err = rom.Marshal(ouf)
		if err != nil {
			return
		}

		logrus.WithFields(logrus.Fields{
			"source": source,
			"output": output,
			"words":  len(rom.Data),
		}).Info(f("assembled"))

		return
	},
}

func init() {
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "", f("image file to write"))
	rootCmd.AddCommand(asmCmd)
}
