package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaimusic/miditime/pkg/midi"
)

var (
	convertOutput string
	convertFormat int
)

var convertCmd = &cobra.Command{
	Use:   "convert <in.mid>",
	Short: "Parse, optionally change SMF format, and re-emit",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file path (required)")
	convertCmd.Flags().IntVar(&convertFormat, "format", -1, "target SMF format (0 or 1); omit to keep the source format")
	_ = convertCmd.MarkFlagRequired("output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	seq, err := loadSequence(args[0])
	if err != nil {
		return err
	}

	if convertFormat >= 0 {
		if err := seq.SetFormat(midi.Format(convertFormat)); err != nil {
			return err
		}
	}

	out, err := seq.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(convertOutput, out, 0644); err != nil {
		return err
	}
	fmt.Printf("converted %s -> %s\n", args[0], convertOutput)
	return nil
}
