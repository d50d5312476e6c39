package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	transposeOutput    string
	transposeSemitones int
	transposeTrack     int
	transposeHasTrack  bool
)

var transposeCmd = &cobra.Command{
	Use:   "transpose <in.mid>",
	Short: "Shift note events by a number of semitones, optionally scoped to one track",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranspose,
}

func init() {
	transposeCmd.Flags().StringVarP(&transposeOutput, "output", "o", "", "output file path (required)")
	transposeCmd.Flags().IntVar(&transposeSemitones, "semitones", 0, "semitones to shift, positive or negative")
	transposeCmd.Flags().IntVar(&transposeTrack, "track", 0, "restrict to a single track")
	_ = transposeCmd.MarkFlagRequired("output")
}

func runTranspose(cmd *cobra.Command, args []string) error {
	seq, err := loadSequence(args[0])
	if err != nil {
		return err
	}

	var track *uint16
	if cmd.Flags().Changed("track") {
		t := uint16(transposeTrack)
		track = &t
	}
	seq.Transpose(transposeSemitones, track)

	out, err := seq.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(transposeOutput, out, 0644); err != nil {
		return err
	}
	fmt.Printf("transposed %s -> %s (%+d semitones)\n", args[0], transposeOutput, transposeSemitones)
	return nil
}
