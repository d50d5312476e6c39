package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaimusic/miditime/pkg/midi"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Print format, division, track count, and the tempo/signature node map",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	seq, err := loadSequence(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("format:     %d\n", seq.Format())
	fmt.Printf("division:   %s\n", seq.Division())
	fmt.Printf("tracks:     %d\n", seq.NumTracks())
	fmt.Printf("events:     %d\n", len(seq.Events()))
	fmt.Println("nodes:")
	for _, n := range seq.Timeline().Nodes() {
		fmt.Printf("  %s  cumulative=%d  tempo=%s  sig=%d/%d\n",
			n.Triple(), n.Cumulative(), n.Tempo(), n.Signature().Numerator, n.Signature().Denominator)
	}
	return nil
}

func loadSequence(path string) (*midi.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return midi.ParseBytes(data)
}
