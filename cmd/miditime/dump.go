package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.mid>",
	Short: "Print every caller-visible event with its time, tempo, signature, and program",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	seq, err := loadSequence(args[0])
	if err != nil {
		return err
	}

	for _, ev := range seq.Events() {
		channel := "-"
		if ev.Channel != nil {
			channel = fmt.Sprintf("%d", *ev.Channel)
		}
		fmt.Printf("%-12s track=%-3d ch=%-3s tempo=%-10s sig=%-5s program=%d\n",
			ev.Time.String(), ev.Track, channel, ev.Tempo.String(), ev.Signature.String(), ev.Program.Number())
	}
	return nil
}
