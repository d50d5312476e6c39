package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaimusic/miditime/pkg/midi"
)

func writeSampleFile(t *testing.T) string {
	t.Helper()
	seq := midi.NewSequence(midi.FormatSingleTrack, midi.NewPPQNDivision(480))
	note := midi.NewNoteOn(0, 0, 60, 100)
	note.Time = midi.NewFloatingTime(0)
	seq.Append(note)
	seq.Update()

	out, err := seq.Bytes()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sample.mid")
	require.NoError(t, os.WriteFile(path, out, 0644))
	return path
}

func TestLoadSequence(t *testing.T) {
	path := writeSampleFile(t)
	seq, err := loadSequence(path)
	require.NoError(t, err)
	assert.Equal(t, midi.FormatSingleTrack, seq.Format())
	require.Len(t, seq.Events(), 1)
}

func TestLoadSequenceMissingFile(t *testing.T) {
	_, err := loadSequence(filepath.Join(t.TempDir(), "missing.mid"))
	require.Error(t, err)
}

func TestRunConvertWritesOutputFile(t *testing.T) {
	in := writeSampleFile(t)
	out := filepath.Join(t.TempDir(), "out.mid")

	convertOutput = out
	convertFormat = -1
	require.NoError(t, runConvert(convertCmd, []string{in}))

	seq, err := loadSequence(out)
	require.NoError(t, err)
	assert.Equal(t, midi.FormatSingleTrack, seq.Format())
}

func TestRunTransposeShiftsNotes(t *testing.T) {
	in := writeSampleFile(t)
	out := filepath.Join(t.TempDir(), "out.mid")

	transposeOutput = out
	transposeSemitones = 5
	require.NoError(t, runTranspose(transposeCmd, []string{in}))

	seq, err := loadSequence(out)
	require.NoError(t, err)
	require.Len(t, seq.Events(), 1)
	assert.Equal(t, uint8(65), seq.Events()[0].Note)
}
