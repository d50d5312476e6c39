package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaimusic/miditime/pkg/midi"
)

func TestDivisionToJSONPPQN(t *testing.T) {
	d := divisionToJSON(midi.NewPPQNDivision(480))
	assert.Equal(t, "ppqn", d.Mode)
	assert.Equal(t, uint16(480), d.PPQN)
}

func TestDivisionToJSONPPS(t *testing.T) {
	d := divisionToJSON(midi.NewPPSDivision(30, 80))
	assert.Equal(t, "pps", d.Mode)
	assert.Equal(t, float64(30), d.Frames)
	assert.Equal(t, uint8(80), d.Subframes)
}

func TestEventToJSONNoteOnIncludesPayload(t *testing.T) {
	seq := midi.NewSequence(midi.FormatSingleTrack, midi.NewPPQNDivision(480))
	note := midi.NewNoteOn(0, 0, 60, 100)
	note.Time = midi.NewFloatingTime(0)
	seq.Append(note)
	seq.Update()

	out := eventToJSON(seq.Events()[0])
	assert.Equal(t, "note_on", out.Kind)
	require.NotNil(t, out.Payload)
	assert.Equal(t, uint8(60), out.Payload["note"])
	assert.Equal(t, uint8(100), out.Payload["velocity"])
	assert.NotNil(t, out.Channel)
	assert.Equal(t, uint8(0), *out.Channel)
}

func TestEventKindNameCoversEveryKind(t *testing.T) {
	kinds := []midi.EventKind{
		midi.EventNoteOff, midi.EventNoteOn, midi.EventNoteAftertouch,
		midi.EventControlChange, midi.EventProgramChange, midi.EventChannelAftertouch,
		midi.EventPitchBend, midi.EventSequenceNumber, midi.EventText,
		midi.EventCopyright, midi.EventName, midi.EventProgramName, midi.EventLyrics,
		midi.EventMarker, midi.EventCuePoint, midi.EventChannelPrefix, midi.EventEndTrack,
		midi.EventSetTempo, midi.EventSMPTEOffset, midi.EventSetTimeSignature,
		midi.EventSetKeySignature, midi.EventProprietary, midi.EventSysEx,
	}
	for _, k := range kinds {
		assert.NotEqual(t, "unknown", eventKindName(k))
	}
	assert.Equal(t, "unknown", eventKindName(midi.EventUnknown))
}
