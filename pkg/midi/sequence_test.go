package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimalEmptySequenceRoundTrip(t *testing.T) {
	seq := NewSequence(FormatSingleTrack, NewPPQNDivision(480))

	out, err := seq.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, out)

	back, err := ParseBytes(out)
	require.NoError(t, err)
	assert.Equal(t, FormatSingleTrack, back.Format())
	assert.Equal(t, uint16(1), back.NumTracks())
	assert.Empty(t, back.Events())

	node := back.Timeline().Nodes()[0]
	assert.Equal(t, 120.0, node.Tempo().BPM())
	assert.True(t, node.Signature().Equal(DefaultTimeSignature))
}

func TestSingleNoteRoundTrip(t *testing.T) {
	seq := NewSequence(FormatSingleTrack, NewPPQNDivision(480))
	on := NewNoteOn(0, 0, 60, 100)
	on.Time = NewFloatingTime(0)
	off := NewNoteOff(0, 0, 60, 64)
	off.Time = NewFloatingTime(VPQN) // one quarter note later

	seq.Append(on)
	seq.Append(off)
	seq.Update()

	onTime := seq.Events()[0].Time
	triple, err := onTime.Triple()
	require.NoError(t, err)
	assert.Equal(t, Triple{Bar: 1, Beat: 1, Tick: 0}, triple)

	out, err := seq.Bytes()
	require.NoError(t, err)

	back, err := ParseBytes(out)
	require.NoError(t, err)
	require.Len(t, back.Events(), 2)

	gotOn := back.Events()[0]
	assert.Equal(t, EventNoteOn, gotOn.Kind)
	assert.Equal(t, uint8(60), gotOn.Note)
	assert.Equal(t, uint8(100), gotOn.Velocity)

	gotOff := back.Events()[1]
	assert.Equal(t, EventNoteOff, gotOff.Kind)
	cum, err := gotOff.Time.Cumulative()
	require.NoError(t, err)
	assert.Equal(t, int64(480), cum)
}

func TestTempoChangeMidTrackStampsFollowingEvents(t *testing.T) {
	seq := NewSequence(FormatSingleTrack, NewPPQNDivision(480))

	before := NewNoteOn(0, 0, 60, 100)
	before.Time = NewFloatingTime(0)
	seq.Append(before)

	change := NewSetTempo(NewTempo(200))
	change.Time = NewFloatingTime(VPQN * 2)
	seq.Append(change)

	after := NewNoteOn(0, 0, 64, 100)
	after.Time = NewFloatingTime(VPQN * 4)
	seq.Append(after)

	seq.Update()

	events := seq.Events()
	require.Len(t, events, 2)
	assert.Equal(t, 120.0, events[0].Tempo.BPM())
	assert.Equal(t, 200.0, events[1].Tempo.BPM())

	out, err := seq.Bytes()
	require.NoError(t, err)

	back, err := ParseBytes(out)
	require.NoError(t, err)
	require.Len(t, back.Events(), 2)
	assert.Equal(t, 200.0, back.Events()[1].Tempo.BPM())
	require.Len(t, back.Timeline().Nodes(), 2)
}

func TestThreeEightSignatureTickBoundary(t *testing.T) {
	seq := NewSequence(FormatSingleTrack, NewPPQNDivision(480))

	sig := NewSetTimeSignature(TimeSignature{Numerator: 3, Denominator: 8, Metronome: 1, Clock: 8})
	sig.Time = NewFloatingTime(0)
	seq.Append(sig)
	seq.Update()

	var tm Time
	tm.timeline = seq.Timeline()
	// Beat 3, tick 239 is the last representable position of bar 1 under
	// 3/8 (3 beats/bar, 240 ticks/beat at 480 PPQN): cumulative 719.
	require.NoError(t, tm.SetTriple(Triple{Bar: 1, Beat: 3, Tick: 239}))

	cum, err := tm.Cumulative()
	require.NoError(t, err)
	assert.Equal(t, int64(719), cum)

	var rollover Time
	rollover.timeline = seq.Timeline()
	require.NoError(t, rollover.SetTriple(Triple{Bar: 2, Beat: 1, Tick: 0}))
	cum2, err := rollover.Cumulative()
	require.NoError(t, err)
	assert.Equal(t, int64(720), cum2)

	err = tm.SetTriple(Triple{Bar: 1, Beat: 3, Tick: 240})
	require.Error(t, err)
}

func TestSetFormatZeroToOneSplitsChannelAndMetaTracks(t *testing.T) {
	seq := NewSequence(FormatSingleTrack, NewPPQNDivision(480))
	note := NewNoteOn(0, 0, 60, 100)
	note.Time = NewFloatingTime(0)
	seq.Append(note)
	seq.Update()

	require.NoError(t, seq.SetFormat(FormatMultiTrack))
	assert.Equal(t, FormatMultiTrack, seq.Format())
	assert.Equal(t, uint16(2), seq.NumTracks())

	require.Len(t, seq.Track(1), 1)
	assert.Equal(t, EventNoteOn, seq.Track(1)[0].Kind)

	out, err := seq.Bytes()
	require.NoError(t, err)
	back, err := ParseBytes(out)
	require.NoError(t, err)
	assert.Equal(t, FormatMultiTrack, back.Format())
	assert.Equal(t, uint16(2), back.NumTracks())
}

func TestSetFormatRejectsUnsupportedConversion(t *testing.T) {
	seq := NewSequence(FormatMultiTrack, NewPPQNDivision(480))
	err := seq.SetFormat(FormatSingleTrack)
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindFormatConversion, midiErr.Kind)
}

func TestTransposeClampsToNoteRange(t *testing.T) {
	seq := NewSequence(FormatSingleTrack, NewPPQNDivision(480))
	note := NewNoteOn(0, 0, 1, 100)
	note.Time = NewFloatingTime(0)
	seq.Append(note)

	seq.Transpose(-10, nil)
	assert.Equal(t, uint8(0), seq.Events()[0].Note)
}

func TestParseMalformedVarIntErrors(t *testing.T) {
	// MThd header, format 0, 1 track, 480 PPQN, then an MTrk whose delta
	// VarInt has the continuation bit set on every byte (never terminates).
	data := []byte{
		'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 0, 0, 1, 0x01, 0xe0,
		'M', 'T', 'r', 'k', 0, 0, 0, 5, 0x80, 0x80, 0x80, 0x80, 0x80,
	}
	_, err := ParseBytes(data)
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindVarIntTooLong, midiErr.Kind)
}

func TestParseUnterminatedTrack(t *testing.T) {
	data := []byte{
		'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 0, 0, 1, 0x01, 0xe0,
		'M', 'T', 'r', 'k', 0, 0, 0, 4, 0x00, 0x90, 0x3c, 0x40,
	}
	_, err := ParseBytes(data)
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindUnterminatedTrack, midiErr.Kind)
}

func TestOffsetShiftsEventsByTicks(t *testing.T) {
	seq := NewSequence(FormatSingleTrack, NewPPQNDivision(480))
	note := NewNoteOn(0, 0, 60, 100)
	note.Time = NewFloatingTime(0)
	seq.Append(note)
	seq.Update()

	seq.Offset(Delta{Ticks: 480})
	cum, err := seq.Events()[0].Time.Cumulative()
	require.NoError(t, err)
	assert.Equal(t, int64(480), cum)
}
