package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimelineDefaultNode(t *testing.T) {
	tl := newTimeline(NewPPQNDivision(480))
	require.Len(t, tl.Nodes(), 1)

	n := tl.Nodes()[0]
	assert.Equal(t, int64(0), n.Value())
	assert.Equal(t, Triple{Bar: 1, Beat: 1, Tick: 0}, n.Triple())
	assert.Equal(t, 120.0, n.Tempo().BPM())
	assert.True(t, n.Signature().Equal(DefaultTimeSignature))
}

func TestApplyChangeAtSameCumulativeUpdatesInPlace(t *testing.T) {
	tl := newTimeline(NewPPQNDivision(480))
	tl.applyChange(0, NewTempo(140), DefaultTimeSignature)

	require.Len(t, tl.Nodes(), 1)
	assert.Equal(t, 140.0, tl.Nodes()[0].Tempo().BPM())
}

func TestApplyChangeAppendsNodeAtLaterCumulative(t *testing.T) {
	tl := newTimeline(NewPPQNDivision(480))
	tl.applyChange(1920, NewTempo(100), DefaultTimeSignature)

	require.Len(t, tl.Nodes(), 2)
	second := tl.Nodes()[1]
	assert.Equal(t, int64(1920), second.Cumulative())
	assert.Equal(t, Triple{Bar: 2, Beat: 1, Tick: 0}, second.Triple())
	assert.Equal(t, 100.0, second.Tempo().BPM())
}

func TestNodeForValueBinarySearch(t *testing.T) {
	tl := newTimeline(NewPPQNDivision(480))
	tl.applyChange(1920, NewTempo(100), DefaultTimeSignature)
	tl.applyChange(3840, NewTempo(80), DefaultTimeSignature)

	before := tl.nodeForValue(100)
	assert.Equal(t, int64(0), before.Value())

	exact := tl.nodeForValue(tl.Nodes()[1].Value())
	assert.Equal(t, 100.0, exact.Tempo().BPM())

	after := tl.nodeForValue(tl.Nodes()[2].Value() + 1000)
	assert.Equal(t, 80.0, after.Tempo().BPM())
}

func TestRebuildTimelineFromOrderedEvents(t *testing.T) {
	tempoEv := NewSetTempo(NewTempo(90))
	sigEv := NewSetTimeSignature(TimeSignature{Numerator: 3, Denominator: 4, Metronome: 1, Clock: 8})

	ordered := []orderedEvent{
		{cumulative: 0, ev: tempoEv},
		{cumulative: 1920, ev: sigEv},
	}
	tl := rebuildTimeline(NewPPQNDivision(480), ordered)

	require.Len(t, tl.Nodes(), 2)
	assert.Equal(t, 90.0, tl.Nodes()[0].Tempo().BPM())
	assert.Equal(t, uint8(3), tl.Nodes()[1].Signature().Numerator)
	// Tempo in force at the second node carries forward from the first.
	assert.Equal(t, 90.0, tl.Nodes()[1].Tempo().BPM())
}
