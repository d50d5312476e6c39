package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatingTimeUnbound(t *testing.T) {
	ft := NewFloatingTime(VPQN)
	assert.False(t, ft.Bound())
	assert.Nil(t, ft.Timeline())

	_, err := ft.Triple()
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindTripleWithoutTimeline, midiErr.Kind)

	_, err = ft.Cumulative()
	require.Error(t, err)
}

func TestTimeCumulativeRoundTripAt480PPQN(t *testing.T) {
	tl := newTimeline(NewPPQNDivision(480))
	var tm Time
	tm.timeline = tl

	require.NoError(t, tm.SetCumulative(480))
	got, err := tm.Cumulative()
	require.NoError(t, err)
	assert.Equal(t, int64(480), got)

	triple, err := tm.Triple()
	require.NoError(t, err)
	assert.Equal(t, Triple{Bar: 1, Beat: 2, Tick: 0}, triple)
}

func TestTimeSetTripleBar2Beat1(t *testing.T) {
	tl := newTimeline(NewPPQNDivision(480))
	var tm Time
	tm.timeline = tl

	require.NoError(t, tm.SetTriple(Triple{Bar: 2, Beat: 1, Tick: 0}))
	cum, err := tm.Cumulative()
	require.NoError(t, err)
	// One measure of 4/4 at 480 PPQN is 4 quarter notes = 1920 ticks.
	assert.Equal(t, int64(1920), cum)
}

func TestTimeSetTripleRejectsOutOfRange(t *testing.T) {
	tl := newTimeline(NewPPQNDivision(480))
	var tm Time
	tm.timeline = tl

	err := tm.SetTriple(Triple{Bar: 1, Beat: 5, Tick: 0})
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindTimeOutOfRange, midiErr.Kind)

	err = tm.SetTriple(Triple{Bar: 0, Beat: 1, Tick: 0})
	require.Error(t, err)
	err = tm.SetTriple(Triple{Bar: 1, Beat: 1, Tick: -1})
	require.Error(t, err)
}

func TestTimeSetTripleRejects38TickOverflow(t *testing.T) {
	tl := newTimeline(NewPPQNDivision(480))
	tl.nodes[0].signature = TimeSignature{Numerator: 3, Denominator: 8, Metronome: 1, Clock: 8}

	var tm Time
	tm.timeline = tl

	// 1920/8 = 240: tick must stay below 240.
	require.NoError(t, tm.SetTriple(Triple{Bar: 1, Beat: 1, Tick: 239}))
	err := tm.SetTriple(Triple{Bar: 1, Beat: 1, Tick: 240})
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindTimeOutOfRange, midiErr.Kind)
}

func TestTimeCompareAndAdd(t *testing.T) {
	a := NewFloatingTime(10)
	b := NewFloatingTime(20)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))

	c := a.Add(5)
	assert.Equal(t, int64(15), c.Value())
}

func TestTimeStringFloating(t *testing.T) {
	ft := NewFloatingTime(42)
	assert.Equal(t, "v=42", ft.String())
}
