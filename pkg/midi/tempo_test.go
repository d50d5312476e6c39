package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTempoRoundTrip(t *testing.T) {
	tempo := NewTempo(140)
	wire := tempo.Bytes()
	assert.Len(t, wire, 3)

	back := tempoFromWire(wire)
	assert.InDelta(t, 140, back.BPM(), 0.01)
}

func TestTempoDefaultOnInvalid(t *testing.T) {
	assert.Equal(t, 120.0, NewTempo(0).BPM())
	assert.Equal(t, 120.0, NewTempo(-10).BPM())
}

func TestTempoFromMPQNKnownValue(t *testing.T) {
	// 500000 microseconds/quarter is the canonical 120 BPM default.
	tempo := TempoFromMPQN(500000)
	assert.InDelta(t, 120, tempo.BPM(), 0.001)
}

func TestTempoBPS(t *testing.T) {
	assert.Equal(t, 2.0, NewTempo(120).BPS())
}

func TestTempoEqual(t *testing.T) {
	assert.True(t, NewTempo(90).Equal(NewTempo(90)))
	assert.False(t, NewTempo(90).Equal(NewTempo(91)))
}
