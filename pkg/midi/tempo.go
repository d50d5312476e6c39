package midi

import "math"

// Tempo is a musical speed, stored as beats per minute. The wire form is a
// 3-byte big-endian microseconds-per-quarter-note value.
type Tempo struct {
	bpm float64
}

// DefaultTempo is the tempo a Timeline starts with when a file has no
// SetTempo event before its first channel event.
var DefaultTempo = NewTempo(120)

// NewTempo builds a Tempo from a beats-per-minute value. bpm must be > 0.
func NewTempo(bpm float64) Tempo {
	if bpm <= 0 {
		bpm = 120
	}
	return Tempo{bpm: bpm}
}

// TempoFromMPQN builds a Tempo from microseconds per quarter note.
func TempoFromMPQN(mpqn uint32) Tempo {
	if mpqn == 0 {
		return DefaultTempo
	}
	return Tempo{bpm: 60000000.0 / float64(mpqn)}
}

// tempoFromWire decodes the 3-byte big-endian MPQN wire form.
func tempoFromWire(b []byte) Tempo {
	mpqn := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	return TempoFromMPQN(mpqn)
}

// BPM returns the tempo in beats per minute.
func (t Tempo) BPM() float64 { return t.bpm }

// MPQN returns microseconds per quarter note, rounded to the nearest
// integer, as stored on the wire.
func (t Tempo) MPQN() uint32 {
	return uint32(math.Round(60000000.0 / t.bpm))
}

// BPS returns beats per second.
func (t Tempo) BPS() float64 { return t.bpm / 60 }

// Bytes returns the 3-byte big-endian MPQN wire form.
func (t Tempo) Bytes() []byte {
	mpqn := t.MPQN()
	return []byte{byte(mpqn >> 16), byte(mpqn >> 8), byte(mpqn)}
}

// Equal reports whether two tempos have the same BPM.
func (t Tempo) Equal(o Tempo) bool { return t.bpm == o.bpm }

func (t Tempo) String() string {
	return formatFloat(t.bpm) + " BPM"
}
