package midi

import (
	"math"
	"math/bits"
)

// TimeSignature is a numerator/denominator pair plus the two bookkeeping
// fields the SetTimeSignature meta event carries: metronome clicks
// (fractional quarters-per-click) and clocks-per-24th-note.
type TimeSignature struct {
	Numerator   uint8
	Denominator uint8 // power of two: 2, 4, 8, 16, ...
	Metronome   float64
	Clock       uint8
}

// DefaultTimeSignature is the signature a Timeline starts with when a file
// has no SetTimeSignature event before its first channel event.
var DefaultTimeSignature = TimeSignature{Numerator: 4, Denominator: 4, Metronome: 1, Clock: 8}

func timeSignatureFromWire(b []byte) TimeSignature {
	denom := uint8(1) << b[1]
	return TimeSignature{
		Numerator:   b[0],
		Denominator: denom,
		Metronome:   float64(b[2]) / 24.0,
		Clock:       b[3],
	}
}

// Bytes returns the 4-byte wire form: numerator, log2(denominator),
// round(metronome*24), clock.
func (s TimeSignature) Bytes() []byte {
	log2Denom := uint8(bits.TrailingZeros8(s.Denominator))
	metroByte := uint8(math.Round(s.Metronome * 24))
	return []byte{s.Numerator, log2Denom, metroByte, s.Clock}
}

// Equal reports whether every field of two signatures matches.
func (s TimeSignature) Equal(o TimeSignature) bool {
	return s.Numerator == o.Numerator && s.Denominator == o.Denominator &&
		s.Metronome == o.Metronome && s.Clock == o.Clock
}

func (s TimeSignature) String() string {
	return formatFloat(float64(s.Numerator)) + "/" + formatFloat(float64(s.Denominator))
}
