package midi

import "fmt"

// DivisionMode distinguishes the two disjoint TimeDivision encodings.
type DivisionMode int

const (
	// DivisionPPQN is integer pulses per quarter note.
	DivisionPPQN DivisionMode = iota
	// DivisionPPS is SMPTE frames/subframes per second.
	DivisionPPS
)

// TimeDivision is the header's tick-resolution field: either a PPQN count
// or an SMPTE frames-times-subframes rate. It is fixed for the lifetime of
// a Sequence.
type TimeDivision struct {
	mode      DivisionMode
	ppqn      uint16
	frames    int // 24, 25, 29 (meaning 29.97 to callers), or 30
	subframes uint8
}

// NewPPQNDivision builds a PPQN division. ppqn must be in 1..32767.
func NewPPQNDivision(ppqn uint16) TimeDivision {
	if ppqn == 0 || ppqn > 32767 {
		ppqn = 480
	}
	return TimeDivision{mode: DivisionPPQN, ppqn: ppqn}
}

// NewPPSDivision builds an SMPTE division. frames should be one of
// 24, 25, 29 (for the 29.97 drop-frame rate), or 30.
func NewPPSDivision(frames int, subframes uint8) TimeDivision {
	return TimeDivision{mode: DivisionPPS, frames: frames, subframes: subframes}
}

func timeDivisionFromWire(bits uint16) TimeDivision {
	if bits&0x8000 != 0 {
		frames := int(int8(byte(bits >> 8)))
		if frames < 0 {
			frames = -frames
		}
		subframes := byte(bits)
		return TimeDivision{mode: DivisionPPS, frames: frames, subframes: subframes}
	}
	return TimeDivision{mode: DivisionPPQN, ppqn: bits & 0x7fff}
}

// Mode reports whether the division is PPQN or PPS.
func (d TimeDivision) Mode() DivisionMode { return d.mode }

// PPQN returns the pulses-per-quarter-note count. Valid only in DivisionPPQN mode.
func (d TimeDivision) PPQN() uint16 { return d.ppqn }

// Frames returns the SMPTE frame rate, with 29 reported as 29.97 per the
// adopted wire convention. Valid only in DivisionPPS mode.
func (d TimeDivision) Frames() float64 {
	if d.frames == 29 {
		return 29.97
	}
	return float64(d.frames)
}

// Subframes returns the SMPTE subframes (ticks) per frame. Valid only in DivisionPPS mode.
func (d TimeDivision) Subframes() uint8 { return d.subframes }

// PPS returns pulses per second (frames x subframes). Valid only in DivisionPPS mode.
func (d TimeDivision) PPS() float64 {
	return d.Frames() * float64(d.subframes)
}

// Bytes returns the 16-bit big-endian wire form.
func (d TimeDivision) Bytes() []byte {
	var bits uint16
	if d.mode == DivisionPPS {
		frameByte := byte(int8(-d.frames))
		bits = 0x8000 | uint16(frameByte)<<8 | uint16(d.subframes)
	} else {
		bits = d.ppqn & 0x7fff
	}
	return []byte{byte(bits >> 8), byte(bits)}
}

func (d TimeDivision) String() string {
	if d.mode == DivisionPPQN {
		return fmt.Sprintf("%d PPQN", d.ppqn)
	}
	return fmt.Sprintf("%v PPS (%d fps x %d sub)", d.PPS(), int(d.Frames()), d.subframes)
}
