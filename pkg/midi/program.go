package midi

import (
	"strings"

	"github.com/kaimusic/miditime/internal/gm"
)

// Program is a General MIDI instrument number in 1..128. The wire form is
// one byte, number-1.
type Program struct {
	number int
}

// DefaultProgram is the program stamped on a channel before any
// ProgramChange has been seen for it.
var DefaultProgram = Program{number: 1}

// NewProgram builds a Program from a 1..128 instrument number.
func NewProgram(number int) (Program, error) {
	if number < 1 || number > 128 {
		return Program{}, NewError(KindProgramUndefined, "program number %d out of range 1..128", number)
	}
	return Program{number: number}, nil
}

func programFromWire(b byte) Program {
	return Program{number: int(b) + 1}
}

// ParseProgramName resolves a program by its GM descriptive name
// (case-insensitive) or short identifier.
func ParseProgramName(name string) (Program, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	if n, ok := gm.ByIdentifier[key]; ok {
		return Program{number: n}, nil
	}
	for i, e := range gm.Programs {
		if strings.EqualFold(e.Name, name) {
			return Program{number: i + 1}, nil
		}
	}
	return Program{}, NewError(KindProgramUndefined, "unknown program name %q", name)
}

// Number returns the 1..128 program number.
func (p Program) Number() int { return p.number }

// Name returns the GM descriptive name, e.g. "Acoustic Grand Piano".
func (p Program) Name() string {
	if p.number < 1 || p.number > 128 {
		return ""
	}
	return gm.Programs[p.number-1].Name
}

// Identifier returns the GM short identifier, e.g. "acoustic_grand_piano".
func (p Program) Identifier() string {
	if p.number < 1 || p.number > 128 {
		return ""
	}
	return gm.Programs[p.number-1].Identifier
}

// Byte returns the one-byte wire form (number-1).
func (p Program) Byte() byte { return byte(p.number - 1) }

func (p Program) String() string { return p.Name() }
