package midi

import "fmt"

// Kind identifies the taxonomy of a parse or validation failure. Every
// error this package returns is a *Error with one of these kinds, so
// callers can branch with errors.As and a switch on Kind instead of
// matching message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindChunkTruncated
	KindChunkIDMismatch
	KindChunkIDInvalid
	KindVarIntTruncated
	KindVarIntTooLong
	KindUnterminatedTrack
	KindUnknownEventStatus
	KindUnknownMetaType
	KindSysExUnsupported
	KindTimeOutOfRange
	KindTripleWithoutTimeline
	KindProgramUndefined
	KindFormatConversion
	KindTextModeSource
)

func (k Kind) String() string {
	switch k {
	case KindChunkTruncated:
		return "ChunkTruncated"
	case KindChunkIDMismatch:
		return "ChunkIdMismatch"
	case KindChunkIDInvalid:
		return "ChunkIdInvalid"
	case KindVarIntTruncated:
		return "VarIntTruncated"
	case KindVarIntTooLong:
		return "VarIntTooLong"
	case KindUnterminatedTrack:
		return "UnterminatedTrack"
	case KindUnknownEventStatus:
		return "UnknownEventStatus"
	case KindUnknownMetaType:
		return "UnknownMetaType"
	case KindSysExUnsupported:
		return "SysExUnsupported"
	case KindTimeOutOfRange:
		return "TimeOutOfRange"
	case KindTripleWithoutTimeline:
		return "TripleWithoutTimeline"
	case KindProgramUndefined:
		return "ProgramUndefined"
	case KindFormatConversion:
		return "FormatConversion"
	case KindTextModeSource:
		return "TextModeSource"
	default:
		return "Unknown"
	}
}

// Error is the single error type for every failure this package raises.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("midi: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("midi: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, midi.NewError(midi.KindUnterminatedTrack, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds an *Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapError builds an *Error wrapping a lower-level cause.
func wrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
