package midi

import "math"

// EventKind enumerates the closed set of channel, meta, and sysex event
// variants (spec.md §3).
type EventKind int

const (
	EventUnknown EventKind = iota

	// Channel events.
	EventNoteOff
	EventNoteOn
	EventNoteAftertouch
	EventControlChange
	EventProgramChange
	EventChannelAftertouch
	EventPitchBend

	// Meta events.
	EventSequenceNumber
	EventText
	EventCopyright
	EventName
	EventProgramName
	EventLyrics
	EventMarker
	EventCuePoint
	EventChannelPrefix
	EventEndTrack
	EventSetTempo
	EventSMPTEOffset
	EventSetTimeSignature
	EventSetKeySignature
	EventProprietary

	// SysEx.
	EventSysEx
)

const (
	metaStatus  = 0xFF
	sysExStart  = 0xF0
	sysExEscape = 0xF7
)

const (
	metaSequenceNumber = 0x00
	metaText           = 0x01
	metaCopyright      = 0x02
	metaName           = 0x03
	metaProgramName    = 0x04
	metaLyrics         = 0x05
	metaMarker         = 0x06
	metaCuePoint       = 0x07
	metaChannelPrefix  = 0x20
	metaEndTrack       = 0x2F
	metaSetTempo       = 0x51
	metaSMPTEOffset    = 0x54
	metaTimeSignature  = 0x58
	metaKeySignature   = 0x59
	metaProprietary    = 0x7F
)

// Event is a single timeline entry: a sum type over every channel, meta,
// and sysex variant plus the shared fields every variant carries (spec.md
// §3). Only the fields relevant to Kind are meaningful; the zero value of
// the rest is ignored on emit.
type Event struct {
	Kind    EventKind
	Time    Time
	Track   uint16
	Channel *uint8 // nil for non-channel events

	// Stamped context (recomputed by Sequence.Update).
	Tempo     Tempo
	Signature TimeSignature
	Program   Program // channel events only

	// Channel event payload.
	Note              uint8
	Velocity          uint8
	Controller        uint8
	ControllerValue   uint8
	Amount            uint8
	ProgramNumber     Program // payload of an EventProgramChange
	PitchValue        float64 // [-1, 1], payload of an EventPitchBend

	// Meta event payload.
	SequenceNum   uint16
	Text          string
	ChannelPrefix uint8
	TempoValue    Tempo         // payload of an EventSetTempo
	SignatureVal  TimeSignature // payload of an EventSetTimeSignature
	SMPTEOffset   []byte        // 5 raw bytes, opaque
	Key           int8
	Scale         uint8
	Proprietary   []byte

	// SysEx payload.
	SysEx       []byte // opaque, status byte not included
	Continuation bool  // true if status byte was 0xF7
}

// IsChannel reports whether e is a channel event.
func (e Event) IsChannel() bool { return e.Channel != nil }

// metaPriority orders simultaneous events: SetTempo < SetTimeSignature <
// ProgramChange < other < EndTrack (spec.md §4.3 step 4, §GLOSSARY).
func (e Event) metaPriority() int {
	switch e.Kind {
	case EventSetTempo:
		return 0
	case EventSetTimeSignature:
		return 1
	case EventProgramChange:
		return 2
	case EventEndTrack:
		return 4
	default:
		return 3
	}
}

// NewNoteOn builds a NoteOn channel event.
func NewNoteOn(track uint16, channel, note, velocity uint8) Event {
	c := channel
	return Event{Kind: EventNoteOn, Track: track, Channel: &c, Note: note, Velocity: velocity}
}

// NewNoteOff builds a NoteOff channel event.
func NewNoteOff(track uint16, channel, note, velocity uint8) Event {
	c := channel
	return Event{Kind: EventNoteOff, Track: track, Channel: &c, Note: note, Velocity: velocity}
}

// NewControlChange builds a ControlChange channel event.
func NewControlChange(track uint16, channel, controller, value uint8) Event {
	c := channel
	return Event{Kind: EventControlChange, Track: track, Channel: &c, Controller: controller, ControllerValue: value}
}

// NewProgramChange builds a ProgramChange channel event.
func NewProgramChange(track uint16, channel uint8, program Program) Event {
	c := channel
	return Event{Kind: EventProgramChange, Track: track, Channel: &c, ProgramNumber: program}
}

// NewPitchBend builds a PitchBend channel event from a value in [-1, 1].
func NewPitchBend(track uint16, channel uint8, value float64) Event {
	c := channel
	if value < -1 {
		value = -1
	} else if value > 1 {
		value = 1
	}
	return Event{Kind: EventPitchBend, Track: track, Channel: &c, PitchValue: value}
}

// NewSetTempo builds a SetTempo meta event on track 0.
func NewSetTempo(tempo Tempo) Event {
	return Event{Kind: EventSetTempo, TempoValue: tempo}
}

// NewSetTimeSignature builds a SetTimeSignature meta event on track 0.
func NewSetTimeSignature(sig TimeSignature) Event {
	return Event{Kind: EventSetTimeSignature, SignatureVal: sig}
}

// parsedEvent is a channel/meta/sysex event mid-parse, before its track's
// running cumulative is known to have produced a usable Time. status is
// the resolved status byte (after running-status substitution), used by
// the caller to know what to remember for the next event.
type parsedEvent struct {
	ev     Event
	status byte
	n      int // bytes consumed, including the status byte when present
}

// parseEvent parses one event from data, which must begin right after the
// delta VarInt. runningStatus is the last channel-event status byte seen on
// this track (0 if none yet); it is used when data's first byte lacks the
// high bit (spec.md §4.7, §9 running-status compatibility note).
func parseEvent(data []byte, runningStatus byte) (parsedEvent, error) {
	if len(data) == 0 {
		return parsedEvent{}, NewError(KindChunkTruncated, "event data truncated")
	}

	first := data[0]
	var status byte
	var body []byte
	statusConsumed := 0
	if first&0x80 != 0 {
		status = first
		body = data[1:]
		statusConsumed = 1
	} else {
		if runningStatus == 0 {
			return parsedEvent{}, NewError(KindUnknownEventStatus, "data byte 0x%02x with no running status", first)
		}
		status = runningStatus
		body = data
		statusConsumed = 0
	}

	switch status {
	case metaStatus:
		return parseMetaEvent(body, statusConsumed)
	case sysExStart, sysExEscape:
		return parseSysExEvent(body, status, statusConsumed)
	default:
		return parseChannelEvent(body, status, statusConsumed)
	}
}

func parseMetaEvent(body []byte, consumed int) (parsedEvent, error) {
	if len(body) < 1 {
		return parsedEvent{}, NewError(KindChunkTruncated, "meta event truncated before type byte")
	}
	metaType := body[0]
	length, lenBytes, err := decodeVarInt(body[1:])
	if err != nil {
		return parsedEvent{}, err
	}
	payloadStart := 1 + lenBytes
	if len(body) < payloadStart+int(length) {
		return parsedEvent{}, NewError(KindChunkTruncated, "meta event payload truncated")
	}
	payload := body[payloadStart : payloadStart+int(length)]
	n := consumed + payloadStart + int(length)

	ev := Event{}
	switch metaType {
	case metaSequenceNumber:
		ev.Kind = EventSequenceNumber
		if len(payload) >= 2 {
			ev.SequenceNum = uint16(payload[0])<<8 | uint16(payload[1])
		}
	case metaText:
		ev.Kind = EventText
		ev.Text = string(payload)
	case metaCopyright:
		ev.Kind = EventCopyright
		ev.Text = string(payload)
	case metaName:
		ev.Kind = EventName
		ev.Text = string(payload)
	case metaProgramName:
		ev.Kind = EventProgramName
		ev.Text = string(payload)
	case metaLyrics:
		ev.Kind = EventLyrics
		ev.Text = string(payload)
	case metaMarker:
		ev.Kind = EventMarker
		ev.Text = string(payload)
	case metaCuePoint:
		ev.Kind = EventCuePoint
		ev.Text = string(payload)
	case metaChannelPrefix:
		ev.Kind = EventChannelPrefix
		if len(payload) >= 1 {
			ev.ChannelPrefix = payload[0]
		}
	case metaEndTrack:
		ev.Kind = EventEndTrack
	case metaSetTempo:
		ev.Kind = EventSetTempo
		if len(payload) >= 3 {
			ev.TempoValue = tempoFromWire(payload)
		} else {
			ev.TempoValue = DefaultTempo
		}
	case metaSMPTEOffset:
		ev.Kind = EventSMPTEOffset
		ev.SMPTEOffset = append([]byte(nil), payload...)
	case metaTimeSignature:
		ev.Kind = EventSetTimeSignature
		if len(payload) >= 4 {
			ev.SignatureVal = timeSignatureFromWire(payload)
		} else {
			ev.SignatureVal = DefaultTimeSignature
		}
	case metaKeySignature:
		ev.Kind = EventSetKeySignature
		if len(payload) >= 2 {
			ev.Key = int8(payload[0])
			ev.Scale = payload[1]
		}
	case metaProprietary:
		ev.Kind = EventProprietary
		ev.Proprietary = append([]byte(nil), payload...)
	default:
		return parsedEvent{}, NewError(KindUnknownMetaType, "unknown meta type 0x%02x", metaType)
	}
	return parsedEvent{ev: ev, status: metaStatus, n: n}, nil
}

func parseSysExEvent(body []byte, status byte, consumed int) (parsedEvent, error) {
	length, lenBytes, err := decodeVarInt(body)
	if err != nil {
		return parsedEvent{}, err
	}
	if len(body) < lenBytes+int(length) {
		return parsedEvent{}, NewError(KindChunkTruncated, "sysex payload truncated")
	}
	payload := body[lenBytes : lenBytes+int(length)]
	ev := Event{
		Kind:         EventSysEx,
		SysEx:        append([]byte(nil), payload...),
		Continuation: status == sysExEscape,
	}
	return parsedEvent{ev: ev, status: status, n: consumed + lenBytes + int(length)}, nil
}

func parseChannelEvent(body []byte, status byte, consumed int) (parsedEvent, error) {
	hi := status & 0xF0
	channel := status & 0x0F

	need := 2
	switch hi {
	case 0xC0, 0xD0:
		need = 1
	case 0x80, 0x90, 0xA0, 0xB0, 0xE0:
		need = 2
	default:
		return parsedEvent{}, NewError(KindUnknownEventStatus, "unknown status byte 0x%02x", status)
	}
	if len(body) < need {
		return parsedEvent{}, NewError(KindChunkTruncated, "channel event truncated")
	}

	ev := Event{Channel: &channel}
	switch hi {
	case 0x80:
		ev.Kind = EventNoteOff
		ev.Note, ev.Velocity = body[0], body[1]
	case 0x90:
		ev.Kind = EventNoteOn
		ev.Note, ev.Velocity = body[0], body[1]
	case 0xA0:
		ev.Kind = EventNoteAftertouch
		ev.Note, ev.Amount = body[0], body[1]
	case 0xB0:
		ev.Kind = EventControlChange
		ev.Controller, ev.ControllerValue = body[0], body[1]
	case 0xC0:
		ev.Kind = EventProgramChange
		ev.ProgramNumber = programFromWire(body[0])
	case 0xD0:
		ev.Kind = EventChannelAftertouch
		ev.Amount = body[0]
	case 0xE0:
		ev.Kind = EventPitchBend
		wire := uint16(body[0]) | uint16(body[1])<<7
		ev.PitchValue = (float64(wire) - 8192) / 8192
	}
	return parsedEvent{ev: ev, status: status, n: consumed + need}, nil
}

// emitBytes renders e's status + payload bytes. The status byte is always
// written, even when it repeats the previous event's: this package never
// emits running status (spec.md §9).
func emitBytes(e Event) []byte {
	switch e.Kind {
	case EventNoteOff:
		return []byte{0x80 | *e.Channel, e.Note, e.Velocity}
	case EventNoteOn:
		return []byte{0x90 | *e.Channel, e.Note, e.Velocity}
	case EventNoteAftertouch:
		return []byte{0xA0 | *e.Channel, e.Note, e.Amount}
	case EventControlChange:
		return []byte{0xB0 | *e.Channel, e.Controller, e.ControllerValue}
	case EventProgramChange:
		return []byte{0xC0 | *e.Channel, e.ProgramNumber.Byte()}
	case EventChannelAftertouch:
		return []byte{0xD0 | *e.Channel, e.Amount}
	case EventPitchBend:
		wire := uint16(math.Round((e.PitchValue + 1) * 8192))
		if wire > 16383 {
			wire = 16383
		}
		return []byte{0xE0 | *e.Channel, byte(wire & 0x7f), byte((wire >> 7) & 0x7f)}
	case EventSysEx:
		status := byte(sysExStart)
		if e.Continuation {
			status = sysExEscape
		}
		out := append([]byte{status}, encodeVarInt(uint32(len(e.SysEx)))...)
		return append(out, e.SysEx...)
	default:
		return emitMetaBytes(e)
	}
}

func emitMetaBytes(e Event) []byte {
	var metaType byte
	var payload []byte
	switch e.Kind {
	case EventSequenceNumber:
		metaType = metaSequenceNumber
		payload = []byte{byte(e.SequenceNum >> 8), byte(e.SequenceNum)}
	case EventText:
		metaType, payload = metaText, []byte(e.Text)
	case EventCopyright:
		metaType, payload = metaCopyright, []byte(e.Text)
	case EventName:
		metaType, payload = metaName, []byte(e.Text)
	case EventProgramName:
		metaType, payload = metaProgramName, []byte(e.Text)
	case EventLyrics:
		metaType, payload = metaLyrics, []byte(e.Text)
	case EventMarker:
		metaType, payload = metaMarker, []byte(e.Text)
	case EventCuePoint:
		metaType, payload = metaCuePoint, []byte(e.Text)
	case EventChannelPrefix:
		metaType, payload = metaChannelPrefix, []byte{e.ChannelPrefix}
	case EventEndTrack:
		metaType, payload = metaEndTrack, nil
	case EventSetTempo:
		metaType, payload = metaSetTempo, e.TempoValue.Bytes()
	case EventSMPTEOffset:
		metaType, payload = metaSMPTEOffset, e.SMPTEOffset
	case EventSetTimeSignature:
		metaType, payload = metaTimeSignature, e.SignatureVal.Bytes()
	case EventSetKeySignature:
		metaType, payload = metaKeySignature, []byte{byte(e.Key), e.Scale}
	case EventProprietary:
		metaType, payload = metaProprietary, e.Proprietary
	default:
		return nil
	}
	out := []byte{metaStatus, metaType}
	out = append(out, encodeVarInt(uint32(len(payload)))...)
	return append(out, payload...)
}
