package httpapi

import "github.com/kaimusic/miditime/pkg/midi"

// These response shapes are additive to the package's public API: they
// exist only to describe JSON over HTTP and are not part of the SMF wire
// contract.

// ParseResponse is the body of POST /api/v1/parse.
type ParseResponse struct {
	Format     uint16     `json:"format"`
	Division   Division   `json:"division"`
	Nodes      []Node     `json:"nodes"`
	EventCount int        `json:"event_count"`
	NumTracks  uint16     `json:"num_tracks"`
}

// Division describes a Sequence's fixed tick resolution.
type Division struct {
	Mode      string  `json:"mode"` // "ppqn" or "pps"
	PPQN      uint16  `json:"ppqn,omitempty"`
	Frames    float64 `json:"frames,omitempty"`
	Subframes uint8   `json:"subframes,omitempty"`
}

// Node is one entry of a Timeline's node map.
type Node struct {
	Value       int64   `json:"value"`
	Bar         int     `json:"bar"`
	Beat        int     `json:"beat"`
	Tick        int     `json:"tick"`
	Cumulative  int64   `json:"cumulative"`
	TempoBPM    float64 `json:"tempo_bpm"`
	Numerator   uint8   `json:"numerator"`
	Denominator uint8   `json:"denominator"`
}

// DumpResponse is the body of POST /api/v1/dump.
type DumpResponse struct {
	Events []Event `json:"events"`
}

// Event is one caller-visible event, rendered for JSON transport.
type Event struct {
	Kind        string         `json:"kind"`
	Bar         int            `json:"bar"`
	Beat        int            `json:"beat"`
	Tick        int            `json:"tick"`
	Cumulative  int64          `json:"cumulative"`
	Track       uint16         `json:"track"`
	Channel     *uint8         `json:"channel,omitempty"`
	TempoBPM    float64        `json:"tempo_bpm"`
	Numerator   uint8          `json:"numerator"`
	Denominator uint8          `json:"denominator"`
	Program     int            `json:"program,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
}

func divisionToJSON(d midi.TimeDivision) Division {
	if d.Mode() == midi.DivisionPPQN {
		return Division{Mode: "ppqn", PPQN: d.PPQN()}
	}
	return Division{Mode: "pps", Frames: d.Frames(), Subframes: d.Subframes()}
}

func nodesToJSON(nodes []midi.TimeNode) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		triple := n.Triple()
		out[i] = Node{
			Value:       n.Value(),
			Bar:         triple.Bar,
			Beat:        triple.Beat,
			Tick:        triple.Tick,
			Cumulative:  n.Cumulative(),
			TempoBPM:    n.Tempo().BPM(),
			Numerator:   n.Signature().Numerator,
			Denominator: n.Signature().Denominator,
		}
	}
	return out
}

func eventToJSON(ev midi.Event) Event {
	triple, _ := ev.Time.Triple()
	cumulative, _ := ev.Time.Cumulative()

	out := Event{
		Kind:        eventKindName(ev.Kind),
		Bar:         triple.Bar,
		Beat:        triple.Beat,
		Tick:        triple.Tick,
		Cumulative:  cumulative,
		Track:       ev.Track,
		Channel:     ev.Channel,
		TempoBPM:    ev.Tempo.BPM(),
		Numerator:   ev.Signature.Numerator,
		Denominator: ev.Signature.Denominator,
	}
	if ev.IsChannel() {
		out.Program = ev.Program.Number()
	}

	payload := map[string]any{}
	switch ev.Kind {
	case midi.EventNoteOn, midi.EventNoteOff:
		payload["note"] = ev.Note
		payload["velocity"] = ev.Velocity
	case midi.EventNoteAftertouch:
		payload["note"] = ev.Note
		payload["amount"] = ev.Amount
	case midi.EventControlChange:
		payload["controller"] = ev.Controller
		payload["value"] = ev.ControllerValue
	case midi.EventPitchBend:
		payload["pitch"] = ev.PitchValue
	case midi.EventText, midi.EventCopyright, midi.EventName, midi.EventProgramName,
		midi.EventLyrics, midi.EventMarker, midi.EventCuePoint:
		payload["text"] = ev.Text
	case midi.EventSetKeySignature:
		payload["key"] = ev.Key
		payload["scale"] = ev.Scale
	}
	if len(payload) > 0 {
		out.Payload = payload
	}
	return out
}

func eventKindName(k midi.EventKind) string {
	names := map[midi.EventKind]string{
		midi.EventNoteOff:             "note_off",
		midi.EventNoteOn:              "note_on",
		midi.EventNoteAftertouch:      "note_aftertouch",
		midi.EventControlChange:       "control_change",
		midi.EventProgramChange:       "program_change",
		midi.EventChannelAftertouch:   "channel_aftertouch",
		midi.EventPitchBend:           "pitch_bend",
		midi.EventSequenceNumber:      "sequence_number",
		midi.EventText:                "text",
		midi.EventCopyright:           "copyright",
		midi.EventName:                "name",
		midi.EventProgramName:         "program_name",
		midi.EventLyrics:              "lyrics",
		midi.EventMarker:              "marker",
		midi.EventCuePoint:            "cue_point",
		midi.EventChannelPrefix:       "channel_prefix",
		midi.EventEndTrack:            "end_track",
		midi.EventSetTempo:            "set_tempo",
		midi.EventSMPTEOffset:         "smpte_offset",
		midi.EventSetTimeSignature:    "set_time_signature",
		midi.EventSetKeySignature:     "set_key_signature",
		midi.EventProprietary:         "proprietary",
		midi.EventSysEx:               "sysex",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "unknown"
}
