package midi

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
)

// Format is the SMF header's format field (spec.md §3).
type Format uint16

const (
	FormatSingleTrack  Format = 0
	FormatMultiTrack   Format = 1
	FormatMultiPattern Format = 2
)

// Sequence owns a parsed or constructed timeline of events plus the
// Timeline that translates between ticks and bar|beat|tick (spec.md §3).
// The event list is kept normalized: no SetTempo, SetTimeSignature,
// ProgramChange, or EndTrack events, sorted by (cumulative, track,
// meta-priority), every event's stamped tempo/signature/program current.
type Sequence struct {
	format    Format
	division  TimeDivision
	timeline  *Timeline
	events    []Event
	numTracks uint16
}

// NewSequence builds an empty sequence with the given format and tick
// resolution.
func NewSequence(format Format, division TimeDivision) *Sequence {
	return &Sequence{
		format:    format,
		division:  division,
		timeline:  newTimeline(division),
		numTracks: 1,
	}
}

// Format returns the SMF header format (0, 1, or 2).
func (s *Sequence) Format() Format { return s.format }

// Division returns the sequence's fixed tick resolution.
func (s *Sequence) Division() TimeDivision { return s.division }

// Timeline returns the node map events are bound to.
func (s *Sequence) Timeline() *Timeline { return s.timeline }

// NumTracks returns the number of tracks the sequence will emit.
func (s *Sequence) NumTracks() uint16 { return s.numTracks }

// rawEvent is a track event mid-parse, before the full timeline exists.
type rawEvent struct {
	cumulative int64
	ev         Event
}

// orderedEvent is a rawEvent after the parse-time sort by
// (cumulative, meta-priority) (spec.md §4.3 step 4).
type orderedEvent struct {
	cumulative int64
	ev         Event
}

// ParseBytes parses an in-memory SMF byte string.
func ParseBytes(data []byte) (*Sequence, error) {
	return Parse(bytes.NewReader(data))
}

// Parse reads a Sequence from an SMF byte source (spec.md §4.3).
func Parse(r io.Reader) (*Sequence, error) {
	header, err := readChunk(r, "MThd")
	if err != nil {
		return nil, err
	}
	if len(header.payload) < 6 {
		return nil, NewError(KindChunkTruncated, "MThd payload is %d bytes, want >= 6", len(header.payload))
	}
	format := Format(binary.BigEndian.Uint16(header.payload[0:2]))
	ntracks := binary.BigEndian.Uint16(header.payload[2:4])
	division := timeDivisionFromWire(binary.BigEndian.Uint16(header.payload[4:6]))

	var raws []rawEvent
	var maxTrack uint16
	for i := uint16(0); i < ntracks; i++ {
		c, err := readChunk(r, "")
		if err != nil {
			return nil, err
		}
		if c.id != "MTrk" {
			continue
		}
		trackRaws, err := parseTrack(c.payload, i)
		if err != nil {
			return nil, err
		}
		raws = append(raws, trackRaws...)
		if i+1 > maxTrack {
			maxTrack = i + 1
		}
	}
	if maxTrack < ntracks {
		maxTrack = ntracks
	}

	ordered := sortOrdered(raws)
	timeline := rebuildTimeline(division, ordered)
	events := stampAndFilter(timeline, ordered)

	return &Sequence{
		format:    format,
		division:  division,
		timeline:  timeline,
		events:    events,
		numTracks: maxTrack,
	}, nil
}

// parseTrack iterates VarInt(delta)+event pairs in an MTrk payload until an
// EndTrack meta event (spec.md §4.3 step 3). Running status is remembered
// per track across meta/sysex events, accepted for compatibility (spec.md
// §4.7, §9) though never emitted.
func parseTrack(payload []byte, track uint16) ([]rawEvent, error) {
	var out []rawEvent
	var cumulative int64
	var runningStatus byte
	pos := 0
	terminated := false

	for pos < len(payload) {
		delta, n, err := decodeVarInt(payload[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
		cumulative += int64(delta)

		if pos >= len(payload) {
			return nil, NewError(KindUnterminatedTrack, "track %d ends mid-event", track)
		}
		pe, err := parseEvent(payload[pos:], runningStatus)
		if err != nil {
			return nil, err
		}
		pos += pe.n

		ev := pe.ev
		ev.Track = track
		if ev.IsChannel() {
			runningStatus = pe.status
		}

		out = append(out, rawEvent{cumulative: cumulative, ev: ev})
		if ev.Kind == EventEndTrack {
			terminated = true
			break
		}
	}

	if !terminated {
		return nil, NewError(KindUnterminatedTrack, "track %d has no EndTrack", track)
	}
	return out, nil
}

// sortOrdered sorts by (cumulative, meta-priority), stable so that events
// at equal cumulative/priority keep their parse order.
func sortOrdered(raws []rawEvent) []orderedEvent {
	ordered := make([]orderedEvent, len(raws))
	for i, r := range raws {
		ordered[i] = orderedEvent{cumulative: r.cumulative, ev: r.ev}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].cumulative != ordered[j].cumulative {
			return ordered[i].cumulative < ordered[j].cumulative
		}
		return ordered[i].ev.metaPriority() < ordered[j].ev.metaPriority()
	})
	return ordered
}

type programKey struct {
	track   uint16
	channel uint8
}

// stampAndFilter binds each event's Time to timeline, stamps tempo,
// signature, and (for channel events) the in-force program, then drops the
// derived SetTempo/SetTimeSignature/ProgramChange/EndTrack events from the
// caller-visible list (spec.md §4.3 steps 6-7).
func stampAndFilter(timeline *Timeline, ordered []orderedEvent) []Event {
	programs := make(map[programKey]Program)
	out := make([]Event, 0, len(ordered))

	for _, oe := range ordered {
		ev := oe.ev
		node := timeline.nodeForCumulative(oe.cumulative)
		ev.Tempo = node.tempo
		ev.Signature = node.signature

		var t Time
		t.timeline = timeline
		_ = t.SetCumulative(oe.cumulative)
		ev.Time = t

		if ev.Kind == EventProgramChange {
			programs[programKey{ev.Track, *ev.Channel}] = ev.ProgramNumber
			continue
		}
		if ev.IsChannel() {
			if p, ok := programs[programKey{ev.Track, *ev.Channel}]; ok {
				ev.Program = p
			} else {
				ev.Program = DefaultProgram
			}
		}

		switch ev.Kind {
		case EventSetTempo, EventSetTimeSignature, EventEndTrack:
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Update restores the normalized invariants after arbitrary caller edits
// (spec.md §4.4): rebuilds the timeline from any SetTempo/SetTimeSignature
// events present plus any channel event whose caller-stamped Tempo/
// Signature differs from what is currently in force (an explicit override
// with no accompanying marker event), re-stamps every event, re-sorts, and
// strips derived events back out.
func (s *Sequence) Update() {
	working := append([]Event(nil), s.events...)
	sort.SliceStable(working, func(i, j int) bool {
		if working[i].Time.Value() != working[j].Time.Value() {
			return working[i].Time.Value() < working[j].Time.Value()
		}
		if working[i].metaPriority() != working[j].metaPriority() {
			return working[i].metaPriority() < working[j].metaPriority()
		}
		return working[i].Track < working[j].Track
	})

	tl := newTimeline(s.division)
	currentTempo := tl.currentTempo()
	currentSig := tl.currentSignature()

	var maxTrack uint16
	for _, ev := range working {
		if ev.Track+1 > maxTrack {
			maxTrack = ev.Track + 1
		}

		var wantTempo *Tempo
		var wantSig *TimeSignature
		switch ev.Kind {
		case EventSetTempo:
			wantTempo = &ev.TempoValue
		case EventSetTimeSignature:
			wantSig = &ev.SignatureVal
		default:
			if ev.IsChannel() {
				if ev.Tempo.BPM() != 0 && !ev.Tempo.Equal(currentTempo) {
					wantTempo = &ev.Tempo
				}
				if ev.Signature.Numerator != 0 && !ev.Signature.Equal(currentSig) {
					wantSig = &ev.Signature
				}
			}
		}
		if wantTempo != nil || wantSig != nil {
			tempo, sig := currentTempo, currentSig
			if wantTempo != nil {
				tempo = *wantTempo
			}
			if wantSig != nil {
				sig = *wantSig
			}
			tl.applyChangeAtValue(ev.Time.Value(), tempo, sig)
			currentTempo, currentSig = tempo, sig
		}
	}
	if maxTrack == 0 {
		maxTrack = 1
	}

	programs := make(map[programKey]Program)
	out := make([]Event, 0, len(working))
	for _, ev := range working {
		ev.Time = Time{value: ev.Time.Value(), timeline: tl}
		node := tl.nodeForValue(ev.Time.Value())
		ev.Tempo = node.tempo
		ev.Signature = node.signature

		if ev.Kind == EventProgramChange {
			programs[programKey{ev.Track, *ev.Channel}] = ev.ProgramNumber
			continue
		}
		if ev.IsChannel() {
			if p, ok := programs[programKey{ev.Track, *ev.Channel}]; ok {
				ev.Program = p
			} else {
				ev.Program = DefaultProgram
			}
		}
		switch ev.Kind {
		case EventSetTempo, EventSetTimeSignature, EventEndTrack:
			continue
		}
		out = append(out, ev)
	}

	s.timeline = tl
	s.events = out
	s.numTracks = maxTrack
}

// applyChangeAtValue is applyChange's counterpart driven by a value-space
// position instead of a cumulative tick count (used by Update, which only
// has each event's invariant value to work from).
func (tl *Timeline) applyChangeAtValue(v int64, tempo Tempo, sig TimeSignature) {
	last := &tl.nodes[len(tl.nodes)-1]
	if v == last.v {
		last.tempo = tempo
		last.signature = sig
		return
	}

	deltaV := v - last.v
	ticksDelta := int64(roundFloat(float64(deltaV) / last.vpp(tl.division)))
	cumulative := last.cumulative + ticksDelta

	tmp := Time{value: v, timeline: tl}
	triple, _ := tmp.Triple()

	tl.nodes = append(tl.nodes, TimeNode{
		v: v, bar: triple.Bar, beat: triple.Beat, tick: triple.Tick,
		cumulative: cumulative, tempo: tempo, signature: sig,
	})
}
