package midi

import (
	"bytes"
	"encoding/binary"
)

// Bytes serializes the sequence to SMF bytes (spec.md §4.5). It clones the
// sequence, normalizes it, materializes the derived SetTempo/
// SetTimeSignature/ProgramChange/EndTrack events, and frames one MTrk per
// track behind an MThd header.
func (s *Sequence) Bytes() ([]byte, error) {
	clone := s.clone()
	clone.Update()
	materialized := clone.materializeForEmit()
	sortEmit(materialized)

	var buf bytes.Buffer
	headerPayload := make([]byte, 6)
	binary.BigEndian.PutUint16(headerPayload[0:2], uint16(clone.format))
	binary.BigEndian.PutUint16(headerPayload[2:4], clone.numTracks)
	copy(headerPayload[4:6], clone.division.Bytes())
	if err := writeChunk(&buf, "MThd", headerPayload); err != nil {
		return nil, err
	}

	for track := uint16(0); track < clone.numTracks; track++ {
		payload, err := emitTrack(materialized, track)
		if err != nil {
			return nil, err
		}
		if err := writeChunk(&buf, "MTrk", payload); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// clone deep-copies the sequence so Bytes never mutates the receiver.
func (s *Sequence) clone() *Sequence {
	events := make([]Event, len(s.events))
	for i, ev := range s.events {
		events[i] = ev
		if ev.Channel != nil {
			c := *ev.Channel
			events[i].Channel = &c
		}
	}
	return &Sequence{
		format:    s.format,
		division:  s.division,
		timeline:  s.timeline,
		events:    events,
		numTracks: s.numTracks,
	}
}

// materializeForEmit re-inserts the events Parse strips out: SetTempo and
// SetTimeSignature per timeline node (track 0), ProgramChange at every
// program transition per (track, channel), and an EndTrack per track
// (spec.md §4.5 steps 2-4).
func (s *Sequence) materializeForEmit() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)

	for _, node := range s.timeline.Nodes() {
		t := Time{value: node.Value(), timeline: s.timeline}

		tempoEv := NewSetTempo(node.Tempo())
		tempoEv.Track = 0
		tempoEv.Time = t
		out = append(out, tempoEv)

		sigEv := NewSetTimeSignature(node.Signature())
		sigEv.Track = 0
		sigEv.Time = t
		out = append(out, sigEv)
	}

	out = append(out, materializeProgramChanges(s.events)...)
	out = append(out, materializeEndTracks(s.events, s.numTracks, s.timeline)...)

	return out
}

func materializeProgramChanges(events []Event) []Event {
	type state struct {
		have    bool
		program Program
	}
	last := make(map[programKey]state)
	var out []Event

	ordered := append([]Event(nil), events...)
	sortEmit(ordered)

	for _, ev := range ordered {
		if !ev.IsChannel() {
			continue
		}
		key := programKey{ev.Track, *ev.Channel}
		st := last[key]
		if !st.have || !programsEqual(st.program, ev.Program) {
			pc := NewProgramChange(ev.Track, *ev.Channel, ev.Program)
			pc.Time = ev.Time
			out = append(out, pc)
			last[key] = state{have: true, program: ev.Program}
		}
	}
	return out
}

func programsEqual(a, b Program) bool { return a.Number() == b.Number() }

// materializeEndTracks appends one EndTrack event per track, positioned at
// that track's last event (or at the sequence start if the track is empty).
// timeline is passed explicitly (rather than inferred from events) so a
// sequence with no caller-visible events still gets a bound EndTrack.
func materializeEndTracks(events []Event, numTracks uint16, timeline *Timeline) []Event {
	lastCumulative := make(map[uint16]int64)
	for _, ev := range events {
		c, _ := ev.Time.Cumulative()
		if c > lastCumulative[ev.Track] {
			lastCumulative[ev.Track] = c
		}
	}

	out := make([]Event, 0, numTracks)
	for track := uint16(0); track < numTracks; track++ {
		t := Time{timeline: timeline}
		_ = t.SetCumulative(lastCumulative[track])
		out = append(out, Event{Kind: EventEndTrack, Track: track, Time: t})
	}
	return out
}

// emitTrack renders one track's events (already sorted globally) as
// VarInt(delta)+bytes pairs.
func emitTrack(all []Event, track uint16) ([]byte, error) {
	var buf bytes.Buffer
	var prev int64
	for _, ev := range all {
		if ev.Track != track {
			continue
		}
		cumulative, err := ev.Time.Cumulative()
		if err != nil {
			return nil, err
		}
		delta := cumulative - prev
		if delta < 0 {
			delta = 0
		}
		buf.Write(encodeVarInt(uint32(delta)))
		buf.Write(emitBytes(ev))
		prev = cumulative
	}
	return buf.Bytes(), nil
}
