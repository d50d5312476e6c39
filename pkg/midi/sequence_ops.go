package midi

import "sort"

// Events returns the caller-visible events in chronological order. The
// returned slice is a copy: changes to it do not reach the sequence.
func (s *Sequence) Events() []Event { return append([]Event(nil), s.events...) }

// Append adds an event to the sequence. Call Update afterward to restore
// the normalized invariants (spec.md §4.4, §5 ordering guarantee).
func (s *Sequence) Append(ev Event) {
	s.events = append(s.events, ev)
	if ev.Track+1 > s.numTracks {
		s.numTracks = ev.Track + 1
	}
}

// Extend appends multiple events. Call Update afterward.
func (s *Sequence) Extend(evs []Event) {
	for _, ev := range evs {
		s.Append(ev)
	}
}

// Track returns the events belonging to a single track, in chronological order.
func (s *Sequence) Track(n uint16) []Event {
	var out []Event
	for _, ev := range s.events {
		if ev.Track == n {
			out = append(out, ev)
		}
	}
	return out
}

// Delta is a tick or musical-value offset used by Offset.
type Delta struct {
	Ticks int64
	Value int64
}

// Offset shifts every event's time by d, then re-normalizes. If d.Ticks is
// set it is converted through each event's own in-force node (so a fixed
// tick shift lands consistently even across a tempo change); otherwise
// d.Value is applied directly.
func (s *Sequence) Offset(d Delta) {
	for i := range s.events {
		if d.Ticks != 0 {
			node := s.timeline.nodeForValue(s.events[i].Time.Value())
			shift := DeltaTicksToValue(node, s.division, d.Ticks)
			s.events[i].Time = s.events[i].Time.Add(shift)
		} else {
			s.events[i].Time = s.events[i].Time.Add(d.Value)
		}
	}
	s.Update()
}

// SetFormat converts the sequence to a different SMF format. Only 0->1 is
// supported (spec.md §7 FormatConversion); it splits the single track into
// a meta track (track 0: SetTempo/SetTimeSignature and other non-channel
// events materialize there on emit; track 0 otherwise carries any meta
// events already present) and a channel-event track (track 1).
func (s *Sequence) SetFormat(f Format) error {
	if s.format == f {
		return nil
	}
	if s.format != FormatSingleTrack || f != FormatMultiTrack {
		return NewError(KindFormatConversion, "unsupported format conversion %d -> %d", s.format, f)
	}
	for i := range s.events {
		if s.events[i].IsChannel() {
			s.events[i].Track = 1
		} else {
			s.events[i].Track = 0
		}
	}
	s.format = f
	s.numTracks = 2
	s.Update()
	return nil
}

// Transpose shifts Note on NoteOn/NoteOff/NoteAftertouch events by
// semitones, optionally scoped to a single track.
func (s *Sequence) Transpose(semitones int, track *uint16) {
	for i := range s.events {
		ev := &s.events[i]
		if track != nil && ev.Track != *track {
			continue
		}
		switch ev.Kind {
		case EventNoteOn, EventNoteOff, EventNoteAftertouch:
			ev.Note = clampNote(int(ev.Note) + semitones)
		}
	}
}

func clampNote(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}

// sortEmit sorts events by (cumulative, track, meta-priority) for emit
// (spec.md §4.5 step 5).
func sortEmit(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ci, _ := events[i].Time.Cumulative()
		cj, _ := events[j].Time.Cumulative()
		if ci != cj {
			return ci < cj
		}
		if events[i].Track != events[j].Track {
			return events[i].Track < events[j].Track
		}
		return events[i].metaPriority() < events[j].metaPriority()
	})
}
