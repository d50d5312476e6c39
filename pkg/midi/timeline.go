package midi

import "sort"

// Timeline is the ordered, piecewise-constant map of tempo/time-signature
// regions that spec.md calls the TimeSpecification. Every Time bound to a
// Sequence consults it for bar|beat|tick and cumulative-tick conversions.
// Renamed from the spec's "TimeSpecification" to avoid a second
// "spec"-flavored noun next to TimeSignature in the same package.
type Timeline struct {
	division TimeDivision
	nodes    []TimeNode
}

// newTimeline builds a Timeline seeded with the default first node: v=0,
// bar=1, beat=1, tick=0, 120 BPM, 4/4 (spec.md §3).
func newTimeline(division TimeDivision) *Timeline {
	return &Timeline{
		division: division,
		nodes: []TimeNode{{
			v: 0, bar: 1, beat: 1, tick: 0, cumulative: 0,
			tempo: DefaultTempo, signature: DefaultTimeSignature,
		}},
	}
}

// Division returns the sequence-level tick resolution this timeline was built for.
func (tl *Timeline) Division() TimeDivision { return tl.division }

// Nodes returns the node map in ascending v order. The returned slice must
// not be mutated by the caller.
func (tl *Timeline) Nodes() []TimeNode { return tl.nodes }

// nodeForValue returns the node with the largest v not exceeding value.
func (tl *Timeline) nodeForValue(value int64) TimeNode {
	i := sort.Search(len(tl.nodes), func(i int) bool { return tl.nodes[i].v > value })
	if i == 0 {
		return tl.nodes[0]
	}
	return tl.nodes[i-1]
}

// nodeForCumulative returns the node with the largest cumulative not
// exceeding ticks.
func (tl *Timeline) nodeForCumulative(ticks int64) TimeNode {
	i := sort.Search(len(tl.nodes), func(i int) bool { return tl.nodes[i].cumulative > ticks })
	if i == 0 {
		return tl.nodes[0]
	}
	return tl.nodes[i-1]
}

// nodeForTriple returns the node with the largest (bar, beat, tick) not
// exceeding triple, compared lexicographically.
func (tl *Timeline) nodeForTriple(triple Triple) TimeNode {
	i := sort.Search(len(tl.nodes), func(i int) bool {
		return compareTriple(tl.nodes[i].Triple(), triple) > 0
	})
	if i == 0 {
		return tl.nodes[0]
	}
	return tl.nodes[i-1]
}

func compareTriple(a, b Triple) int {
	if a.Bar != b.Bar {
		return a.Bar - b.Bar
	}
	if a.Beat != b.Beat {
		return a.Beat - b.Beat
	}
	return a.Tick - b.Tick
}

// rebuildTimeline walks events in (cumulative, meta-priority) order and
// reconstructs the node map from SetTempo/SetTimeSignature events,
// appending a node for each such event at a later cumulative tick (even one
// that repeats the values already in force) and updating the current node
// in place when a change lands at the same tick (spec.md §4.3 step 5).
func rebuildTimeline(division TimeDivision, ordered []orderedEvent) *Timeline {
	tl := newTimeline(division)

	for _, oe := range ordered {
		switch oe.ev.Kind {
		case EventSetTempo:
			tl.applyChange(oe.cumulative, oe.ev.TempoValue, tl.currentSignature())
		case EventSetTimeSignature:
			tl.applyChange(oe.cumulative, tl.currentTempo(), oe.ev.SignatureVal)
		}
	}
	return tl
}

func (tl *Timeline) currentTempo() Tempo {
	return tl.nodes[len(tl.nodes)-1].tempo
}

func (tl *Timeline) currentSignature() TimeSignature {
	return tl.nodes[len(tl.nodes)-1].signature
}

// applyChange updates the node map for a tempo/signature change landing at
// cumulative ticks atCumulative. If the last node already starts at the
// same cumulative tick, it is updated in place; otherwise a new node is appended,
// with its v/bar/beat/tick derived from the previous node and the elapsed
// ticks (spec.md §4.3 step 5).
func (tl *Timeline) applyChange(atCumulative int64, tempo Tempo, sig TimeSignature) {
	last := &tl.nodes[len(tl.nodes)-1]
	if atCumulative == last.cumulative {
		last.tempo = tempo
		last.signature = sig
		return
	}

	delta := atCumulative - last.cumulative
	vppVal := last.vpp(tl.division)
	v := last.v + int64(roundFloat(float64(delta)*vppVal))

	tmp := Time{value: v, timeline: tl}
	triple, _ := tmp.Triple()

	tl.nodes = append(tl.nodes, TimeNode{
		v: v, bar: triple.Bar, beat: triple.Beat, tick: triple.Tick,
		cumulative: atCumulative, tempo: tempo, signature: sig,
	})
}
