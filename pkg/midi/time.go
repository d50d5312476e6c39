package midi

import "math"

// Triple is a bar|beat|tick musical position (spec.md §3). Bar and beat are
// 1-based; tick is 0-based.
type Triple struct {
	Bar  int
	Beat int
	Tick int
}

func (t Triple) String() string {
	return formatFloat(float64(t.Bar)) + "|" + formatFloat(float64(t.Beat)) + "|" + formatFloat(float64(t.Tick))
}

// Time is a musical position, internally an integer value in the VPT/VPQN/
// VPN scale (spec.md §3). A Time bound to a Sequence's Timeline can be read
// or set as a cumulative tick count or a Triple; an unbound ("floating")
// Time only carries its raw Value.
type Time struct {
	value    int64
	timeline *Timeline
}

// NewFloatingTime builds an unbound Time holding a raw musical value. It
// cannot be converted to ticks or a Triple until bound to a Timeline.
func NewFloatingTime(value int64) Time { return Time{value: value} }

// Value returns the raw internal musical-value coordinate.
func (t Time) Value() int64 { return t.value }

// Timeline returns the Timeline this Time is bound to, or nil if floating.
func (t Time) Timeline() *Timeline { return t.timeline }

// Bound reports whether t can be converted to ticks or a Triple.
func (t Time) Bound() bool { return t.timeline != nil }

// Cumulative returns ticks from sequence start.
func (t Time) Cumulative() (int64, error) {
	if t.timeline == nil {
		return 0, NewError(KindTripleWithoutTimeline, "time is not bound to a timeline")
	}
	node := t.timeline.nodeForValue(t.value)
	delta := t.value - node.v
	ticks := node.cumulative + int64(roundFloat(float64(delta)/node.vpp(t.timeline.division)))
	return ticks, nil
}

// Triple returns the bar|beat|tick position (spec.md §3 derivation).
func (t Time) Triple() (Triple, error) {
	if t.timeline == nil {
		return Triple{}, NewError(KindTripleWithoutTimeline, "time is not bound to a timeline")
	}
	node := t.timeline.nodeForValue(t.value)
	delta := t.value - node.v

	valuesPerMeasure := node.valuesPerMeasure()
	valuesPerBeat := node.valuesPerBeat()

	bar := delta/valuesPerMeasure + int64(node.bar)
	remMeasure := delta % valuesPerMeasure
	beat := remMeasure/valuesPerBeat + int64(node.beat)
	remBeat := remMeasure % valuesPerBeat
	tick := int64(roundFloat(float64(remBeat)/VPT)) + int64(node.tick)

	return Triple{Bar: int(bar), Beat: int(beat), Tick: int(tick)}, nil
}

// SetCumulative moves t to the given tick count, consulting the bound Timeline.
func (t *Time) SetCumulative(ticks int64) error {
	if t.timeline == nil {
		return NewError(KindTripleWithoutTimeline, "time is not bound to a timeline")
	}
	node := t.timeline.nodeForCumulative(ticks)
	delta := ticks - node.cumulative
	t.value = node.v + int64(roundFloat(float64(delta)*node.vpp(t.timeline.division)))
	return nil
}

// SetTriple moves t to the given bar|beat|tick, consulting the bound
// Timeline and validating against the target node's signature (spec.md
// §4.6, §7 TimeOutOfRange).
func (t *Time) SetTriple(triple Triple) error {
	if t.timeline == nil {
		return NewError(KindTripleWithoutTimeline, "time is not bound to a timeline")
	}
	if triple.Bar < 1 || triple.Beat < 1 || triple.Tick < 0 {
		return NewError(KindTimeOutOfRange, "bar/beat must be >=1 and tick >=0, got %v", triple)
	}

	node := t.timeline.nodeForTriple(triple)
	if int(triple.Beat) > int(node.signature.Numerator) {
		return NewError(KindTimeOutOfRange, "beat %d exceeds signature numerator %d", triple.Beat, node.signature.Numerator)
	}
	maxTick := 1920 / int(node.signature.Denominator)
	if triple.Tick >= maxTick {
		return NewError(KindTimeOutOfRange, "tick %d >= %d for denominator %d", triple.Tick, maxTick, node.signature.Denominator)
	}

	v := node.v +
		int64(triple.Bar-node.bar)*node.valuesPerMeasure() +
		int64(triple.Beat-node.beat)*node.valuesPerBeat() +
		int64(triple.Tick-node.tick)*VPT
	t.value = v
	return nil
}

// Add returns a new Time offset by delta musical-value units, keeping the
// same Timeline binding.
func (t Time) Add(delta int64) Time {
	return Time{value: t.value + delta, timeline: t.timeline}
}

// Compare returns <0, 0, or >0 as t is before, equal to, or after o, by
// internal value.
func (t Time) Compare(o Time) int {
	switch {
	case t.value < o.value:
		return -1
	case t.value > o.value:
		return 1
	default:
		return 0
	}
}

func (t Time) String() string {
	if tr, err := t.Triple(); err == nil {
		return tr.String()
	}
	return "v=" + formatFloat(float64(t.value))
}

// DeltaTicksToValue converts a tick delta to a value delta under the given
// node's active tempo/division — used when stepping by a fixed tick
// duration rather than a triple offset.
func DeltaTicksToValue(node TimeNode, division TimeDivision, ticks int64) int64 {
	return int64(math.Round(float64(ticks) * node.vpp(division)))
}
