// Package midi parses, edits, and re-serializes Standard MIDI Files (SMF)
// as a single chronologically ordered timeline instead of per-track delta
// event lists.
//
// A Sequence owns the parsed events plus a Timeline — an ordered map of
// tempo/time-signature regions — so that every event's musical position can
// be queried or edited in bar|beat|tick terms as easily as in raw ticks.
package midi
