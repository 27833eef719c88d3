// Package schedule contains the pure calendar math behind dayslot:
// day-window construction, free-slot derivation, and first-fit placement.
// Nothing in this package performs I/O.
package schedule

import "time"

// Interval is a half-open [Start, End) span of absolute time.
// It is used both for occupied blocks and for computed free gaps.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsZero reports whether the interval has no extent.
func (iv Interval) IsZero() bool {
	return !iv.End.After(iv.Start)
}

// Clip constrains the interval to [start, end]. The result may be zero
// if the interval falls entirely outside the bounds.
func (iv Interval) Clip(start, end time.Time) Interval {
	clipped := iv
	if clipped.Start.Before(start) {
		clipped.Start = start
	}
	if clipped.End.After(end) {
		clipped.End = end
	}
	if clipped.End.Before(clipped.Start) {
		clipped.End = clipped.Start
	}
	return clipped
}
