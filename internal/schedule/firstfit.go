package schedule

import "time"

// FirstFit returns the earliest placement of the requested duration
// within the free slots, which must be sorted by start (as produced by
// FreeSlots). The returned interval starts at the chosen slot's start
// and is trimmed to exactly the requested duration. The second return
// is false when no slot is long enough.
func FirstFit(free []Interval, duration time.Duration) (Interval, bool) {
	for _, slot := range free {
		if slot.Duration() >= duration {
			return Interval{Start: slot.Start, End: slot.Start.Add(duration)}, true
		}
	}
	return Interval{}, false
}
