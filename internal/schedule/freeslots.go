package schedule

import "sort"

// FreeSlots computes the free gaps left in the window by the occupied
// blocks. The input may be unsorted, overlapping, or partially outside
// the window; blocks are clipped and merged during a single
// left-to-right sweep. The result is sorted by start, pairwise
// non-overlapping, and contains only positive-length gaps.
func FreeSlots(occupied []Interval, w Window) []Interval {
	sorted := make([]Interval, len(occupied))
	copy(sorted, occupied)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var free []Interval
	cursor := w.Start

	for _, block := range sorted {
		clipped := block.Clip(w.Start, w.End)
		if clipped.IsZero() {
			continue
		}

		// Overlapping or abutting the region already covered: extend it.
		if !clipped.Start.After(cursor) {
			if clipped.End.After(cursor) {
				cursor = clipped.End
			}
			continue
		}

		free = append(free, Interval{Start: cursor, End: clipped.Start})
		if clipped.End.After(cursor) {
			cursor = clipped.End
		}
	}

	if cursor.Before(w.End) {
		free = append(free, Interval{Start: cursor, End: w.End})
	}

	return free
}
