package schedule

import (
	"testing"
	"time"
)

// at builds an instant on a fixed reference day, hour:minute UTC.
func at(hour, minute int) time.Time {
	return time.Date(2026, time.February, 9, hour, minute, 0, 0, time.UTC)
}

func iv(startHour, startMin, endHour, endMin int) Interval {
	return Interval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func testWindow() Window {
	return Window{Start: at(9, 0), End: at(18, 0)}
}

func TestFreeSlots(t *testing.T) {
	tests := []struct {
		name     string
		occupied []Interval
		expected []Interval
	}{
		{
			name:     "empty day",
			occupied: nil,
			expected: []Interval{iv(9, 0, 18, 0)},
		},
		{
			name:     "two blocks mid-day",
			occupied: []Interval{iv(9, 30, 10, 30), iv(14, 0, 15, 0)},
			expected: []Interval{iv(9, 0, 9, 30), iv(10, 30, 14, 0), iv(15, 0, 18, 0)},
		},
		{
			name:     "unsorted input",
			occupied: []Interval{iv(14, 0, 15, 0), iv(9, 30, 10, 30)},
			expected: []Interval{iv(9, 0, 9, 30), iv(10, 30, 14, 0), iv(15, 0, 18, 0)},
		},
		{
			name:     "overlapping blocks merge",
			occupied: []Interval{iv(10, 0, 12, 0), iv(11, 0, 13, 0)},
			expected: []Interval{iv(9, 0, 10, 0), iv(13, 0, 18, 0)},
		},
		{
			name:     "abutting blocks merge without zero-length gap",
			occupied: []Interval{iv(10, 0, 11, 0), iv(11, 0, 12, 0)},
			expected: []Interval{iv(9, 0, 10, 0), iv(12, 0, 18, 0)},
		},
		{
			name:     "block starting before window is clipped",
			occupied: []Interval{iv(7, 0, 10, 0)},
			expected: []Interval{iv(10, 0, 18, 0)},
		},
		{
			name:     "block ending after window is clipped",
			occupied: []Interval{iv(17, 0, 20, 0)},
			expected: []Interval{iv(9, 0, 17, 0)},
		},
		{
			name:     "block entirely outside window is ignored",
			occupied: []Interval{iv(6, 0, 8, 0), iv(19, 0, 21, 0)},
			expected: []Interval{iv(9, 0, 18, 0)},
		},
		{
			name:     "fully occupied day",
			occupied: []Interval{iv(8, 0, 19, 0)},
			expected: nil,
		},
		{
			name:     "block at window start",
			occupied: []Interval{iv(9, 0, 9, 45)},
			expected: []Interval{iv(9, 45, 18, 0)},
		},
		{
			name:     "block at window end",
			occupied: []Interval{iv(17, 15, 18, 0)},
			expected: []Interval{iv(9, 0, 17, 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeSlots(tt.occupied, testWindow())
			assertIntervalsEqual(t, got, tt.expected)
		})
	}
}

func TestFreeSlotsIsPure(t *testing.T) {
	occupied := []Interval{iv(14, 0, 15, 0), iv(9, 30, 10, 30)}
	first := FreeSlots(occupied, testWindow())
	second := FreeSlots(occupied, testWindow())
	assertIntervalsEqual(t, second, first)

	// The input slice must not be reordered.
	if !occupied[0].Start.Equal(at(14, 0)) {
		t.Errorf("FreeSlots reordered its input: first block now starts at %v", occupied[0].Start)
	}
}

func TestFreeSlotsCoversWindowWithOccupied(t *testing.T) {
	occupied := []Interval{iv(9, 30, 10, 30), iv(12, 0, 12, 45), iv(14, 0, 15, 0)}
	w := testWindow()
	free := FreeSlots(occupied, w)

	// Free slots are sorted, non-overlapping, and disjoint from every
	// occupied block; free plus occupied accounts for the whole window.
	var total time.Duration
	prevEnd := w.Start
	for _, slot := range free {
		if slot.Start.Before(prevEnd) {
			t.Errorf("slot %v-%v overlaps previous slot ending %v", slot.Start, slot.End, prevEnd)
		}
		if !slot.End.After(slot.Start) {
			t.Errorf("zero-length slot emitted: %v-%v", slot.Start, slot.End)
		}
		for _, block := range occupied {
			if slot.Start.Before(block.End) && block.Start.Before(slot.End) {
				t.Errorf("slot %v-%v intersects occupied block %v-%v", slot.Start, slot.End, block.Start, block.End)
			}
		}
		prevEnd = slot.End
		total += slot.Duration()
	}

	for _, block := range occupied {
		total += block.Duration()
	}
	if total != w.Duration() {
		t.Errorf("free + occupied = %v, want full window %v", total, w.Duration())
	}
}

func assertIntervalsEqual(t *testing.T, got, expected []Interval) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("got %d intervals, want %d: %v", len(got), len(expected), got)
	}
	for i := range expected {
		if !got[i].Start.Equal(expected[i].Start) || !got[i].End.Equal(expected[i].End) {
			t.Errorf("interval %d = %v-%v, want %v-%v", i, got[i].Start, got[i].End, expected[i].Start, expected[i].End)
		}
	}
}
