package schedule

import (
	"testing"
	"time"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	return loc
}

func TestCivilTime(t *testing.T) {
	loc := chicago(t)

	tests := []struct {
		name        string
		date        string
		hour, min   int
		expectedUTC string
	}{
		{
			name: "winter, CST is UTC-6",
			date: "2026-02-09", hour: 9,
			expectedUTC: "2026-02-09T15:00:00Z",
		},
		{
			name: "summer, CDT is UTC-5",
			date: "2026-07-15", hour: 9,
			expectedUTC: "2026-07-15T14:00:00Z",
		},
		{
			// DST starts 2026-03-08 in the US; the day before still uses
			// standard time.
			name: "day before spring forward",
			date: "2026-03-07", hour: 9,
			expectedUTC: "2026-03-07T15:00:00Z",
		},
		{
			name: "spring forward day uses the new offset",
			date: "2026-03-08", hour: 9,
			expectedUTC: "2026-03-08T14:00:00Z",
		},
		{
			name: "day before fall back",
			date: "2026-10-31", hour: 9,
			expectedUTC: "2026-10-31T14:00:00Z",
		},
		{
			// DST ends 2026-11-01.
			name: "fall back day uses standard time again",
			date: "2026-11-01", hour: 9,
			expectedUTC: "2026-11-01T15:00:00Z",
		},
		{
			name: "end of workday with minutes",
			date: "2026-02-09", hour: 17, min: 30,
			expectedUTC: "2026-02-09T23:30:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CivilTime(tt.date, tt.hour, tt.min, loc)
			if err != nil {
				t.Fatalf("CivilTime() error = %v", err)
			}
			expected, err := time.Parse(time.RFC3339, tt.expectedUTC)
			if err != nil {
				t.Fatalf("bad expected value: %v", err)
			}
			if !got.Equal(expected) {
				t.Errorf("CivilTime(%s %02d:%02d) = %v, want %v", tt.date, tt.hour, tt.min, got.UTC(), expected)
			}
		})
	}
}

func TestCivilTimeHalfHourZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	tests := []struct {
		name        string
		date        string
		hour, min   int
		expectedUTC string
	}{
		{
			// IST is UTC+5:30 year round.
			name: "workday start",
			date: "2026-02-09", hour: 9,
			expectedUTC: "2026-02-09T03:30:00Z",
		},
		{
			name: "workday end",
			date: "2026-02-09", hour: 18,
			expectedUTC: "2026-02-09T12:30:00Z",
		},
		{
			name: "with minutes",
			date: "2026-02-09", hour: 9, min: 30,
			expectedUTC: "2026-02-09T04:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CivilTime(tt.date, tt.hour, tt.min, loc)
			if err != nil {
				t.Fatalf("CivilTime() error = %v", err)
			}
			expected, err := time.Parse(time.RFC3339, tt.expectedUTC)
			if err != nil {
				t.Fatalf("bad expected value: %v", err)
			}
			if !got.Equal(expected) {
				t.Errorf("CivilTime(%s %02d:%02d) = %v, want %v", tt.date, tt.hour, tt.min, got.UTC(), expected)
			}
		})
	}
}

func TestCivilTimeRejectsBadDate(t *testing.T) {
	loc := chicago(t)
	for _, date := range []string{"", "not-a-date", "2026-13-01", "02/09/2026"} {
		if _, err := CivilTime(date, 9, 0, loc); err == nil {
			t.Errorf("CivilTime(%q) expected error, got nil", date)
		}
	}
}

func TestCivilString(t *testing.T) {
	loc := chicago(t)

	tests := []struct {
		name     string
		instant  string
		expected string
	}{
		{
			name:     "winter offset",
			instant:  "2026-02-09T15:00:00Z",
			expected: "2026-02-09T09:00:00-06:00",
		},
		{
			name:     "summer offset",
			instant:  "2026-07-15T14:00:00Z",
			expected: "2026-07-15T09:00:00-05:00",
		},
	}

	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}
	instant := time.Date(2026, 2, 9, 3, 30, 0, 0, time.UTC)
	if got := CivilString(instant, kolkata); got != "2026-02-09T09:00:00+05:30" {
		t.Errorf("CivilString(IST) = %q, want 2026-02-09T09:00:00+05:30", got)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instant, err := time.Parse(time.RFC3339, tt.instant)
			if err != nil {
				t.Fatalf("bad instant: %v", err)
			}
			if got := CivilString(instant, loc); got != tt.expected {
				t.Errorf("CivilString() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDayWindowFor(t *testing.T) {
	loc := chicago(t)

	w, err := DayWindowFor("2026-02-09", loc)
	if err != nil {
		t.Fatalf("DayWindowFor() error = %v", err)
	}

	if got := CivilString(w.Start, loc); got != "2026-02-09T09:00:00-06:00" {
		t.Errorf("window start = %q", got)
	}
	if got := CivilString(w.End, loc); got != "2026-02-09T18:00:00-06:00" {
		t.Errorf("window end = %q", got)
	}
	if w.Duration() != 9*time.Hour {
		t.Errorf("window duration = %v, want 9h", w.Duration())
	}
}

func TestDayWindowForHalfHourZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	w, err := DayWindowFor("2026-02-09", loc)
	if err != nil {
		t.Fatalf("DayWindowFor() error = %v", err)
	}

	// 09:00 IST is 03:30 UTC, not 04:00.
	if expected := time.Date(2026, 2, 9, 3, 30, 0, 0, time.UTC); !w.Start.Equal(expected) {
		t.Errorf("window start = %v, want %v", w.Start.UTC(), expected)
	}
	if got := CivilString(w.Start, loc); got != "2026-02-09T09:00:00+05:30" {
		t.Errorf("window start = %q", got)
	}
	if w.Duration() != 9*time.Hour {
		t.Errorf("window duration = %v, want 9h", w.Duration())
	}
}

func TestDayWindowForInvalidDate(t *testing.T) {
	if _, err := DayWindowFor("tomorrow", chicago(t)); err == nil {
		t.Error("DayWindowFor(invalid) expected error, got nil")
	}
}
