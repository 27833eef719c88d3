package schedule

import (
	"fmt"
	"time"
)

// Workday bounds, wall-clock hours in the configured zone.
const (
	WorkdayStartHour = 9
	WorkdayEndHour   = 18
)

// DefaultTimezone is the canonical scheduling zone.
const DefaultTimezone = "America/Chicago"

// Window is the scheduling horizon for a single calendar date:
// the 09:00 and 18:00 wall-clock instants of that date in the
// configured zone, resolved against the UTC offset actually in
// effect on that date.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// zoneOffsetSeconds returns the zone's UTC offset on the given date.
// The offset is read from the zone in effect at the date's UTC noon, so
// standard/daylight transitions are picked up per date rather than
// assumed constant, and half-hour zones (India, parts of Australia)
// resolve exactly.
func zoneOffsetSeconds(year int, month time.Month, day int, loc *time.Location) int {
	utcNoon := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	_, offset := utcNoon.In(loc).Zone()
	return offset
}

// zoneName renders an offset as "UTC+05:30" for fixed-zone labels.
func zoneName(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offsetSeconds/3600, (offsetSeconds%3600)/60)
}

// CivilTime resolves a wall-clock hour/minute on a "YYYY-MM-DD" date in
// loc to an absolute instant. The result carries an explicit fixed
// offset, so it is unambiguous regardless of the process's local zone.
func CivilTime(date string, hour, minute int, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	year, month, day := parsed.Date()
	offset := zoneOffsetSeconds(year, month, day, loc)
	zone := time.FixedZone(zoneName(offset), offset)

	return time.Date(year, month, day, hour, minute, 0, 0, zone), nil
}

// CivilString formats an absolute instant as the zone's civil date and
// time with an explicit offset, e.g. "2026-02-09T09:00:00-06:00".
// External calendar APIs receive this form (paired with the zone name)
// instead of raw UTC so their own daylight-saving resolution agrees
// with ours.
func CivilString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02T15:04:05-07:00")
}

// DayWindowFor builds the 09:00-18:00 window for a "YYYY-MM-DD" date in loc.
func DayWindowFor(date string, loc *time.Location) (Window, error) {
	start, err := CivilTime(date, WorkdayStartHour, 0, loc)
	if err != nil {
		return Window{}, err
	}
	end, err := CivilTime(date, WorkdayEndHour, 0, loc)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}
