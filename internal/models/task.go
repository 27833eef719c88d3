package models

import (
	"regexp"
	"strings"
	"time"
)

// TaskKind distinguishes the two schedulable item variants.
type TaskKind string

const (
	TaskKindTicket  TaskKind = "ticket"
	TaskKindMeeting TaskKind = "meeting"
)

// ValidTaskKinds contains all valid task kind values
var ValidTaskKinds = []TaskKind{
	TaskKindTicket,
	TaskKindMeeting,
}

// IsValidTaskKind checks if a kind string is a valid TaskKind
func IsValidTaskKind(s string) bool {
	for _, kind := range ValidTaskKinds {
		if string(kind) == s {
			return true
		}
	}
	return false
}

// TaskStatus defines the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusScheduled TaskStatus = "scheduled"
	// TaskStatusFailed is a reserved terminal state. The scheduler
	// currently deletes unplaceable tasks instead of persisting it.
	TaskStatusFailed TaskStatus = "failed"
)

// ValidTaskStatuses contains all valid task status values
var ValidTaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusScheduled,
	TaskStatusFailed,
}

// IsValidTaskStatus checks if a status string is a valid TaskStatus
func IsValidTaskStatus(s string) bool {
	for _, status := range ValidTaskStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// Task represents one schedulable work item owned by a user: a ticket
// pulled from a project board or a generated meeting. Once scheduled it
// carries its placement and a back-reference to the calendar event the
// placement created; the calendar store owns that event.
type Task struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	TicketNumber    string     `json:"ticket_number,omitempty"` // empty for meetings
	Title           string     `json:"title"`
	Kind            TaskKind   `json:"kind"`
	Status          TaskStatus `json:"status"`
	DurationMinutes int        `json:"duration_minutes"`
	ScheduledStart  *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd    *time.Time `json:"scheduled_end,omitempty"`
	CalendarEventID string     `json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Label returns the ticket label, if the task has one.
func (t Task) Label() (string, bool) {
	return t.TicketNumber, t.TicketNumber != ""
}

// EventTitle derives the calendar event summary: "<label>: <title>"
// for labelled tickets, the bare title otherwise.
func (t Task) EventTitle() string {
	if label, ok := t.Label(); ok {
		return label + ": " + t.Title
	}
	return t.Title
}

// MeetingTypes is the catalog of generated meeting titles. It doubles
// as a self-created-event signature when reading back the calendar.
var MeetingTypes = []string{
	"Daily Standup",
	"Sprint Planning",
	"Sprint Retrospective",
	"UI Review",
	"Code Review",
	"Team Sync",
}

// ticketSummaryPattern matches event summaries that start with a ticket
// label like "TMI-1234" or "MKTG-1884".
var ticketSummaryPattern = regexp.MustCompile(`^[A-Z]+-\d+`)

// IsSelfCreatedSummary reports whether a calendar event summary looks
// like one this system wrote: a ticket-label prefix or a known meeting
// title. Used as a defense-in-depth filter on top of event-id
// exclusion, so events we created but lost track of never double-count
// as occupancy.
func IsSelfCreatedSummary(summary string) bool {
	if ticketSummaryPattern.MatchString(summary) {
		return true
	}
	for _, meeting := range MeetingTypes {
		if strings.Contains(summary, meeting) {
			return true
		}
	}
	return false
}
