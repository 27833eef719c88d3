package tasks

import (
	"math/rand/v2"

	"github.com/fitz/dayslot/internal/models"
)

// MeetingDurationMinutes is the fixed length of generated meetings.
const MeetingDurationMinutes = 30

var ticketDurations = []int{60, 120}

// TicketDuration draws a ticket duration: one or two hours, uniformly.
func TicketDuration() int {
	return ticketDurations[rand.IntN(len(ticketDurations))]
}

// MeetingTitle draws a meeting title from the catalog, uniformly.
func MeetingTitle() string {
	return models.MeetingTypes[rand.IntN(len(models.MeetingTypes))]
}
