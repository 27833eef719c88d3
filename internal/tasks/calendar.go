package tasks

import (
	"context"

	"github.com/fitz/dayslot/internal/gcal"
)

// googleCalendar adapts gcal.Service to the Calendar interface.
type googleCalendar struct {
	svc *gcal.Service
}

// NewGoogleCalendar wraps a Google Calendar service for the scheduler.
func NewGoogleCalendar(svc *gcal.Service) Calendar {
	return googleCalendar{svc: svc}
}

func (g googleCalendar) Session(ctx context.Context, userID string) (CalendarSession, error) {
	session, err := g.svc.Session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return session, nil
}
