// Package gcal talks to the user's Google Calendar: it authenticates
// from stored OAuth tokens, reads a day's occupancy, and writes the
// events the scheduler places.
package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/fitz/dayslot/internal/models"
	"github.com/fitz/dayslot/internal/schedule"
)

// ErrNotAuthenticated marks authentication/authorization failures.
// These are fatal to a scheduling run and surface before any item is
// touched.
var ErrNotAuthenticated = errors.New("not authenticated with Google")

const calendarID = "primary"

// AccountSource supplies the stored OAuth account for a user.
type AccountSource interface {
	GetByUser(ctx context.Context, userID string) (*models.Account, error)
}

// Service builds per-user calendar sessions.
type Service struct {
	accounts AccountSource
	loc      *time.Location
}

// NewService creates a calendar service resolving credentials through accounts.
func NewService(accounts AccountSource, loc *time.Location) *Service {
	return &Service{accounts: accounts, loc: loc}
}

// Session authenticates as the given user. The user must have a linked
// Google account with a usable access token; anything else is an
// ErrNotAuthenticated, which callers treat as fatal for the whole run.
func (s *Service) Session(ctx context.Context, userID string) (*Session, error) {
	account, err := s.accounts.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: no account found for this user", ErrNotAuthenticated)
	}
	if account.ProviderID != "google" {
		return nil, fmt.Errorf("%w: linked provider is %q, sign in with Google", ErrNotAuthenticated, account.ProviderID)
	}
	if account.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token, please re-authenticate", ErrNotAuthenticated)
	}

	token := &oauth2.Token{
		AccessToken:  account.AccessToken,
		RefreshToken: account.RefreshToken,
	}
	if account.ExpiresAt != nil {
		token.Expiry = *account.ExpiresAt
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	return &Session{svc: svc, loc: s.loc}, nil
}

// Session is an authenticated handle to one user's primary calendar.
type Session struct {
	svc *calendar.Service
	loc *time.Location
}

// ExistingEvents lists the timed events intersecting the date's work
// window, excluding events this system created (by id, and by naming
// heuristics for ids we lost track of) and all-day events, which do
// not block slots. Results are clamped to the window.
func (s *Session) ExistingEvents(ctx context.Context, date string, excludeEventIDs []string) ([]models.CalendarEvent, error) {
	w, err := schedule.DayWindowFor(date, s.loc)
	if err != nil {
		return nil, err
	}

	resp, err := s.svc.Events.List(calendarID).
		TimeMin(w.Start.Format(time.RFC3339)).
		TimeMax(w.End.Format(time.RFC3339)).
		TimeZone(s.loc.String()).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	excludeSet := make(map[string]bool, len(excludeEventIDs))
	for _, id := range excludeEventIDs {
		excludeSet[id] = true
	}

	var events []models.CalendarEvent
	for _, item := range resp.Items {
		// All-day events have a Date instead of a DateTime.
		if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
			continue
		}
		if item.Id != "" && excludeSet[item.Id] {
			continue
		}
		if models.IsSelfCreatedSummary(item.Summary) {
			continue
		}

		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return nil, fmt.Errorf("bad event start %q: %w", item.Start.DateTime, err)
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return nil, fmt.Errorf("bad event end %q: %w", item.End.DateTime, err)
		}

		clamped := schedule.Interval{Start: start, End: end}.Clip(w.Start, w.End)
		events = append(events, models.CalendarEvent{
			ID:      item.Id,
			Summary: item.Summary,
			Start:   clamped.Start,
			End:     clamped.End,
		})
	}

	return events, nil
}

// CreateEvent inserts an event on the user's primary calendar and
// returns its id. Start and end are sent as civil wall-clock times
// paired with the zone name, so Google's own daylight-saving handling
// agrees with ours.
func (s *Session) CreateEvent(ctx context.Context, title string, start, end time.Time) (string, error) {
	event := &calendar.Event{
		Summary:     title,
		Description: "Auto-scheduled: " + title,
		Start: &calendar.EventDateTime{
			DateTime: schedule.CivilString(start, s.loc),
			TimeZone: s.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: schedule.CivilString(end, s.loc),
			TimeZone: s.loc.String(),
		},
		ColorId: "9",
	}

	created, err := s.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created.Id, nil
}
