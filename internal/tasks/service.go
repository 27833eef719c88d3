// Package tasks implements the work-item queue and the scheduling run
// that places pending items into the user's calendar.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fitz/dayslot/internal/models"
)

// TaskStore is the persistence contract the service needs. Implemented
// by store.TaskRepository.
type TaskStore interface {
	Add(ctx context.Context, tasks []models.Task) ([]models.Task, error)
	ListByUser(ctx context.Context, userID string, status models.TaskStatus) ([]models.Task, error)
	ListPendingInCreationOrder(ctx context.Context, userID string) ([]models.Task, error)
	UpdateTitle(ctx context.Context, userID, id, title string) (*models.Task, error)
	MarkScheduled(ctx context.Context, userID, id string, start, end time.Time, eventID string) error
	Delete(ctx context.Context, userID, id string) error
	DeletePending(ctx context.Context, userID, id string) error
}

// CalendarSession is an authenticated view of one user's calendar.
type CalendarSession interface {
	ExistingEvents(ctx context.Context, date string, excludeEventIDs []string) ([]models.CalendarEvent, error)
	CreateEvent(ctx context.Context, title string, start, end time.Time) (string, error)
}

// Calendar authenticates calendar sessions per user. Implemented by
// gcal.Service.
type Calendar interface {
	Session(ctx context.Context, userID string) (CalendarSession, error)
}

// Service owns task ingestion, queue management, and scheduling runs.
type Service struct {
	store    TaskStore
	calendar Calendar
	loc      *time.Location
	logger   *slog.Logger

	mu       sync.Mutex
	runLocks map[string]*sync.Mutex
}

// NewService creates a task service.
func NewService(store TaskStore, calendar Calendar, loc *time.Location, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		calendar: calendar,
		loc:      loc,
		logger:   logger,
		runLocks: make(map[string]*sync.Mutex),
	}
}

// TicketInput is one manually entered or extracted ticket.
type TicketInput struct {
	Number string
	Title  string
}

// AddTickets queues pending ticket tasks for the user. Each ticket gets
// a randomized 60 or 120 minute duration; a missing title defaults to
// the ticket number.
func (s *Service) AddTickets(ctx context.Context, userID string, tickets []TicketInput) ([]models.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if len(tickets) == 0 {
		return nil, fmt.Errorf("at least one ticket is required")
	}

	queue := make([]models.Task, 0, len(tickets))
	for _, ticket := range tickets {
		number := strings.TrimSpace(ticket.Number)
		if number == "" {
			return nil, fmt.Errorf("ticket number cannot be empty")
		}
		title := strings.TrimSpace(ticket.Title)
		if title == "" {
			title = number
		}
		queue = append(queue, models.Task{
			UserID:          userID,
			TicketNumber:    number,
			Title:           title,
			Kind:            models.TaskKindTicket,
			Status:          models.TaskStatusPending,
			DurationMinutes: TicketDuration(),
		})
	}

	stored, err := s.store.Add(ctx, queue)
	if err != nil {
		return nil, fmt.Errorf("failed to add tickets: %w", err)
	}
	s.logger.Info("tickets queued", "user", userID, "count", len(stored))
	return stored, nil
}

// AddMeetings queues count pending meeting tasks (30 minutes each) with
// titles drawn from the meeting catalog. Count defaults to 2 and is
// capped at 10.
func (s *Service) AddMeetings(ctx context.Context, userID string, count int) ([]models.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if count <= 0 {
		count = 2
	}
	if count > 10 {
		return nil, fmt.Errorf("meeting count must be between 1 and 10")
	}

	queue := make([]models.Task, 0, count)
	for i := 0; i < count; i++ {
		queue = append(queue, models.Task{
			UserID:          userID,
			Title:           MeetingTitle(),
			Kind:            models.TaskKindMeeting,
			Status:          models.TaskStatusPending,
			DurationMinutes: MeetingDurationMinutes,
		})
	}

	stored, err := s.store.Add(ctx, queue)
	if err != nil {
		return nil, fmt.Errorf("failed to add meetings: %w", err)
	}
	s.logger.Info("meetings queued", "user", userID, "count", len(stored))
	return stored, nil
}

// List returns the user's tasks, optionally filtered by status.
func (s *Service) List(ctx context.Context, userID, status string) ([]models.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if status != "" && !models.IsValidTaskStatus(status) {
		return nil, fmt.Errorf("invalid status: %s (must be one of: pending, scheduled, failed)", status)
	}
	return s.store.ListByUser(ctx, userID, models.TaskStatus(status))
}

// UpdateTitle edits a pending task's title. Scheduled tasks are
// immutable.
func (s *Service) UpdateTitle(ctx context.Context, userID, id, title string) (*models.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if id == "" {
		return nil, fmt.Errorf("task id is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	return s.store.UpdateTitle(ctx, userID, id, title)
}

// Delete removes a pending task from the queue.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if id == "" {
		return fmt.Errorf("task id is required")
	}
	return s.store.DeletePending(ctx, userID, id)
}

// userLock returns the per-user mutex serializing scheduling runs, so
// two concurrent runs cannot compute occupancy from the same snapshot
// and double-book a slot.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.runLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.runLocks[userID] = lock
	}
	return lock
}
