package tools

import (
	"log/slog"
	"time"

	"github.com/fitz/dayslot/internal/models"
	"github.com/fitz/dayslot/internal/tasks"
	"github.com/fitz/dayslot/internal/vision"
)

// Handler provides the dependencies needed by tool handlers.
type Handler struct {
	Service   *tasks.Service
	Extractor vision.Extractor
	Logger    *slog.Logger
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(service *tasks.Service, extractor vision.Extractor, logger *slog.Logger) *Handler {
	return &Handler{
		Service:   service,
		Extractor: extractor,
		Logger:    logger,
	}
}

// TaskSummary is the wire form of a task returned by the tools.
type TaskSummary struct {
	ID              string `json:"id"`
	TicketNumber    string `json:"ticket_number,omitempty"`
	Title           string `json:"title"`
	Kind            string `json:"kind"`
	Status          string `json:"status"`
	DurationMinutes int    `json:"duration_minutes"`
	ScheduledStart  string `json:"scheduled_start,omitempty"`
	ScheduledEnd    string `json:"scheduled_end,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// toSummary converts a task to its wire form.
func toSummary(t models.Task) TaskSummary {
	s := TaskSummary{
		ID:              t.ID,
		TicketNumber:    t.TicketNumber,
		Title:           t.Title,
		Kind:            string(t.Kind),
		Status:          string(t.Status),
		DurationMinutes: t.DurationMinutes,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
	if t.ScheduledStart != nil {
		s.ScheduledStart = t.ScheduledStart.Format(time.RFC3339)
	}
	if t.ScheduledEnd != nil {
		s.ScheduledEnd = t.ScheduledEnd.Format(time.RFC3339)
	}
	return s
}

// toSummaries converts a slice of tasks to wire form.
func toSummaries(list []models.Task) []TaskSummary {
	out := make([]TaskSummary, 0, len(list))
	for _, t := range list {
		out = append(out, toSummary(t))
	}
	return out
}
