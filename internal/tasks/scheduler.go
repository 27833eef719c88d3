package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/fitz/dayslot/internal/models"
	"github.com/fitz/dayslot/internal/schedule"
)

// ScheduleResult is the aggregate outcome of one scheduling run.
// Partial success is the normal, expected outcome.
type ScheduleResult struct {
	Scheduled int `json:"scheduled"`
	Failed    int `json:"failed"`
}

// ScheduleDay places all of the user's pending tasks into free slots of
// the date's 09:00-18:00 window, meetings before tickets, first fit.
//
// Authentication and occupancy-read failures abort the run before any
// item is touched. Per-item failures (no fitting slot, or the calendar
// rejecting the event) remove that item and continue; the run always
// finishes with an accurate tally. Runs for the same user are
// serialized.
func (s *Service) ScheduleDay(ctx context.Context, userID, date string) (ScheduleResult, error) {
	if userID == "" {
		return ScheduleResult{}, fmt.Errorf("user id is required")
	}

	window, err := schedule.DayWindowFor(date, s.loc)
	if err != nil {
		return ScheduleResult{}, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	pending, err := s.store.ListPendingInCreationOrder(ctx, userID)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("failed to load pending tasks: %w", err)
	}
	if len(pending) == 0 {
		return ScheduleResult{}, nil
	}

	// Meetings first, then tickets; creation order within each tier.
	var queue []models.Task
	for _, task := range pending {
		if task.Kind == models.TaskKindMeeting {
			queue = append(queue, task)
		}
	}
	for _, task := range pending {
		if task.Kind != models.TaskKindMeeting {
			queue = append(queue, task)
		}
	}

	session, err := s.calendar.Session(ctx, userID)
	if err != nil {
		return ScheduleResult{}, err
	}

	// Events we created for already-scheduled tasks are excluded from
	// occupancy by id.
	alreadyScheduled, err := s.store.ListByUser(ctx, userID, models.TaskStatusScheduled)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("failed to load scheduled tasks: %w", err)
	}
	var excludeIDs []string
	for _, task := range alreadyScheduled {
		if task.CalendarEventID != "" {
			excludeIDs = append(excludeIDs, task.CalendarEventID)
		}
	}

	events, err := session.ExistingEvents(ctx, date, excludeIDs)
	if err != nil {
		return ScheduleResult{}, err
	}

	occupied := make([]schedule.Interval, 0, len(events))
	for _, event := range events {
		block := schedule.Interval{Start: event.Start, End: event.End}.Clip(window.Start, window.End)
		if !block.IsZero() {
			occupied = append(occupied, block)
		}
	}

	var result ScheduleResult

	for _, task := range queue {
		// Recompute after every placement: each success changes
		// occupancy for the items behind it.
		free := schedule.FreeSlots(occupied, window)
		duration := time.Duration(task.DurationMinutes) * time.Minute

		slot, ok := schedule.FirstFit(free, duration)
		if !ok {
			if err := s.store.Delete(ctx, userID, task.ID); err != nil {
				s.logger.Error("failed to remove unplaceable task", "task", task.ID, "error", err)
			}
			result.Failed++
			s.logger.Info("no free slot for task", "task", task.ID, "duration_min", task.DurationMinutes)
			continue
		}

		eventID, err := session.CreateEvent(ctx, task.EventTitle(), slot.Start, slot.End)
		if err != nil {
			if deleteErr := s.store.Delete(ctx, userID, task.ID); deleteErr != nil {
				s.logger.Error("failed to remove task after event failure", "task", task.ID, "error", deleteErr)
			}
			result.Failed++
			s.logger.Error("failed to create calendar event", "task", task.ID, "error", err)
			continue
		}

		if err := s.store.MarkScheduled(ctx, userID, task.ID, slot.Start, slot.End, eventID); err != nil {
			if deleteErr := s.store.Delete(ctx, userID, task.ID); deleteErr != nil {
				s.logger.Error("failed to remove task after persist failure", "task", task.ID, "error", deleteErr)
			}
			result.Failed++
			s.logger.Error("failed to persist placement", "task", task.ID, "error", err)
			continue
		}

		occupied = insertSorted(occupied, slot)
		result.Scheduled++
		s.logger.Info("task scheduled", "task", task.ID, "start", slot.Start, "end", slot.End, "event", eventID)
	}

	return result, nil
}

// insertSorted adds a block keeping the occupied set ordered by start.
func insertSorted(occupied []schedule.Interval, block schedule.Interval) []schedule.Interval {
	pos := len(occupied)
	for i, existing := range occupied {
		if block.Start.Before(existing.Start) {
			pos = i
			break
		}
	}
	occupied = append(occupied, schedule.Interval{})
	copy(occupied[pos+1:], occupied[pos:])
	occupied[pos] = block
	return occupied
}
