package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fitz/dayslot/internal/models"
	"github.com/google/uuid"
)

// TaskRepository provides user-scoped CRUD operations for tasks.
type TaskRepository struct {
	client *Client
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(client *Client) *TaskRepository {
	return &TaskRepository{client: client}
}

const taskColumns = `id, user_id, ticket_number, title, kind, status, duration_minutes,
	scheduled_start, scheduled_end, calendar_event_id, created_at, updated_at`

// Add inserts a batch of tasks in one transaction. Missing IDs,
// statuses, and timestamps are filled in. Returns the stored tasks.
func (r *TaskRepository) Add(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	tx, err := r.client.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	stored := make([]models.Task, 0, len(tasks))

	for i, task := range tasks {
		if task.ID == "" {
			task.ID = uuid.New().String()
		}
		if task.Status == "" {
			task.Status = models.TaskStatusPending
		}
		if task.UserID == "" {
			return nil, fmt.Errorf("task %s has no owning user", task.ID)
		}
		if task.DurationMinutes <= 0 {
			return nil, fmt.Errorf("task %s has non-positive duration %d", task.ID, task.DurationMinutes)
		}
		// A batch shares one wall-clock instant; stagger rows by a
		// microsecond so created_at alone reproduces insertion order.
		task.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		task.UpdatedAt = task.CreatedAt

		_, err := tx.ExecContext(ctx,
			`INSERT INTO task (`+taskColumns+`)
			 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12)`,
			task.ID, task.UserID, task.TicketNumber, task.Title, task.Kind, task.Status,
			task.DurationMinutes, task.ScheduledStart, task.ScheduledEnd,
			task.CalendarEventID, task.CreatedAt, task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert task: %w", err)
		}
		stored = append(stored, task)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return stored, nil
}

// GetByID retrieves a user's task by ID. Returns nil when not found.
func (r *TaskRepository) GetByID(ctx context.Context, userID, id string) (*models.Task, error) {
	row := r.client.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM task WHERE id = $1 AND user_id = $2`, id, userID)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListByUser retrieves a user's tasks, newest first, optionally
// filtered by status ("" = all).
func (r *TaskRepository) ListByUser(ctx context.Context, userID string, status models.TaskStatus) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.client.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// ListPendingInCreationOrder returns the user's pending tasks oldest
// first. The scheduler keeps creation order within each priority tier.
func (r *TaskRepository) ListPendingInCreationOrder(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := r.client.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM task
		 WHERE user_id = $1 AND status = $2
		 ORDER BY created_at ASC, id ASC`,
		userID, models.TaskStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending failed: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// UpdateTitle changes a pending task's title. Non-pending tasks are
// append-only history and cannot be edited.
func (r *TaskRepository) UpdateTitle(ctx context.Context, userID, id, title string) (*models.Task, error) {
	existing, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	if existing.Status != models.TaskStatusPending {
		return nil, fmt.Errorf("can only edit pending tasks")
	}

	_, err = r.client.db.ExecContext(ctx,
		`UPDATE task SET title = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		title, time.Now().UTC(), id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return r.GetByID(ctx, userID, id)
}

// MarkScheduled atomically transitions a task to scheduled with its
// placement and the calendar event it produced.
func (r *TaskRepository) MarkScheduled(ctx context.Context, userID, id string, start, end time.Time, eventID string) error {
	result, err := r.client.db.ExecContext(ctx,
		`UPDATE task
		 SET status = $1, scheduled_start = $2, scheduled_end = $3,
		     calendar_event_id = $4, updated_at = $5
		 WHERE id = $6 AND user_id = $7 AND status = $8`,
		models.TaskStatusScheduled, start, end, eventID, time.Now().UTC(),
		id, userID, models.TaskStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark task scheduled: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s is not pending", id)
	}
	return nil
}

// Delete removes a task regardless of status. Callers enforcing the
// pending-only rule for user deletes should use DeletePending.
func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	_, err := r.client.db.ExecContext(ctx,
		`DELETE FROM task WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// DeletePending removes a task only while it is still pending.
func (r *TaskRepository) DeletePending(ctx context.Context, userID, id string) error {
	existing, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("task not found: %s", id)
	}
	if existing.Status != models.TaskStatusPending {
		return fmt.Errorf("can only delete pending tasks")
	}
	return r.Delete(ctx, userID, id)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	var task models.Task
	var ticketNumber, eventID sql.NullString
	var start, end sql.NullTime

	err := s.Scan(
		&task.ID, &task.UserID, &ticketNumber, &task.Title, &task.Kind, &task.Status,
		&task.DurationMinutes, &start, &end, &eventID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ticketNumber.Valid {
		task.TicketNumber = ticketNumber.String
	}
	if eventID.Valid {
		task.CalendarEventID = eventID.String
	}
	if start.Valid {
		t := start.Time
		task.ScheduledStart = &t
	}
	if end.Valid {
		t := end.Time
		task.ScheduledEnd = &t
	}
	return &task, nil
}
