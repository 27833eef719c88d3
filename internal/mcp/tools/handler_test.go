package tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/fitz/dayslot/internal/models"
	"github.com/fitz/dayslot/internal/tasks"
	"github.com/fitz/dayslot/internal/vision"
)

// memStore is an in-memory TaskStore for handler tests.
type memStore struct {
	tasks []models.Task
	next  int
}

func (m *memStore) Add(ctx context.Context, batch []models.Task) ([]models.Task, error) {
	added := make([]models.Task, 0, len(batch))
	for _, t := range batch {
		m.next++
		t.ID = fmt.Sprintf("task-%d", m.next)
		t.CreatedAt = time.Now()
		t.UpdatedAt = t.CreatedAt
		m.tasks = append(m.tasks, t)
		added = append(added, t)
	}
	return added, nil
}

func (m *memStore) ListByUser(ctx context.Context, userID string, status models.TaskStatus) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.tasks {
		if t.UserID != userID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) ListPendingInCreationOrder(ctx context.Context, userID string) ([]models.Task, error) {
	return m.ListByUser(ctx, userID, models.TaskStatusPending)
}

func (m *memStore) UpdateTitle(ctx context.Context, userID, id, title string) (*models.Task, error) {
	for i, t := range m.tasks {
		if t.UserID == userID && t.ID == id {
			m.tasks[i].Title = title
			return &m.tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task not found")
}

func (m *memStore) MarkScheduled(ctx context.Context, userID, id string, start, end time.Time, eventID string) error {
	return nil
}

func (m *memStore) Delete(ctx context.Context, userID, id string) error {
	return m.DeletePending(ctx, userID, id)
}

func (m *memStore) DeletePending(ctx context.Context, userID, id string) error {
	for i, t := range m.tasks {
		if t.UserID == userID && t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task not found")
}

type fakeExtractor struct {
	extracted []vision.ExtractedTask
	err       error
}

func (f *fakeExtractor) ExtractTasks(ctx context.Context, image []byte) ([]vision.ExtractedTask, error) {
	return f.extracted, f.err
}

func newTestHandler(extractor vision.Extractor) (*Handler, *memStore) {
	store := &memStore{}
	logger := slog.New(slog.DiscardHandler)
	service := tasks.NewService(store, nil, time.UTC, logger)
	return NewHandler(service, extractor, logger), store
}

func TestHandleAddTickets(t *testing.T) {
	h, store := newTestHandler(nil)

	_, out, err := h.HandleAddTickets(context.Background(), nil, AddTicketsInput{
		UserID: "user-1",
		Tickets: []TicketItem{
			{TicketNumber: "TMI-1", Title: "Fix login"},
			{TicketNumber: "TMI-2"},
		},
	})
	if err != nil {
		t.Fatalf("HandleAddTickets() error = %v", err)
	}
	if len(out.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(out.Tasks))
	}
	if out.Tasks[1].Title != "TMI-2" {
		t.Errorf("missing title should default to ticket number, got %q", out.Tasks[1].Title)
	}
	if len(store.tasks) != 2 {
		t.Errorf("store has %d tasks, want 2", len(store.tasks))
	}
}

func TestHandleAddTickets_Validation(t *testing.T) {
	h, _ := newTestHandler(nil)

	tests := []struct {
		name  string
		input AddTicketsInput
	}{
		{name: "missing user", input: AddTicketsInput{Tickets: []TicketItem{{TicketNumber: "TMI-1"}}}},
		{name: "no tickets", input: AddTicketsInput{UserID: "user-1"}},
		{name: "blank ticket number", input: AddTicketsInput{UserID: "user-1", Tickets: []TicketItem{{TicketNumber: "  "}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := h.HandleAddTickets(context.Background(), nil, tt.input); err == nil {
				t.Error("HandleAddTickets() expected error")
			}
		})
	}
}

func TestHandleAddMeetings(t *testing.T) {
	h, _ := newTestHandler(nil)

	_, out, err := h.HandleAddMeetings(context.Background(), nil, AddMeetingsInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("HandleAddMeetings() error = %v", err)
	}
	if len(out.Tasks) != 2 {
		t.Fatalf("default count should queue 2 meetings, got %d", len(out.Tasks))
	}
	for _, task := range out.Tasks {
		if task.Kind != "meeting" {
			t.Errorf("kind = %q, want meeting", task.Kind)
		}
		if task.DurationMinutes != 30 {
			t.Errorf("duration = %d, want 30", task.DurationMinutes)
		}
	}

	if _, _, err := h.HandleAddMeetings(context.Background(), nil, AddMeetingsInput{UserID: "user-1", Count: 11}); err == nil {
		t.Error("count above 10 should be rejected")
	}
}

func TestHandleExtractTickets(t *testing.T) {
	extractor := &fakeExtractor{extracted: []vision.ExtractedTask{
		{TicketNumber: "ABC-7", Title: "Update docs"},
	}}
	h, _ := newTestHandler(extractor)

	image := base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G'})
	_, out, err := h.HandleExtractTickets(context.Background(), nil, ExtractTicketsInput{
		UserID: "user-1",
		Image:  image,
	})
	if err != nil {
		t.Fatalf("HandleExtractTickets() error = %v", err)
	}
	if len(out.Tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(out.Tasks))
	}
	if out.Tasks[0].TicketNumber != "ABC-7" {
		t.Errorf("ticket number = %q, want ABC-7", out.Tasks[0].TicketNumber)
	}
}

func TestHandleExtractTickets_NoTickets(t *testing.T) {
	h, store := newTestHandler(&fakeExtractor{})

	image := base64.StdEncoding.EncodeToString([]byte("screenshot"))
	_, out, err := h.HandleExtractTickets(context.Background(), nil, ExtractTicketsInput{
		UserID: "user-1",
		Image:  image,
	})
	if err != nil {
		t.Fatalf("HandleExtractTickets() error = %v", err)
	}
	if len(out.Tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(out.Tasks))
	}
	if len(store.tasks) != 0 {
		t.Error("nothing should be queued for an empty extraction")
	}
}

func TestHandleExtractTickets_Errors(t *testing.T) {
	h, _ := newTestHandler(&fakeExtractor{})

	if _, _, err := h.HandleExtractTickets(context.Background(), nil, ExtractTicketsInput{UserID: "user-1", Image: "not base64!!"}); err == nil {
		t.Error("invalid base64 should be rejected")
	}

	noExtractor, _ := newTestHandler(nil)
	image := base64.StdEncoding.EncodeToString([]byte("screenshot"))
	if _, _, err := noExtractor.HandleExtractTickets(context.Background(), nil, ExtractTicketsInput{UserID: "user-1", Image: image}); err == nil {
		t.Error("missing extractor should be reported")
	}
}

func TestHandleUpdateAndDelete(t *testing.T) {
	h, store := newTestHandler(nil)

	_, added, err := h.HandleAddTickets(context.Background(), nil, AddTicketsInput{
		UserID:  "user-1",
		Tickets: []TicketItem{{TicketNumber: "TMI-1", Title: "Old title"}},
	})
	if err != nil {
		t.Fatalf("HandleAddTickets() error = %v", err)
	}
	id := added.Tasks[0].ID

	_, updated, err := h.HandleUpdateTaskTitle(context.Background(), nil, UpdateTaskTitleInput{
		UserID: "user-1", TaskID: id, Title: "New title",
	})
	if err != nil {
		t.Fatalf("HandleUpdateTaskTitle() error = %v", err)
	}
	if updated.Task.Title != "New title" {
		t.Errorf("title = %q, want New title", updated.Task.Title)
	}

	_, deleted, err := h.HandleDeleteTask(context.Background(), nil, DeleteTaskInput{UserID: "user-1", TaskID: id})
	if err != nil {
		t.Fatalf("HandleDeleteTask() error = %v", err)
	}
	if !deleted.Deleted {
		t.Error("Deleted should be true")
	}
	if len(store.tasks) != 0 {
		t.Errorf("store has %d tasks after delete, want 0", len(store.tasks))
	}
}

func TestHandleScheduleDay_EmptyQueue(t *testing.T) {
	h, _ := newTestHandler(nil)

	_, out, err := h.HandleScheduleDay(context.Background(), nil, ScheduleDayInput{
		UserID: "user-1",
		Date:   "2026-02-09",
	})
	if err != nil {
		t.Fatalf("HandleScheduleDay() error = %v", err)
	}
	if out.Scheduled != 0 || out.Failed != 0 {
		t.Errorf("empty queue should schedule nothing, got %+v", out)
	}
	if out.Date != "2026-02-09" {
		t.Errorf("date = %q, want 2026-02-09", out.Date)
	}
}
