package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScheduleDayInput defines the input for the schedule_day tool.
type ScheduleDayInput struct {
	UserID string `json:"user_id" jsonschema:"required,ID of the user whose pending tasks to schedule"`
	Date   string `json:"date,omitempty" jsonschema:"Target date in YYYY-MM-DD form (default: today)"`
}

// ScheduleDayOutput defines the output for the schedule_day tool.
type ScheduleDayOutput struct {
	Date      string `json:"date"`
	Scheduled int    `json:"scheduled"`
	Failed    int    `json:"failed"`
}

// ScheduleDayTool returns the tool definition for schedule_day.
func ScheduleDayTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "schedule_day",
		Description: "Place all pending tasks into free slots of the date's 09:00-18:00 workday, meetings before tickets, earliest fit first. Tasks that cannot be placed or whose event creation fails are removed from the queue and counted as failed.",
	}
}

// HandleScheduleDay handles the schedule_day tool call.
func (h *Handler) HandleScheduleDay(ctx context.Context, req *mcp.CallToolRequest, input ScheduleDayInput) (*mcp.CallToolResult, ScheduleDayOutput, error) {
	if input.UserID == "" {
		return nil, ScheduleDayOutput{}, fmt.Errorf("user_id is required")
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	h.Logger.Info("schedule_day", "user", input.UserID, "date", date)

	result, err := h.Service.ScheduleDay(ctx, input.UserID, date)
	if err != nil {
		h.Logger.Error("schedule_day failed", "error", err)
		return nil, ScheduleDayOutput{}, err
	}

	h.Logger.Info("schedule_day complete", "user", input.UserID, "scheduled", result.Scheduled, "failed", result.Failed)
	return nil, ScheduleDayOutput{
		Date:      date,
		Scheduled: result.Scheduled,
		Failed:    result.Failed,
	}, nil
}
