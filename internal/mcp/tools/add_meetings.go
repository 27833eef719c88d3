package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddMeetingsInput defines the input for the add_meetings tool.
type AddMeetingsInput struct {
	UserID string `json:"user_id" jsonschema:"required,ID of the user whose queue the meetings are added to"`
	Count  int    `json:"count,omitempty" jsonschema:"Number of meetings to queue, 1 to 10 (default: 2)"`
}

// AddMeetingsOutput defines the output for the add_meetings tool.
type AddMeetingsOutput struct {
	Tasks []TaskSummary `json:"tasks"`
}

// AddMeetingsTool returns the tool definition for add_meetings.
func AddMeetingsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_meetings",
		Description: "Queue mock meetings as pending tasks. Each meeting is 30 minutes with a title drawn from a fixed catalog (standup, planning, retro, reviews). Meetings are placed before tickets by schedule_day.",
	}
}

// HandleAddMeetings handles the add_meetings tool call.
func (h *Handler) HandleAddMeetings(ctx context.Context, req *mcp.CallToolRequest, input AddMeetingsInput) (*mcp.CallToolResult, AddMeetingsOutput, error) {
	h.Logger.Info("add_meetings", "user", input.UserID, "count", input.Count)

	if input.UserID == "" {
		return nil, AddMeetingsOutput{}, fmt.Errorf("user_id is required")
	}

	created, err := h.Service.AddMeetings(ctx, input.UserID, input.Count)
	if err != nil {
		h.Logger.Error("add_meetings failed", "error", err)
		return nil, AddMeetingsOutput{}, err
	}

	return nil, AddMeetingsOutput{Tasks: toSummaries(created)}, nil
}
