package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListTasksInput defines the input for the list_tasks tool.
type ListTasksInput struct {
	UserID string `json:"user_id" jsonschema:"required,ID of the user whose tasks to list"`
	Status string `json:"status,omitempty" jsonschema:"Filter by status: pending or scheduled. Omit for all tasks"`
}

// ListTasksOutput defines the output for the list_tasks tool.
type ListTasksOutput struct {
	Tasks []TaskSummary `json:"tasks"`
	Count int           `json:"count"`
}

// ListTasksTool returns the tool definition for list_tasks.
func ListTasksTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_tasks",
		Description: "List the user's tasks, newest first, optionally filtered by status (pending or scheduled).",
	}
}

// HandleListTasks handles the list_tasks tool call.
func (h *Handler) HandleListTasks(ctx context.Context, req *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
	h.Logger.Info("list_tasks", "user", input.UserID, "status", input.Status)

	if input.UserID == "" {
		return nil, ListTasksOutput{}, fmt.Errorf("user_id is required")
	}

	list, err := h.Service.List(ctx, input.UserID, input.Status)
	if err != nil {
		h.Logger.Error("list_tasks failed", "error", err)
		return nil, ListTasksOutput{}, err
	}

	summaries := toSummaries(list)
	return nil, ListTasksOutput{Tasks: summaries, Count: len(summaries)}, nil
}
