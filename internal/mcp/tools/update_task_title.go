package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// UpdateTaskTitleInput defines the input for the update_task_title tool.
type UpdateTaskTitleInput struct {
	UserID string `json:"user_id" jsonschema:"required,ID of the user who owns the task"`
	TaskID string `json:"task_id" jsonschema:"required,ID of the task to rename"`
	Title  string `json:"title" jsonschema:"required,The new title"`
}

// UpdateTaskTitleOutput defines the output for the update_task_title tool.
type UpdateTaskTitleOutput struct {
	Task TaskSummary `json:"task"`
}

// UpdateTaskTitleTool returns the tool definition for update_task_title.
func UpdateTaskTitleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_task_title",
		Description: "Rename a pending task. Scheduled tasks are immutable and cannot be renamed.",
	}
}

// HandleUpdateTaskTitle handles the update_task_title tool call.
func (h *Handler) HandleUpdateTaskTitle(ctx context.Context, req *mcp.CallToolRequest, input UpdateTaskTitleInput) (*mcp.CallToolResult, UpdateTaskTitleOutput, error) {
	h.Logger.Info("update_task_title", "user", input.UserID, "task", input.TaskID)

	if input.UserID == "" {
		return nil, UpdateTaskTitleOutput{}, fmt.Errorf("user_id is required")
	}
	if input.TaskID == "" {
		return nil, UpdateTaskTitleOutput{}, fmt.Errorf("task_id is required")
	}

	updated, err := h.Service.UpdateTitle(ctx, input.UserID, input.TaskID, input.Title)
	if err != nil {
		h.Logger.Error("update_task_title failed", "error", err)
		return nil, UpdateTaskTitleOutput{}, err
	}

	return nil, UpdateTaskTitleOutput{Task: toSummary(*updated)}, nil
}
