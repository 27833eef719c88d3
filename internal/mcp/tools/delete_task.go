package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DeleteTaskInput defines the input for the delete_task tool.
type DeleteTaskInput struct {
	UserID string `json:"user_id" jsonschema:"required,ID of the user who owns the task"`
	TaskID string `json:"task_id" jsonschema:"required,ID of the task to delete"`
}

// DeleteTaskOutput defines the output for the delete_task tool.
type DeleteTaskOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// DeleteTaskTool returns the tool definition for delete_task.
func DeleteTaskTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_task",
		Description: "Remove a pending task from the queue. Scheduled tasks cannot be deleted this way; their calendar events are left untouched.",
	}
}

// HandleDeleteTask handles the delete_task tool call.
func (h *Handler) HandleDeleteTask(ctx context.Context, req *mcp.CallToolRequest, input DeleteTaskInput) (*mcp.CallToolResult, DeleteTaskOutput, error) {
	h.Logger.Info("delete_task", "user", input.UserID, "task", input.TaskID)

	if input.UserID == "" {
		return nil, DeleteTaskOutput{}, fmt.Errorf("user_id is required")
	}
	if input.TaskID == "" {
		return nil, DeleteTaskOutput{}, fmt.Errorf("task_id is required")
	}

	if err := h.Service.Delete(ctx, input.UserID, input.TaskID); err != nil {
		h.Logger.Error("delete_task failed", "error", err)
		return nil, DeleteTaskOutput{}, err
	}

	return nil, DeleteTaskOutput{ID: input.TaskID, Deleted: true}, nil
}
