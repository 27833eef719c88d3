package tools

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/fitz/dayslot/internal/tasks"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ExtractTicketsInput defines the input for the extract_tickets tool.
type ExtractTicketsInput struct {
	UserID string `json:"user_id" jsonschema:"required,ID of the user whose queue the extracted tickets are added to"`
	Image  string `json:"image" jsonschema:"required,Base64-encoded screenshot of a ticket board or list"`
}

// ExtractTicketsOutput defines the output for the extract_tickets tool.
type ExtractTicketsOutput struct {
	Tasks []TaskSummary `json:"tasks"`
}

// ExtractTicketsTool returns the tool definition for extract_tickets.
func ExtractTicketsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "extract_tickets",
		Description: "Extract ticket numbers and titles from a screenshot using the vision model and queue them as pending tasks. Returns the queued tasks; an image with no recognizable tickets yields an empty list.",
	}
}

// HandleExtractTickets handles the extract_tickets tool call.
func (h *Handler) HandleExtractTickets(ctx context.Context, req *mcp.CallToolRequest, input ExtractTicketsInput) (*mcp.CallToolResult, ExtractTicketsOutput, error) {
	h.Logger.Info("extract_tickets", "user", input.UserID, "image_len", len(input.Image))

	if input.UserID == "" {
		return nil, ExtractTicketsOutput{}, fmt.Errorf("user_id is required")
	}
	if input.Image == "" {
		return nil, ExtractTicketsOutput{}, fmt.Errorf("image is required")
	}
	if h.Extractor == nil {
		return nil, ExtractTicketsOutput{}, fmt.Errorf("ticket extraction is not configured: set OPENAI_API_KEY")
	}

	image, err := base64.StdEncoding.DecodeString(input.Image)
	if err != nil {
		return nil, ExtractTicketsOutput{}, fmt.Errorf("image must be valid base64: %w", err)
	}

	extracted, err := h.Extractor.ExtractTasks(ctx, image)
	if err != nil {
		h.Logger.Error("extract_tickets failed", "error", err)
		return nil, ExtractTicketsOutput{}, fmt.Errorf("failed to extract tickets: %w", err)
	}
	if len(extracted) == 0 {
		return nil, ExtractTicketsOutput{Tasks: []TaskSummary{}}, nil
	}

	items := make([]tasks.TicketInput, 0, len(extracted))
	for _, e := range extracted {
		items = append(items, tasks.TicketInput{Number: e.TicketNumber, Title: e.Title})
	}

	created, err := h.Service.AddTickets(ctx, input.UserID, items)
	if err != nil {
		h.Logger.Error("extract_tickets queue failed", "error", err)
		return nil, ExtractTicketsOutput{}, err
	}

	return nil, ExtractTicketsOutput{Tasks: toSummaries(created)}, nil
}
