package tools

import (
	"context"
	"fmt"

	"github.com/fitz/dayslot/internal/tasks"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TicketItem is one ticket in the add_tickets input.
type TicketItem struct {
	TicketNumber string `json:"ticket_number" jsonschema:"required,The ticket identifier, e.g. TMI-123"`
	Title        string `json:"title,omitempty" jsonschema:"Short description of the work. Defaults to the ticket number when omitted"`
}

// AddTicketsInput defines the input for the add_tickets tool.
type AddTicketsInput struct {
	UserID  string       `json:"user_id" jsonschema:"required,ID of the user whose queue the tickets are added to"`
	Tickets []TicketItem `json:"tickets" jsonschema:"required,Tickets to queue for scheduling (at least one)"`
}

// AddTicketsOutput defines the output for the add_tickets tool.
type AddTicketsOutput struct {
	Tasks []TaskSummary `json:"tasks"`
}

// AddTicketsTool returns the tool definition for add_tickets.
func AddTicketsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_tickets",
		Description: "Queue one or more tickets as pending tasks. Each ticket is assigned a random work duration of 60 or 120 minutes and will be placed on the calendar by the next schedule_day run.",
	}
}

// HandleAddTickets handles the add_tickets tool call.
func (h *Handler) HandleAddTickets(ctx context.Context, req *mcp.CallToolRequest, input AddTicketsInput) (*mcp.CallToolResult, AddTicketsOutput, error) {
	h.Logger.Info("add_tickets", "user", input.UserID, "count", len(input.Tickets))

	if input.UserID == "" {
		return nil, AddTicketsOutput{}, fmt.Errorf("user_id is required")
	}
	if len(input.Tickets) == 0 {
		return nil, AddTicketsOutput{}, fmt.Errorf("tickets is required: provide at least one ticket")
	}

	items := make([]tasks.TicketInput, 0, len(input.Tickets))
	for _, t := range input.Tickets {
		items = append(items, tasks.TicketInput{Number: t.TicketNumber, Title: t.Title})
	}

	created, err := h.Service.AddTickets(ctx, input.UserID, items)
	if err != nil {
		h.Logger.Error("add_tickets failed", "error", err)
		return nil, AddTicketsOutput{}, err
	}

	return nil, AddTicketsOutput{Tasks: toSummaries(created)}, nil
}
