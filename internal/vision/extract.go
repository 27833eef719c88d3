// Package vision extracts ticket labels and titles from screenshots of
// project boards using an OpenAI vision model. Extraction is
// best-effort: malformed model output degrades to a regex scan rather
// than an error, so a flaky model can never fail the caller.
package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ExtractedTask is one ticket pulled out of a screenshot.
type ExtractedTask struct {
	TicketNumber string `json:"ticketNumber"`
	Title        string `json:"title,omitempty"`
}

// Extractor turns screenshots into tickets.
type Extractor interface {
	ExtractTasks(ctx context.Context, image []byte) ([]ExtractedTask, error)
}

// chatCompleter is the slice of the OpenAI client the extractor needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIExtractor implements Extractor on top of the OpenAI chat API.
type OpenAIExtractor struct {
	client chatCompleter
	model  string
}

// NewOpenAIExtractor creates an extractor using the given API key.
func NewOpenAIExtractor(apiKey string) *OpenAIExtractor {
	return &OpenAIExtractor{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}
}

const extractionPrompt = `This is a screenshot of a project management board (Jira, Linear, etc.) with tasks/tickets.

Extract ALL visible tasks. For each task, extract:
1. Ticket number/ID (e.g., TMI-1951, MKTG-1884, etc.)
2. The full task title/description shown next to the ticket number

Return a JSON array ONLY (no markdown, no code fences):
[
  { "ticketNumber": "TMI-1951", "title": "Income Shifting: Savings calculated across all businesses" }
]

Rules:
- Extract the COMPLETE task title/description, not just the first few words
- Include all visible tickets, even if partially truncated
- If a ticket has no visible title, use the ticket number as the title
- Return [] if no tickets found
- CRITICAL: Return ONLY the JSON array, no other text`

// ExtractTasks sends the screenshot to the vision model and parses the
// result. The image format is detected from the bytes.
func (e *OpenAIExtractor) ExtractTasks(ctx context.Context, image []byte) ([]ExtractedTask, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	mimeType := http.DetectContentType(image)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: extractionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract tickets from image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("failed to extract tickets from image: empty response")
	}

	return ParseExtraction(resp.Choices[0].Message.Content), nil
}

// ticketTokenPattern matches standalone ticket labels such as
// "TMI-1951" in free text.
var ticketTokenPattern = regexp.MustCompile(`\b[A-Z]{2,}-\d+\b`)

// ParseExtraction interprets the model's reply. Strict JSON is
// preferred; anything else falls back to scanning for ticket-like
// tokens, losing titles but never failing.
func ParseExtraction(content string) []ExtractedTask {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed []ExtractedTask
	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		var tasks []ExtractedTask
		for _, item := range parsed {
			number := strings.TrimSpace(item.TicketNumber)
			if number == "" {
				continue
			}
			tasks = append(tasks, ExtractedTask{
				TicketNumber: number,
				Title:        strings.TrimSpace(item.Title),
			})
		}
		return tasks
	}

	var tasks []ExtractedTask
	for _, token := range ticketTokenPattern.FindAllString(content, -1) {
		tasks = append(tasks, ExtractedTask{TicketNumber: token})
	}
	return tasks
}
