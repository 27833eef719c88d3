package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fitz/dayslot/internal/tasks"
	"github.com/fitz/dayslot/internal/vision"
	"github.com/spf13/cobra"
)

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Queue tickets for scheduling",
}

var ticketsAddCmd = &cobra.Command{
	Use:   "add [number[:title]]...",
	Short: "Add tickets to the pending queue",
	Long: `Add one or more tickets to the pending queue. Each argument is a
ticket number, optionally followed by a colon and a title:

  dayslot tickets add TMI-101 "TMI-102:Fix login redirect"

A ticket without a title uses its number as the title. Each ticket is
assigned a random work duration of 60 or 120 minutes.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user, err := requireUser(cmd)
		if err != nil {
			exitWithError(err)
		}

		items := make([]tasks.TicketInput, 0, len(args))
		for _, arg := range args {
			number, title, _ := strings.Cut(arg, ":")
			items = append(items, tasks.TicketInput{Number: number, Title: title})
		}

		ctx := context.Background()
		logger := newLogger()
		service, client, err := newService(ctx, cmd, logger)
		if err != nil {
			exitWithError(err)
		}
		defer client.Close()

		created, err := service.AddTickets(ctx, user, items)
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("✓ Queued %d ticket(s)\n", len(created))
		for _, task := range created {
			fmt.Printf("  %s  %s (%d min)\n", task.TicketNumber, task.Title, task.DurationMinutes)
		}
	},
}

var ticketsExtractCmd = &cobra.Command{
	Use:   "extract [image]",
	Short: "Extract tickets from a screenshot and queue them",
	Long: `Read a screenshot of a ticket board, extract ticket numbers and
titles with the vision model, and queue them as pending tasks.

Requires OPENAI_API_KEY in the configuration.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user, err := requireUser(cmd)
		if err != nil {
			exitWithError(err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			exitWithError(err)
		}
		if cfg.OpenAIKey == "" {
			exitWithError(fmt.Errorf("OPENAI_API_KEY is not set. Run 'dayslot config set OPENAI_API_KEY <key>'"))
		}

		image, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError(fmt.Errorf("failed to read image: %w", err))
		}

		ctx := context.Background()
		logger := newLogger()
		service, client, err := newService(ctx, cmd, logger)
		if err != nil {
			exitWithError(err)
		}
		defer client.Close()

		extractor := vision.NewOpenAIExtractor(cfg.OpenAIKey)
		extracted, err := extractor.ExtractTasks(ctx, image)
		if err != nil {
			exitWithError(fmt.Errorf("failed to extract tickets: %w", err))
		}
		if len(extracted) == 0 {
			fmt.Println("No tickets found in the image.")
			return
		}

		items := make([]tasks.TicketInput, 0, len(extracted))
		for _, e := range extracted {
			items = append(items, tasks.TicketInput{Number: e.TicketNumber, Title: e.Title})
		}

		created, err := service.AddTickets(ctx, user, items)
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("✓ Extracted and queued %d ticket(s)\n", len(created))
		for _, task := range created {
			fmt.Printf("  %s  %s (%d min)\n", task.TicketNumber, task.Title, task.DurationMinutes)
		}
	},
}

func init() {
	rootCmd.AddCommand(ticketsCmd)
	ticketsCmd.AddCommand(ticketsAddCmd)
	ticketsCmd.AddCommand(ticketsExtractCmd)
}
