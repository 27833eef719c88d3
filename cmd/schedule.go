package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Place all pending tasks on the calendar",
	Long: `Place all pending tasks into free slots of the target date's
09:00-18:00 workday, meetings before tickets, earliest fit first.

Tasks that cannot be placed, or whose calendar event cannot be
created, are removed from the queue and counted as failed. Existing
calendar events are never moved.`,
	Run: func(cmd *cobra.Command, args []string) {
		user, err := requireUser(cmd)
		if err != nil {
			exitWithError(err)
		}

		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		ctx := context.Background()
		logger := newLogger()
		service, client, err := newService(ctx, cmd, logger)
		if err != nil {
			exitWithError(err)
		}
		defer client.Close()

		result, err := service.ScheduleDay(ctx, user, date)
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("✓ Scheduled %d task(s) on %s", result.Scheduled, date)
		if result.Failed > 0 {
			fmt.Printf(", %d could not be placed and were removed", result.Failed)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringP("date", "D", "", "Target date in YYYY-MM-DD form (default today)")
}
