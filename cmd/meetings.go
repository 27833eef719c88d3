package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "Queue mock meetings for scheduling",
}

var meetingsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add meetings to the pending queue",
	Long: `Add mock meetings to the pending queue. Each meeting is 30 minutes
with a title drawn from a fixed catalog (standup, planning, retro,
reviews). Meetings are placed before tickets when scheduling.`,
	Run: func(cmd *cobra.Command, args []string) {
		user, err := requireUser(cmd)
		if err != nil {
			exitWithError(err)
		}
		count, _ := cmd.Flags().GetInt("count")

		ctx := context.Background()
		logger := newLogger()
		service, client, err := newService(ctx, cmd, logger)
		if err != nil {
			exitWithError(err)
		}
		defer client.Close()

		created, err := service.AddMeetings(ctx, user, count)
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("✓ Queued %d meeting(s)\n", len(created))
		for _, task := range created {
			fmt.Printf("  %s (%d min)\n", task.Title, task.DurationMinutes)
		}
	},
}

func init() {
	rootCmd.AddCommand(meetingsCmd)
	meetingsCmd.AddCommand(meetingsAddCmd)

	meetingsAddCmd.Flags().IntP("count", "c", 0, "Number of meetings to queue, 1 to 10 (default 2)")
}
