package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fitz/dayslot/internal/models"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Inspect and edit the task queue",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `List the user's tasks, newest first, optionally filtered by status.`,
	Run: func(cmd *cobra.Command, args []string) {
		user, err := requireUser(cmd)
		if err != nil {
			exitWithError(err)
		}
		status, _ := cmd.Flags().GetString("status")

		ctx := context.Background()
		logger := newLogger()
		service, client, err := newService(ctx, cmd, logger)
		if err != nil {
			exitWithError(err)
		}
		defer client.Close()

		list, err := service.List(ctx, user, status)
		if err != nil {
			exitWithError(err)
		}

		if len(list) == 0 {
			fmt.Println("No tasks.")
			return
		}

		for _, task := range list {
			printTask(task)
		}
	},
}

var tasksEditCmd = &cobra.Command{
	Use:   "edit [id] [title...]",
	Short: "Rename a pending task",
	Long:  `Rename a pending task. Scheduled tasks are immutable.`,
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		user, err := requireUser(cmd)
		if err != nil {
			exitWithError(err)
		}

		ctx := context.Background()
		logger := newLogger()
		service, client, err := newService(ctx, cmd, logger)
		if err != nil {
			exitWithError(err)
		}
		defer client.Close()

		title := strings.Join(args[1:], " ")
		updated, err := service.UpdateTitle(ctx, user, args[0], title)
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("✓ Updated task %s\n", updated.ID)
		printTask(*updated)
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a pending task from the queue",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user, err := requireUser(cmd)
		if err != nil {
			exitWithError(err)
		}

		ctx := context.Background()
		logger := newLogger()
		service, client, err := newService(ctx, cmd, logger)
		if err != nil {
			exitWithError(err)
		}
		defer client.Close()

		if err := service.Delete(ctx, user, args[0]); err != nil {
			exitWithError(err)
		}

		fmt.Printf("✓ Deleted task %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksEditCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)

	tasksListCmd.Flags().StringP("status", "s", "", "Filter by status: pending or scheduled")
}

// printTask renders one task line for the terminal.
func printTask(task models.Task) {
	when := ""
	if task.ScheduledStart != nil && task.ScheduledEnd != nil {
		when = fmt.Sprintf("  %s - %s",
			task.ScheduledStart.Format("2006-01-02 15:04"),
			task.ScheduledEnd.Format("15:04"))
	}
	fmt.Printf("%s  [%s/%s]  %s (%d min)%s\n",
		task.ID, task.Kind, task.Status, task.EventTitle(), task.DurationMinutes, when)
}
