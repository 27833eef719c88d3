// Package cmd contains all CLI command definitions.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fitz/dayslot/internal/config"
	"github.com/fitz/dayslot/internal/docker"
	"github.com/fitz/dayslot/internal/gcal"
	"github.com/fitz/dayslot/internal/store"
	"github.com/fitz/dayslot/internal/tasks"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dayslot",
	Short: "Dayslot - Calendar task auto-scheduler",
	Long: `Dayslot queues tickets and meetings as pending tasks and packs them
into the free slots of a 09:00-18:00 workday on Google Calendar.

Meetings are placed before tickets, earliest fit first. Tasks that
cannot be placed are dropped from the queue so the run always finishes
with an accurate tally.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip Docker initialization for these commands
		skipCommands := map[string]bool{
			"completion": true,
			"help":       true,
			"config":     true,
			"set":        true,
			"get":        true,
			"list":       true,
		}

		if skipCommands[cmd.Name()] {
			return nil
		}

		return ensurePostgresContainer(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "Directory whose .env file configures dayslot")
	rootCmd.PersistentFlags().StringP("user", "u", os.Getenv("DAYSLOT_USER"), "User whose queue and calendar to operate on")
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// newLogger builds the JSON logger all commands share. Stdout stays
// free for command output (and the MCP protocol).
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// loadConfig resolves the --dir flag and loads configuration from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("dir")
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid directory: %w", err)
	}

	cfg, err := config.Load(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nPlease run 'dayslot config set DB_PASSWORD <password>' to configure", err)
	}
	return cfg, nil
}

// requireUser resolves the --user flag, which every task command needs.
func requireUser(cmd *cobra.Command) (string, error) {
	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		return "", fmt.Errorf("user is required: pass --user or set DAYSLOT_USER")
	}
	return user, nil
}

// timezone resolves the configured scheduling zone.
func timezone(cfg *config.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

// newService wires the full task service from configuration. The
// caller must Close the returned store client.
func newService(ctx context.Context, cmd *cobra.Command, logger *slog.Logger) (*tasks.Service, *store.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	loc, err := timezone(cfg)
	if err != nil {
		return nil, nil, err
	}

	client, err := store.NewClient(ctx, store.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Username: cfg.DBUsername,
		Password: cfg.DBPassword,
		Database: cfg.DBDatabase,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Postgres: %w\nEnsure the Postgres container is running (dayslot init)", err)
	}

	taskRepo := store.NewTaskRepository(client)
	accountRepo := store.NewAccountRepository(client)
	calendar := tasks.NewGoogleCalendar(gcal.NewService(accountRepo, loc))

	return tasks.NewService(taskRepo, calendar, loc, logger), client, nil
}

// ensurePostgresContainer ensures that the Postgres Docker container is running.
func ensurePostgresContainer(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	containerCfg := &docker.ContainerConfig{
		Name:     cfg.ContainerName,
		Image:    cfg.PostgresImage,
		Port:     cfg.DBPort,
		Username: cfg.DBUsername,
		Password: cfg.DBPassword,
		Database: cfg.DBDatabase,
	}

	created, err := docker.EnsureContainer(containerCfg)
	if err != nil {
		return fmt.Errorf("failed to ensure Postgres container: %w", err)
	}

	if created {
		fmt.Fprintf(os.Stderr, "✓ Created Postgres container '%s'\n", containerCfg.Name)
		fmt.Fprintf(os.Stderr, "  Waiting for Postgres to be ready...\n")

		if err := docker.WaitForContainer(containerCfg.Name, 30*time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "  ✓ Postgres is ready\n")
		}
	}

	return nil
}
