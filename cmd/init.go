package cmd

import (
	"context"
	"fmt"

	"github.com/fitz/dayslot/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the database and apply the schema",
	Long: `Initialize dayslot by starting the Postgres container (created on
first run) and applying the task and account schema.

The container is managed through the local Docker CLI; connection
settings come from the .env configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		// PersistentPreRunE already ensured the container is up.
		cfg, err := loadConfig(cmd)
		if err != nil {
			exitWithError(err)
		}

		ctx := context.Background()
		client, err := store.NewClientWithRetry(ctx, store.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			Username: cfg.DBUsername,
			Password: cfg.DBPassword,
			Database: cfg.DBDatabase,
		}, nil)
		if err != nil {
			exitWithError(fmt.Errorf("failed to connect to Postgres: %w", err))
		}
		defer client.Close()

		fmt.Printf("✓ Connected to Postgres at %s:%s\n", cfg.DBHost, cfg.DBPort)
		fmt.Printf("✓ Schema is up to date\n")
		fmt.Printf("\nQueue tickets with 'dayslot tickets add' and run 'dayslot schedule'.\n")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
