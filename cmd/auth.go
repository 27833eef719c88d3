package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fitz/dayslot/internal/models"
	"github.com/fitz/dayslot/internal/store"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage calendar credentials",
}

var authLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link a Google account by storing its OAuth tokens",
	Long: `Store a Google OAuth access token for the user so scheduling runs
can write to their calendar. Tokens are obtained out of band (for
example from the OAuth playground or an existing web session); dayslot
does not drive a browser flow itself.`,
	Run: func(cmd *cobra.Command, args []string) {
		user, err := requireUser(cmd)
		if err != nil {
			exitWithError(err)
		}

		accessToken, _ := cmd.Flags().GetString("token")
		if accessToken == "" {
			exitWithError(fmt.Errorf("--token is required"))
		}
		refreshToken, _ := cmd.Flags().GetString("refresh-token")
		expiresIn, _ := cmd.Flags().GetDuration("expires-in")

		cfg, err := loadConfig(cmd)
		if err != nil {
			exitWithError(err)
		}

		ctx := context.Background()
		client, err := store.NewClient(ctx, store.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			Username: cfg.DBUsername,
			Password: cfg.DBPassword,
			Database: cfg.DBDatabase,
		})
		if err != nil {
			exitWithError(fmt.Errorf("failed to connect to Postgres: %w", err))
		}
		defer client.Close()

		accounts := store.NewAccountRepository(client)

		account := models.Account{
			UserID:       user,
			ProviderID:   "google",
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		}
		// Reuse the existing row so re-linking refreshes tokens in place.
		if existing, err := accounts.GetByUser(ctx, user); err == nil && existing != nil {
			account.ID = existing.ID
		}
		if expiresIn > 0 {
			expiry := time.Now().Add(expiresIn)
			account.ExpiresAt = &expiry
		}

		if _, err := accounts.Upsert(ctx, account); err != nil {
			exitWithError(err)
		}

		fmt.Printf("✓ Linked Google account for user %s\n", user)
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLinkCmd)

	authLinkCmd.Flags().String("token", "", "OAuth access token (required)")
	authLinkCmd.Flags().String("refresh-token", "", "OAuth refresh token")
	authLinkCmd.Flags().Duration("expires-in", 0, "Access token lifetime, e.g. 1h")
}
