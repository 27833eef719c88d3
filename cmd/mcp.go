package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/fitz/dayslot/internal/mcp"
	"github.com/fitz/dayslot/internal/vision"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agent integration",
	Long: `Start the Model Context Protocol (MCP) server that allows AI agents
to manage the task queue and trigger scheduling via JSON-RPC.

This command is typically invoked by AI agents rather than directly by
users. It enables agents to:
  - Queue tickets and meetings as pending tasks
  - Extract tickets from board screenshots
  - List, rename, and delete queued tasks
  - Schedule a day, packing pending tasks into free calendar slots

Runs over stdio by default; use --http to serve over streamable HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		httpMode, _ := cmd.Flags().GetBool("http")
		port, _ := cmd.Flags().GetInt("port")

		cfg, err := loadConfig(cmd)
		if err != nil {
			exitWithError(err)
		}

		logger := newLogger()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			logger.Info("shutting down...")
			cancel()
		}()

		service, client, err := newService(ctx, cmd, logger)
		if err != nil {
			exitWithError(err)
		}
		defer client.Close()

		var extractor vision.Extractor
		if cfg.OpenAIKey != "" {
			extractor = vision.NewOpenAIExtractor(cfg.OpenAIKey)
		}

		server := mcpserver.NewServer(service, extractor, logger)

		if httpMode {
			addr := fmt.Sprintf(":%d", port)
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.HTTPHandler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			logger.Info("starting HTTP server", "addr", addr)
			if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
				exitWithError(fmt.Errorf("HTTP server error: %w", err))
			}
			return
		}

		// Log to stderr (stdout is for MCP protocol)
		logger.Info("starting MCP server on stdio")
		if err := server.Run(ctx); err != nil {
			exitWithError(fmt.Errorf("MCP server error: %w", err))
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().Bool("http", false, "Serve over streamable HTTP instead of stdio")
	mcpCmd.Flags().Int("port", 8080, "HTTP port to listen on (only used with --http)")
}
