package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/devinsight/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves reports over HTTP",
	Long:  `Starts an HTTP server exposing GET /api/github/{username} and GET /health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetString("port")
		}

		aggregator, err := newAggregator(cfg, logger)
		if err != nil {
			return err
		}

		server := httpapi.NewServer(cfg.HTTP, httpapi.NewRouter(aggregator, logger), logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()
		fmt.Fprintf(os.Stderr, "Server is running on %s\n", server.Addr())

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-stop:
		}
		logger.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Println("Server stopped gracefully.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Listen port (defaults to $PORT or 5000)")
	serveCmd.Flags().String("api", "rest", "GitHub API backend: rest or graphql (graphql needs GITHUB_TOKEN)")
}
