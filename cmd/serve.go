package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/gutenstats/internal/dashboard"
	"github.com/lehigh-university-libraries/gutenstats/internal/dataset"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/lehigh-university-libraries/gutenstats/internal/snapshot"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var port string
	var datasetPath string
	var cacheSize int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		Long: `Loads the merged dataset and serves the dashboard JSON API: book search,
random picks, per-year word and subject trends, and similar-book
recommendations.

POST /api/reload re-reads the dataset from disk without a restart.`,
		Example: `  # Start server on default port 8888
  gutenstats serve --dataset merged_books_data.csv

  # Start server on custom port
  gutenstats serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			port = pick(cmd, "port", port, cfg.Server.Port)
			datasetPath = pick(cmd, "dataset", datasetPath, cfg.Dataset)
			cacheSize = pick(cmd, "cache-size", cacheSize, cfg.Server.CacheSize)

			load := func(ctx context.Context) ([]models.Book, error) {
				return dataset.NewLoader(datasetPath).Load()
			}

			service := dashboard.NewService(snapshot.NewStore(), datasetPath, load, cacheSize)
			if _, err := service.Reload(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			// Set up routes
			mux := http.NewServeMux()
			dashboard.NewHandler(service).Routes(mux)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Dashboard API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "merged_books_data.csv", "Path to merged dataset")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 1024, "Number of memoized recommendation lists (0 disables)")

	return cmd
}
