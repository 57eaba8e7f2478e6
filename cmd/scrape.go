package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lehigh-university-libraries/gutenstats/internal/dataset"
	"github.com/lehigh-university-libraries/gutenstats/internal/gutenberg"
	"github.com/spf13/cobra"
)

func newScrapeCmd(opts *globalOptions) *cobra.Command {
	var output string
	var baseURL string
	var interval time.Duration
	var limit int

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape metadata for the Project Gutenberg top books",
		Long: `Fetches the top 1000 books list from Project Gutenberg and scrapes each
book's catalog page for its author, release date, language, LoC class, and
subjects.

Books whose page cannot be fetched are logged and skipped.`,
		Example: `  # Scrape the full list at one request per second
  gutenstats scrape --output gutenberg_books_metadata.csv

  # Scrape only the first 50 books
  gutenstats scrape --limit 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			client := gutenberg.NewClient(
				pick(cmd, "base-url", baseURL, cfg.Scraper.BaseURL),
				gutenberg.WithInterval(pick(cmd, "interval", interval, cfg.Scraper.Interval)),
			)

			w, err := dataset.CreateCSV(output, dataset.MetadataHeader)
			if err != nil {
				return err
			}

			written, scrapeErr := client.Scrape(cmd.Context(), pick(cmd, "limit", limit, cfg.Scraper.Limit), w.WriteMetadata)
			if err := w.Close(); err != nil && scrapeErr == nil {
				scrapeErr = err
			}
			if scrapeErr != nil {
				return fmt.Errorf("failed to scrape catalog: %w", scrapeErr)
			}

			slog.Info("Scrape complete", "books", written, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "gutenberg_books_metadata.csv", "Path to output metadata CSV")
	cmd.Flags().StringVar(&baseURL, "base-url", gutenberg.DefaultBaseURL, "Project Gutenberg base URL")
	cmd.Flags().DurationVar(&interval, "interval", gutenberg.DefaultInterval, "Minimum delay between requests")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of books to scrape (0 for all)")

	return cmd
}
