package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lehigh-university-libraries/gutenstats/internal/dataset"
	"github.com/lehigh-university-libraries/gutenstats/internal/gutenberg"
	"github.com/lehigh-university-libraries/gutenstats/internal/wordfreq"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWordsCmd(opts *globalOptions) *cobra.Command {
	var input string
	var output string
	var baseURL string
	var interval time.Duration
	var top int
	var concurrency int

	cmd := &cobra.Command{
		Use:   "words",
		Short: "Count the most common words of each scraped book",
		Long: `Downloads the plain-text edition of every book in the metadata CSV, removes
punctuation and English stopwords, and records the most common words.

Downloads run concurrently but share one rate limiter; rows are written in
the order of the metadata CSV. Books whose text cannot be fetched are skipped.`,
		Example: `  # Top 30 words for every scraped book
  gutenstats words --input gutenberg_books_metadata.csv --output word_frequencies.csv

  # Faster pacing with more workers
  gutenstats words --interval 250ms --concurrency 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			client := gutenberg.NewClient(
				pick(cmd, "base-url", baseURL, cfg.Scraper.BaseURL),
				gutenberg.WithInterval(pick(cmd, "interval", interval, cfg.Scraper.Interval)),
			)

			rows, err := dataset.LoadMetadataCSV(input)
			if err != nil {
				return err
			}

			return executeWords(cmd.Context(), client, rows, output,
				pick(cmd, "top", top, cfg.Scraper.TopWords),
				pick(cmd, "concurrency", concurrency, cfg.Scraper.Concurrency))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "gutenberg_books_metadata.csv", "Path to scraped metadata CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "word_frequencies.csv", "Path to output word frequency CSV")
	cmd.Flags().StringVar(&baseURL, "base-url", gutenberg.DefaultBaseURL, "Project Gutenberg base URL")
	cmd.Flags().DurationVar(&interval, "interval", gutenberg.DefaultInterval, "Minimum delay between requests")
	cmd.Flags().IntVar(&top, "top", wordfreq.DefaultTopN, "Number of words kept per book")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of concurrent downloads")

	return cmd
}

func executeWords(ctx context.Context, client *gutenberg.Client, rows []dataset.MetadataRow, output string, top, concurrency int) error {
	if top < 1 {
		return fmt.Errorf("--top must be at least 1, got %d", top)
	}
	if concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", concurrency)
	}

	slog.Info("Counting words", "books", len(rows), "top", top, "concurrency", concurrency)

	results := make([]*dataset.FrequencyRow, len(rows))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, row := range rows {
		g.Go(func() error {
			text, err := client.FetchText(gctx, row.ID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.Warn("Skipping book", "book_id", row.ID, "title", row.Title, "err", err)
				return nil
			}

			profile := wordfreq.Profile(text, top)
			if len(profile) == 0 {
				slog.Warn("Skipping book with no countable words", "book_id", row.ID, "title", row.Title)
				return nil
			}

			results[i] = &dataset.FrequencyRow{
				BookID:   row.ID,
				Title:    row.Title,
				Date:     row.PublicationDate,
				TopWords: profile,
			}
			slog.Debug("Counted words", "book_id", row.ID, "progress", done.Add(1), "total", len(rows))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to count words: %w", err)
	}

	w, err := dataset.CreateCSV(output, dataset.FrequencyHeader)
	if err != nil {
		return err
	}

	written := 0
	for _, result := range results {
		if result == nil {
			continue
		}
		if err := w.WriteFrequency(*result); err != nil {
			w.Close()
			return err
		}
		written++
	}
	if err := w.Close(); err != nil {
		return err
	}

	slog.Info("Word counts complete", "books", written, "skipped", len(rows)-written, "output", output)
	return nil
}
