package cmd

import (
	"log/slog"

	"github.com/lehigh-university-libraries/gutenstats/internal/dataset"
	"github.com/spf13/cobra"
)

func newMergeCmd(opts *globalOptions) *cobra.Command {
	var metadataPath string
	var frequenciesPath string
	var output string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Join the metadata and word frequency tables",
		Long: `Left joins the scraped metadata to the word frequency table on the book ID.
Books without a word profile keep an empty one.

The output format follows the file extension: .csv, .jsonl, or .parquet.`,
		Example: `  # Merge into the CSV the dashboard reads
  gutenstats merge --metadata gutenberg_books_metadata.csv --frequencies word_frequencies.csv

  # Merge into parquet
  gutenstats merge --output books.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output = pick(cmd, "output", output, opts.cfg.Dataset)

			metadata, err := dataset.LoadMetadataCSV(metadataPath)
			if err != nil {
				return err
			}

			frequencies, err := dataset.LoadFrequencyCSV(frequenciesPath)
			if err != nil {
				return err
			}

			books := dataset.Merge(metadata, frequencies)
			if err := dataset.WriteBooks(output, books); err != nil {
				return err
			}

			slog.Info("Merged dataset written", "books", len(books), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&metadataPath, "metadata", "gutenberg_books_metadata.csv", "Path to scraped metadata CSV")
	cmd.Flags().StringVar(&frequenciesPath, "frequencies", "word_frequencies.csv", "Path to word frequency CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "merged_books_data.csv", "Path to merged dataset (.csv, .jsonl, .parquet)")

	return cmd
}
