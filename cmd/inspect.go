package cmd

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/gutenstats/internal/dataset"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/spf13/cobra"
)

func newInspectCmd(opts *globalOptions) *cobra.Command {
	var datasetPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print parsed records from a merged dataset",
		Long: `Loads records from a merged CSV, JSONL, or parquet dataset and prints them
as they are parsed: derived year, split subjects, and decoded word profile.

Useful for checking that dates and profiles survived the merge.`,
		Example: `  # Inspect the first 5 records
  gutenstats inspect --dataset merged_books_data.csv --limit 5

  # Inspect every record
  gutenstats inspect --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			datasetPath = pick(cmd, "dataset", datasetPath, opts.cfg.Dataset)

			loader := dataset.NewLoader(datasetPath)

			var books []models.Book
			var err error
			if limit > 0 {
				books, err = loader.LoadSample(limit)
			} else {
				books, err = loader.Load()
			}
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			fmt.Printf("Loaded %d records from %s\n", len(books), datasetPath)
			fmt.Println(strings.Repeat("=", 80))

			for i, book := range books {
				if err := cmd.Context().Err(); err != nil {
					fmt.Println("\nInspection interrupted.")
					return nil
				}
				printBook(i+1, len(books), book)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "merged_books_data.csv", "Path to merged dataset")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect (0 for all)")

	return cmd
}

func printBook(n, total int, book models.Book) {
	fmt.Printf("\nRECORD %d/%d\n", n, total)
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("ID:        %s\n", book.ID)
	fmt.Printf("Title:     %s\n", book.Title)
	fmt.Printf("Author:    %s\n", book.Author)

	year := "none"
	if book.HasYear() {
		year = fmt.Sprint(*book.Year)
	}
	fmt.Printf("Published: %s (year: %s)\n", book.PublicationDate, year)

	if book.Language != "" {
		fmt.Printf("Language:  %s\n", book.Language)
	}
	if book.LoCClass != "" {
		fmt.Printf("LoC Class: %s\n", book.LoCClass)
	}
	fmt.Printf("Subjects:  %d\n", len(book.Subjects))
	for _, subject := range book.Subjects {
		fmt.Printf("  - %s\n", subject)
	}

	fmt.Printf("Top words: %d\n", len(book.TopWords))
	for _, wc := range book.TopWords {
		fmt.Printf("  %-20s %d\n", wc.Word, wc.Count)
	}
}
