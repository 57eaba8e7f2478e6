package cmd

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/gutenstats/internal/analysis"
	"github.com/lehigh-university-libraries/gutenstats/internal/report"
	"github.com/spf13/cobra"
)

func newSimilarCmd(opts *globalOptions) *cobra.Command {
	var datasetPath string
	var bookID string
	var k int
	var format string

	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Recommend books similar to a given book",
		Long: `Scores every other book in the dataset against the chosen one and lists
the best matches. The score is the mean of the Jaccard index of the subject
sets and the cosine similarity of the word profiles.`,
		Example: `  # Five books most like Frankenstein
  gutenstats similar --id 84

  # Ten recommendations as JSON
  gutenstats similar --id 1342 --k 10 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(pick(cmd, "dataset", datasetPath, opts.cfg.Dataset))
			if err != nil {
				return err
			}

			book, ok := snap.Book(bookID)
			if !ok {
				return fmt.Errorf("book %s not found in %s", bookID, snap.Source)
			}

			r := report.SimilarReport{
				BookID:          book.ID,
				Title:           book.Title,
				K:               k,
				Recommendations: analysis.TopK(book, snap.Books(), k),
			}
			return report.WriteSimilar(os.Stdout, r, format)
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "merged_books_data.csv", "Path to merged dataset")
	cmd.Flags().StringVar(&bookID, "id", "", "Book ID to find neighbours for (required)")
	cmd.Flags().IntVar(&k, "k", 5, "Number of recommendations")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")

	_ = cmd.MarkFlagRequired("id")

	return cmd
}
