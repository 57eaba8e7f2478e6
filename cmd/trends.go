package cmd

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/gutenstats/internal/report"
	"github.com/spf13/cobra"
)

func newTrendsCmd(opts *globalOptions) *cobra.Command {
	var datasetPath string
	var year int
	var kind string
	var top int
	var format string

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show the most frequent words or subjects per publication year",
		Long: `Folds the word profiles (or subject tags) of every dated book into one
table per publication year and prints the top entries of each year.

Books without a parseable publication date are left out.`,
		Example: `  # Top 10 words for every year
  gutenstats trends --dataset merged_books_data.csv

  # Top 5 subjects of 1998 as YAML
  gutenstats trends --year 1998 --kind subjects --top 5 --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(pick(cmd, "dataset", datasetPath, opts.cfg.Dataset))
			if err != nil {
				return err
			}

			if top < 1 {
				return fmt.Errorf("--top must be at least 1, got %d", top)
			}

			var lookup report.TrendLookup
			switch kind {
			case "words":
				lookup = snap.WordTrend
			case "subjects":
				lookup = snap.SubjectTrend
			default:
				return fmt.Errorf("unsupported kind: %s (must be words or subjects)", kind)
			}

			years := snap.Years()
			if cmd.Flags().Changed("year") {
				if _, ok := lookup(year); !ok {
					return fmt.Errorf("no dated books for year %d", year)
				}
				years = []int{year}
			}

			r := report.BuildTrends(kind, lookup, snap.YearCounts(), years, top)
			return report.WriteTrends(os.Stdout, r, format)
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "merged_books_data.csv", "Path to merged dataset")
	cmd.Flags().IntVar(&year, "year", 0, "Only show this publication year")
	cmd.Flags().StringVar(&kind, "kind", "words", "What to count (words or subjects)")
	cmd.Flags().IntVarP(&top, "top", "n", 10, "Number of entries per year")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, csv, yaml)")

	return cmd
}
