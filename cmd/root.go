package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/gutenstats/internal/config"
	"github.com/spf13/cobra"
)

// globalOptions carries the persistent flags and the resolved configuration
type globalOptions struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "gutenstats",
		Short: "Project Gutenberg word statistics and book recommendations",
		Long: `Gutenstats scrapes the Project Gutenberg top books list, counts the most
common words of each book, merges the tables, and answers trend and
"similar books" queries over the merged dataset.

The pipeline runs in stages: scrape -> words -> merge, after which trends,
similar, inspect, and serve read the merged dataset.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			setupLogging(opts.verbose)

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (default "+config.DefaultFile+" if present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newScrapeCmd(opts))
	cmd.AddCommand(newWordsCmd(opts))
	cmd.AddCommand(newMergeCmd(opts))
	cmd.AddCommand(newTagCmd(opts))
	cmd.AddCommand(newTrendsCmd(opts))
	cmd.AddCommand(newSimilarCmd(opts))
	cmd.AddCommand(newInspectCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

// pick returns the flag value when the user set it, otherwise the configured one
func pick[T any](cmd *cobra.Command, name string, flagValue, configured T) T {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configured
}
