package cmd

import (
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/gutenstats/internal/dataset"
	"github.com/lehigh-university-libraries/gutenstats/internal/tagging"
	"github.com/spf13/cobra"
)

func newTagCmd(opts *globalOptions) *cobra.Command {
	var datasetPath string
	var output string
	var provider string
	var model string

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Suggest subjects for books the catalog left untagged",
		Long: `Asks an LLM for up to five subject headings for every book whose subject
list is empty, using the title, author, LoC class, and most common words as
context. Books the provider cannot tag keep an empty subject list.`,
		Example: `  # Tag with a local Ollama model
  gutenstats tag --dataset merged_books_data.csv --output tagged_books.csv

  # Tag with OpenAI
  gutenstats tag --provider openai --model gpt-4o-mini --output tagged_books.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			llm := opts.cfg.LLM
			llm.Provider = pick(cmd, "provider", provider, llm.Provider)
			llm.Model = pick(cmd, "model", model, llm.Model)

			p, err := tagging.NewProvider(llm)
			if err != nil {
				return err
			}

			datasetPath = pick(cmd, "dataset", datasetPath, opts.cfg.Dataset)
			books, err := dataset.NewLoader(datasetPath).Load()
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			slog.Info("Tagging books", "books", len(books), "provider", p.Name(), "model", llm.Model)

			service := tagging.NewService(p, llm.Model, llm.Temperature)
			tagged, count, err := service.TagBooks(cmd.Context(), books)
			if err != nil {
				return fmt.Errorf("tagging interrupted after %d books: %w", count, err)
			}

			if err := dataset.WriteBooks(output, tagged); err != nil {
				return err
			}

			slog.Info("Tagging complete", "tagged", count, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "merged_books_data.csv", "Path to merged dataset")
	cmd.Flags().StringVarP(&output, "output", "o", "tagged_books_data.csv", "Path to tagged dataset (.csv, .jsonl, .parquet)")
	cmd.Flags().StringVar(&provider, "provider", "ollama", "LLM provider (ollama, openai, or gemini)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to the configured model)")

	return cmd
}
