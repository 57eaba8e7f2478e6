// Package tagging asks an LLM to suggest subject headings for books the
// catalog scrape left without any.
package tagging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/lehigh-university-libraries/gutenstats/internal/config"
	"github.com/lehigh-university-libraries/gutenstats/internal/gemini"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/lehigh-university-libraries/gutenstats/internal/ollama"
	"github.com/lehigh-university-libraries/gutenstats/internal/openai"
	"github.com/lehigh-university-libraries/gutenstats/internal/providers"
)

// MaxSubjects caps the number of suggestions kept per book
const MaxSubjects = 5

// ErrNoSubjects is returned when a response holds no usable subject
var ErrNoSubjects = errors.New("no subjects in response")

const systemPrompt = `You are a cataloging librarian assigning Library of Congress subject headings to public domain books.
Respond with a JSON array of at most 5 subject heading strings and nothing else.`

// NewProvider builds the provider named in cfg
func NewProvider(cfg config.LLMConfig) (providers.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.New(cfg.GeminiAPIKey), nil
	case "ollama":
		return ollama.New(cfg.OllamaURL), nil
	case "openai":
		return openai.New(cfg.OpenAIURL, cfg.OpenAIAPIKey), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// Service suggests subjects through a provider
type Service struct {
	provider    providers.Provider
	model       string
	temperature float64
}

// NewService creates a tagging service
func NewService(provider providers.Provider, model string, temperature float64) *Service {
	return &Service{
		provider:    provider,
		model:       model,
		temperature: temperature,
	}
}

// Suggest asks the provider for subject headings for one book
func (s *Service) Suggest(ctx context.Context, book models.Book) ([]string, error) {
	response, err := s.provider.Complete(ctx, providers.Config{
		Model:       s.model,
		Temperature: s.temperature,
		System:      systemPrompt,
		Prompt:      buildPrompt(book),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions from %s: %w", s.provider.Name(), err)
	}

	return ParseSubjects(response)
}

// TagBooks fills in subjects for books that have none and returns the
// updated copy with the number of books tagged. A failed suggestion leaves
// the book's subject list empty.
func (s *Service) TagBooks(ctx context.Context, books []models.Book) ([]models.Book, int, error) {
	out := make([]models.Book, len(books))
	copy(out, books)

	tagged := 0
	for i, book := range out {
		if len(book.Subjects) > 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, tagged, err
		}

		subjects, err := s.Suggest(ctx, book)
		if err != nil {
			slog.Warn("Unable to tag book", "book_id", book.ID, "title", book.Title, "err", err)
			continue
		}

		slog.Debug("Tagged book", "book_id", book.ID, "subjects", subjects)
		out[i].Subjects = subjects
		tagged++
	}

	return out, tagged, nil
}

func buildPrompt(book models.Book) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", book.Title)
	if book.Author != "" {
		fmt.Fprintf(&sb, "Author: %s\n", book.Author)
	}
	if book.LoCClass != "" && book.LoCClass != "Unknown" {
		fmt.Fprintf(&sb, "LoC Class: %s\n", book.LoCClass)
	}
	if len(book.TopWords) > 0 {
		words := make([]string, 0, len(book.TopWords))
		for _, wc := range book.TopWords {
			words = append(words, wc.Word)
		}
		fmt.Fprintf(&sb, "Most common words: %s\n", strings.Join(words, ", "))
	}
	sb.WriteString("\nSuggest subject headings for this book.")
	return sb.String()
}

// ParseSubjects extracts a JSON string array from an LLM response. Code
// fences and surrounding prose are ignored, as is an object wrapping the
// array under "subjects". Blank and repeated entries are dropped and at
// most MaxSubjects are kept.
func ParseSubjects(response string) ([]string, error) {
	raw := extractJSON(response)
	if raw == "" {
		return nil, ErrNoSubjects
	}

	var subjects []string
	if strings.HasPrefix(raw, "{") {
		var wrapped struct {
			Subjects []string `json:"subjects"`
		}
		if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
			return nil, fmt.Errorf("failed to parse subjects: %w", err)
		}
		subjects = wrapped.Subjects
	} else if err := json.Unmarshal([]byte(raw), &subjects); err != nil {
		return nil, fmt.Errorf("failed to parse subjects: %w", err)
	}

	seen := make(map[string]bool, len(subjects))
	cleaned := make([]string, 0, MaxSubjects)
	for _, subject := range subjects {
		subject = strings.TrimSpace(subject)
		if subject == "" || seen[subject] {
			continue
		}
		seen[subject] = true
		cleaned = append(cleaned, subject)
		if len(cleaned) == MaxSubjects {
			break
		}
	}

	if len(cleaned) == 0 {
		return nil, ErrNoSubjects
	}
	return cleaned, nil
}

func extractJSON(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "{") {
		if end := strings.LastIndex(response, "}"); end > 0 {
			return response[:end+1]
		}
		return ""
	}

	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start < 0 || end <= start {
		return ""
	}
	return response[start : end+1]
}
