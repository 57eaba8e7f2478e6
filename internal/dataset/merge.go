package dataset

import (
	"log/slog"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

// Merge left-joins catalog metadata with word profiles on the book ID.
// Books without a profile keep an empty one. When the frequency table repeats
// an ID the first row is used.
func Merge(metadata []MetadataRow, frequencies []FrequencyRow) []models.Book {
	byID := make(map[string]FrequencyRow, len(frequencies))
	for _, f := range frequencies {
		if _, exists := byID[f.BookID]; exists {
			slog.Warn("Duplicate word profile, keeping first", "book_id", f.BookID)
			continue
		}
		byID[f.BookID] = f
	}

	books := make([]models.Book, 0, len(metadata))
	matched := 0
	for _, m := range metadata {
		record := BookRecord{
			ID:              m.ID,
			Title:           m.Title,
			Author:          m.Author,
			PublicationDate: m.PublicationDate,
			Language:        m.Language,
			LoCClass:        m.LoCClass,
			Subjects:        m.Subjects,
			Link:            m.Link,
		}

		if f, ok := byID[m.ID]; ok {
			matched++
			record.TopWords = f.TopWords
			if record.PublicationDate == "" || record.PublicationDate == "Unknown" {
				record.PublicationDate = f.Date
			}
		}

		books = append(books, record.ToBook())
	}

	slog.Info("Merged tables", "metadata_rows", len(metadata), "frequency_rows", len(frequencies), "matched", matched)
	return books
}
