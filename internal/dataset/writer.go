package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/parquet-go/parquet-go"
)

// WriteBooks saves books to path, choosing the codec from the file extension
func WriteBooks(path string, books []models.Book) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	records := make([]BookRecord, 0, len(books))
	for _, b := range books {
		records = append(records, RecordFromBook(b))
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".jsonl", ".json", ".parquet":
	default:
		return fmt.Errorf("%w: %s (supported: .csv, .jsonl, .parquet)", ErrUnsupportedFormat, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch ext {
	case ".csv":
		err = writeBooksCSV(file, records)
	case ".parquet":
		err = writeBooksParquet(file, records)
	default:
		err = writeBooksJSONL(file, records)
	}
	if err != nil {
		return err
	}

	return file.Close()
}

func writeBooksCSV(w io.Writer, records []BookRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(BookHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		profile, err := FormatProfile(r.TopWords)
		if err != nil {
			return err
		}
		row := []string{r.ID, r.Title, r.Author, r.PublicationDate, r.Language, r.LoCClass, FormatSubjects(r.Subjects), r.Link, profile}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeBooksJSONL(w io.Writer, records []BookRecord) error {
	encoder := json.NewEncoder(w)
	for _, r := range records {
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", r.ID, err)
		}
	}
	return nil
}

func writeBooksParquet(w io.Writer, records []BookRecord) error {
	writer := parquet.NewGenericWriter[BookRecord](w)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// CSVWriter appends rows to a table as they are produced, flushing each one so
// partial results survive an interrupted run.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateCSV creates path and writes the header row
func CreateCSV(path string, header []string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	w := &CSVWriter{file: file, writer: csv.NewWriter(file)}
	if err := w.write(header); err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

// WriteMetadata appends a scraped catalog row
func (w *CSVWriter) WriteMetadata(row MetadataRow) error {
	return w.write([]string{row.ID, row.Title, row.Author, row.PublicationDate, row.Language, row.LoCClass, FormatSubjects(row.Subjects), row.Link})
}

// WriteFrequency appends a word profile row
func (w *CSVWriter) WriteFrequency(row FrequencyRow) error {
	profile, err := FormatProfile(row.TopWords)
	if err != nil {
		return err
	}
	return w.write([]string{row.BookID, row.Title, row.Date, profile})
}

// Close flushes and closes the underlying file
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return w.file.Close()
}

func (w *CSVWriter) write(fields []string) error {
	if err := w.writer.Write(fields); err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	w.writer.Flush()
	return w.writer.Error()
}
