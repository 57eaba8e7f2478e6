package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/parquet-go/parquet-go"
)

// Loader handles loading of the merged book dataset
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Path returns the file the loader reads from
func (l *Loader) Path() string {
	return l.datasetPath
}

// Load loads every book from a dataset file (CSV, JSONL or Parquet)
func (l *Loader) Load() ([]models.Book, error) {
	return l.LoadSample(-1)
}

// LoadSample loads at most limit books; a negative limit loads everything
func (l *Loader) LoadSample(limit int) ([]models.Book, error) {
	var (
		records []BookRecord
		err     error
	)

	ext := strings.ToLower(filepath.Ext(l.datasetPath))
	switch ext {
	case ".csv":
		records, err = l.loadCSV(limit)
	case ".jsonl", ".json":
		records, err = l.loadJSONL(limit)
	case ".parquet":
		records, err = l.loadParquet(limit)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .csv, .jsonl, .parquet)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	books := make([]models.Book, 0, len(records))
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return nil, &RowError{Row: i + 1, Err: err}
		}
		books = append(books, record.ToBook())
	}

	slog.Debug("Finished loading dataset", "path", l.datasetPath, "books", len(books))
	return books, nil
}

// loadCSV reads a merged CSV table, parsing list columns once here
func (l *Loader) loadCSV(limit int) ([]BookRecord, error) {
	slog.Debug("Opening CSV file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var records []BookRecord
	err = readTable(file, func(row int, get func(...string) string) error {
		if limit >= 0 && len(records) >= limit {
			return errStop
		}

		profile, err := ParseProfile(get("Most Common Words"))
		if err != nil {
			return &RowError{Row: row, Err: err}
		}

		records = append(records, BookRecord{
			ID:              get("Book ID", "ID"),
			Title:           get("Title"),
			Author:          get("Author"),
			PublicationDate: firstNonEmpty(get("Publication Date"), get("Date")),
			Language:        get("Language"),
			LoCClass:        get("LoC Class"),
			Subjects:        ParseSubjects(get("Subjects")),
			TopWords:        profile,
			Link:            get("Link"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// loadJSONL loads records from a JSONL file
func (l *Loader) loadJSONL(limit int) ([]BookRecord, error) {
	slog.Debug("Opening JSONL file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var records []BookRecord
	scanner := bufio.NewScanner(file)

	// Increase buffer size for large JSON lines
	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		if limit >= 0 && len(records) >= limit {
			break
		}
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var record BookRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_records", len(records), "total_lines", lineNum)
	return records, nil
}

// loadParquet loads records from a Parquet file
func (l *Loader) loadParquet(limit int) ([]BookRecord, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[BookRecord](pf)
	defer reader.Close()

	var records []BookRecord
	rows := make([]BookRecord, 128)

	for limit < 0 || len(records) < limit {
		n, err := reader.Read(rows)
		if n > 0 {
			if limit >= 0 && n > limit-len(records) {
				n = limit - len(records)
			}
			records = append(records, rows[:n]...)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to read parquet rows: %w", err)
			}
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(records))
	return records, nil
}

// LoadMetadataCSV reads the table produced by the catalog scrape
func LoadMetadataCSV(path string) ([]MetadataRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()

	var rows []MetadataRow
	err = readTable(file, func(_ int, get func(...string) string) error {
		rows = append(rows, MetadataRow{
			ID:              get("ID", "Book ID"),
			Title:           get("Title"),
			Author:          get("Author"),
			PublicationDate: get("Publication Date"),
			Language:        get("Language"),
			LoCClass:        get("LoC Class"),
			Subjects:        ParseSubjects(get("Subjects")),
			Link:            get("Link"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadFrequencyCSV reads the table produced by the word frequency pass
func LoadFrequencyCSV(path string) ([]FrequencyRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frequency file: %w", err)
	}
	defer file.Close()

	var rows []FrequencyRow
	err = readTable(file, func(row int, get func(...string) string) error {
		profile, err := ParseProfile(get("Most Common Words"))
		if err != nil {
			return &RowError{Row: row, Err: err}
		}
		rows = append(rows, FrequencyRow{
			BookID:   get("Book ID", "ID"),
			Title:    get("Title"),
			Date:     get("Date"),
			TopWords: profile,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var errStop = errors.New("stop reading")

// readTable walks a CSV file with a header row. get returns the first
// non-missing column among the given names.
func readTable(r io.Reader, fn func(row int, get func(...string) string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	row := 0
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV row %d: %w", row+1, err)
		}
		row++

		get := func(names ...string) string {
			for _, name := range names {
				if i, ok := columns[name]; ok && i < len(fields) {
					return strings.TrimSpace(fields[i])
				}
			}
			return ""
		}

		if err := fn(row, get); err != nil {
			if errors.Is(err, errStop) {
				return nil
			}
			return err
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
