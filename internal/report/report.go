// Package report renders trend rollups and recommendation lists for the
// command line.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/lehigh-university-libraries/gutenstats/internal/analysis"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for an output format a report cannot render
var ErrUnsupportedFormat = errors.New("unsupported format")

// YearTrend is the top of one year's rollup
type YearTrend struct {
	Year    int                `json:"year" yaml:"year"`
	Books   int                `json:"books" yaml:"books"`
	Entries []models.WordCount `json:"entries" yaml:"entries"`
}

// TrendReport collects the top entries of several years
type TrendReport struct {
	Kind  string      `json:"kind" yaml:"kind"`
	Top   int         `json:"top" yaml:"top"`
	Years []YearTrend `json:"years" yaml:"years"`
}

// SimilarReport is the ranked neighbourhood of one book
type SimilarReport struct {
	BookID          string                  `json:"book_id" yaml:"book_id"`
	Title           string                  `json:"title" yaml:"title"`
	K               int                     `json:"k" yaml:"k"`
	Recommendations []models.Recommendation `json:"recommendations" yaml:"recommendations"`
}

// TrendLookup returns the rollup of one year
type TrendLookup func(year int) (models.FrequencyTable, bool)

// BuildTrends selects the top n entries for each requested year. Years
// missing from the rollup are reported with no entries.
func BuildTrends(kind string, lookup TrendLookup, counts map[int]int, years []int, n int) TrendReport {
	report := TrendReport{
		Kind:  kind,
		Top:   n,
		Years: make([]YearTrend, 0, len(years)),
	}

	for _, year := range years {
		table, _ := lookup(year)
		report.Years = append(report.Years, YearTrend{
			Year:    year,
			Books:   counts[year],
			Entries: analysis.TopN(table, n),
		})
	}

	return report
}

// WriteTrends renders a trend report as text, json, csv, or yaml
func WriteTrends(w io.Writer, report TrendReport, format string) error {
	switch format {
	case "text":
		return writeTrendsText(w, report)
	case "json":
		return writeJSON(w, report)
	case "yaml":
		return writeYAML(w, report)
	case "csv":
		return writeTrendsCSV(w, report)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// WriteSimilar renders recommendations as text, json, or yaml
func WriteSimilar(w io.Writer, report SimilarReport, format string) error {
	switch format {
	case "text":
		return writeSimilarText(w, report)
	case "json":
		return writeJSON(w, report)
	case "yaml":
		return writeYAML(w, report)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func writeTrendsText(w io.Writer, report TrendReport) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Top %d %s by year\n", report.Top, report.Kind)
	sb.WriteString("========================================\n")

	if len(report.Years) == 0 {
		sb.WriteString("No dated books in dataset\n")
	}

	for _, yt := range report.Years {
		fmt.Fprintf(&sb, "\n%d (%d books)\n", yt.Year, yt.Books)
		if len(yt.Entries) == 0 {
			sb.WriteString("  (none)\n")
			continue
		}
		for i, entry := range yt.Entries {
			fmt.Fprintf(&sb, "  %2d. %-30s %d\n", i+1, entry.Word, entry.Count)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTrendsCSV(w io.Writer, report TrendReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Year", "Rank", "Term", "Count"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, yt := range report.Years {
		for i, entry := range yt.Entries {
			record := []string{
				strconv.Itoa(yt.Year),
				strconv.Itoa(i + 1),
				entry.Word,
				strconv.Itoa(entry.Count),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeSimilarText(w io.Writer, report SimilarReport) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Books similar to %s [%s]\n", report.Title, report.BookID)
	sb.WriteString("========================================\n")

	if len(report.Recommendations) == 0 {
		sb.WriteString("No recommendations\n")
	}
	for i, rec := range report.Recommendations {
		fmt.Fprintf(&sb, "%2d. %s\n", i+1, rec)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return encoder.Close()
}
