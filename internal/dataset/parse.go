package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	json "github.com/goccy/go-json"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

// ParseSubjects splits a comma separated subject list, trimming whitespace and
// dropping empty entries.
func ParseSubjects(s string) []string {
	subjects := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			subjects = append(subjects, part)
		}
	}
	return subjects
}

// FormatSubjects joins subjects the way the catalog scrape stores them
func FormatSubjects(subjects []string) string {
	return strings.Join(subjects, ", ")
}

// legacy profiles look like [('the', 50), ('and', 30)]
var legacyPair = regexp.MustCompile(`\(\s*(?:'([^']*)'|"([^"]*)")\s*,\s*(-?\d+)\s*\)`)

// ParseProfile decodes a serialized top-N profile. Both the JSON form
// [["the",50],["and",30]] and the older tuple-literal form are accepted.
// An empty string or "[]" yields an empty profile.
func ParseProfile(s string) ([]models.WordCount, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "[]" {
		return []models.WordCount{}, nil
	}

	if strings.Contains(s, "(") {
		return parseLegacyProfile(s)
	}

	var pairs [][]json.RawMessage
	if err := json.Unmarshal([]byte(s), &pairs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProfile, err)
	}

	profile := make([]models.WordCount, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: entry %d has %d elements", ErrMalformedProfile, i, len(pair))
		}
		var wc models.WordCount
		if err := json.Unmarshal(pair[0], &wc.Word); err != nil {
			return nil, fmt.Errorf("%w: entry %d word: %v", ErrMalformedProfile, i, err)
		}
		if err := json.Unmarshal(pair[1], &wc.Count); err != nil {
			return nil, fmt.Errorf("%w: entry %d count: %v", ErrMalformedProfile, i, err)
		}
		if wc.Count < 0 {
			return nil, &NegativeCountError{Word: wc.Word, Count: wc.Count}
		}
		profile = append(profile, wc)
	}

	return profile, nil
}

func parseLegacyProfile(s string) ([]models.WordCount, error) {
	matches := legacyPair.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedProfile, truncate(s, 40))
	}

	profile := make([]models.WordCount, 0, len(matches))
	for _, m := range matches {
		word := m[1]
		if word == "" {
			word = m[2]
		}
		count, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedProfile, err)
		}
		if count < 0 {
			return nil, &NegativeCountError{Word: word, Count: count}
		}
		profile = append(profile, models.WordCount{Word: word, Count: count})
	}

	return profile, nil
}

// FormatProfile serializes a profile as a JSON array of [word, count] pairs
func FormatProfile(profile []models.WordCount) (string, error) {
	pairs := make([][2]any, 0, len(profile))
	for _, wc := range profile {
		pairs = append(pairs, [2]any{wc.Word, wc.Count})
	}

	data, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("failed to encode word profile: %w", err)
	}
	return string(data), nil
}

// DeriveYear extracts the publication year from a catalog date such as
// "Oct 1, 1993", "1993-10-01" or "1993". Unparseable dates yield nil.
func DeriveYear(date string) *int {
	date = strings.TrimSpace(date)
	if date == "" || strings.EqualFold(date, "unknown") {
		return nil
	}

	if len(date) == 4 {
		if year, err := strconv.Atoi(date); err == nil && year > 0 {
			return &year
		}
	}

	t, err := dateparse.ParseAny(date)
	if err != nil {
		return nil
	}

	year := t.Year()
	if year <= 0 {
		return nil
	}
	return &year
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
