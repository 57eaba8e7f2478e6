// Package wordfreq computes the top-N word profile of a book's raw text.
package wordfreq

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

// DefaultTopN is the number of words kept per book
const DefaultTopN = 30

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Preprocess removes punctuation and lowercases the text
func Preprocess(text string) string {
	return strings.ToLower(punctuation.ReplaceAllString(text, ""))
}

// Count splits preprocessed text on whitespace and counts every non-stopword.
// Words are returned in order of first occurrence alongside the counts.
func Count(text string) ([]string, models.FrequencyTable) {
	counts := make(models.FrequencyTable)
	var order []string

	for _, word := range strings.Fields(text) {
		if IsStopword(word) {
			continue
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
	}

	return order, counts
}

// MostCommon returns the n most frequent words. Words with equal counts keep
// their first-occurrence order.
func MostCommon(order []string, counts models.FrequencyTable, n int) []models.WordCount {
	profile := make([]models.WordCount, 0, len(order))
	for _, word := range order {
		profile = append(profile, models.WordCount{Word: word, Count: counts[word]})
	}

	sort.SliceStable(profile, func(i, j int) bool {
		return profile[i].Count > profile[j].Count
	})

	if n >= 0 && len(profile) > n {
		profile = profile[:n]
	}
	return profile
}

// Profile runs the full pipeline on raw book text
func Profile(text string, n int) []models.WordCount {
	order, counts := Count(Preprocess(text))
	return MostCommon(order, counts, n)
}
