package analysis

import (
	"sort"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

// Extractor pulls the per-book table that should be folded into a rollup
type Extractor func(models.Book) models.FrequencyTable

// Aggregate folds per-book frequency tables into one table per publication year.
// Books without a derived year are skipped. Summation is order independent, so
// any permutation of the same books yields the same rollup.
func Aggregate(books []models.Book, extract Extractor) map[int]models.FrequencyTable {
	rollup := make(map[int]models.FrequencyTable)

	for _, book := range books {
		if book.Year == nil {
			continue
		}

		year := *book.Year
		table, ok := rollup[year]
		if !ok {
			table = make(models.FrequencyTable)
			rollup[year] = table
		}

		for token, count := range extract(book) {
			if count <= 0 {
				continue
			}
			table[token] += count
		}
	}

	return rollup
}

// WordsOf returns a book's top-N profile as a frequency table
func WordsOf(book models.Book) models.FrequencyTable {
	table := make(models.FrequencyTable, len(book.TopWords))
	for _, wc := range book.TopWords {
		table[wc.Word] += wc.Count
	}
	return table
}

// SubjectsOf counts every distinct subject tag of a book once
func SubjectsOf(book models.Book) models.FrequencyTable {
	table := make(models.FrequencyTable, len(book.Subjects))
	for _, subject := range book.Subjects {
		table[subject] = 1
	}
	return table
}

// TopN returns the n highest counts of a table, ties ordered by token
func TopN(table models.FrequencyTable, n int) []models.WordCount {
	entries := make([]models.WordCount, 0, len(table))
	for token, count := range table {
		entries = append(entries, models.WordCount{Word: token, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})

	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Years returns the years present in a rollup in ascending order
func Years(rollup map[int]models.FrequencyTable) []int {
	years := make([]int, 0, len(rollup))
	for year := range rollup {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
