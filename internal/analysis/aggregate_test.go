package analysis

import (
	"testing"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func year(y int) *int {
	return &y
}

func TestAggregateSameYear(t *testing.T) {
	books := []models.Book{
		{ID: "1", Year: year(1993), TopWords: []models.WordCount{{Word: "a", Count: 1}, {Word: "b", Count: 2}}},
		{ID: "2", Year: year(1993), TopWords: []models.WordCount{{Word: "a", Count: 3}}},
	}

	rollup := Aggregate(books, WordsOf)

	require.Len(t, rollup, 1)
	assert.Equal(t, models.FrequencyTable{"a": 4, "b": 2}, rollup[1993])
}

func TestAggregateSkipsMissingYear(t *testing.T) {
	books := []models.Book{
		{ID: "1", Year: year(1900), TopWords: []models.WordCount{{Word: "whale", Count: 5}}},
		{ID: "2", TopWords: []models.WordCount{{Word: "whale", Count: 100}}},
	}

	rollup := Aggregate(books, WordsOf)

	require.Len(t, rollup, 1)
	assert.Equal(t, 5, rollup[1900]["whale"])
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	books := []models.Book{
		{ID: "1", Year: year(2000), TopWords: []models.WordCount{{Word: "x", Count: 1}, {Word: "y", Count: 7}}},
		{ID: "2", Year: year(2001), TopWords: []models.WordCount{{Word: "x", Count: 2}}},
		{ID: "3", Year: year(2000), TopWords: []models.WordCount{{Word: "y", Count: 3}, {Word: "z", Count: 4}}},
		{ID: "4", TopWords: []models.WordCount{{Word: "x", Count: 9}}},
	}

	expected := Aggregate(books, WordsOf)

	permute(books, func(p []models.Book) {
		assert.Equal(t, expected, Aggregate(p, WordsOf))
	})
}

func TestAggregateSubjects(t *testing.T) {
	books := []models.Book{
		{ID: "1", Year: year(1993), Subjects: []string{"Fiction", "Classic", "Fiction"}},
		{ID: "2", Year: year(1993), Subjects: []string{"Fiction"}},
		{ID: "3", Year: year(1994)},
	}

	rollup := Aggregate(books, SubjectsOf)

	assert.Equal(t, models.FrequencyTable{"Fiction": 2, "Classic": 1}, rollup[1993])
	assert.Empty(t, rollup[1994])
	assert.Equal(t, []int{1993, 1994}, Years(rollup))
}

func TestTopN(t *testing.T) {
	table := models.FrequencyTable{"the": 50, "and": 30, "of": 30, "whale": 5}

	tests := []struct {
		name     string
		n        int
		expected []models.WordCount
	}{
		{
			name:     "ties ordered by token",
			n:        3,
			expected: []models.WordCount{{Word: "the", Count: 50}, {Word: "and", Count: 30}, {Word: "of", Count: 30}},
		},
		{
			name:     "n larger than table",
			n:        10,
			expected: []models.WordCount{{Word: "the", Count: 50}, {Word: "and", Count: 30}, {Word: "of", Count: 30}, {Word: "whale", Count: 5}},
		},
		{
			name:     "zero",
			n:        0,
			expected: []models.WordCount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TopN(table, tt.n))
		})
	}
}

// permute calls fn with every permutation of books (Heap's algorithm)
func permute(books []models.Book, fn func([]models.Book)) {
	p := append([]models.Book(nil), books...)
	var generate func(n int)
	generate = func(n int) {
		if n == 1 {
			fn(append([]models.Book(nil), p...))
			return
		}
		for i := 0; i < n-1; i++ {
			generate(n - 1)
			if n%2 == 0 {
				p[i], p[n-1] = p[n-1], p[i]
			} else {
				p[0], p[n-1] = p[n-1], p[0]
			}
		}
		generate(n - 1)
	}
	generate(len(p))
}
