package analysis

import (
	"testing"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTopKExcludesQueryByID(t *testing.T) {
	query := sampleBooks[0]
	duplicate := query
	duplicate.Title = "Pride and Prejudice (another copy)"

	pool := append([]models.Book{duplicate}, sampleBooks...)

	recs := TopK(query, pool, 10)

	for _, rec := range recs {
		assert.NotEqual(t, query.ID, rec.BookID)
	}
	assert.Len(t, recs, len(sampleBooks)-1)
}

func TestTopKSizeBound(t *testing.T) {
	query := sampleBooks[0]

	tests := []struct {
		name     string
		pool     []models.Book
		k        int
		expected int
	}{
		{name: "k smaller than pool", pool: sampleBooks, k: 2, expected: 2},
		{name: "k larger than pool", pool: sampleBooks, k: 50, expected: len(sampleBooks) - 1},
		{name: "query absent from pool", pool: sampleBooks[1:], k: 50, expected: len(sampleBooks) - 1},
		{name: "empty pool", pool: nil, k: 3, expected: 0},
		{name: "only the query", pool: sampleBooks[:1], k: 3, expected: 0},
		{name: "zero k", pool: sampleBooks, k: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := TopK(query, tt.pool, tt.k)
			assert.NotNil(t, recs)
			assert.Len(t, recs, tt.expected)
		})
	}
}

func TestTopKOrdering(t *testing.T) {
	query := models.Book{ID: "q", Subjects: []string{"Fiction", "Classic"}}
	pool := []models.Book{
		{ID: "none-1", Title: "None 1"},
		{ID: "half", Title: "Half", Subjects: []string{"Fiction"}},
		{ID: "none-2", Title: "None 2"},
		{ID: "full", Title: "Full", Subjects: []string{"Classic", "Fiction"}},
	}

	recs := TopK(query, pool, 4)

	var ids []string
	for _, rec := range recs {
		ids = append(ids, rec.BookID)
	}
	assert.Equal(t, []string{"full", "half", "none-1", "none-2"}, ids)
	assert.Equal(t, 0.5, recs[0].Score)
	assert.Equal(t, "Full (0.50)", recs[0].String())
}
