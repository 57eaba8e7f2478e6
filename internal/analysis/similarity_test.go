package analysis

import (
	"testing"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleBooks = []models.Book{
	{
		ID:       "1342",
		Title:    "Pride and Prejudice",
		Subjects: []string{"Fiction", "Classic", "Courtship"},
		TopWords: []models.WordCount{{Word: "elizabeth", Count: 600}, {Word: "darcy", Count: 400}, {Word: "would", Count: 450}},
	},
	{
		ID:       "84",
		Title:    "Frankenstein",
		Subjects: []string{"Fiction", "Horror"},
		TopWords: []models.WordCount{{Word: "one", Count: 300}, {Word: "would", Count: 200}, {Word: "life", Count: 150}},
	},
	{
		ID:       "2701",
		Title:    "Moby Dick",
		Subjects: []string{"Classic", "Whaling"},
		TopWords: []models.WordCount{{Word: "whale", Count: 1200}, {Word: "one", Count: 900}},
	},
	{
		ID:    "1",
		Title: "Empty",
	},
	{
		ID:       "2",
		Title:    "Single letters",
		TopWords: []models.WordCount{{Word: "a", Count: 10}, {Word: "i", Count: 4}},
	},
}

func TestScoreIdenticalBooks(t *testing.T) {
	profile := []models.WordCount{{Word: "the", Count: 50}, {Word: "and", Count: 30}, {Word: "of", Count: 20}}
	a := models.Book{ID: "a", Subjects: []string{"Fiction", "Classic"}, TopWords: profile}
	b := models.Book{ID: "b", Subjects: []string{"Classic", "Fiction"}, TopWords: profile}

	assert.Equal(t, 1.0, Score(a, b))
}

func TestScoreAgainstEmptyBook(t *testing.T) {
	a := models.Book{ID: "a", Subjects: []string{"History"}, TopWords: []models.WordCount{{Word: "war", Count: 10}}}
	b := models.Book{ID: "b"}

	assert.Equal(t, 0.0, Score(a, b))
	assert.Equal(t, 0.0, Score(b, a))
}

func TestScoreBothEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Score(models.Book{ID: "a"}, models.Book{ID: "b", Subjects: []string{}}))
}

func TestScoreSymmetricAndBounded(t *testing.T) {
	for _, a := range sampleBooks {
		for _, b := range sampleBooks {
			ab := Score(a, b)
			ba := Score(b, a)
			assert.Equal(t, ab, ba, "score(%s,%s) != score(%s,%s)", a.ID, b.ID, b.ID, a.ID)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0)
		}
	}
}

func TestSubjectSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected float64
	}{
		{name: "both empty", expected: 0},
		{name: "one empty", a: []string{"Fiction"}, expected: 0},
		{name: "disjoint", a: []string{"Fiction"}, b: []string{"History"}, expected: 0},
		{name: "half overlap", a: []string{"Fiction", "Classic"}, b: []string{"Fiction", "Horror"}, expected: 1.0 / 3.0},
		{name: "duplicates ignored", a: []string{"Fiction", "Fiction"}, b: []string{"Fiction"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubjectSimilarity(models.Book{Subjects: tt.a}, models.Book{Subjects: tt.b})
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestWordSimilarityDegenerateVocabulary(t *testing.T) {
	s := NewScorer()
	a := models.Book{ID: "a", TopWords: []models.WordCount{{Word: "a", Count: 3}}}
	b := models.Book{ID: "b", TopWords: []models.WordCount{{Word: "i", Count: 2}}}

	assert.Equal(t, 0.0, s.WordSimilarity(a, b))
}

func TestWordSimilarityOneSideFiltered(t *testing.T) {
	s := NewScorer()
	a := models.Book{ID: "a", TopWords: []models.WordCount{{Word: "a", Count: 3}}}
	b := models.Book{ID: "b", TopWords: []models.WordCount{{Word: "whale", Count: 2}}}

	assert.Equal(t, 0.0, s.WordSimilarity(a, b))
}

func TestWordSimilarityPartialOverlap(t *testing.T) {
	s := NewScorer()
	a := models.Book{ID: "a", TopWords: []models.WordCount{{Word: "one", Count: 3}, {Word: "two", Count: 4}}}
	b := models.Book{ID: "b", TopWords: []models.WordCount{{Word: "one", Count: 1}}}

	// (3*1) / (5 * 1)
	assert.InDelta(t, 0.6, s.WordSimilarity(a, b), 1e-12)
}

func TestProfileBagMatchesExpand(t *testing.T) {
	v := NewVectorizer()
	profile := []models.WordCount{{Word: "The", Count: 3}, {Word: "x", Count: 5}, {Word: "the", Count: 2}, {Word: "sea", Count: 0}}

	assert.Equal(t, v.Bag(Expand(profile)), v.ProfileBag(profile))
	assert.Equal(t, map[string]float64{"the": 5}, v.ProfileBag(profile))
}

func TestFitEmptyVocabulary(t *testing.T) {
	v := NewVectorizer()

	_, err := v.Fit(v.Bag([]string{"a", "b"}), map[string]float64{})
	require.ErrorIs(t, err, ErrEmptyVocabulary)

	voc, err := v.Fit(v.Bag([]string{"whale", "sea", "whale"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"sea", "whale"}, voc.Terms)
	assert.Equal(t, []float64{1, 2}, voc.Transform(v.Bag([]string{"whale", "sea", "whale", "ship"})))
}
