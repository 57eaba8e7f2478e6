package wordfreq

import (
	"testing"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips punctuation", input: "Call me Ishmael.", expected: "call me ishmael"},
		{name: "drops apostrophes", input: "Don't STOP", expected: "dont stop"},
		{name: "keeps underscores and digits", input: "_chapter_ 42!", expected: "_chapter_ 42"},
		{name: "keeps whitespace", input: "a\n\tb", expected: "a\n\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Preprocess(tt.input))
		})
	}
}

func TestProfile(t *testing.T) {
	text := "The whale! The whale, the sea. A ship, and the sea; whale."

	profile := Profile(text, 2)

	assert.Equal(t, []models.WordCount{{Word: "whale", Count: 3}, {Word: "sea", Count: 2}}, profile)
}

func TestMostCommonKeepsFirstOccurrenceOnTies(t *testing.T) {
	order, counts := Count("ship sea whale sea ship whale")

	assert.Equal(t, []models.WordCount{
		{Word: "ship", Count: 2},
		{Word: "sea", Count: 2},
		{Word: "whale", Count: 2},
	}, MostCommon(order, counts, 10))
}

func TestProfileEmptyText(t *testing.T) {
	assert.Empty(t, Profile("", DefaultTopN))
	assert.Empty(t, Profile("the and of", DefaultTopN))
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("wouldn't"))
	assert.False(t, IsStopword("whale"))
}
