package dataset

import (
	"testing"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubjects(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "trims whitespace", input: " Fiction ,Classic,  Horror", expected: []string{"Fiction", "Classic", "Horror"}},
		{name: "drops empty parts", input: "Fiction,, ,Classic,", expected: []string{"Fiction", "Classic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSubjects(tt.input))
		})
	}
}

func TestParseProfile(t *testing.T) {
	expected := []models.WordCount{{Word: "the", Count: 50}, {Word: "and", Count: 30}, {Word: "of", Count: 20}}

	tests := []struct {
		name     string
		input    string
		expected []models.WordCount
	}{
		{name: "empty string", input: "", expected: []models.WordCount{}},
		{name: "empty list sentinel", input: "[]", expected: []models.WordCount{}},
		{name: "json pairs", input: `[["the",50],["and",30],["of",20]]`, expected: expected},
		{name: "tuple literal", input: `[('the', 50), ('and', 30), ('of', 20)]`, expected: expected},
		{name: "tuple literal with double quotes", input: `[("o'er", 2)]`, expected: []models.WordCount{{Word: "o'er", Count: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := ParseProfile(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, profile)
		})
	}
}

func TestParseProfileErrors(t *testing.T) {
	_, err := ParseProfile(`[["the"]]`)
	assert.ErrorIs(t, err, ErrMalformedProfile)

	_, err = ParseProfile(`not a profile`)
	assert.ErrorIs(t, err, ErrMalformedProfile)

	_, err = ParseProfile(`[["the",-1]]`)
	var negErr *NegativeCountError
	require.ErrorAs(t, err, &negErr)
	assert.Equal(t, "the", negErr.Word)
}

func TestFormatProfile(t *testing.T) {
	s, err := FormatProfile([]models.WordCount{{Word: "whale", Count: 12}, {Word: "sea", Count: 3}})
	require.NoError(t, err)
	assert.Equal(t, `[["whale",12],["sea",3]]`, s)

	s, err = FormatProfile(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", s)
}

func TestDeriveYear(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *int
	}{
		{name: "catalog release date", input: "Oct 1, 1993", expected: intPtr(1993)},
		{name: "iso date", input: "2008-06-27", expected: intPtr(2008)},
		{name: "bare year", input: "1851", expected: intPtr(1851)},
		{name: "empty", input: "", expected: nil},
		{name: "unknown", input: "Unknown", expected: nil},
		{name: "garbage", input: "not a date", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveYear(tt.input))
		})
	}
}

func intPtr(v int) *int {
	return &v
}
