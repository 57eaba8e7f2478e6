package analysis

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

// ErrEmptyVocabulary is returned when every token of every document is
// filtered out, leaving nothing to build vectors over.
var ErrEmptyVocabulary = errors.New("empty vocabulary; documents contain only filtered tokens")

// DefaultMinTokenLength drops single-character tokens, matching the usual
// bag-of-words token pattern of two or more word characters.
const DefaultMinTokenLength = 2

// Vectorizer turns token bags into count vectors over a shared, sorted vocabulary
type Vectorizer struct {
	MinTokenLength int
	Lowercase      bool
}

// NewVectorizer creates a vectorizer with the default token policy
func NewVectorizer() Vectorizer {
	return Vectorizer{
		MinTokenLength: DefaultMinTokenLength,
		Lowercase:      true,
	}
}

// Vocabulary maps each retained token to its column
type Vocabulary struct {
	Terms []string
	index map[string]int
}

// Len returns the number of columns
func (v *Vocabulary) Len() int {
	return len(v.Terms)
}

// Expand reconstructs a word sequence from a top-N profile by repeating each
// word according to its count.
func Expand(profile []models.WordCount) []string {
	total := 0
	for _, wc := range profile {
		if wc.Count > 0 {
			total += wc.Count
		}
	}

	tokens := make([]string, 0, total)
	for _, wc := range profile {
		for i := 0; i < wc.Count; i++ {
			tokens = append(tokens, wc.Word)
		}
	}
	return tokens
}

// Bag counts a token sequence after applying the token policy
func (v Vectorizer) Bag(tokens []string) map[string]float64 {
	bag := make(map[string]float64)
	for _, token := range tokens {
		if term, ok := v.normalize(token); ok {
			bag[term]++
		}
	}
	return bag
}

// ProfileBag is equivalent to Bag(Expand(profile)) without materializing the
// expanded sequence.
func (v Vectorizer) ProfileBag(profile []models.WordCount) map[string]float64 {
	bag := make(map[string]float64, len(profile))
	for _, wc := range profile {
		if wc.Count <= 0 {
			continue
		}
		if term, ok := v.normalize(wc.Word); ok {
			bag[term] += float64(wc.Count)
		}
	}
	return bag
}

// Fit builds the joint vocabulary of the given bags
func (v Vectorizer) Fit(bags ...map[string]float64) (*Vocabulary, error) {
	seen := make(map[string]struct{})
	for _, bag := range bags {
		for term := range bag {
			seen[term] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	return &Vocabulary{Terms: terms, index: index}, nil
}

// Transform projects a bag onto the vocabulary. Terms outside it are ignored.
func (voc *Vocabulary) Transform(bag map[string]float64) []float64 {
	vec := make([]float64, len(voc.Terms))
	for term, count := range bag {
		if i, ok := voc.index[term]; ok {
			vec[i] = count
		}
	}
	return vec
}

func (v Vectorizer) normalize(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if v.Lowercase {
		token = strings.ToLower(token)
	}
	if utf8.RuneCountInString(token) < v.MinTokenLength {
		return "", false
	}
	return token, true
}
