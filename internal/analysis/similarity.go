package analysis

import (
	"log/slog"
	"math"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

// Scorer computes pairwise book similarity.
//
//	score(a, b) = (jaccard(subjects_a, subjects_b) + cosine(words_a, words_b)) / 2
//
// The equal weighting is fixed. Every degenerate input scores 0.
type Scorer struct {
	Vectorizer Vectorizer
}

// NewScorer creates a scorer with the default vectorizer
func NewScorer() *Scorer {
	return &Scorer{Vectorizer: NewVectorizer()}
}

var defaultScorer = NewScorer()

// Score compares two books with the default scorer
func Score(a, b models.Book) float64 {
	return defaultScorer.Score(a, b)
}

// Score returns the combined similarity of two books in [0, 1]
func (s *Scorer) Score(a, b models.Book) float64 {
	score := (SubjectSimilarity(a, b) + s.WordSimilarity(a, b)) / 2
	return clamp01(score)
}

// SubjectSimilarity is the Jaccard index of the two subject sets
func SubjectSimilarity(a, b models.Book) float64 {
	return jaccardSimilarity(a.Subjects, b.Subjects)
}

// WordSimilarity is the cosine of the two books' bag-of-words vectors over
// their joint vocabulary. Empty profiles and an empty vocabulary give 0.
func (s *Scorer) WordSimilarity(a, b models.Book) float64 {
	if len(a.TopWords) == 0 || len(b.TopWords) == 0 {
		return 0
	}

	bagA := s.Vectorizer.ProfileBag(a.TopWords)
	bagB := s.Vectorizer.ProfileBag(b.TopWords)

	vocab, err := s.Vectorizer.Fit(bagA, bagB)
	if err != nil {
		slog.Debug("Word similarity degenerated to zero", "book_a", a.ID, "book_b", b.ID, "err", err)
		return 0
	}

	return cosineSimilarity(vocab.Transform(bagA), vocab.Transform(bagB))
}

func jaccardSimilarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// cosineSimilarity expects vectors over the same sorted vocabulary, so the
// summation order (and therefore the result) is the same for (a, b) and (b, a).
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return clamp01(dot / math.Sqrt(normA*normB))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
