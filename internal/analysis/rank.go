package analysis

import (
	"sort"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

// TopK ranks a pool against a query book with the default scorer
func TopK(query models.Book, pool []models.Book, k int) []models.Recommendation {
	return defaultScorer.TopK(query, pool, k)
}

// TopK scores every pool entry except those sharing the query's ID and returns
// at most k recommendations by descending score. Equal scores keep pool order.
func (s *Scorer) TopK(query models.Book, pool []models.Book, k int) []models.Recommendation {
	if k <= 0 {
		return []models.Recommendation{}
	}

	candidates := make([]models.Recommendation, 0, len(pool))
	for _, book := range pool {
		if book.ID == query.ID {
			continue
		}
		candidates = append(candidates, models.Recommendation{
			BookID: book.ID,
			Title:  book.Title,
			Score:  s.Score(query, book),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
