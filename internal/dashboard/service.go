// Package dashboard answers the interactive queries of the book dashboard
// against the current snapshot: search, random picks, per-year trends, and
// similar-book recommendations.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/gutenstats/internal/analysis"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/lehigh-university-libraries/gutenstats/internal/snapshot"
)

// ErrNotFound is returned for an unknown book ID or a year with no dated books
var ErrNotFound = errors.New("not found")

// LoadFunc reads the book pool from its source
type LoadFunc func(ctx context.Context) ([]models.Book, error)

// Info describes the snapshot currently served
type Info struct {
	Version  uint64    `json:"version"`
	Source   string    `json:"source"`
	Books    int       `json:"books"`
	Years    int       `json:"years"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Service runs dashboard queries
type Service struct {
	store  *snapshot.Store
	source string
	load   LoadFunc
	scorer *analysis.Scorer
	cache  *recommendationCache

	reloadMu sync.Mutex
}

// NewService creates a dashboard service. Recommendations are memoized for up
// to cacheSize (book, snapshot version, k) keys; zero disables memoization.
func NewService(store *snapshot.Store, source string, load LoadFunc, cacheSize int) *Service {
	return &Service{
		store:  store,
		source: source,
		load:   load,
		scorer: analysis.NewScorer(),
		cache:  newRecommendationCache(cacheSize),
	}
}

// Reload reads the pool again and swaps in a new snapshot. Queries already
// running keep the snapshot they started with.
func (s *Service) Reload(ctx context.Context) (Info, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	books, err := s.load(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("failed to reload %s: %w", s.source, err)
	}

	snap := s.store.Swap(s.source, books)
	s.cache.prune(snap.Version)

	slog.Info("Dataset reloaded", "version", snap.Version, "books", snap.Len(), "duration", time.Since(start))
	return infoOf(snap), nil
}

// Info describes the current snapshot
func (s *Service) Info() Info {
	return infoOf(s.store.Current())
}

// Search returns books whose title or author contains q, ignoring case, in
// load order. An empty q matches every book.
func (s *Service) Search(q string, limit int) []models.Book {
	snap := s.store.Current()
	q = strings.ToLower(strings.TrimSpace(q))

	results := make([]models.Book, 0)
	for _, book := range snap.Books() {
		if limit > 0 && len(results) >= limit {
			break
		}
		if q == "" ||
			strings.Contains(strings.ToLower(book.Title), q) ||
			strings.Contains(strings.ToLower(book.Author), q) {
			results = append(results, book)
		}
	}
	return results
}

// Random returns up to n distinct books chosen uniformly
func (s *Service) Random(n int) []models.Book {
	books := s.store.Current().Books()
	if n > len(books) {
		n = len(books)
	}
	if n <= 0 {
		return []models.Book{}
	}

	picked := make([]models.Book, 0, n)
	for _, i := range rand.Perm(len(books))[:n] {
		picked = append(picked, books[i])
	}
	return picked
}

// Book looks up a single book
func (s *Service) Book(id string) (models.Book, error) {
	book, ok := s.store.Current().Book(id)
	if !ok {
		return models.Book{}, fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	return book, nil
}

// Similar ranks the pool against one book and returns the top k
func (s *Service) Similar(id string, k int) ([]models.Recommendation, error) {
	snap := s.store.Current()

	book, ok := snap.Book(id)
	if !ok {
		return nil, fmt.Errorf("book %s: %w", id, ErrNotFound)
	}

	key := cacheKey{bookID: id, version: snap.Version, k: k}
	if recs, ok := s.cache.get(key); ok {
		return recs, nil
	}

	start := time.Now()
	recs := s.scorer.TopK(book, snap.Books(), k)
	slog.Debug("Ranked recommendations", "book_id", id, "k", k, "pool", snap.Len(), "duration", time.Since(start))

	s.cache.put(key, recs)
	return clone(recs), nil
}

// Years returns the publication years present, ascending
func (s *Service) Years() []int {
	return s.store.Current().Years()
}

// WordTrend returns the n most frequent words of a year
func (s *Service) WordTrend(year, n int) ([]models.WordCount, error) {
	table, ok := s.store.Current().WordTrend(year)
	if !ok {
		return nil, fmt.Errorf("year %d: %w", year, ErrNotFound)
	}
	return analysis.TopN(table, n), nil
}

// SubjectTrend returns the n most frequent subjects of a year
func (s *Service) SubjectTrend(year, n int) ([]models.WordCount, error) {
	table, ok := s.store.Current().SubjectTrend(year)
	if !ok {
		return nil, fmt.Errorf("year %d: %w", year, ErrNotFound)
	}
	return analysis.TopN(table, n), nil
}

func infoOf(snap *snapshot.Snapshot) Info {
	return Info{
		Version:  snap.Version,
		Source:   snap.Source,
		Books:    snap.Len(),
		Years:    len(snap.Years()),
		LoadedAt: snap.LoadedAt,
	}
}
