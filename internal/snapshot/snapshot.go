// Package snapshot holds the immutable, versioned view of the loaded book pool
// that every query runs against.
package snapshot

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/gutenstats/internal/analysis"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

// ErrDuplicateID marks a book dropped because its ID was already present
var ErrDuplicateID = errors.New("duplicate book identifier")

// Snapshot is a read-only view of the book pool. Nothing in it is mutated
// after New returns; a refreshed pool is a new Snapshot.
type Snapshot struct {
	Version  uint64
	LoadedAt time.Time
	Source   string

	books       []models.Book
	byID        map[string]int
	wordTrends  map[int]models.FrequencyTable
	topicTrends map[int]models.FrequencyTable
	yearCounts  map[int]int
	years       []int
}

// New builds a snapshot. Books repeating an earlier ID are dropped and logged.
func New(version uint64, source string, books []models.Book) *Snapshot {
	s := &Snapshot{
		Version:  version,
		LoadedAt: time.Now(),
		Source:   source,
		books:    make([]models.Book, 0, len(books)),
		byID:     make(map[string]int, len(books)),
	}

	for _, book := range books {
		if _, exists := s.byID[book.ID]; exists {
			slog.Warn("Dropping book", "book_id", book.ID, "title", book.Title, "err", ErrDuplicateID)
			continue
		}
		s.byID[book.ID] = len(s.books)
		s.books = append(s.books, book)
	}

	s.wordTrends = analysis.Aggregate(s.books, analysis.WordsOf)
	s.topicTrends = analysis.Aggregate(s.books, analysis.SubjectsOf)
	s.years = analysis.Years(s.wordTrends)

	s.yearCounts = make(map[int]int, len(s.years))
	for _, book := range s.books {
		if book.HasYear() {
			s.yearCounts[*book.Year]++
		}
	}

	return s
}

// Books returns the pool in load order. Callers must not modify it.
func (s *Snapshot) Books() []models.Book {
	return s.books
}

// Len returns the number of books in the pool
func (s *Snapshot) Len() int {
	return len(s.books)
}

// Book looks a book up by ID
func (s *Snapshot) Book(id string) (models.Book, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Book{}, false
	}
	return s.books[i], true
}

// Years returns the publication years present, ascending
func (s *Snapshot) Years() []int {
	return s.years
}

// YearCounts returns the number of dated books per year. Callers must not modify it.
func (s *Snapshot) YearCounts() map[int]int {
	return s.yearCounts
}

// WordTrend returns the word rollup for a year
func (s *Snapshot) WordTrend(year int) (models.FrequencyTable, bool) {
	table, ok := s.wordTrends[year]
	return table, ok
}

// SubjectTrend returns the subject rollup for a year
func (s *Snapshot) SubjectTrend(year int) (models.FrequencyTable, bool) {
	table, ok := s.topicTrends[year]
	return table, ok
}

// Store hands out the current snapshot and lets a reload swap in a new one
type Store struct {
	current *Snapshot
	version uint64
	mu      sync.RWMutex
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		current: New(0, "", nil),
	}
}

// Current returns the snapshot queries should run against
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Swap builds a snapshot of books with the next version and makes it current
func (s *Store) Swap(source string, books []models.Book) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	s.current = New(s.version, source, books)

	slog.Info("Snapshot swapped", "version", s.version, "books", s.current.Len(), "years", len(s.current.years), "source", source)
	return s.current
}
