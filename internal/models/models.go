package models

import "fmt"

// WordCount is one entry of a book's top-N frequency profile
type WordCount struct {
	Word  string `json:"word" yaml:"word" parquet:"word"`
	Count int    `json:"count" yaml:"count" parquet:"count"`
}

// FrequencyTable maps a token (word or subject tag) to its count
type FrequencyTable map[string]int

// Book represents a single merged Gutenberg record.
// Books are assembled once at load time and treated as read-only afterwards.
type Book struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Author          string      `json:"author"`
	PublicationDate string      `json:"publication_date,omitempty"`
	Year            *int        `json:"year,omitempty"`
	Language        string      `json:"language,omitempty"`
	LoCClass        string      `json:"loc_class,omitempty"`
	Subjects        []string    `json:"subjects"`
	TopWords        []WordCount `json:"top_words"`
	Link            string      `json:"link,omitempty"`
}

// HasYear reports whether a publication year could be derived
func (b Book) HasYear() bool {
	return b.Year != nil
}

// Recommendation is a ranked candidate returned for a query book
type Recommendation struct {
	BookID string  `json:"book_id" yaml:"book_id"`
	Title  string  `json:"title" yaml:"title"`
	Score  float64 `json:"score" yaml:"score"`
}

// String renders the recommendation the way the dashboard lists it
func (r Recommendation) String() string {
	return fmt.Sprintf("%s (%.2f)", r.Title, r.Score)
}
