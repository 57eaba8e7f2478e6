package dataset

import (
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

// Column headers of the scraped metadata table
var MetadataHeader = []string{"ID", "Title", "Author", "Publication Date", "Language", "LoC Class", "Subjects", "Link"}

// Column headers of the word frequency table
var FrequencyHeader = []string{"Book ID", "Title", "Date", "Most Common Words"}

// Column headers of the merged table
var BookHeader = []string{"Book ID", "Title", "Author", "Publication Date", "Language", "LoC Class", "Subjects", "Link", "Most Common Words"}

// MetadataRow is one scraped catalog entry
type MetadataRow struct {
	ID              string
	Title           string
	Author          string
	PublicationDate string
	Language        string
	LoCClass        string
	Subjects        []string
	Link            string
}

// FrequencyRow is the top-N word profile of one book
type FrequencyRow struct {
	BookID   string
	Title    string
	Date     string
	TopWords []models.WordCount
}

// BookRecord is the persisted form of a merged book (JSONL and Parquet)
type BookRecord struct {
	ID              string             `json:"book_id" parquet:"book_id"`
	Title           string             `json:"title" parquet:"title"`
	Author          string             `json:"author" parquet:"author"`
	PublicationDate string             `json:"publication_date" parquet:"publication_date"`
	Language        string             `json:"language" parquet:"language"`
	LoCClass        string             `json:"loc_class" parquet:"loc_class"`
	Subjects        []string           `json:"subjects" parquet:"subjects,list"`
	TopWords        []models.WordCount `json:"most_common_words" parquet:"most_common_words,list"`
	Link            string             `json:"link" parquet:"link"`
}

// ToBook converts a stored record into the in-memory book, deriving its year
func (r BookRecord) ToBook() models.Book {
	subjects := r.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	topWords := r.TopWords
	if topWords == nil {
		topWords = []models.WordCount{}
	}

	return models.Book{
		ID:              r.ID,
		Title:           r.Title,
		Author:          r.Author,
		PublicationDate: r.PublicationDate,
		Year:            DeriveYear(r.PublicationDate),
		Language:        r.Language,
		LoCClass:        r.LoCClass,
		Subjects:        subjects,
		TopWords:        topWords,
		Link:            r.Link,
	}
}

// RecordFromBook converts a book back into its stored form
func RecordFromBook(b models.Book) BookRecord {
	return BookRecord{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationDate: b.PublicationDate,
		Language:        b.Language,
		LoCClass:        b.LoCClass,
		Subjects:        b.Subjects,
		TopWords:        b.TopWords,
		Link:            b.Link,
	}
}

// Validate rejects records that cannot enter a snapshot
func (r BookRecord) Validate() error {
	if r.ID == "" {
		return ErrMissingID
	}
	for _, wc := range r.TopWords {
		if wc.Count < 0 {
			return &NegativeCountError{Word: wc.Word, Count: wc.Count}
		}
	}
	return nil
}
