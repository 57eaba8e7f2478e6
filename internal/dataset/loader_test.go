package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	path := "./books.parquet"
	loader := NewLoader(path)

	assert.Equal(t, path, loader.Path())
}

func TestLoadMergedCSV(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "merged_books_data.csv")

	testData := `Book ID,Title,Author,Publication Date,Language,LoC Class,Subjects,Link,Most Common Words
84,Frankenstein,"Shelley, Mary","Oct 31, 1993",English,PR,"Horror tales, Science fiction",https://www.gutenberg.org/ebooks/84,"[('would', 200), ('one', 180)]"
1342,Pride and Prejudice,"Austen, Jane",,English,PR,,https://www.gutenberg.org/ebooks/1342,[]
`
	require.NoError(t, os.WriteFile(csvPath, []byte(testData), 0644))

	books, err := NewLoader(csvPath).Load()
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "84", books[0].ID)
	assert.Equal(t, "Shelley, Mary", books[0].Author)
	assert.Equal(t, []string{"Horror tales", "Science fiction"}, books[0].Subjects)
	assert.Equal(t, []models.WordCount{{Word: "would", Count: 200}, {Word: "one", Count: 180}}, books[0].TopWords)
	require.NotNil(t, books[0].Year)
	assert.Equal(t, 1993, *books[0].Year)

	assert.Nil(t, books[1].Year)
	assert.Empty(t, books[1].Subjects)
	assert.Empty(t, books[1].TopWords)
}

func TestLoadSampleJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "books.jsonl")

	testData := `{"book_id":"1","title":"One","subjects":["A"],"most_common_words":[{"word":"alpha","count":3}]}
{"book_id":"2","title":"Two"}

{"book_id":"3","title":"Three"}
`
	require.NoError(t, os.WriteFile(jsonlPath, []byte(testData), 0644))

	books, err := NewLoader(jsonlPath).LoadSample(2)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "1", books[0].ID)
	assert.Equal(t, []models.WordCount{{Word: "alpha", Count: 3}}, books[0].TopWords)
	assert.Equal(t, "2", books[1].ID)
}

func TestLoadRejectsInvalidRows(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "books.jsonl")

	testData := `{"book_id":"1","title":"One"}
{"book_id":"2","most_common_words":[{"word":"alpha","count":-3}]}
`
	require.NoError(t, os.WriteFile(jsonlPath, []byte(testData), 0644))

	_, err := NewLoader(jsonlPath).Load()

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Row)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := NewLoader("books.txt").Load()
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteBooksThenLoad(t *testing.T) {
	books := []models.Book{
		{
			ID:              "2701",
			Title:           "Moby Dick",
			Author:          "Melville, Herman",
			PublicationDate: "Jul 1, 2001",
			Year:            intPtr(2001),
			Language:        "English",
			LoCClass:        "PS",
			Subjects:        []string{"Whaling", "Sea stories"},
			TopWords:        []models.WordCount{{Word: "whale", Count: 1200}, {Word: "one", Count: 900}},
			Link:            "https://www.gutenberg.org/ebooks/2701",
		},
		{
			ID:       "1",
			Title:    "No Profile",
			Subjects: []string{},
			TopWords: []models.WordCount{},
		},
	}

	for _, ext := range []string{".csv", ".jsonl", ".parquet"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "books"+ext)
			require.NoError(t, WriteBooks(path, books))

			loaded, err := NewLoader(path).Load()
			require.NoError(t, err)
			assert.Equal(t, books, loaded)
		})
	}
}

func TestMerge(t *testing.T) {
	metadata := []MetadataRow{
		{ID: "84", Title: "Frankenstein", PublicationDate: "Oct 31, 1993", Subjects: []string{"Horror tales"}},
		{ID: "1342", Title: "Pride and Prejudice", PublicationDate: "Unknown", Subjects: []string{}},
		{ID: "11", Title: "Alice's Adventures in Wonderland", Subjects: []string{}},
	}
	frequencies := []FrequencyRow{
		{BookID: "84", TopWords: []models.WordCount{{Word: "would", Count: 200}}},
		{BookID: "1342", Date: "Jun 1, 1998", TopWords: []models.WordCount{{Word: "elizabeth", Count: 600}}},
		{BookID: "1342", TopWords: []models.WordCount{{Word: "ignored", Count: 1}}},
		{BookID: "999", TopWords: []models.WordCount{{Word: "orphan", Count: 1}}},
	}

	books := Merge(metadata, frequencies)

	require.Len(t, books, 3)
	assert.Equal(t, []models.WordCount{{Word: "would", Count: 200}}, books[0].TopWords)
	assert.Equal(t, 1993, *books[0].Year)
	assert.Equal(t, []models.WordCount{{Word: "elizabeth", Count: 600}}, books[1].TopWords)
	assert.Equal(t, 1998, *books[1].Year)
	assert.Empty(t, books[2].TopWords)
	assert.Nil(t, books[2].Year)
}
