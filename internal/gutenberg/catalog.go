package gutenberg

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lehigh-university-libraries/gutenstats/internal/dataset"
)

// Unknown is recorded for metadata fields missing from a book page
const Unknown = "Unknown"

// CatalogEntry is one line of the top books list
type CatalogEntry struct {
	ID    string
	Title string
	Link  string
}

// BookMetadata holds the fields scraped from a book's catalog page
type BookMetadata struct {
	Author          string
	PublicationDate string
	Language        string
	LoCClass        string
	Subjects        []string
}

// FetchTopBooks returns the entries of the first ordered list on the top books page
func (c *Client) FetchTopBooks(ctx context.Context) ([]CatalogEntry, error) {
	doc, err := c.fetchDocument(ctx, c.BaseURL+TopBooksPath)
	if err != nil {
		return nil, err
	}
	return ParseTopBooks(doc, c.BaseURL), nil
}

// ParseTopBooks extracts catalog entries from a top books page
func ParseTopBooks(doc *goquery.Document, baseURL string) []CatalogEntry {
	var entries []CatalogEntry

	doc.Find("ol").First().Find("li").Each(func(_ int, li *goquery.Selection) {
		href, ok := li.Find("a").First().Attr("href")
		if !ok || href == "" {
			return
		}

		link := href
		if strings.HasPrefix(href, "/") {
			link = baseURL + href
		}

		entries = append(entries, CatalogEntry{
			ID:    path.Base(strings.TrimRight(href, "/")),
			Title: strings.TrimSpace(li.Text()),
			Link:  link,
		})
	})

	return entries
}

// FetchMetadata scrapes the catalog page of a single book
func (c *Client) FetchMetadata(ctx context.Context, bookID string) (*BookMetadata, error) {
	doc, err := c.fetchDocument(ctx, fmt.Sprintf("%s/ebooks/%s", c.BaseURL, bookID))
	if err != nil {
		return nil, err
	}
	return ParseMetadata(doc), nil
}

// ParseMetadata extracts the bibliographic table of a book page
func ParseMetadata(doc *goquery.Document) *BookMetadata {
	meta := &BookMetadata{
		Author:          Unknown,
		PublicationDate: Unknown,
		Language:        Unknown,
		LoCClass:        Unknown,
		Subjects:        []string{},
	}

	doc.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
		if cleanText(th) != "Author" {
			return true
		}
		if td := th.NextFiltered("td"); td.Length() > 0 {
			meta.Author = cleanText(td)
		}
		return false
	})

	if v := cellText(doc.Find(`tr[property="dcterms:issued"]`)); v != "" {
		meta.PublicationDate = v
	}
	if v := cellText(doc.Find(`tr[property="dcterms:language"]`)); v != "" {
		meta.Language = v
	}
	if v := cellText(doc.Find(`tr[property="dcterms:subject"][datatype="dcterms:LCC"]`)); v != "" {
		meta.LoCClass = v
	}

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		th := row.Find("th").First()
		if th.Length() == 0 || cleanText(th) != "Subject" {
			return
		}
		if subject := cleanText(row.Find("td").First()); subject != "" {
			meta.Subjects = append(meta.Subjects, subject)
		}
	})

	return meta
}

// Scrape walks the top books list and emits one metadata row per book.
// A book whose page cannot be fetched is logged and skipped.
func (c *Client) Scrape(ctx context.Context, limit int, emit func(dataset.MetadataRow) error) (int, error) {
	entries, err := c.FetchTopBooks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch top books: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	slog.Info("Fetched top books list", "entries", len(entries))

	written := 0
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		slog.Info("Scraping book", "index", i+1, "total", len(entries), "book_id", entry.ID)

		meta, err := c.FetchMetadata(ctx, entry.ID)
		if err != nil {
			slog.Warn("Skipping book", "book_id", entry.ID, "err", err)
			continue
		}

		row := dataset.MetadataRow{
			ID:              entry.ID,
			Title:           entry.Title,
			Author:          meta.Author,
			PublicationDate: meta.PublicationDate,
			Language:        meta.Language,
			LoCClass:        meta.LoCClass,
			Subjects:        meta.Subjects,
			Link:            entry.Link,
		}
		if err := emit(row); err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}

func cellText(row *goquery.Selection) string {
	return cleanText(row.First().Find("td").First())
}

func cleanText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
