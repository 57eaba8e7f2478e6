package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/gutenstats/internal/dataset"
	"github.com/lehigh-university-libraries/gutenstats/internal/snapshot"
)

// loadSnapshot reads a merged dataset into a one-off snapshot
func loadSnapshot(path string) (*snapshot.Snapshot, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("dataset file not found: %s\n\nBuild it first:\n  gutenstats scrape && gutenstats words && gutenstats merge", path)
	}

	books, err := dataset.NewLoader(path).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	snap := snapshot.New(1, path, books)
	slog.Debug("Loaded dataset", "path", path, "books", snap.Len(), "years", len(snap.Years()))
	return snap, nil
}
