package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for files whose extension has no codec
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrMissingID is returned for rows without an identifier
	ErrMissingID = errors.New("missing book identifier")

	// ErrMalformedProfile is returned when a word profile cannot be parsed
	ErrMalformedProfile = errors.New("malformed word frequency profile")
)

// NegativeCountError reports a word profile entry with a negative count
type NegativeCountError struct {
	Word  string
	Count int
}

func (e *NegativeCountError) Error() string {
	return fmt.Sprintf("negative count %d for word %q", e.Count, e.Word)
}

// RowError ties a validation or parse error to its position in the input
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
