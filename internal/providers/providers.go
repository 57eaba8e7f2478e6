package providers

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned by hosted providers constructed without a key
var ErrMissingAPIKey = errors.New("api key not set")

// Config represents a single completion request to an LLM provider
type Config struct {
	Model       string
	Temperature float64
	System      string
	Prompt      string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Name() string
	Complete(ctx context.Context, config Config) (string, error)
}
