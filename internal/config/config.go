// Package config resolves runtime settings from defaults, an optional YAML
// file, and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config path is given and the file exists
const DefaultFile = "gutenstats.yaml"

// Config holds every tunable the commands share
type Config struct {
	Dataset string        `yaml:"dataset"`
	Scraper ScraperConfig `yaml:"scraper"`
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
}

// ScraperConfig controls the Gutenberg client and word counting
type ScraperConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
	TopWords    int           `yaml:"top_words"`
	Limit       int           `yaml:"limit"`
}

// ServerConfig controls the dashboard server
type ServerConfig struct {
	Port      string `yaml:"port"`
	CacheSize int    `yaml:"cache_size"`
}

// LLMConfig selects and configures the subject tagging provider
type LLMConfig struct {
	Provider     string  `yaml:"provider"`
	Model        string  `yaml:"model"`
	Temperature  float64 `yaml:"temperature"`
	OllamaURL    string  `yaml:"ollama_url"`
	OpenAIURL    string  `yaml:"openai_url"`
	OpenAIAPIKey string  `yaml:"-"`
	GeminiAPIKey string  `yaml:"-"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Dataset: "merged_books_data.csv",
		Scraper: ScraperConfig{
			BaseURL:     "https://www.gutenberg.org",
			Interval:    time.Second,
			Concurrency: 4,
			TopWords:    30,
		},
		Server: ServerConfig{
			Port:      "8888",
			CacheSize: 1024,
		},
		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "llama3.2",
			Temperature: 0.2,
			OllamaURL:   "http://localhost:11434",
			OpenAIURL:   "https://api.openai.com/v1",
		},
	}
}

// Load builds the configuration. An empty path falls back to DefaultFile
// when it exists; an explicit path that cannot be read is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Dataset = getEnv("GUTENSTATS_DATASET", c.Dataset)
	c.Scraper.BaseURL = getEnv("GUTENSTATS_BASE_URL", c.Scraper.BaseURL)
	c.Scraper.Interval = getEnvDuration("GUTENSTATS_INTERVAL", c.Scraper.Interval)
	c.Scraper.Concurrency = getEnvInt("GUTENSTATS_CONCURRENCY", c.Scraper.Concurrency)
	c.Scraper.TopWords = getEnvInt("GUTENSTATS_TOP_WORDS", c.Scraper.TopWords)
	c.Server.Port = getEnv("GUTENSTATS_PORT", c.Server.Port)
	c.Server.CacheSize = getEnvInt("GUTENSTATS_CACHE_SIZE", c.Server.CacheSize)
	c.LLM.Provider = getEnv("GUTENSTATS_PROVIDER", c.LLM.Provider)
	c.LLM.Model = getEnv("GUTENSTATS_MODEL", c.LLM.Model)
	c.LLM.OllamaURL = getEnv("OLLAMA_URL", c.LLM.OllamaURL)
	c.LLM.OpenAIURL = getEnv("OPENAI_URL", c.LLM.OpenAIURL)
	c.LLM.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.LLM.OpenAIAPIKey)
	c.LLM.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.LLM.GeminiAPIKey)
}

// Validate rejects settings no command can run with
func (c *Config) Validate() error {
	if c.Scraper.Concurrency < 1 {
		return fmt.Errorf("scraper.concurrency must be at least 1, got %d", c.Scraper.Concurrency)
	}
	if c.Scraper.TopWords < 1 {
		return fmt.Errorf("scraper.top_words must be at least 1, got %d", c.Scraper.TopWords)
	}
	if c.Scraper.Interval < 0 {
		return fmt.Errorf("scraper.interval must not be negative, got %s", c.Scraper.Interval)
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("server.cache_size must not be negative, got %d", c.Server.CacheSize)
	}
	switch c.LLM.Provider {
	case "gemini", "ollama", "openai":
	default:
		return fmt.Errorf("unknown llm.provider %q (must be gemini, ollama, or openai)", c.LLM.Provider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
