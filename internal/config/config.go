// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-wide settings. It is read once at startup.
type Config struct {
	Port      string
	LogDir    string
	LogLevel  string
	DebugMode bool

	// Outbound HTTP timeout for YouTube and translation calls.
	FetchTimeout time.Duration

	// YouTube
	YouTubeAPIKey       string   // optional, enables Data API id confirmation
	TranscriptLanguages []string // tried in order

	// Translation
	TranslatorProvider    string
	GoogleTranslateAPIKey string
	OpenAIAPIKey          string
	OpenAIModel           string
	OpenAIBaseURL         string

	// Analysis
	NumSentences int
	NumKeywords  int
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", "5000"),
		LogDir:                getEnv("LOG_DIR", ""),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		DebugMode:             getEnvBool("DEBUG_MODE", false),
		FetchTimeout:          getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		YouTubeAPIKey:         getEnv("YOUTUBE_API_KEY", ""),
		TranscriptLanguages:   getEnvList("TRANSCRIPT_LANGUAGES", []string{"en", "hi"}),
		TranslatorProvider:    getEnv("TRANSLATOR_PROVIDER", "google"),
		GoogleTranslateAPIKey: getEnv("GOOGLE_TRANSLATE_API_KEY", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", ""),
		NumSentences:          getEnvInt("KEY_SENTENCES", 5),
		NumKeywords:           getEnvInt("KEYWORDS", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.NumSentences <= 0 {
		return fmt.Errorf("KEY_SENTENCES must be positive, got %d", c.NumSentences)
	}
	if c.NumKeywords <= 0 {
		return fmt.Errorf("KEYWORDS must be positive, got %d", c.NumKeywords)
	}
	if len(c.TranscriptLanguages) == 0 {
		return fmt.Errorf("TRANSCRIPT_LANGUAGES must list at least one language")
	}
	return nil
}

// TranslatorConfig returns the settings handed to the translation provider.
func (c *Config) TranslatorConfig() map[string]string {
	var settings map[string]string
	switch c.TranslatorProvider {
	case "googlecloud":
		settings = map[string]string{"api_key": c.GoogleTranslateAPIKey}
	case "openai":
		settings = map[string]string{
			"api_key":       c.OpenAIAPIKey,
			"default_model": c.OpenAIModel,
			"base_url":      c.OpenAIBaseURL,
		}
	default:
		settings = map[string]string{}
	}
	if c.FetchTimeout > 0 {
		settings["timeout"] = c.FetchTimeout.String()
	}
	return settings
}

// getEnv returns the variable or defaultValue when unset
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
