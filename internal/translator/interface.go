// internal/translator/interface.go
package translator

import (
	"context"
	"errors"
	"sort"
	"time"
)

var ErrUnknownProvider = errors.New("unknown translation provider")

// TranslationRequest is a single text to translate.
type TranslationRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language,omitempty"` // empty means auto-detect
	TargetLanguage string `json:"target_language"`
}

// TranslationResponse is the translated text as returned by a provider.
type TranslationResponse struct {
	Text             string `json:"text"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	ProviderName     string `json:"provider_name,omitempty"`
}

// Provider is implemented by every machine translation backend.
type Provider interface {
	// Initialize configures the provider; it fails when required settings are missing.
	Initialize(config map[string]string) error

	GetName() string

	Translate(ctx context.Context, req TranslationRequest) (*TranslationResponse, error)
}

// ProviderFactory creates an uninitialized provider.
type ProviderFactory func() Provider

var providers = make(map[string]ProviderFactory)

// Register makes a provider available under name. Providers register
// themselves from init.
func Register(name string, factory ProviderFactory) {
	providers[name] = factory
}

// GetProvider creates and initializes the named provider.
func GetProvider(name string, config map[string]string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, ErrUnknownProvider
	}

	provider := factory()
	if err := provider.Initialize(config); err != nil {
		return nil, err
	}
	return provider, nil
}

// ListProviders returns the registered provider names, sorted.
func ListProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Timeout reads the "timeout" setting shared by all providers.
func Timeout(config map[string]string, fallback time.Duration) time.Duration {
	if v, ok := config["timeout"]; ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
