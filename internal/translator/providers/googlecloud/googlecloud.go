// internal/translator/providers/googlecloud/googlecloud.go
package googlecloud

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/Gajjar-Mohit/backend/internal/translator"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

func init() {
	translator.Register("googlecloud", func() translator.Provider {
		return &Provider{}
	})
}

// Provider calls the Cloud Translation v2 API with an API key.
type Provider struct {
	service *translate.Service
}

func (p *Provider) Initialize(config map[string]string) error {
	apiKey, exists := config["api_key"]
	if !exists || apiKey == "" {
		return errors.New("google cloud translation api key not provided")
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if baseURL, exists := config["base_url"]; exists && baseURL != "" {
		opts = append(opts, option.WithEndpoint(baseURL))
	}

	service, err := translate.NewService(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("create translation service: %w", err)
	}
	p.service = service
	return nil
}

func (p *Provider) GetName() string {
	return "googlecloud"
}

func (p *Provider) Translate(ctx context.Context, req translator.TranslationRequest) (*translator.TranslationResponse, error) {
	call := p.service.Translations.List([]string{req.Text}, req.TargetLanguage).
		Format("text").
		Context(ctx)
	if req.SourceLanguage != "" {
		call = call.Source(req.SourceLanguage)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("cloud translation: %w", err)
	}
	if len(resp.Translations) == 0 {
		return nil, errors.New("cloud translation returned no translations")
	}

	t := resp.Translations[0]
	return &translator.TranslationResponse{
		Text:             html.UnescapeString(t.TranslatedText),
		DetectedLanguage: t.DetectedSourceLanguage,
		ProviderName:     p.GetName(),
	}, nil
}
