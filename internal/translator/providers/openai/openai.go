// internal/translator/providers/openai/openai.go
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gajjar-Mohit/backend/internal/translator"
	goopenai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a translation engine. Translate the user's text into the language " +
	"with ISO code %q. Reply with the translation only, without notes or quotes."

func init() {
	translator.Register("openai", func() translator.Provider {
		return &Provider{}
	})
}

// Provider translates through an OpenAI compatible chat completion API.
type Provider struct {
	client *goopenai.Client
	model  string
}

func (p *Provider) Initialize(config map[string]string) error {
	apiKey, exists := config["api_key"]
	if !exists || apiKey == "" {
		return errors.New("openai api key not provided")
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL, exists := config["base_url"]; exists && baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: translator.Timeout(config, 60*time.Second)}

	if model, exists := config["default_model"]; exists && model != "" {
		p.model = model
	} else {
		p.model = goopenai.GPT3Dot5Turbo
	}

	p.client = goopenai.NewClientWithConfig(cfg)
	return nil
}

func (p *Provider) GetName() string {
	return "openai"
}

func (p *Provider) Translate(ctx context.Context, req translator.TranslationRequest) (*translator.TranslationResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPrompt, req.TargetLanguage)},
			{Role: goopenai.ChatMessageRoleUser, Content: req.Text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai translation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, errors.New("openai returned an empty translation")
	}
	return &translator.TranslationResponse{Text: text, ProviderName: p.GetName()}, nil
}
