// internal/translator/providers/google/google.go
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Gajjar-Mohit/backend/internal/translator"
)

// maxChunk keeps each GET request under the endpoint's query length limit.
const maxChunk = 4000

func init() {
	translator.Register("google", func() translator.Provider {
		return &Provider{baseURL: "https://translate.googleapis.com/translate_a/single"}
	})
}

// Provider uses the public Google Translate web endpoint. No key is required.
type Provider struct {
	baseURL string
	client  *http.Client
}

func (p *Provider) Initialize(config map[string]string) error {
	if baseURL, exists := config["base_url"]; exists && baseURL != "" {
		p.baseURL = baseURL
	}
	p.client = &http.Client{Timeout: translator.Timeout(config, 15*time.Second)}
	return nil
}

func (p *Provider) GetName() string {
	return "google"
}

func (p *Provider) Translate(ctx context.Context, req translator.TranslationRequest) (*translator.TranslationResponse, error) {
	source := req.SourceLanguage
	if source == "" {
		source = "auto"
	}

	var sb strings.Builder
	detected := ""
	for _, chunk := range splitChunks(req.Text, maxChunk) {
		text, lang, err := p.translateChunk(ctx, chunk, source, req.TargetLanguage)
		if err != nil {
			return nil, err
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
		if detected == "" {
			detected = lang
		}
	}

	if sb.Len() == 0 {
		return nil, errors.New("google translate returned no text")
	}
	return &translator.TranslationResponse{
		Text:             sb.String(),
		DetectedLanguage: detected,
		ProviderName:     p.GetName(),
	}, nil
}

func (p *Provider) translateChunk(ctx context.Context, text, source, target string) (string, string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", err
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", "", fmt.Errorf("google translate error(%d): %s", resp.StatusCode, string(body))
	}

	// [[["translated","original",...],...],null,"detected-language",...]
	var payload []interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", fmt.Errorf("decode google translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", "", errors.New("empty google translate response")
	}

	segments, _ := payload[0].([]interface{})
	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]interface{})
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}

	lang := ""
	if len(payload) > 2 {
		lang, _ = payload[2].(string)
	}
	return sb.String(), lang, nil
}

// splitChunks cuts text into pieces of at most limit bytes, on whitespace
// where possible.
func splitChunks(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndexAny(text[:limit], " \n\t")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
