package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gajjar-Mohit/backend/internal/translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Hello Hindi \n"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := &Provider{}
	require.NoError(t, p.Initialize(map[string]string{
		"api_key":       "test-key",
		"base_url":      srv.URL + "/v1",
		"default_model": "test-model",
	}))

	resp, err := p.Translate(context.Background(), translator.TranslationRequest{Text: "नमस्ते हिंदी", TargetLanguage: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Hindi", resp.Text)
	assert.Equal(t, "openai", resp.ProviderName)
	assert.Equal(t, "test-model", gotModel)
}

func TestTranslateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","choices":[]}`))
	}))
	defer srv.Close()

	p := &Provider{}
	require.NoError(t, p.Initialize(map[string]string{"api_key": "k", "base_url": srv.URL + "/v1"}))

	_, err := p.Translate(context.Background(), translator.TranslationRequest{Text: "x", TargetLanguage: "en"})
	assert.Error(t, err)
}
