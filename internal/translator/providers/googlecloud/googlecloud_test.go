package googlecloud

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gajjar-Mohit/backend/internal/translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"translations":[{"translatedText":"It&#39;s Hindi","detectedSourceLanguage":"hi"}]}}`)
	}))
	defer srv.Close()

	p := &Provider{}
	require.NoError(t, p.Initialize(map[string]string{"api_key": "test-key", "base_url": srv.URL + "/"}))

	resp, err := p.Translate(context.Background(), translator.TranslationRequest{Text: "हिंदी", TargetLanguage: "en"})
	require.NoError(t, err)
	assert.Equal(t, "It's Hindi", resp.Text)
	assert.Equal(t, "hi", resp.DetectedLanguage)
	assert.Equal(t, "googlecloud", resp.ProviderName)
}

func TestTranslateNoTranslations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"translations":[]}}`)
	}))
	defer srv.Close()

	p := &Provider{}
	require.NoError(t, p.Initialize(map[string]string{"api_key": "k", "base_url": srv.URL + "/"}))

	_, err := p.Translate(context.Background(), translator.TranslationRequest{Text: "x", TargetLanguage: "en"})
	assert.Error(t, err)
}
