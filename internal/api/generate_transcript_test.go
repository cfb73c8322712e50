package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Gajjar-Mohit/backend/internal/models"
	"github.com/Gajjar-Mohit/backend/internal/services"
	"github.com/Gajjar-Mohit/backend/internal/utils"
	"github.com/Gajjar-Mohit/backend/internal/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// youtubeServer serves an English caption track for every video id.
func youtubeServer(t *testing.T, gotVideoID *string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			*gotVideoID = r.URL.Query().Get("v")
			fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":`+
				`{"captionTracks":[{"baseUrl":"%s/timedtext?lang=en","languageCode":"en"}]}}};</script></html>`, srv.URL)
		case "/timedtext":
			fmt.Fprint(w, `<transcript>`+
				`<text start="0" dur="1.5">Hello world.</text>`+
				`<text start="1.5" dur="2">This is a test sentence for extraction.</text>`+
				`</transcript>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateTranscriptEndToEnd(t *testing.T) {
	var gotVideoID string
	srv := youtubeServer(t, &gotVideoID)

	logger := utils.NewLogger(&bytes.Buffer{}, utils.ERROR)
	fetcher := youtube.New(youtube.Options{
		HTTPClient:   srv.Client(),
		WatchURL:     srv.URL + "/watch",
		InnertubeURL: srv.URL + "/player",
		Logger:       logger,
	})
	generator := services.NewTranscriptService(fetcher,
		services.NewTranslationService(nil),
		services.NewAnalyzerService(services.DefaultKeySentences, services.DefaultKeywords)).
		WithMetrics(utils.NewAPIMetrics(utils.NewMetricsCollector(), logger))
	r, _ := newTestRouter(generator)

	w := postJSON(t, r, `{"video_url": "https://youtu.be/abc123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "abc123", gotVideoID)

	var resp models.GenerateTranscriptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello world. This is a test sentence for extraction.", resp.Transcript)

	assert.Equal(t, []string{"Hello world.", "This is a test sentence for extraction."}, resp.KeySentences)
	for _, sentence := range resp.KeySentences {
		assert.Greater(t, utf8.RuneCountInString(sentence), 10)
	}

	require.NotEmpty(t, resp.Keywords)
	assert.LessOrEqual(t, len(resp.Keywords), 10)
	assert.Contains(t, resp.Keywords, "extraction")
	seen := map[string]bool{}
	for _, kw := range resp.Keywords {
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
		assert.NotContains(t, kw, strings.Repeat(" ", 2))
	}
}
