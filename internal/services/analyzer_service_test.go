package services

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Gajjar-Mohit/backend/internal/models"
	"github.com/Gajjar-Mohit/backend/internal/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySentences(t *testing.T) {
	sentences := []string{"Too short.", "Exactly 11!", "This one is long enough.", "Hi.", "नमस्ते दुनिया!"}

	got := KeySentences(sentences, 5)
	assert.Equal(t, []string{"Exactly 11!", "This one is long enough.", "नमस्ते दुनिया!"}, got)

	assert.Equal(t, []string{"Exactly 11!"}, KeySentences(sentences, 1))
	assert.Empty(t, KeySentences(nil, 5))
}

func TestKeywordsDeduplicates(t *testing.T) {
	chunks := []string{"the video", "a topic", "the video", "extraction", "a topic"}
	assert.Equal(t, []string{"the video", "a topic", "extraction"}, Keywords(chunks, 10))
	assert.Equal(t, []string{"the video", "a topic"}, Keywords(chunks, 2))
}

func TestAnalyzeRealText(t *testing.T) {
	s := NewAnalyzerService(0, 0)

	result := s.Analyze("Hello world. This is a test sentence for extraction.")

	assert.False(t, result.KeySentences.Degraded)
	assert.False(t, result.Keywords.Degraded)
	assert.Len(t, result.KeySentences.Items, 2)
	for _, sentence := range result.KeySentences.Items {
		assert.Greater(t, utf8.RuneCountInString(sentence), 10)
	}
	assert.Contains(t, result.Keywords.Items, "extraction")
}

func TestAnalyzeRespectsLimits(t *testing.T) {
	s := NewAnalyzerService(2, 3)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog near a river bank. ", 4) +
		"A second topic appears with new nouns and fresh ideas here."

	result := s.Analyze(text)
	assert.LessOrEqual(t, len(result.KeySentences.Items), 2)
	assert.LessOrEqual(t, len(result.Keywords.Items), 3)

	seen := map[string]bool{}
	for _, kw := range result.Keywords.Items {
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
	}
}

func TestAnalyzeParseFailureDegradesBothLists(t *testing.T) {
	s := NewAnalyzerService(5, 10)
	s.parse = func(string) (*nlp.Document, error) { return nil, errors.New("model not loaded") }

	result := s.Analyze("anything")
	assert.Equal(t, models.Degraded(models.KeySentencesFailed), result.KeySentences)
	assert.Equal(t, models.Degraded(models.KeywordsFailed), result.Keywords)
}

func TestAnalyzeRecoversFromPanic(t *testing.T) {
	s := NewAnalyzerService(5, 10)
	s.parse = func(string) (*nlp.Document, error) { panic("tagger exploded") }

	var result models.AnalysisResult
	require.NotPanics(t, func() { result = s.Analyze("anything") })
	assert.Equal(t, []string{models.KeySentencesFailed}, result.KeySentences.Items)
	assert.Equal(t, []string{models.KeywordsFailed}, result.Keywords.Items)
}

func TestAnalyzeEmptyText(t *testing.T) {
	result := NewAnalyzerService(5, 10).Analyze("")
	assert.Equal(t, []string{}, result.KeySentences.Items)
	assert.Equal(t, []string{}, result.Keywords.Items)
}
