package services

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/Gajjar-Mohit/backend/internal/errors"
	"github.com/Gajjar-Mohit/backend/internal/models"
	"github.com/Gajjar-Mohit/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	transcript *models.Transcript
	err        error
}

func (f *fakeFetcher) FetchTranscript(context.Context, models.VideoReference) (*models.Transcript, error) {
	return f.transcript, f.err
}

type fakeTranslator struct {
	out   string
	calls int
}

func (f *fakeTranslator) Translate(_ context.Context, text, _ string) string {
	f.calls++
	if f.out == "" {
		return text
	}
	return f.out
}

type fakeAnalyzer struct {
	got string
}

func (f *fakeAnalyzer) Analyze(text string) models.AnalysisResult {
	f.got = text
	return models.AnalysisResult{
		KeySentences: models.OK([]string{"a key sentence"}),
		Keywords:     models.OK([]string{"keyword"}),
	}
}

func transcriptOf(lang string, texts ...string) *models.Transcript {
	entries := make([]models.TranscriptEntry, 0, len(texts))
	for _, text := range texts {
		entries = append(entries, models.TranscriptEntry{Text: text})
	}
	return &models.Transcript{VideoID: "abc123def45", LanguageCode: lang, Entries: entries}
}

func newTestService(fetcher TranscriptFetcher, tr TextTranslator, an TextAnalyzer) *TranscriptService {
	return NewTranscriptService(fetcher, tr, an).
		WithMetrics(utils.NewAPIMetrics(utils.NewMetricsCollector(), utils.GetLogger()))
}

func TestGenerateEnglish(t *testing.T) {
	tr := &fakeTranslator{}
	an := &fakeAnalyzer{}
	s := newTestService(&fakeFetcher{transcript: transcriptOf("en", "Hello world.", "This is a test.")}, tr, an)

	var stages []string
	result, err := s.Generate(context.Background(), "https://youtu.be/abc123def45", func(stage string, _ int) {
		stages = append(stages, stage)
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello world. This is a test.", result.Transcript)
	assert.False(t, result.Translated)
	assert.Equal(t, 0, tr.calls)
	assert.Equal(t, result.Transcript, an.got)
	assert.Equal(t, []string{StageFetching, StageAnalyzing}, stages)
	assert.Equal(t, []string{"a key sentence"}, result.Response().KeySentences)
}

func TestGenerateTranslatesHindiMarker(t *testing.T) {
	tr := &fakeTranslator{out: "This is Hindi"}
	an := &fakeAnalyzer{}
	s := newTestService(&fakeFetcher{transcript: transcriptOf("hi", "यह", "हिंदी", "है")}, tr, an)

	result, err := s.Generate(context.Background(), "abc123def45", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, tr.calls)
	assert.True(t, result.Translated)
	assert.Equal(t, "This is Hindi", result.Transcript)
	assert.Equal(t, "This is Hindi", an.got)
}

func TestGenerateHindiWithoutMarkerIsNotTranslated(t *testing.T) {
	tr := &fakeTranslator{out: "translated"}
	s := newTestService(&fakeFetcher{transcript: transcriptOf("hi", "नमस्ते दुनिया")}, tr, &fakeAnalyzer{})

	result, err := s.Generate(context.Background(), "abc123def45", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.calls)
	assert.Equal(t, "नमस्ते दुनिया", result.Transcript)
}

func TestGenerateTranslationFailureKeepsOriginal(t *testing.T) {
	tr := &fakeTranslator{} // echoes input, as TranslationService does on failure
	an := &fakeAnalyzer{}
	s := newTestService(&fakeFetcher{transcript: transcriptOf("hi", "हिंदी वीडियो")}, tr, an)

	result, err := s.Generate(context.Background(), "abc123def45", nil)
	require.NoError(t, err)
	assert.False(t, result.Translated)
	assert.Equal(t, "हिंदी वीडियो", an.got)
}

func TestGenerateTranscriptUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
	}{
		{"not found", &fakeFetcher{err: apperrors.NewNotFoundError("no en/hi", nil)}},
		{"disabled", &fakeFetcher{err: apperrors.NewTranscriptsDisabledError("disabled", nil)}},
		{"bad url", &fakeFetcher{err: apperrors.NewResolutionError("bad url", nil)}},
		{"plain error", &fakeFetcher{err: errors.New("connection reset")}},
		{"empty transcript", &fakeFetcher{transcript: transcriptOf("en", "   ")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			an := &fakeAnalyzer{}
			s := newTestService(tt.fetcher, &fakeTranslator{}, an)

			result, err := s.Generate(context.Background(), "https://youtu.be/abc123def45", nil)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsTranscriptUnavailable(err), "got %v", err)
			assert.Empty(t, an.got)
		})
	}
}

func TestGenerateRecordsStageMetrics(t *testing.T) {
	collector := utils.NewMetricsCollector()
	s := NewTranscriptService(&fakeFetcher{err: apperrors.NewNotFoundError("none", nil)}, &fakeTranslator{}, &fakeAnalyzer{}).
		WithMetrics(utils.NewAPIMetrics(collector, utils.GetLogger()))

	_, _ = s.Generate(context.Background(), "abc123def45", nil)
	assert.Equal(t, int64(1), collector.GetCounterValue("stage_fetch_failures"))
}
