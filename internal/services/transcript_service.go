// internal/services/transcript_service.go
package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/Gajjar-Mohit/backend/internal/errors"
	"github.com/Gajjar-Mohit/backend/internal/models"
	"github.com/Gajjar-Mohit/backend/internal/utils"
)

// HindiMarker triggers translation when it appears in a transcript. Only
// this literal is checked; no language detection is done.
const HindiMarker = "हिंदी"

// TranslationTarget is the language transcripts are translated into.
const TranslationTarget = "en"

// Pipeline stages reported through a ProgressFunc.
const (
	StageFetching    = "fetching_transcript"
	StageTranslating = "translating"
	StageAnalyzing   = "analyzing"
)

// ProgressFunc receives stage changes of a generation. It may be nil.
type ProgressFunc func(stage string, progress int)

type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, ref models.VideoReference) (*models.Transcript, error)
}

type TextTranslator interface {
	Translate(ctx context.Context, text, dest string) string
}

type TextAnalyzer interface {
	Analyze(text string) models.AnalysisResult
}

// TranscriptService runs fetch, optional translation and analysis for one
// video.
type TranscriptService struct {
	fetcher    TranscriptFetcher
	translator TextTranslator
	analyzer   TextAnalyzer
	metrics    *utils.APIMetrics
	logger     *utils.Logger
}

func NewTranscriptService(fetcher TranscriptFetcher, translator TextTranslator, analyzer TextAnalyzer) *TranscriptService {
	logger := utils.GetLogger()
	return &TranscriptService{
		fetcher:    fetcher,
		translator: translator,
		analyzer:   analyzer,
		metrics:    utils.NewAPIMetrics(utils.GetMetricsCollector(), logger),
		logger:     logger,
	}
}

// WithMetrics replaces the metrics sink.
func (s *TranscriptService) WithMetrics(metrics *utils.APIMetrics) *TranscriptService {
	s.metrics = metrics
	return s
}

// Generate produces the transcript and its analysis for videoURL. Every
// failure to obtain a transcript comes back as an AppError for which
// apperrors.IsTranscriptUnavailable holds.
func (s *TranscriptService) Generate(ctx context.Context, videoURL string, report ProgressFunc) (*models.GenerationResult, error) {
	if report == nil {
		report = func(string, int) {}
	}

	report(StageFetching, 10)
	start := time.Now()
	transcript, err := s.fetcher.FetchTranscript(ctx, models.VideoReference(videoURL))
	if err == nil && strings.TrimSpace(transcript.Text()) == "" {
		err = apperrors.NewNotFoundError("transcript is empty", nil)
	}
	s.metrics.RecordStage("fetch", time.Since(start), err)
	if err != nil {
		err = apperrors.WrapError(err, "fetch transcript", apperrors.ErrorTypeUpstream)
		s.logger.Warn("transcript unavailable", utils.Fields{
			"video_url": videoURL,
			"kind":      string(apperrors.TypeOf(err)),
			"error":     err.Error(),
		})
		return nil, err
	}

	result := &models.GenerationResult{
		VideoID:      transcript.VideoID,
		LanguageCode: transcript.LanguageCode,
		Transcript:   transcript.Text(),
	}

	if strings.Contains(result.Transcript, HindiMarker) {
		report(StageTranslating, 40)
		start = time.Now()
		translated := s.translator.Translate(ctx, result.Transcript, TranslationTarget)
		result.Translated = translated != result.Transcript
		result.Transcript = translated
		s.metrics.RecordStage("translate", time.Since(start), nil)
	}

	report(StageAnalyzing, 70)
	start = time.Now()
	result.Analysis = s.analyzer.Analyze(result.Transcript)
	s.metrics.RecordStage("analyze", time.Since(start), nil)

	s.logger.Info("transcript generated", utils.Fields{
		"video_id":   result.VideoID,
		"language":   result.LanguageCode,
		"translated": result.Translated,
		"degraded":   result.Analysis.KeySentences.Degraded || result.Analysis.Keywords.Degraded,
	})
	return result, nil
}
