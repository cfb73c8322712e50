// internal/services/translation_service.go
package services

import (
	"context"
	"strings"

	apperrors "github.com/Gajjar-Mohit/backend/internal/errors"
	"github.com/Gajjar-Mohit/backend/internal/translator"
	"github.com/Gajjar-Mohit/backend/internal/utils"
)

// TranslationService wraps the configured translation provider. Failures
// are logged and the input is returned unchanged.
type TranslationService struct {
	provider translator.Provider
	logger   *utils.Logger
}

// NewTranslationService accepts a nil provider; every call then returns the
// original text.
func NewTranslationService(provider translator.Provider) *TranslationService {
	return &TranslationService{
		provider: provider,
		logger:   utils.GetLogger(),
	}
}

// ProviderName returns the active provider, or "none".
func (s *TranslationService) ProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetName()
}

// Translate translates text into dest. On any failure the original text is
// returned.
func (s *TranslationService) Translate(ctx context.Context, text, dest string) string {
	translated, err := s.TryTranslate(ctx, text, dest)
	if err != nil {
		s.logger.Info("translation skipped, keeping original text", utils.Fields{
			"provider": s.ProviderName(),
			"dest":     dest,
			"error":    err.Error(),
		})
		return text
	}
	return translated
}

// TryTranslate is Translate with the failure reported to the caller.
func (s *TranslationService) TryTranslate(ctx context.Context, text, dest string) (string, error) {
	if s.provider == nil {
		return "", apperrors.NewTranslationError("no translation provider configured", nil)
	}

	resp, err := s.provider.Translate(ctx, translator.TranslationRequest{
		Text:           text,
		TargetLanguage: dest,
	})
	if err != nil {
		return "", apperrors.NewTranslationError("translation request failed", err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", apperrors.NewTranslationError("translation returned no text", nil)
	}
	return resp.Text, nil
}
