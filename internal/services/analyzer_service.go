// internal/services/analyzer_service.go
package services

import (
	"fmt"
	"unicode/utf8"

	apperrors "github.com/Gajjar-Mohit/backend/internal/errors"
	"github.com/Gajjar-Mohit/backend/internal/models"
	"github.com/Gajjar-Mohit/backend/internal/nlp"
	"github.com/Gajjar-Mohit/backend/internal/utils"
)

const (
	DefaultKeySentences = 5
	DefaultKeywords     = 10

	// sentences of this many characters or fewer are not key sentences
	minSentenceLength = 10
)

// AnalyzerService extracts key sentences and keywords from transcript text.
// Extraction never fails the request: a failed list is replaced by its
// placeholder.
type AnalyzerService struct {
	numSentences int
	numKeywords  int
	parse        func(text string) (*nlp.Document, error)
	logger       *utils.Logger
}

func NewAnalyzerService(numSentences, numKeywords int) *AnalyzerService {
	if numSentences <= 0 {
		numSentences = DefaultKeySentences
	}
	if numKeywords <= 0 {
		numKeywords = DefaultKeywords
	}
	return &AnalyzerService{
		numSentences: numSentences,
		numKeywords:  numKeywords,
		parse:        nlp.Parse,
		logger:       utils.GetLogger(),
	}
}

// Analyze returns both extractions for text.
func (s *AnalyzerService) Analyze(text string) models.AnalysisResult {
	doc, err := s.safeParse(text)
	if err != nil {
		err = apperrors.NewAnalysisError("parse transcript", err)
		s.logger.Warn("text analysis failed", utils.Fields{"error": err.Error()})
		return models.AnalysisResult{
			KeySentences: models.Degraded(models.KeySentencesFailed),
			Keywords:     models.Degraded(models.KeywordsFailed),
		}
	}

	return models.AnalysisResult{
		KeySentences: s.extract("key sentences", models.KeySentencesFailed, func() []string {
			return KeySentences(doc.Sentences(), s.numSentences)
		}),
		Keywords: s.extract("keywords", models.KeywordsFailed, func() []string {
			return Keywords(doc.NounChunks(), s.numKeywords)
		}),
	}
}

func (s *AnalyzerService) safeParse(text string) (doc *nlp.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("nlp parser panic: %v", r)
		}
	}()
	return s.parse(text)
}

func (s *AnalyzerService) extract(name, placeholder string, fn func() []string) (result models.ListResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("extraction failed", utils.Fields{"list": name, "panic": fmt.Sprint(r)})
			result = models.Degraded(placeholder)
		}
	}()
	return models.OK(fn())
}

// KeySentences keeps sentences longer than ten characters and returns the
// first limit of them in document order.
func KeySentences(sentences []string, limit int) []string {
	out := make([]string, 0, limit)
	for _, sentence := range sentences {
		if len(out) == limit {
			break
		}
		if utf8.RuneCountInString(sentence) > minSentenceLength {
			out = append(out, sentence)
		}
	}
	return out
}

// Keywords deduplicates chunks, keeping the first occurrence of each, and
// returns at most limit of them.
func Keywords(chunks []string, limit int) []string {
	seen := make(map[string]bool, len(chunks))
	out := make([]string, 0, limit)
	for _, chunk := range chunks {
		if len(out) == limit {
			break
		}
		if seen[chunk] {
			continue
		}
		seen[chunk] = true
		out = append(out, chunk)
	}
	return out
}
