// internal/models/analysis.go
package models

const (
	// KeySentencesFailed is the single item of a degraded key sentence list.
	KeySentencesFailed = "Failed to extract key points"
	// KeywordsFailed is the single item of a degraded keyword list.
	KeywordsFailed = "Failed to extract keywords"
)

// ListResult is an extraction outcome. A degraded result carries only the
// placeholder string so the response shape stays the same.
type ListResult struct {
	Items    []string `json:"items"`
	Degraded bool     `json:"degraded"`
}

// OK wraps a successful extraction. A nil slice becomes an empty one so it
// serializes as [].
func OK(items []string) ListResult {
	if items == nil {
		items = []string{}
	}
	return ListResult{Items: items}
}

// Degraded wraps a failed extraction with its placeholder.
func Degraded(placeholder string) ListResult {
	return ListResult{Items: []string{placeholder}, Degraded: true}
}

// AnalysisResult holds the key sentences and keywords of a transcript.
type AnalysisResult struct {
	KeySentences ListResult `json:"key_sentences"`
	Keywords     ListResult `json:"keywords"`
}
