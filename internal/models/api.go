// internal/models/api.go
package models

// GenerateTranscriptRequest is the body of POST /generate_transcript.
type GenerateTranscriptRequest struct {
	VideoURL string `json:"video_url"`
}

// GenerateTranscriptResponse is the 200 body of POST /generate_transcript.
type GenerateTranscriptResponse struct {
	Transcript   string   `json:"transcript"`
	KeySentences []string `json:"key_sentences"`
	Keywords     []string `json:"keywords"`
}

// ErrorResponse is the body of every non-200 JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GenerationResult is what the transcript pipeline produces for one video.
type GenerationResult struct {
	VideoID      string         `json:"video_id"`
	LanguageCode string         `json:"language_code"`
	Translated   bool           `json:"translated"`
	Transcript   string         `json:"transcript"`
	Analysis     AnalysisResult `json:"analysis"`
}

// Response flattens a result into the public response shape.
func (r *GenerationResult) Response() GenerateTranscriptResponse {
	return GenerateTranscriptResponse{
		Transcript:   r.Transcript,
		KeySentences: r.Analysis.KeySentences.Items,
		Keywords:     r.Analysis.Keywords.Items,
	}
}
