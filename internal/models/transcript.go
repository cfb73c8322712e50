// internal/models/transcript.go
package models

import "strings"

// VideoReference is the raw video URL (or bare id) supplied by a client.
type VideoReference string

// TranscriptLanguageOption is one caption track a video offers.
type TranscriptLanguageOption struct {
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	Generated    bool   `json:"generated"` // auto-generated (ASR) track
	BaseURL      string `json:"-"`         // timedtext URL used to fetch the entries
}

// TranscriptEntry is a single timed caption line.
type TranscriptEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the fetched caption track of a video.
type Transcript struct {
	VideoID      string            `json:"video_id"`
	LanguageCode string            `json:"language_code"`
	Entries      []TranscriptEntry `json:"entries"`
}

// Text joins the entry texts with single spaces and trims the result.
func (t *Transcript) Text() string {
	if t == nil {
		return ""
	}
	parts := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		parts = append(parts, e.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
