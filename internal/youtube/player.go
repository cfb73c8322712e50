// internal/youtube/player.go
package youtube

import (
	"strings"

	"github.com/Gajjar-Mohit/backend/internal/models"
)

const (
	defaultWatchURL     = "https://www.youtube.com/watch"
	defaultInnertubeURL = "https://www.youtube.com/youtubei/v1/player"
	androidVersion      = "20.10.38"
	androidUA           = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
	browserUA           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	playerResponseMarker = "ytInitialPlayerResponse = "
)

// --- InnerTube ANDROID /player request ---

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

// playerResponse is the subset of ytInitialPlayerResponse / the /player
// response that carries caption tracks.
type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	LanguageCode string    `json:"languageCode"`
	Kind         string    `json:"kind"` // "asr" = auto-generated
	Name         trackName `json:"name"`
}

type trackName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (n trackName) String() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}
	var sb strings.Builder
	for _, r := range n.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// options converts the caption tracks into language options, keeping the
// order the platform reported.
func (p *playerResponse) options() []models.TranscriptLanguageOption {
	if p.Captions == nil {
		return nil
	}
	tracks := p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	out := make([]models.TranscriptLanguageOption, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, models.TranscriptLanguageOption{
			LanguageCode: t.LanguageCode,
			Name:         t.Name.String(),
			Generated:    t.Kind == "asr",
			BaseURL:      t.BaseURL,
		})
	}
	return out
}

func (p *playerResponse) unplayableReason() string {
	if p.PlayabilityStatus == nil || p.PlayabilityStatus.Status == "OK" {
		return ""
	}
	if p.PlayabilityStatus.Reason != "" {
		return p.PlayabilityStatus.Reason
	}
	return p.PlayabilityStatus.Status
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
