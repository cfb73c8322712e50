// internal/youtube/resolve.go
package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/Gajjar-Mohit/backend/internal/errors"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// bare ids must have the canonical length; ids inside a URL only need the
// id alphabet
var (
	videoIDRE   = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	idSegmentRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// path prefixes that carry the id as the next segment
var idPathPrefixes = []string{"/shorts/", "/embed/", "/live/", "/v/", "/e/"}

// ResolveVideoID extracts the video id from a YouTube URL or accepts a bare
// 11 character id.
func ResolveVideoID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", apperrors.NewResolutionError("empty video reference", nil)
	}
	if videoIDRE.MatchString(ref) {
		return ref, nil
	}

	raw := ref
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", apperrors.NewResolutionError("malformed video url", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	var candidate string
	switch host {
	case "youtu.be":
		candidate = firstSegment(u.Path)
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if u.Path == "/watch" {
			candidate = u.Query().Get("v")
			break
		}
		for _, prefix := range idPathPrefixes {
			if strings.HasPrefix(u.Path, prefix) {
				candidate = firstSegment(strings.TrimPrefix(u.Path, prefix))
				break
			}
		}
	default:
		return "", apperrors.NewResolutionError(fmt.Sprintf("unsupported host %q", host), nil)
	}

	if !idSegmentRE.MatchString(candidate) {
		return "", apperrors.NewResolutionError(fmt.Sprintf("no video id in %q", ref), nil)
	}
	return candidate, nil
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if idx := strings.IndexByte(p, '/'); idx >= 0 {
		p = p[:idx]
	}
	return p
}

// VideoVerifier confirms that a resolved id points to a reachable video.
type VideoVerifier interface {
	VerifyVideo(ctx context.Context, videoID string) error
}

// DataAPIVerifier checks ids against the YouTube Data API v3.
type DataAPIVerifier struct {
	service *ytapi.Service
}

// NewDataAPIVerifier builds a verifier authenticated with an API key.
func NewDataAPIVerifier(ctx context.Context, apiKey string, opts ...option.ClientOption) (*DataAPIVerifier, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &DataAPIVerifier{service: service}, nil
}

func (v *DataAPIVerifier) VerifyVideo(ctx context.Context, videoID string) error {
	resp, err := v.service.Videos.List([]string{"id"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return apperrors.NewResolutionError("video lookup failed", err)
	}
	if len(resp.Items) == 0 {
		return apperrors.NewResolutionError(fmt.Sprintf("video %s is unavailable", videoID), nil)
	}
	return nil
}
