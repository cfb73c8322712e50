// internal/youtube/client.go
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/Gajjar-Mohit/backend/internal/errors"
	"github.com/Gajjar-Mohit/backend/internal/models"
	"github.com/Gajjar-Mohit/backend/internal/utils"
	"golang.org/x/net/html"
)

// Options configures a Client. Zero values fall back to production defaults.
type Options struct {
	HTTPClient   *http.Client
	Languages    []string      // caption languages in priority order
	Verifier     VideoVerifier // optional id confirmation
	WatchURL     string
	InnertubeURL string
	Logger       *utils.Logger
}

// Client fetches caption tracks for YouTube videos.
type Client struct {
	httpClient   *http.Client
	languages    []string
	verifier     VideoVerifier
	watchURL     string
	innertubeURL string
	logger       *utils.Logger
}

// New creates a client with sane defaults.
func New(opts Options) *Client {
	c := &Client{
		httpClient:   opts.HTTPClient,
		languages:    opts.Languages,
		verifier:     opts.Verifier,
		watchURL:     opts.WatchURL,
		innertubeURL: opts.InnertubeURL,
		logger:       opts.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if len(c.languages) == 0 {
		c.languages = []string{"en", "hi"}
	}
	if c.watchURL == "" {
		c.watchURL = defaultWatchURL
	}
	if c.innertubeURL == "" {
		c.innertubeURL = defaultInnertubeURL
	}
	if c.logger == nil {
		c.logger = utils.GetLogger()
	}
	return c
}

// Languages returns the caption languages tried, in order.
func (c *Client) Languages() []string {
	return c.languages
}

// FetchTranscript resolves ref, lists its caption tracks and fetches the
// first track matching the configured languages.
func (c *Client) FetchTranscript(ctx context.Context, ref models.VideoReference) (*models.Transcript, error) {
	videoID, err := ResolveVideoID(string(ref))
	if err != nil {
		return nil, err
	}
	if c.verifier != nil {
		if err := c.verifier.VerifyVideo(ctx, videoID); err != nil {
			return nil, err
		}
	}

	options, err := c.ListTranscripts(ctx, videoID)
	if err != nil {
		return nil, err
	}

	option, ok := FindTranscript(options, c.languages)
	if !ok {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("no transcript in %s for video %s", strings.Join(c.languages, "/"), videoID), nil)
	}

	entries, err := c.FetchEntries(ctx, option)
	if err != nil {
		return nil, err
	}
	return &models.Transcript{
		VideoID:      videoID,
		LanguageCode: option.LanguageCode,
		Entries:      entries,
	}, nil
}

// ListTranscripts returns the caption tracks of a video. The watch page is
// tried first, then the ANDROID InnerTube player endpoint.
func (c *Client) ListTranscripts(ctx context.Context, videoID string) ([]models.TranscriptLanguageOption, error) {
	options, scrapeErr := c.listViaWatchPage(ctx, videoID)
	if scrapeErr == nil {
		return options, nil
	}
	c.logger.Warn("youtube: watch page scrape failed, trying player", utils.Fields{
		"video_id": videoID,
		"error":    scrapeErr.Error(),
	})

	options, playerErr := c.listViaPlayer(ctx, videoID)
	if playerErr == nil {
		return options, nil
	}
	return nil, apperrors.NewTranscriptsDisabledError(
		fmt.Sprintf("could not list transcripts for video %s", videoID),
		errors.Join(scrapeErr, playerErr))
}

// FindTranscript picks the first language in langs that the video offers,
// preferring a manually created track over a generated one.
func FindTranscript(options []models.TranscriptLanguageOption, langs []string) (models.TranscriptLanguageOption, bool) {
	for _, lang := range langs {
		var generated *models.TranscriptLanguageOption
		for i := range options {
			if options[i].LanguageCode != lang {
				continue
			}
			if !options[i].Generated {
				return options[i], true
			}
			if generated == nil {
				generated = &options[i]
			}
		}
		if generated != nil {
			return *generated, true
		}
	}
	return models.TranscriptLanguageOption{}, false
}

func (c *Client) listViaWatchPage(ctx context.Context, videoID string) ([]models.TranscriptLanguageOption, error) {
	watchURL := c.watchURL + "?v=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var raw []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		raw = extractJSON([]byte(text[idx+len(playerResponseMarker):]))
		return raw == nil
	})
	if raw == nil {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return captionOptions(&player)
}

func (c *Client) listViaPlayer(ctx context.Context, videoID string) ([]models.TranscriptLanguageOption, error) {
	body, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{Client: innertubeClient{
			ClientName:        "ANDROID",
			ClientVersion:     androidVersion,
			AndroidSdkVersion: 30,
			Hl:                "en",
			Gl:                "US",
		}},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.innertubeURL+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("android innertube: HTTP %d: %s", resp.StatusCode, snippet)
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return captionOptions(&player)
}

func captionOptions(player *playerResponse) ([]models.TranscriptLanguageOption, error) {
	if reason := player.unplayableReason(); reason != "" && player.Captions == nil {
		return nil, fmt.Errorf("video unplayable: %s", reason)
	}
	options := player.options()
	if len(options) == 0 {
		return nil, errors.New("transcripts are disabled for this video")
	}
	return options, nil
}

type timedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

// FetchEntries downloads the timedtext XML of a caption track.
func (c *Client) FetchEntries(ctx context.Context, option models.TranscriptLanguageOption) ([]models.TranscriptEntry, error) {
	if option.BaseURL == "" {
		return nil, apperrors.NewUpstreamError("caption track has no url", nil)
	}
	trackURL := strings.Replace(option.BaseURL, "&fmt=srv3", "", 1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamError("build timedtext request", err)
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("fetch timedtext", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("fetch timedtext: HTTP %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, apperrors.NewUpstreamError("read timedtext", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, apperrors.NewUpstreamError("parse timedtext XML", err)
	}

	entries := make([]models.TranscriptEntry, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanCaption(line.Text)
		start, _ := strconv.ParseFloat(line.Start, 64)
		dur, _ := strconv.ParseFloat(line.Dur, 64)
		entries = append(entries, models.TranscriptEntry{Text: text, Start: start, Duration: dur})
	}
	return entries, nil
}

// cleanCaption drops markup such as <font> and decodes the entities that
// survive XML decoding (timedtext double-escapes apostrophes). Whitespace is
// kept as is; only the joined transcript is trimmed.
func cleanCaption(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
