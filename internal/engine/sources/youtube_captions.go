package sources

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

// CaptionClient fetches caption cues for a video.
// Primary:  scrape watch page ytInitialPlayerResponse → caption track → timedtext XML
// Fallback: ANDROID Innertube /player → captionTracks
type CaptionClient struct {
	httpClient  *http.Client
	watchURL    string
	playerURL   string
	defaultLang string
	limiter     *rate.Limiter
}

// NewCaptionClient builds a caption client from cfg.
func NewCaptionClient(cfg *engine.Config) *CaptionClient {
	c := cfg.WithDefaults()
	return &CaptionClient{
		httpClient:  c.HTTPClient,
		watchURL:    c.WatchURL,
		playerURL:   c.PlayerURL,
		defaultLang: c.DefaultLanguage,
		limiter:     newLimiter(c.CaptionRPS),
	}
}

// FetchCaptionTrack returns the cues of the language track for videoID,
// in provider order. An empty language means the configured default ("en").
// Every failure is reported as InternalError; the cause is logged.
func (c *CaptionClient) FetchCaptionTrack(ctx context.Context, videoID, language string) ([]engine.Caption, error) {
	engine.IncrCaptionRequest()
	if language == "" {
		language = c.defaultLang
	}

	captions, err := c.fetch(ctx, videoID, language)
	if err != nil {
		engine.IncrCaptionError()
		slog.Warn("youtube: caption fetch failed",
			slog.String("id", videoID), slog.String("lang", language), slog.Any("error", err))
		return nil, engine.Internal(err, "Failed to fetch captions")
	}
	return captions, nil
}

func (c *CaptionClient) fetch(ctx context.Context, videoID, language string) ([]engine.Caption, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	tracks, err := c.tracksFromWatchPage(ctx, videoID)
	if err != nil {
		engine.IncrCaptionFallback()
		slog.Debug("youtube: page scrape failed, trying player",
			slog.String("id", videoID), slog.Any("error", err))
		tracks, err = c.tracksFromPlayer(ctx, videoID)
		if err != nil {
			return nil, err
		}
	}

	track, ok := pickTrack(tracks, language)
	if !ok {
		return nil, fmt.Errorf("no usable %q caption track among %d", language, len(tracks))
	}

	body, err := c.getTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// trackLang returns the track's language code, falling back to its vssId
// (".en" for manual, "a.en" for auto-generated).
func trackLang(t captionTrack) string {
	if t.LanguageCode != "" {
		return t.LanguageCode
	}
	return strings.TrimPrefix(strings.TrimPrefix(t.VssID, "a"), ".")
}

// pickTrack selects the track for language: manual before auto-generated.
// There is no cross-language fallback.
func pickTrack(tracks []captionTrack, language string) (captionTrack, bool) {
	var asr *captionTrack
	for i, t := range tracks {
		if needsPoToken(t.BaseURL) || !strings.EqualFold(trackLang(t), language) {
			continue
		}
		if t.Kind != "asr" {
			return t, true
		}
		if asr == nil {
			asr = &tracks[i]
		}
	}
	if asr != nil {
		return *asr, true
	}
	return captionTrack{}, false
}

// parseTimedText converts timedtext XML into cues. Cues whose text is empty
// after cleanup are dropped.
func parseTimedText(body []byte) ([]engine.Caption, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}
	if len(tt.Lines) == 0 {
		return nil, errors.New("empty caption track")
	}

	captions := make([]engine.Caption, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := engine.CleanCueText(line.Text)
		if text == "" {
			continue
		}
		captions = append(captions, engine.Caption{
			Start: line.Start,
			Dur:   line.Dur,
			Text:  text,
		})
	}
	return captions, nil
}
