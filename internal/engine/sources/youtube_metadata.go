package sources

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

var videoParts = []string{"snippet", "contentDetails"}

// MetadataClient reads video metadata from the YouTube Data API v3.
// One attempt per request; there is no retry.
type MetadataClient struct {
	service *ytapi.Service
	limiter *rate.Limiter
}

// NewMetadataClient creates the Data API service with the credential chosen
// by engine.SelectCredential.
func NewMetadataClient(ctx context.Context, cfg *engine.Config) (*MetadataClient, error) {
	c := cfg.WithDefaults()
	service, err := ytapi.NewService(ctx, engine.ClientOptions(ctx, &c)...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &MetadataClient{
		service: service,
		limiter: newLimiter(c.YouTubeAPIRPS),
	}, nil
}

// FetchVideoInfo returns snippet and contentDetails for videoID.
// Zero items → NotFound; any call failure → InternalError (cause logged).
func (c *MetadataClient) FetchVideoInfo(ctx context.Context, videoID string) (*engine.VideoInfo, error) {
	engine.IncrMetadataRequest()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, engine.Internal(err, "Failed to fetch video info")
	}

	resp, err := c.service.Videos.List(videoParts).Id(videoID).Context(ctx).Do()
	if err != nil {
		engine.IncrMetadataError()
		slog.Warn("youtube: videos.list failed", slog.String("id", videoID), slog.Any("error", err))
		return nil, engine.Internal(fmt.Errorf("videos.list: %w", err), "Failed to fetch video info")
	}
	if len(resp.Items) == 0 {
		return nil, engine.NotFound("Video not found: %s", videoID)
	}
	return videoInfoFromAPI(resp.Items[0]), nil
}

func videoInfoFromAPI(v *ytapi.Video) *engine.VideoInfo {
	info := &engine.VideoInfo{ID: v.Id}
	if s := v.Snippet; s != nil {
		info.Snippet = engine.VideoSnippet{
			Title:                s.Title,
			Description:          s.Description,
			ChannelID:            s.ChannelId,
			ChannelTitle:         s.ChannelTitle,
			PublishedAt:          s.PublishedAt,
			Tags:                 s.Tags,
			DefaultLanguage:      s.DefaultLanguage,
			DefaultAudioLanguage: s.DefaultAudioLanguage,
		}
	}
	if cd := v.ContentDetails; cd != nil {
		info.ContentDetails = &engine.ContentDetails{
			Duration:   cd.Duration,
			Definition: cd.Definition,
			Caption:    cd.Caption,
			Dimension:  cd.Dimension,
		}
	}
	return info
}
