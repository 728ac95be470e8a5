package ytserver

import (
	"context"
	"regexp"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/sources"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
)

const (
	resourceInfoTemplate     = "youtube://{video_id}/info"
	resourceCaptionsTemplate = "youtube://{video_id}/captions/{lang}"
	resourceMIMEType         = "application/json"
)

// resourceURIRE splits youtube://{video_id}/{type}[/{lang}].
var resourceURIRE = regexp.MustCompile(`^youtube://([^/]+)/([^/]+)(?:/([^/]+))?$`)

// ResourceContent is the payload of a resource read.
type ResourceContent struct {
	URI      string
	MIMEType string
	Text     string
}

// ReadResource serves youtube://{video_id}/info and youtube://{video_id}/captions/{lang}.
func (d *Dispatcher) ReadResource(ctx context.Context, uri string) (*ResourceContent, error) {
	engine.IncrResourceRead()
	rc, err := d.readResource(ctx, uri)
	if err != nil {
		engine.IncrResourceError()
		return nil, err
	}
	return rc, nil
}

func (d *Dispatcher) readResource(ctx context.Context, uri string) (*ResourceContent, error) {
	m := resourceURIRE.FindStringSubmatch(uri)
	if m == nil {
		return nil, engine.InvalidRequest("Invalid URI format: %s", uri)
	}
	videoID, kind, lang := m[1], m[2], m[3]
	if !sources.IsVideoID(videoID) {
		return nil, engine.InvalidRequest("Invalid video ID in URI: %s", uri)
	}

	var payload any
	switch kind {
	case "info":
		info, err := d.meta.FetchVideoInfo(ctx, videoID)
		if err != nil {
			return nil, err
		}
		payload = info
	case "captions":
		if lang == "" {
			return nil, engine.InvalidRequest("Language code required for captions")
		}
		captions, err := d.captions.FetchCaptionTrack(ctx, videoID, lang)
		if err != nil {
			return nil, err
		}
		payload = captions
	default:
		return nil, engine.InvalidRequest("Unknown resource type: %s", kind)
	}

	text, err := toolutil.JSONText(payload)
	if err != nil {
		return nil, engine.Internal(err, "Failed to encode resource")
	}
	return &ResourceContent{URI: uri, MIMEType: resourceMIMEType, Text: text}, nil
}
