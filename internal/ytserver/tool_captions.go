package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_youtube/internal/engine/sources"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
)

const toolGetCaptions = "get_captions"

func (d *Dispatcher) getCaptions(ctx context.Context, args map[string]any) (string, error) {
	in, err := sanitizeCaptionsArgs(args)
	if err != nil {
		return "", err
	}
	id, err := sources.ExtractVideoID(in.URL)
	if err != nil {
		return "", err
	}
	captions, err := d.captions.FetchCaptionTrack(ctx, id, d.language(in.Language))
	if err != nil {
		return "", err
	}
	return toolutil.JSONText(captions)
}

// language applies the configured default to an empty language code.
func (d *Dispatcher) language(lang string) string {
	if lang == "" {
		return d.cfg.DefaultLanguage
	}
	return lang
}
