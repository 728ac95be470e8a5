package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_youtube/internal/engine/sources"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
)

const toolGetVideoInfo = "get_video_info"

func (d *Dispatcher) getVideoInfo(ctx context.Context, args map[string]any) (string, error) {
	in, err := sanitizeVideoInfoArgs(args)
	if err != nil {
		return "", err
	}
	id, err := sources.ExtractVideoID(in.URL)
	if err != nil {
		return "", err
	}
	info, err := d.meta.FetchVideoInfo(ctx, id)
	if err != nil {
		return "", err
	}
	return toolutil.JSONText(info)
}
