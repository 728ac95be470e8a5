package ytserver

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/engine/sources"
	"github.com/anatolykoptev/go_youtube/internal/markdown"
)

const toolConvertToMarkdown = "convert_to_markdown"

func (d *Dispatcher) convertToMarkdown(ctx context.Context, args map[string]any) (string, error) {
	in, err := sanitizeConvertArgs(args)
	if err != nil {
		return "", err
	}
	id, err := sources.ExtractVideoID(in.URL)
	if err != nil {
		return "", err
	}
	tpl, err := d.resolveTemplate(in.TemplateName)
	if err != nil {
		return "", err
	}
	if in.Options.SearchTerm != "" {
		if err := markdown.CheckSearchable(tpl); err != nil {
			return "", err
		}
	}
	lang := d.language(in.Language)

	// Both fetches must succeed; the first failure cancels the other.
	var (
		info     *engine.VideoInfo
		captions []engine.Caption
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = d.meta.FetchVideoInfo(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		captions, err = d.captions.FetchCaptionTrack(gctx, id, lang)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	md, err := markdown.Render(tpl, info, captions, in.Options)
	if err != nil {
		return "", err
	}
	engine.IncrMarkdownRender()
	return md, nil
}

// resolveTemplate finds name, falling back to the configured default when
// name is empty or unknown.
func (d *Dispatcher) resolveTemplate(name string) (markdown.Template, error) {
	if name != "" {
		if tpl, ok := d.templates.Find(name); ok {
			return tpl, nil
		}
		slog.Warn("unknown template, using default",
			slog.String("template", name), slog.String("default", d.cfg.DefaultTemplate))
	}
	if tpl, ok := d.templates.Find(d.cfg.DefaultTemplate); ok {
		return tpl, nil
	}
	if name == "" {
		name = d.cfg.DefaultTemplate
	}
	return markdown.Template{}, engine.InvalidRequest("Template '%s' not found", name)
}
