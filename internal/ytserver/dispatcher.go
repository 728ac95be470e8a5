// Package ytserver validates and routes YouTube tool calls and resource reads,
// and binds them to an MCP server.
package ytserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/markdown"
)

// MetadataFetcher is the Metadata Client as seen by the dispatcher.
type MetadataFetcher interface {
	FetchVideoInfo(ctx context.Context, videoID string) (*engine.VideoInfo, error)
}

// CaptionFetcher is the Caption Client as seen by the dispatcher.
type CaptionFetcher interface {
	FetchCaptionTrack(ctx context.Context, videoID, language string) ([]engine.Caption, error)
}

type toolFunc func(ctx context.Context, args map[string]any) (string, error)

// Dispatcher holds no per-request state; every call works on its own locals.
type Dispatcher struct {
	cfg       *engine.Config
	meta      MetadataFetcher
	captions  CaptionFetcher
	templates *markdown.Registry
	tools     map[string]toolFunc
}

// NewDispatcher wires the clients and template registry together.
func NewDispatcher(cfg *engine.Config, meta MetadataFetcher, captions CaptionFetcher, templates *markdown.Registry) *Dispatcher {
	c := cfg.WithDefaults()
	d := &Dispatcher{
		cfg:       &c,
		meta:      meta,
		captions:  captions,
		templates: templates,
	}
	d.tools = map[string]toolFunc{
		toolGetVideoInfo:      d.getVideoInfo,
		toolGetCaptions:       d.getCaptions,
		toolConvertToMarkdown: d.convertToMarkdown,
		toolListTemplates:     d.listTemplates,
	}
	return d
}

// HasTool reports whether name is a known tool.
func (d *Dispatcher) HasTool(name string) bool {
	_, ok := d.tools[name]
	return ok
}

// ToolNames returns the known tool names, sorted.
func (d *Dispatcher) ToolNames() []string {
	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CallTool validates rawArgs and runs the named tool, returning its text payload.
func (d *Dispatcher) CallTool(ctx context.Context, name string, rawArgs json.RawMessage) (string, error) {
	engine.IncrToolCall()
	var text string
	err := engine.TrackOperation(ctx, "tool:"+name, func(ctx context.Context) error {
		var err error
		text, err = d.callTool(ctx, name, rawArgs)
		return err
	})
	if err != nil {
		engine.IncrToolError()
		slog.Warn("tool call failed",
			slog.String("tool", name),
			slog.String("code", engine.CodeOf(err).String()),
			slog.Any("error", err))
		return "", err
	}
	return text, nil
}

func (d *Dispatcher) callTool(ctx context.Context, name string, rawArgs json.RawMessage) (string, error) {
	tool, ok := d.tools[name]
	if !ok {
		return "", engine.MethodNotFound("Unknown tool: %s", name)
	}
	args, err := decodeArguments(rawArgs)
	if err != nil {
		return "", err
	}
	return tool(ctx, args)
}
