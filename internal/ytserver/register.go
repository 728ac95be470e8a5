package ytserver

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/toolutil"
)

// Register binds the dispatcher's tools and resource templates to server.
// Arguments reach the dispatcher as raw JSON so it can apply its own
// lenient type checks.
func Register(server *mcp.Server, d *Dispatcher) {
	for _, t := range toolDefinitions() {
		server.AddTool(t, d.handleTool)
	}

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "video_info",
		Description: "Video metadata as JSON",
		URITemplate: resourceInfoTemplate,
		MIMEType:    resourceMIMEType,
	}, d.handleResource)
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "video_captions",
		Description: "Caption track in the given language as JSON",
		URITemplate: resourceCaptionsTemplate,
		MIMEType:    resourceMIMEType,
	}, d.handleResource)

	server.AddReceivingMiddleware(d.middleware)
}

func (d *Dispatcher) handleTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := d.CallTool(ctx, req.Params.Name, req.Params.Arguments)
	if err != nil {
		return nil, toolutil.WireError(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil
}

func (d *Dispatcher) handleResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	rc, err := d.ReadResource(ctx, req.Params.URI)
	if err != nil {
		return nil, toolutil.WireError(err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: rc.URI, MIMEType: rc.MIMEType, Text: rc.Text}},
	}, nil
}

// middleware answers unknown tools with MethodNotFound and sends every
// resources/read to the dispatcher, including URIs no template matches.
func (d *Dispatcher) middleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		switch r := req.(type) {
		case *mcp.CallToolRequest:
			if r.Params != nil && !d.HasTool(r.Params.Name) {
				engine.IncrToolCall()
				engine.IncrToolError()
				return nil, toolutil.WireError(engine.MethodNotFound("Unknown tool: %s", r.Params.Name))
			}
		case *mcp.ReadResourceRequest:
			if r.Params != nil {
				res, err := d.handleResource(ctx, r)
				if err != nil {
					return nil, err
				}
				return res, nil
			}
		}
		return next(ctx, method, req)
	}
}

func toolDefinitions() []*mcp.Tool {
	urlProp := &jsonschema.Schema{Type: "string", Description: "YouTube video URL"}
	langProp := &jsonschema.Schema{Type: "string", Description: "Language code (e.g. en)"}
	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true}

	return []*mcp.Tool{
		{
			Name:        toolGetVideoInfo,
			Description: "Get metadata for a YouTube video: title, description, channel, publish date, tags and content details.",
			Annotations: readOnly,
			InputSchema: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{"url": urlProp},
				Required:   []string{"url"},
			},
		},
		{
			Name:        toolGetCaptions,
			Description: "Get the caption track of a YouTube video as a list of timed cues.",
			Annotations: readOnly,
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"url":      urlProp,
					"language": langProp,
				},
				Required: []string{"url"},
			},
		},
		{
			Name:        toolConvertToMarkdown,
			Description: "Render a YouTube video's captions as Markdown using a named template. Supports chapter headings and a search mode that lists only matching cues.",
			Annotations: readOnly,
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"url":           urlProp,
					"template_name": {Type: "string", Description: "Template name, see list_templates"},
					"language":      langProp,
					"options": {
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"include_chapters": {Type: "boolean", Description: "Insert chapter headings parsed from the description"},
							"search_term":      {Type: "string", Description: "Only emit cues containing this text"},
						},
					},
				},
				Required: []string{"url"},
			},
		},
		{
			Name:        toolListTemplates,
			Description: "List the available Markdown templates.",
			Annotations: readOnly,
			InputSchema: &jsonschema.Schema{Type: "object"},
		},
	}
}
