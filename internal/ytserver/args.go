package ytserver

import (
	"bytes"
	"encoding/json"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

// Argument sanitization. Required fields are type-checked strictly;
// optional fields of the wrong type are treated as absent.

type videoInfoArgs struct {
	URL string
}

type captionsArgs struct {
	URL      string
	Language string // empty = default language
}

type convertArgs struct {
	URL          string
	TemplateName string // empty = default template
	Language     string // empty = default language
	Options      engine.RenderOptions
}

// decodeArguments requires the arguments to be a JSON object.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, engine.InvalidRequest("Missing arguments")
	}
	var args map[string]any
	if err := json.Unmarshal(trimmed, &args); err != nil {
		return nil, engine.InvalidRequest("Arguments must be an object")
	}
	return args, nil
}

func requireURL(args map[string]any) (string, error) {
	u, ok := args["url"].(string)
	if !ok {
		return "", engine.InvalidRequest("URL is required and must be a string")
	}
	return u, nil
}

func optString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func optBool(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func sanitizeVideoInfoArgs(args map[string]any) (videoInfoArgs, error) {
	u, err := requireURL(args)
	if err != nil {
		return videoInfoArgs{}, err
	}
	return videoInfoArgs{URL: u}, nil
}

func sanitizeCaptionsArgs(args map[string]any) (captionsArgs, error) {
	u, err := requireURL(args)
	if err != nil {
		return captionsArgs{}, err
	}
	return captionsArgs{URL: u, Language: optString(args, "language")}, nil
}

func sanitizeConvertArgs(args map[string]any) (convertArgs, error) {
	u, err := requireURL(args)
	if err != nil {
		return convertArgs{}, err
	}
	out := convertArgs{
		URL:          u,
		TemplateName: optString(args, "template_name"),
		Language:     optString(args, "language"),
	}
	if opts, ok := args["options"].(map[string]any); ok {
		out.Options = engine.RenderOptions{
			IncludeChapters: optBool(opts, "include_chapters"),
			SearchTerm:      optString(opts, "search_term"),
		}
	}
	return out, nil
}
