// Package markdown holds the named caption templates and renders video
// metadata plus caption cues into markdown with them.
package markdown

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Template is a named set of format strings with {token} placeholders.
type Template struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Format      Format `json:"format" yaml:"format"`
}

// Format fields are optional except CaptionBlock. An empty string means absent.
type Format struct {
	Header             string `json:"header,omitempty" yaml:"header,omitempty"`
	ChapterFormat      string `json:"chapter_format,omitempty" yaml:"chapter_format,omitempty"`
	TimestampFormat    string `json:"timestamp_format,omitempty" yaml:"timestamp_format,omitempty"`
	SearchResultFormat string `json:"search_result_format,omitempty" yaml:"search_result_format,omitempty"`
	CaptionBlock       string `json:"caption_block" yaml:"caption_block"`
}

// builtinTemplates are seeded into every registry, in this order.
var builtinTemplates = []Template{
	{
		Name:        "basic",
		Description: "Plain transcript, one caption per line",
		Format: Format{
			CaptionBlock: "{text}\n",
		},
	},
	{
		Name:        "detailed",
		Description: "Title header, publish info, chapters and timestamped captions",
		Format: Format{
			Header:          "# {video_title}\n\n**Channel:** {channel_name}\n**Published:** {publish_date}\n\n",
			ChapterFormat:   "\n## {chapter_title} ({timestamp})\n\n",
			TimestampFormat: "[{timestamp}] ",
			CaptionBlock:    "{text}\n",
		},
	},
	{
		Name:        "search",
		Description: "Captions matching a search term, with the term highlighted",
		Format: Format{
			Header:             "# Search results: {video_title}\n\n",
			SearchResultFormat: "- [{timestamp}] {text}\n",
			CaptionBlock:       "{text}\n",
		},
	},
}

// BuiltinNames lists the names of the built-in templates.
func BuiltinNames() []string {
	names := make([]string, len(builtinTemplates))
	for i, t := range builtinTemplates {
		names[i] = t.Name
	}
	return names
}

// Registry is an insertion-ordered, read-only set of templates.
// It is safe for concurrent use because it is never mutated after construction.
type Registry struct {
	templates []Template
	byName    map[string]int
}

// NewRegistry seeds the built-ins and then adds extra in order. An extra
// template whose name matches an existing one replaces it in place.
func NewRegistry(extra ...Template) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(builtinTemplates)+len(extra))}
	for _, t := range builtinTemplates {
		r.put(t)
	}
	for _, t := range extra {
		if err := validate(t); err != nil {
			return nil, err
		}
		r.put(t)
	}
	return r, nil
}

// LoadRegistry builds a registry from the built-ins plus the templates in
// path (YAML). An empty path yields the built-ins only.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry()
	}
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(extra...)
}

// templatesFile is the YAML layout of an operator templates file.
type templatesFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadFile reads operator templates from a YAML file of the form
//
//	templates:
//	  - name: compact
//	    description: ...
//	    format:
//	      caption_block: "{text} "
func LoadFile(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates file: %w", err)
	}
	var f templatesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse templates file %s: %w", path, err)
	}
	for _, t := range f.Templates {
		if err := validate(t); err != nil {
			return nil, fmt.Errorf("templates file %s: %w", path, err)
		}
	}
	return f.Templates, nil
}

func validate(t Template) error {
	if t.Name == "" {
		return fmt.Errorf("template without name")
	}
	if t.Format.CaptionBlock == "" {
		return fmt.Errorf("template %q: caption_block is required", t.Name)
	}
	return nil
}

func (r *Registry) put(t Template) {
	if i, ok := r.byName[t.Name]; ok {
		r.templates[i] = t
		return
	}
	r.byName[t.Name] = len(r.templates)
	r.templates = append(r.templates, t)
}

// List returns the templates in insertion order.
func (r *Registry) List() []Template {
	out := make([]Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// Find looks a template up by exact name.
func (r *Registry) Find(name string) (Template, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Template{}, false
	}
	return r.templates[i], true
}
