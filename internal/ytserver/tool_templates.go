package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_youtube/internal/toolutil"
)

const toolListTemplates = "list_templates"

func (d *Dispatcher) listTemplates(_ context.Context, _ map[string]any) (string, error) {
	return toolutil.JSONText(d.templates.List())
}
