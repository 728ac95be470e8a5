// Package toolutil provides shared helper functions for go_youtube MCP tools.
package toolutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

// JSONText encodes v as two-space indented JSON without HTML escaping,
// the text payload format of every JSON-returning tool and resource.
func JSONText(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// WireError converts err into a JSON-RPC error carrying the typed code.
// Untyped errors become InternalError with a generic message so that
// collaborator details never reach the caller.
func WireError(err error) *jsonrpc.Error {
	var e *engine.Error
	if errors.As(err, &e) {
		return &jsonrpc.Error{Code: int64(e.Code), Message: e.Message}
	}
	var wire *jsonrpc.Error
	if errors.As(err, &wire) {
		return wire
	}
	return &jsonrpc.Error{Code: int64(engine.CodeInternalError), Message: "Internal error"}
}
