package ytserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

func TestReadResource_Info(t *testing.T) {
	d, _, _ := newTestDispatcher(t, engine.Config{})
	uri := "youtube://" + testVideoID + "/info"
	rc, err := d.ReadResource(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, uri, rc.URI)
	assert.Equal(t, "application/json", rc.MIMEType)

	var info engine.VideoInfo
	require.NoError(t, json.Unmarshal([]byte(rc.Text), &info))
	assert.Equal(t, testVideoID, info.ID)
}

func TestReadResource_Captions(t *testing.T) {
	d, _, caps := newTestDispatcher(t, engine.Config{})
	rc, err := d.ReadResource(context.Background(), "youtube://"+testVideoID+"/captions/es")
	require.NoError(t, err)
	assert.Equal(t, "es", caps.lastLang.Load())

	var cues []engine.Caption
	require.NoError(t, json.Unmarshal([]byte(rc.Text), &cues))
	assert.Len(t, cues, 2)
}

func TestReadResource_Errors(t *testing.T) {
	d, meta, _ := newTestDispatcher(t, engine.Config{})
	tests := []struct {
		name string
		uri  string
		msg  string
	}{
		{"wrong scheme", "http://" + testVideoID + "/info", "Invalid URI format: http://" + testVideoID + "/info"},
		{"too many segments", "youtube://" + testVideoID + "/captions/en/x", ""},
		{"bad video id", "youtube://short/info", "Invalid video ID in URI: youtube://short/info"},
		{"captions without lang", "youtube://" + testVideoID + "/captions", "Language code required for captions"},
		{"unknown type", "youtube://" + testVideoID + "/comments", "Unknown resource type: comments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.ReadResource(context.Background(), tt.uri)
			require.Error(t, err)
			assert.Equal(t, engine.CodeInvalidRequest, engine.CodeOf(err))
			if tt.msg != "" {
				assert.Equal(t, tt.msg, err.Error())
			}
		})
	}
	assert.Zero(t, meta.calls.Load())
}

func TestReadResource_NotFound(t *testing.T) {
	d, meta, _ := newTestDispatcher(t, engine.Config{})
	meta.err = engine.NotFound("Video not found: %s", testVideoID)
	_, err := d.ReadResource(context.Background(), "youtube://"+testVideoID+"/info")
	require.Error(t, err)
	assert.Equal(t, engine.CodeNotFound, engine.CodeOf(err))
}
