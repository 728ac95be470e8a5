package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

const testTimedText = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0" dur="1.5">Hello &amp;amp; welcome</text>` +
	`<text start="1.5" dur="2.25">it&amp;#39;s &lt;b&gt;bold&lt;/b&gt;</text>` +
	`<text start="3.75" dur="1"> </text>` +
	`<text start="4.75" dur="2">the end</text>` +
	`</transcript>`

// captionServer serves a watch page, a timedtext endpoint and an ANDROID player endpoint.
type captionServer struct {
	*httptest.Server
	watchStatus  int
	playerCalls  atomic.Int64
	lastFmtParam atomic.Value
}

func newCaptionServer(t *testing.T) *captionServer {
	t.Helper()
	cs := &captionServer{watchStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if cs.watchStatus != http.StatusOK {
			w.WriteHeader(cs.watchStatus)
			return
		}
		fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = %s;var meta = {};</script></html>`, cs.playerJSON(r.URL.Query().Get("v")))
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		cs.playerCalls.Add(1)
		fmt.Fprint(w, cs.playerJSON("fallback"))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		cs.lastFmtParam.Store(r.URL.Query().Get("fmt"))
		fmt.Fprint(w, testTimedText)
	})
	cs.Server = httptest.NewServer(mux)
	t.Cleanup(cs.Close)
	return cs
}

func (cs *captionServer) playerJSON(videoID string) string {
	return fmt.Sprintf(`{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
		`{"baseUrl":"%[1]s/api/timedtext?v=%[2]s&lang=fr&kind=asr","languageCode":"fr","kind":"asr","vssId":"a.fr"},`+
		`{"baseUrl":"%[1]s/api/timedtext?v=%[2]s&lang=en&fmt=srv3","languageCode":"en","vssId":".en"},`+
		`{"baseUrl":"%[1]s/api/timedtext?v=%[2]s&lang=de&exp=xpe","languageCode":"de","vssId":".de"}`+
		`]}}}`, cs.URL, videoID)
}

func (cs *captionServer) client() *CaptionClient {
	return NewCaptionClient(&engine.Config{
		WatchURL:   cs.URL + "/watch",
		PlayerURL:  cs.URL + "/youtubei/v1/player",
		HTTPClient: cs.Client(),
	})
}

func TestFetchCaptionTrack_WatchPage(t *testing.T) {
	cs := newCaptionServer(t)

	got, err := cs.client().FetchCaptionTrack(context.Background(), "dQw4w9WgXcQ", "")
	require.NoError(t, err)

	want := []engine.Caption{
		{Start: "0", Dur: "1.5", Text: "Hello & welcome"},
		{Start: "1.5", Dur: "2.25", Text: "it's bold"},
		{Start: "4.75", Dur: "2", Text: "the end"},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, int64(0), cs.playerCalls.Load())
	assert.Equal(t, "", cs.lastFmtParam.Load(), "fmt override must be stripped")
}

func TestFetchCaptionTrack_AutoGeneratedTrack(t *testing.T) {
	cs := newCaptionServer(t)

	got, err := cs.client().FetchCaptionTrack(context.Background(), "dQw4w9WgXcQ", "fr")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFetchCaptionTrack_PlayerFallback(t *testing.T) {
	cs := newCaptionServer(t)
	cs.watchStatus = http.StatusTooManyRequests

	got, err := cs.client().FetchCaptionTrack(context.Background(), "dQw4w9WgXcQ", "en")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int64(1), cs.playerCalls.Load())
}

func TestFetchCaptionTrack_MissingLanguage(t *testing.T) {
	cs := newCaptionServer(t)

	tests := []struct {
		name string
		lang string
	}{
		{"no track", "ja"},
		{"po token only", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cs.client().FetchCaptionTrack(context.Background(), "dQw4w9WgXcQ", tt.lang)
			require.Error(t, err)
			assert.Equal(t, engine.CodeInternalError, engine.CodeOf(err))
			assert.Equal(t, "Failed to fetch captions", err.Error())
		})
	}
}

func TestFetchCaptionTrack_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewCaptionClient(&engine.Config{
		WatchURL:   srv.URL + "/watch",
		PlayerURL:  srv.URL + "/player",
		HTTPClient: srv.Client(),
	})
	_, err := c.FetchCaptionTrack(context.Background(), "dQw4w9WgXcQ", "en")
	require.Error(t, err)
	assert.Equal(t, engine.CodeInternalError, engine.CodeOf(err))
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u1", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "u2", LanguageCode: "en"},
		{BaseURL: "u3", VssID: ".es"},
	}

	got, ok := pickTrack(tracks, "en")
	require.True(t, ok)
	assert.Equal(t, "u2", got.BaseURL, "manual track preferred over asr")

	got, ok = pickTrack(tracks, "ES")
	require.True(t, ok)
	assert.Equal(t, "u3", got.BaseURL)

	_, ok = pickTrack(tracks, "fr")
	assert.False(t, ok)
}

func TestTimedTextURL(t *testing.T) {
	assert.Equal(t, "https://x/api?v=1&lang=en", timedTextURL("https://x/api?v=1&fmt=srv3&lang=en"))
	assert.Equal(t, "https://x/api", timedTextURL("https://x/api?fmt=json3"))
	assert.Equal(t, "https://x/api?v=1", timedTextURL("https://x/api?v=1"))
}

func TestExtractJSON(t *testing.T) {
	in := []byte(`{"a":"}\"{","b":{"c":1}};var x = {}`)
	assert.Equal(t, `{"a":"}\"{","b":{"c":1}}`, string(extractJSON(in)))
	assert.Nil(t, extractJSON([]byte(`not json`)))
	assert.Nil(t, extractJSON([]byte(`{"unterminated":`)))
}

func TestParseTimedText_Empty(t *testing.T) {
	_, err := parseTimedText([]byte(`<transcript></transcript>`))
	assert.Error(t, err)

	_, err = parseTimedText([]byte(`not xml <`))
	assert.Error(t, err)
}
