package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

func builtin(t *testing.T, name string) Template {
	t.Helper()
	r, err := NewRegistry()
	require.NoError(t, err)
	tpl, ok := r.Find(name)
	require.True(t, ok)
	return tpl
}

var testInfo = &engine.VideoInfo{
	ID: "dQw4w9WgXcQ",
	Snippet: engine.VideoSnippet{
		Title:        "Cats",
		ChannelTitle: "Pets TV",
		PublishedAt:  "2024-01-02T03:04:05Z",
		Description:  "0:00 Intro\n0:02 Main",
	},
}

func TestRender_Basic(t *testing.T) {
	captions := []engine.Caption{{Start: "0", Text: "a"}, {Start: "1", Text: "b"}}

	got, err := Render(builtin(t, "basic"), testInfo, captions, engine.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", got)
}

func TestRender_Detailed(t *testing.T) {
	captions := []engine.Caption{{Start: "0", Text: "hello"}, {Start: "1.5", Text: "world"}}

	got, err := Render(builtin(t, "detailed"), testInfo, captions, engine.RenderOptions{})
	require.NoError(t, err)
	want := "# Cats\n\n**Channel:** Pets TV\n**Published:** 2024-01-02T03:04:05Z\n\n" +
		"[0] hello\n[1.5] world\n"
	assert.Equal(t, want, got)
}

func TestRender_MissingMetadata(t *testing.T) {
	got, err := Render(builtin(t, "detailed"), &engine.VideoInfo{}, nil, engine.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "# \n\n**Channel:** \n**Published:** \n\n", got)

	got, err = Render(builtin(t, "detailed"), nil, nil, engine.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "# \n\n**Channel:** \n**Published:** \n\n", got)
}

func TestRender_Search(t *testing.T) {
	captions := []engine.Caption{
		{Start: "1", Text: "a dog ran"},
		{Start: "5", Text: "a cat sat"},
		{Start: "9", Text: "Cat and CAT and concatenate"},
	}

	got, err := Render(builtin(t, "search"), testInfo, captions, engine.RenderOptions{SearchTerm: "cat"})
	require.NoError(t, err)
	assert.Contains(t, got, "- [5] a **cat** sat\n")
	assert.Contains(t, got, "- [9] **Cat** and **CAT** and con**cat**enate\n")
	assert.NotContains(t, got, "dog")
	assert.Equal(t, "# Search results: Cats\n\n- [5] a **cat** sat\n- [9] **Cat** and **CAT** and con**cat**enate\n", got)
}

func TestRender_SearchIsLiteral(t *testing.T) {
	captions := []engine.Caption{
		{Start: "1", Text: "costs $5 (approx.)"},
		{Start: "2", Text: "costs 55 approx"},
	}

	got, err := Render(builtin(t, "search"), nil, captions, engine.RenderOptions{SearchTerm: "(approx.)"})
	require.NoError(t, err)
	assert.Equal(t, "# Search results: \n\n- [1] costs $5 **(approx.)**\n", got)
}

func TestRender_SearchNoMatches(t *testing.T) {
	captions := []engine.Caption{{Start: "1", Text: "nothing here"}}

	got, err := Render(builtin(t, "search"), testInfo, captions, engine.RenderOptions{SearchTerm: "zebra"})
	require.NoError(t, err)
	assert.Equal(t, "# Search results: Cats\n\n", got)
}

func TestRender_SearchRequiresFormat(t *testing.T) {
	_, err := Render(builtin(t, "basic"), testInfo, nil, engine.RenderOptions{SearchTerm: "cat"})
	require.Error(t, err)
	assert.Equal(t, engine.CodeInvalidRequest, engine.CodeOf(err))
	assert.Contains(t, err.Error(), "search_result_format")
}

func TestRender_FirstOccurrenceOnly(t *testing.T) {
	tpl := Template{Name: "twice", Format: Format{CaptionBlock: "{text}/{text}\n"}}

	got, err := Render(tpl, nil, []engine.Caption{{Start: "0", Text: "x"}}, engine.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "x/{text}\n", got)
}

func TestRender_Chapters(t *testing.T) {
	captions := []engine.Caption{
		{Start: "0", Text: "welcome"},
		{Start: "1.2", Text: "so"},
		{Start: "2.5", Text: "main point"},
	}
	tpl := builtin(t, "detailed")
	tpl.Format.Header = ""

	got, err := Render(tpl, testInfo, captions, engine.RenderOptions{IncludeChapters: true})
	require.NoError(t, err)
	want := "\n## Intro (0:00)\n\n[0] welcome\n[1.2] so\n\n## Main (0:02)\n\n[2.5] main point\n"
	assert.Equal(t, want, got)

	without, err := Render(tpl, testInfo, captions, engine.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "[0] welcome\n[1.2] so\n[2.5] main point\n", without)
}

func TestRender_ChaptersInertWithoutFormat(t *testing.T) {
	captions := []engine.Caption{{Start: "0", Text: "a"}, {Start: "3", Text: "b"}}

	got, err := Render(builtin(t, "basic"), testInfo, captions, engine.RenderOptions{IncludeChapters: true})
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", got)
}

func TestRender_Deterministic(t *testing.T) {
	captions := []engine.Caption{{Start: "0", Text: "cat"}, {Start: "1", Text: "dog"}}
	for _, name := range BuiltinNames() {
		tpl := builtin(t, name)
		opts := engine.RenderOptions{IncludeChapters: true}
		if name == "search" {
			opts.SearchTerm = "cat"
		}
		first, err := Render(tpl, testInfo, captions, opts)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := Render(tpl, testInfo, captions, opts)
			require.NoError(t, err)
			assert.Equal(t, first, again, name)
		}
	}
}
