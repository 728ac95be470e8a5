package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

// Placeholder tokens understood by the renderer.
const (
	tokVideoTitle   = "{video_title}"
	tokChannelName  = "{channel_name}"
	tokPublishDate  = "{publish_date}"
	tokTimestamp    = "{timestamp}"
	tokText         = "{text}"
	tokChapterTitle = "{chapter_title}"
)

// fill replaces the first occurrence of each token, in argument order.
// Pairs are token, value.
func fill(format string, pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		format = strings.Replace(format, pairs[i], pairs[i+1], 1)
	}
	return format
}

// SearchPattern compiles term into a case-insensitive literal matcher.
// Pattern metacharacters in term are matched literally.
func SearchPattern(term string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
}

// CheckSearchable reports whether t can render search results.
func CheckSearchable(t Template) error {
	if t.Format.SearchResultFormat == "" {
		return engine.InvalidRequest("Template '%s' has no search_result_format", t.Name)
	}
	return nil
}

// Render produces markdown for info and captions with template t.
// The output depends only on its arguments.
func Render(t Template, info *engine.VideoInfo, captions []engine.Caption, opts engine.RenderOptions) (string, error) {
	var sb strings.Builder

	if t.Format.Header != "" {
		var snippet engine.VideoSnippet
		if info != nil {
			snippet = info.Snippet
		}
		sb.WriteString(fill(t.Format.Header,
			tokVideoTitle, snippet.Title,
			tokChannelName, snippet.ChannelTitle,
			tokPublishDate, snippet.PublishedAt,
		))
	}

	if opts.SearchTerm != "" {
		if err := CheckSearchable(t); err != nil {
			return "", err
		}
		renderSearch(&sb, t, captions, SearchPattern(opts.SearchTerm))
		return sb.String(), nil
	}

	var chapters []engine.Chapter
	if opts.IncludeChapters && t.Format.ChapterFormat != "" && info != nil {
		chapters = ParseChapters(info.Snippet.Description)
	}
	renderTranscript(&sb, t, captions, chapters)
	return sb.String(), nil
}

func renderSearch(sb *strings.Builder, t Template, captions []engine.Caption, re *regexp.Regexp) {
	for _, c := range captions {
		if !re.MatchString(c.Text) {
			continue
		}
		highlighted := re.ReplaceAllStringFunc(c.Text, func(m string) string {
			return "**" + m + "**"
		})
		sb.WriteString(fill(t.Format.SearchResultFormat,
			tokTimestamp, c.Start,
			tokText, highlighted,
		))
	}
}

func renderTranscript(sb *strings.Builder, t Template, captions []engine.Caption, chapters []engine.Chapter) {
	next := 0
	for _, c := range captions {
		if next < len(chapters) {
			start, _ := strconv.ParseFloat(c.Start, 64)
			for next < len(chapters) && chapters[next].Start <= start {
				sb.WriteString(fill(t.Format.ChapterFormat,
					tokChapterTitle, chapters[next].Title,
					tokTimestamp, chapters[next].Timestamp,
				))
				next++
			}
		}

		block := fill(t.Format.CaptionBlock, tokText, c.Text)
		if t.Format.TimestampFormat != "" {
			block = fill(t.Format.TimestampFormat, tokTimestamp, c.Start) + block
		}
		sb.WriteString(block)
	}
}
