package engine

// --- Video metadata (mirrors the Data API v3 video resource) ---

// VideoInfo is the metadata returned by get_video_info and youtube://{id}/info.
type VideoInfo struct {
	ID             string          `json:"id"`
	Snippet        VideoSnippet    `json:"snippet"`
	ContentDetails *ContentDetails `json:"contentDetails,omitempty"`
}

type VideoSnippet struct {
	Title                string   `json:"title"`
	Description          string   `json:"description,omitempty"`
	ChannelID            string   `json:"channelId,omitempty"`
	ChannelTitle         string   `json:"channelTitle"`
	PublishedAt          string   `json:"publishedAt"`
	Tags                 []string `json:"tags,omitempty"`
	DefaultLanguage      string   `json:"defaultLanguage,omitempty"`
	DefaultAudioLanguage string   `json:"defaultAudioLanguage,omitempty"`
}

type ContentDetails struct {
	Duration   string `json:"duration,omitempty"`   // ISO 8601, e.g. PT4M13S
	Definition string `json:"definition,omitempty"` // hd | sd
	Caption    string `json:"caption,omitempty"`    // "true" when captions exist
	Dimension  string `json:"dimension,omitempty"`
}

// --- Captions ---

// Caption is one cue. Start and Dur are seconds encoded as decimal strings,
// exactly as the timedtext endpoint reports them.
type Caption struct {
	Start string `json:"start"`
	Dur   string `json:"dur"`
	Text  string `json:"text"`
}

// Chapter is a description-derived chapter marker.
type Chapter struct {
	Start     float64 `json:"start"` // seconds
	Timestamp string  `json:"timestamp"`
	Title     string  `json:"title"`
}

// --- Rendering ---

// RenderOptions controls convert_to_markdown output.
type RenderOptions struct {
	IncludeChapters bool   `json:"include_chapters"`
	SearchTerm      string `json:"search_term,omitempty"` // empty = transcript mode
}
