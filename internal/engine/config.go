package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, built once in main and passed by
// pointer to the clients and the dispatcher.
type Config struct {
	YouTubeAPIKey       string
	YouTubeRefreshToken string
	YouTubeClientID     string
	YouTubeClientSecret string
	YouTubeAPIEndpoint  string // empty = Google default
	WatchURL            string // caption scrape base, e.g. https://www.youtube.com/watch
	PlayerURL           string // ANDROID Innertube /player fallback
	DefaultTemplate     string
	DefaultLanguage     string
	TemplatesFile       string // optional operator templates (YAML)
	FetchTimeout        time.Duration
	YouTubeAPIRPS       float64 // Data API requests per second (0 = unlimited)
	CaptionRPS          float64 // caption scrape requests per second (0 = unlimited)
	HTTPClient          *http.Client
}

// Defaults used when the environment leaves a field empty.
const (
	DefaultTemplateName = "basic"
	DefaultLanguageCode = "en"
	DefaultWatchURL     = "https://www.youtube.com/watch"
	DefaultPlayerURL    = "https://www.youtube.com/youtubei/v1/player"
)

// WithDefaults fills zero-valued fields so tests can build a Config literal
// with only the fields they care about.
func (c Config) WithDefaults() Config {
	if c.DefaultTemplate == "" {
		c.DefaultTemplate = DefaultTemplateName
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguageCode
	}
	if c.WatchURL == "" {
		c.WatchURL = DefaultWatchURL
	}
	if c.PlayerURL == "" {
		c.PlayerURL = DefaultPlayerURL
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.FetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		}
	}
	return c
}
