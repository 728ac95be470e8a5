package engine

import (
	"context"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// CredentialKind names the credential chosen at startup.
type CredentialKind string

const (
	CredentialOAuth  CredentialKind = "oauth2"
	CredentialAPIKey CredentialKind = "api_key"
	CredentialNone   CredentialKind = "none"
)

// youtubeScopes match the scopes requested by the one-time authorization flow.
var youtubeScopes = []string{
	ytapi.YoutubeReadonlyScope,
	ytapi.YoutubeForceSslScope,
}

// SelectCredential picks the credential source: a refresh token wins over an
// API key. With neither, a warning is logged and the client runs
// unauthenticated, so provider calls will fail later.
func SelectCredential(c *Config) CredentialKind {
	switch {
	case c.YouTubeRefreshToken != "":
		return CredentialOAuth
	case c.YouTubeAPIKey != "":
		return CredentialAPIKey
	}
	return CredentialNone
}

// ClientOptions builds the google.golang.org/api options for the Data API client.
func ClientOptions(ctx context.Context, c *Config) []option.ClientOption {
	var opts []option.ClientOption
	if c.YouTubeAPIEndpoint != "" {
		opts = append(opts, option.WithEndpoint(c.YouTubeAPIEndpoint))
	}

	switch SelectCredential(c) {
	case CredentialOAuth:
		oc := &oauth2.Config{
			ClientID:     c.YouTubeClientID,
			ClientSecret: c.YouTubeClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       youtubeScopes,
		}
		base := context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
		ts := oc.TokenSource(base, &oauth2.Token{RefreshToken: c.YouTubeRefreshToken})
		opts = append(opts, option.WithHTTPClient(oauth2.NewClient(base, ts)))
		slog.Info("youtube: using OAuth2 refresh token")
	case CredentialAPIKey:
		// WithHTTPClient would take precedence over the key, so the default transport is used.
		opts = append(opts, option.WithAPIKey(c.YouTubeAPIKey))
		slog.Info("youtube: using API key")
	default:
		opts = append(opts, option.WithoutAuthentication(), option.WithHTTPClient(c.HTTPClient))
		slog.Warn("youtube: no YOUTUBE_REFRESH_TOKEN or YOUTUBE_API_KEY set, metadata calls will fail")
	}
	return opts
}
