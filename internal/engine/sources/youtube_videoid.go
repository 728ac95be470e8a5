package sources

import (
	"regexp"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

// videoIDRE matches watch?v=, embed/, v/, e/, shorts/, live/, youtu.be/ and
// channel- or playlist-qualified paths ending in one of them. Hosts are
// matched case-insensitively; the ID itself is case-sensitive and must be
// exactly 11 characters.
var videoIDRE = regexp.MustCompile(
	`(?:(?i:youtube\.com)/(?:[^/\s]+/.+/|(?:v|e(?:mbed)?|shorts|live)/|.*[?&]v=)|(?i:youtu\.be)/)` +
		`([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`,
)

var bareVideoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID pulls the 11-char video ID from any supported YouTube URL.
func ExtractVideoID(rawURL string) (string, error) {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return "", engine.InvalidRequest("Invalid YouTube URL: %s", rawURL)
	}
	return m[1], nil
}

// IsVideoID reports whether s is a well-formed bare video ID.
func IsVideoID(s string) bool {
	return bareVideoIDRE.MatchString(s)
}
