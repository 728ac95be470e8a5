package sources

// YouTube implementation is split across files by responsibility:
//   youtube_videoid.go  : URL → 11-char video ID
//   youtube_metadata.go : Data API v3 videos.list (snippet, contentDetails)
//   youtube_innertube.go: Innertube/watch-page types and HTTP primitives
//   youtube_captions.go : caption track selection and timedtext cue parsing

import (
	"golang.org/x/time/rate"
)

// newLimiter returns a limiter allowing rps requests per second.
// rps <= 0 disables limiting.
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
