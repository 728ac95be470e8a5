package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_youtube/internal/engine"
)

// chapterLineRE matches description lines such as "0:00 Intro",
// "(1:02:03) - Wrap up" or "12:30 | Q&A".
var chapterLineRE = regexp.MustCompile(`^\s*\(?((?:\d{1,2}:)?\d{1,2}:\d{2})\)?[\s\-–—:|]*(.*?)\s*$`)

// ParseChapters extracts chapter markers from a video description.
// Markers only count as chapters when the first starts at 0:00, there are
// at least two, and their start times strictly increase; otherwise nil.
func ParseChapters(description string) []engine.Chapter {
	var chapters []engine.Chapter
	for _, line := range strings.Split(description, "\n") {
		m := chapterLineRE.FindStringSubmatch(line)
		if m == nil || m[2] == "" {
			continue
		}
		start, ok := parseClock(m[1])
		if !ok {
			continue
		}
		chapters = append(chapters, engine.Chapter{Start: start, Timestamp: m[1], Title: m[2]})
	}

	if len(chapters) < 2 || chapters[0].Start != 0 {
		return nil
	}
	for i := 1; i < len(chapters); i++ {
		if chapters[i].Start <= chapters[i-1].Start {
			return nil
		}
	}
	return chapters
}

// parseClock converts "M:SS" or "H:MM:SS" into seconds.
func parseClock(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, false
		}
		if i > 0 && n >= 60 {
			return 0, false
		}
		total = total*60 + n
	}
	return float64(total), true
}
