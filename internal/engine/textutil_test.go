package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCueText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"  padded  ", "padded"},
		{"it&#39;s", "it's"},
		{"rock &amp; roll", "rock & roll"},
		{"<b>bold</b> move", "bold move"},
		{"<font color=\"#fff\">white</font>", "white"},
		{"<i></i>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCueText(tt.in))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", TruncateRunes("short", 10, "..."))
	got := TruncateRunes("héllo wörld, a longer line", 5, "...")
	assert.True(t, strings.HasSuffix(got, "..."), got)
	assert.True(t, strings.HasPrefix(got, "hé"), got)
}
