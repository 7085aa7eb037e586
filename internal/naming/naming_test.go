package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "allowed characters pass through",
			in:   "Grand Final 2024_rerun-v2",
			want: "Grand Final 2024_rerun-v2",
		},
		{
			name: "path separators replaced",
			in:   "semis/finals\\day2",
			want: "semis_finals_day2",
		},
		{
			name: "punctuation replaced",
			in:   "GRAND FINALS!! (Top 8) #1",
			want: "GRAND FINALS__ _Top 8_ _1",
		},
		{
			name: "multibyte runes collapse to single underscore",
			in:   "日本語タイトル",
			want: "______",
		},
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			assert.Equal(t, tt.want, got)
			for _, r := range got {
				ok := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
					r >= '0' && r <= '9' || r == ' ' || r == '_' || r == '-'
				assert.True(t, ok, "forbidden rune %q survived sanitization", r)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	got := Filename("20240101", "ArenaTV", "Grand Final", "12345", "mp4")
	assert.Equal(t, "20240101_ArenaTV_Grand Final_12345.mp4", got)
}

func TestFilenameIsDeterministic(t *testing.T) {
	a := Filename("20240101", "ArenaTV", "Grand Final: Top 8!", "12345", "mp4")
	b := Filename("20240101", "ArenaTV", "Grand Final: Top 8!", "12345", "mp4")
	assert.Equal(t, a, b)
}

func TestFilenameTruncatesTitleOnly(t *testing.T) {
	longTitle := strings.Repeat("a", 300)
	got := Filename("20240101", "ArenaTV", longTitle, "12345", "mp4")

	assert.LessOrEqual(t, len(got), maxGeneratedBytes)
	assert.True(t, strings.HasPrefix(got, "20240101_ArenaTV_"), "date and channel must survive")
	assert.True(t, strings.HasSuffix(got, "_12345.mp4"), "id and extension must survive")
}

func TestFilenameShortTitleNotTruncated(t *testing.T) {
	got := Filename("20240101", "ArenaTV", "short", "12345", "mp4")
	assert.Contains(t, got, "_short_")
}
