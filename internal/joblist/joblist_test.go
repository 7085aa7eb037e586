package joblist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vodfetch/internal/core/domain"
)

func TestExtractVodID(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr bool
	}{
		{
			name:   "videos path",
			ref:    "https://www.twitch.tv/videos/12345",
			wantID: "12345",
		},
		{
			name:   "singular video path",
			ref:    "https://www.twitch.tv/video/999",
			wantID: "999",
		},
		{
			name:   "channel-scoped video path",
			ref:    "https://www.twitch.tv/somechannel/video/424242",
			wantID: "424242",
		},
		{
			name:   "query string ignored",
			ref:    "https://www.twitch.tv/videos/12345?t=1h2m",
			wantID: "12345",
		},
		{
			name:    "wrong host",
			ref:     "https://www.youtube.com/watch?v=12345",
			wantErr: true,
		},
		{
			name:    "missing id segment",
			ref:     "https://www.twitch.tv/videos",
			wantErr: true,
		},
		{
			name:    "channel page only",
			ref:     "https://www.twitch.tv/somechannel",
			wantErr: true,
		},
		{
			name:    "bare identifier",
			ref:     "12345",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractVodID(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				var invalid *domain.InvalidReferenceError
				assert.True(t, errors.As(err, &invalid))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestParseLine(t *testing.T) {
	defaults := Defaults{Quality: "720p", Start: "00:00:10", End: "00:00:20"}

	t.Run("defaults applied when line omits offsets", func(t *testing.T) {
		job, err := ParseLine("https://www.twitch.tv/videos/12345", defaults)
		require.NoError(t, err)
		assert.Equal(t, "12345", job.TargetID)
		assert.Equal(t, "720p", job.Quality)
		assert.Equal(t, "00:00:10", job.StartOffset)
		assert.Equal(t, "00:00:20", job.EndOffset)
		assert.NotEmpty(t, job.ID)
	})

	t.Run("line offsets override defaults", func(t *testing.T) {
		job, err := ParseLine("https://www.twitch.tv/videos/999 00:01:00 00:02:30", defaults)
		require.NoError(t, err)
		assert.Equal(t, "00:01:00", job.StartOffset)
		assert.Equal(t, "00:02:30", job.EndOffset)
	})

	t.Run("start only means run to end of media", func(t *testing.T) {
		job, err := ParseLine("https://www.twitch.tv/videos/999 00:01:00", Defaults{})
		require.NoError(t, err)
		assert.Equal(t, "00:01:00", job.StartOffset)
		assert.Empty(t, job.EndOffset)
	})

	t.Run("quality falls back to best", func(t *testing.T) {
		job, err := ParseLine("https://www.twitch.tv/videos/999", Defaults{})
		require.NoError(t, err)
		assert.Equal(t, "best", job.Quality)
	})

	t.Run("malformed offset rejected", func(t *testing.T) {
		_, err := ParseLine("https://www.twitch.tv/videos/999 1:00", Defaults{})
		var invalid *domain.InvalidReferenceError
		require.True(t, errors.As(err, &invalid))
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	content := `# batch of finals
https://www.twitch.tv/videos/111

https://www.twitch.tv/videos/222 00:01:00 00:02:30
https://example.com/not-a-vod
   # indented comment
https://www.twitch.tv/videos/333
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	jobs, invalid, err := Load(path, Defaults{})
	require.NoError(t, err)

	require.Len(t, jobs, 3)
	assert.Equal(t, "111", jobs[0].TargetID)
	assert.Equal(t, "222", jobs[1].TargetID)
	assert.Equal(t, "00:01:00", jobs[1].StartOffset)
	assert.Equal(t, "333", jobs[2].TargetID)

	require.Len(t, invalid, 1)
	assert.Equal(t, domain.StateInvalid, invalid[0].State)
	assert.Contains(t, invalid[0].Reason, "not-a-vod")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.txt"), Defaults{})
	require.Error(t, err)
}
