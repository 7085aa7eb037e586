package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"vodfetch/internal/core/domain"
)

// Fetch downloads one VOD to destPath. The transfer goes to a dot-prefixed
// temporary name in the same directory and is renamed into place only on a
// clean exit, so a failed run never leaves a partial file at destPath.
func (c *Client) Fetch(ctx context.Context, job domain.Job, destPath string) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &domain.FetchError{TargetID: job.TargetID, Diagnostic: err.Error()}
	}
	tmpPath := filepath.Join(dir, "."+filepath.Base(destPath)+".part")

	cmd := exec.CommandContext(ctx, c.binaryPath, fetchArgs(job, tmpPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(tmpPath)
		return &domain.FetchError{
			TargetID:   job.TargetID,
			Diagnostic: fmt.Sprintf("%v: %s", err, strings.TrimSpace(stderr.String())),
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return &domain.FetchError{TargetID: job.TargetID, Diagnostic: err.Error()}
	}
	return nil
}

// fetchArgs builds the yt-dlp invocation for one job. Offsets become a
// --download-sections range: "*<start>-<end>", or "*<start>" alone to run
// to the end of the media.
func fetchArgs(job domain.Job, outPath string) []string {
	args := []string{"-f", job.Quality, "-o", outPath, "--no-part", "--no-warnings"}
	if job.StartOffset != "" {
		section := "*" + job.StartOffset
		if job.EndOffset != "" {
			section += "-" + job.EndOffset
		}
		args = append(args, "--download-sections", section)
	}
	return append(args, fmt.Sprintf(vodURLTemplate, job.TargetID))
}
