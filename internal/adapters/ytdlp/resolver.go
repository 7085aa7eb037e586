// Package ytdlp adapts the local yt-dlp binary to the resolver and fetcher
// ports: metadata via --dump-json, media transfer via a quality-selected
// download invocation.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"vodfetch/internal/core/domain"
)

const vodURLTemplate = "https://www.twitch.tv/videos/%s"

// Client invokes the local yt-dlp binary.
type Client struct {
	binaryPath     string
	resolveTimeout time.Duration
	resolveRetries int
	retryBackoff   time.Duration
}

// NewClient creates a Client that expects yt-dlp on PATH.
func NewClient() *Client {
	return &Client{
		binaryPath:     "yt-dlp",
		resolveTimeout: 2 * time.Minute,
		resolveRetries: 2,
		retryBackoff:   2 * time.Second,
	}
}

// CheckAvailable probes the yt-dlp binary. A failure here aborts the whole
// batch before any job runs.
func (c *Client) CheckAvailable(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.binaryPath, "--version")
	if err := cmd.Run(); err != nil {
		return &domain.EnvironmentError{Capability: "yt-dlp", Err: err}
	}
	return nil
}

// vodJSON is the subset of yt-dlp --dump-json output we consume. Any field
// may be absent; Resolve substitutes the documented fallbacks.
type vodJSON struct {
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	UploadDate string  `json:"upload_date"`
	Duration   float64 `json:"duration"`
	WebpageURL string  `json:"webpage_url"`
	Ext        string  `json:"ext"`
}

// Resolve fetches VOD metadata via yt-dlp --dump-json. Non-zero exits are
// retried a bounded number of times before the job is marked failed;
// unparseable output fails immediately.
func (c *Client) Resolve(ctx context.Context, targetID string) (domain.Metadata, error) {
	vodURL := fmt.Sprintf(vodURLTemplate, targetID)

	var out []byte
	var lastErr error
	for attempt := 0; attempt <= c.resolveRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return domain.Metadata{}, &domain.ResolutionError{TargetID: targetID, Reason: ctx.Err().Error()}
			case <-time.After(time.Duration(attempt) * c.retryBackoff):
			}
		}
		out, lastErr = c.dumpJSON(ctx, vodURL)
		if lastErr == nil {
			break
		}
	}
	if lastErr != nil {
		return domain.Metadata{}, &domain.ResolutionError{TargetID: targetID, Reason: lastErr.Error()}
	}

	var raw vodJSON
	if err := json.Unmarshal(out, &raw); err != nil {
		return domain.Metadata{}, &domain.ResolutionError{
			TargetID: targetID,
			Reason:   fmt.Sprintf("unparseable metadata: %v", err),
		}
	}
	return withFallbacks(raw, targetID, time.Now()), nil
}

func (c *Client) dumpJSON(ctx context.Context, vodURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.resolveTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binaryPath, "--dump-json", "--no-warnings", vodURL)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}

// withFallbacks fills absent fields with the documented placeholders so the
// synthesizer and ledger always see non-empty values.
func withFallbacks(raw vodJSON, targetID string, now time.Time) domain.Metadata {
	m := domain.Metadata{
		Title:           raw.Title,
		Channel:         raw.Uploader,
		UploadDate:      raw.UploadDate,
		DurationSeconds: int(raw.Duration),
		URL:             raw.WebpageURL,
		Ext:             raw.Ext,
	}
	if m.Title == "" {
		m.Title = "Unknown_VOD_" + targetID
	}
	if m.Channel == "" {
		m.Channel = "unknown_channel"
	}
	if m.UploadDate == "" {
		m.UploadDate = now.Format("20060102")
	}
	if m.URL == "" {
		m.URL = fmt.Sprintf(vodURLTemplate, targetID)
	}
	if m.Ext == "" {
		m.Ext = "mp4"
	}
	return m
}
