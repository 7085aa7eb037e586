// Package joblist parses the batch input file: one VOD reference per line
// with optional start/end offsets.
package joblist

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"vodfetch/internal/core/domain"
)

// Defaults are the batch-level values applied when an input line omits them.
type Defaults struct {
	Quality string
	Start   string
	End     string
}

var offsetRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// ParseLine turns one non-empty, non-comment input line into a Job.
// Line grammar: <reference> [<start>] [<end>], offsets in HH:MM:SS form
// overriding the batch defaults.
func ParseLine(line string, d Defaults) (domain.Job, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return domain.Job{}, &domain.InvalidReferenceError{Reference: line, Reason: "empty line"}
	}
	ref := fields[0]

	id, err := ExtractVodID(ref)
	if err != nil {
		return domain.Job{}, err
	}

	quality := d.Quality
	if quality == "" {
		quality = "best"
	}

	job := domain.Job{
		ID:          uuid.New().String(),
		Reference:   ref,
		TargetID:    id,
		StartOffset: d.Start,
		EndOffset:   d.End,
		Quality:     quality,
	}
	if len(fields) > 1 {
		job.StartOffset = fields[1]
	}
	if len(fields) > 2 {
		job.EndOffset = fields[2]
	}
	for _, off := range []string{job.StartOffset, job.EndOffset} {
		if off != "" && !offsetRe.MatchString(off) {
			return domain.Job{}, &domain.InvalidReferenceError{
				Reference: line,
				Reason:    fmt.Sprintf("malformed offset %q, want HH:MM:SS", off),
			}
		}
	}
	return job, nil
}

// ExtractVodID pulls the VOD ID out of a Twitch URL of the form
// .../videos/<id> or .../video/<id>.
func ExtractVodID(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil || !strings.Contains(u.Host, "twitch.tv") {
		return "", &domain.InvalidReferenceError{Reference: ref, Reason: "host is not twitch.tv"}
	}
	parts := strings.Split(u.Path, "/")
	for i, part := range parts {
		if (part == "videos" || part == "video") && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], nil
		}
	}
	return "", &domain.InvalidReferenceError{Reference: ref, Reason: "no /videos/<id> path segment"}
}

// Load reads a batch file: one job per line, blank lines and #-comments
// ignored. Invalid lines become pre-failed results instead of aborting the
// batch.
func Load(path string, d Defaults) ([]domain.Job, []domain.JobResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open job list %s: %w", path, err)
	}
	defer f.Close()

	var jobs []domain.Job
	var invalid []domain.JobResult

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		job, err := ParseLine(line, d)
		if err != nil {
			invalid = append(invalid, domain.JobResult{
				Job:         domain.Job{ID: uuid.New().String(), Reference: line},
				State:       domain.StateInvalid,
				Reason:      err.Error(),
				CompletedAt: time.Now(),
			})
			continue
		}
		jobs = append(jobs, job)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read job list %s: %w", path, err)
	}
	return jobs, invalid, nil
}
