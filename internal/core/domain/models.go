package domain

import "time"

// JobState tracks a job through the orchestration state machine.
// Every job reaches exactly one terminal state.
type JobState string

const (
	StateParsed          JobState = "parsed"
	StateResolving       JobState = "resolving"
	StateResolvingFailed JobState = "resolving_failed"
	StateSkipped         JobState = "skipped"
	StateFetching        JobState = "fetching"
	StateFetchFailed     JobState = "fetch_failed"
	StateSucceeded       JobState = "succeeded"

	// StateInvalid marks an input line that never produced a job.
	StateInvalid JobState = "invalid_reference"
)

// Job is one unit of download work, parsed from a single input line.
// Immutable after creation.
type Job struct {
	ID          string `json:"job_id"`
	Reference   string `json:"reference"`
	TargetID    string `json:"vod_id"`
	StartOffset string `json:"start_offset,omitempty"`
	EndOffset   string `json:"end_offset,omitempty"`
	Quality     string `json:"quality"`
}

// Metadata is the resolved descriptive record for one VOD. Title and
// Channel are never empty: the resolver substitutes placeholders when the
// source omits them.
type Metadata struct {
	Title           string
	Channel         string
	UploadDate      string // YYYYMMDD
	DurationSeconds int
	URL             string
	Ext             string
}

// LedgerEntry is one row of the completion ledger.
type LedgerEntry struct {
	VodID        string
	Title        string
	Channel      string
	Date         string
	DownloadedAt string
	URL          string
}

// JobResult holds the terminal outcome of one job.
type JobResult struct {
	Job         Job
	State       JobState
	Reason      string
	Path        string
	CompletedAt time.Time
}

// BatchResult summarizes one orchestration run. Skipped jobs were already
// present on disk and are reported separately from fresh downloads.
type BatchResult struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	Results   []JobResult
}
