package domain

import "fmt"

// InvalidReferenceError marks a malformed input line: wrong host, missing
// video path segment, or a bad offset. The line is logged and skipped; the
// batch continues.
type InvalidReferenceError struct {
	Reference string
	Reason    string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference %q: %s", e.Reference, e.Reason)
}

// ResolutionError marks a failed metadata lookup. The job fails without
// invoking the fetcher; the batch continues.
type ResolutionError struct {
	TargetID string
	Reason   string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving VOD %s: %s", e.TargetID, e.Reason)
}

// FetchError marks a failed download invocation, carrying the external
// tool's diagnostic output. Terminal for that job only.
type FetchError struct {
	TargetID   string
	Diagnostic string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching VOD %s: %s", e.TargetID, e.Diagnostic)
}

// EnvironmentError marks a missing external capability. Fatal: the batch
// never starts, and it is the only error that yields a non-zero exit.
type EnvironmentError struct {
	Capability string
	Err        error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s is not available: %v", e.Capability, e.Err)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }
