package ports

import (
	"context"

	"vodfetch/internal/core/domain"
)

// Resolver fetches descriptive metadata for a VOD from an external capability.
type Resolver interface {
	// Resolve returns the metadata for the given VOD ID. Absent fields are
	// filled with documented placeholders, so Title and Channel are never
	// empty. Failures are domain.ResolutionError.
	Resolve(ctx context.Context, targetID string) (domain.Metadata, error)
}

// Fetcher transfers the media bytes for one job to local storage.
type Fetcher interface {
	// Fetch downloads the job's VOD to destPath, honoring the job's quality
	// and optional start/end offsets. On failure no partial file remains at
	// destPath. Failures are domain.FetchError.
	Fetch(ctx context.Context, job domain.Job, destPath string) error
}

// Ledger is the append-only durable record of completed downloads, doubling
// as the duplicate-skip source of truth.
type Ledger interface {
	// Exists reports whether the destination file is already present.
	Exists(destPath string) bool

	// Append writes one completed-download row. Safe for concurrent callers.
	Append(entry domain.LedgerEntry) error
}
