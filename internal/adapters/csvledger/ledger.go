// Package csvledger persists the completion ledger: an append-only CSV
// file with one row per finished download, doubling as the duplicate-skip
// source of truth for re-runs.
package csvledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"vodfetch/internal/core/domain"
)

var header = []string{"vod_id", "title", "channel", "date", "download_date", "url"}

// Ledger appends completed-download rows to a CSV file. Appends are
// serialized by an internal mutex so concurrent workers cannot interleave
// rows. Rows are never mutated or deleted.
type Ledger struct {
	path string
	mu   sync.Mutex
}

// Open returns a Ledger backed by the CSV file at path, creating it with
// the header row if absent. An existing file is left untouched.
func Open(path string) (*Ledger, error) {
	_, err := os.Stat(path)
	if err == nil {
		return &Ledger{path: path}, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat ledger %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write ledger header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write ledger header: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to create ledger %s: %w", path, err)
	}
	return &Ledger{path: path}, nil
}

// Exists reports whether a destination file is already present. Presence
// checks go to the filesystem, not the ledger rows, so they need no lock.
func (l *Ledger) Exists(destPath string) bool {
	_, err := os.Stat(destPath)
	return err == nil
}

// Append writes one row and flushes it to disk before returning.
func (l *Ledger) Append(entry domain.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := []string{entry.VodID, entry.Title, entry.Channel, entry.Date, entry.DownloadedAt, entry.URL}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to append ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to append ledger row: %w", err)
	}
	return nil
}
