package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"vodfetch/internal/core/domain"
	"vodfetch/internal/core/ports"
	"vodfetch/internal/naming"
)

// Config carries everything the orchestrator needs; there is no ambient
// configuration state.
type Config struct {
	OutputDir string
	Workers   int
}

// Orchestrator drives each job through resolve, skip-check, fetch and
// ledger append with a bounded pool of workers.
type Orchestrator struct {
	cfg      Config
	resolver ports.Resolver
	fetcher  ports.Fetcher
	ledger   ports.Ledger
	logger   *log.Logger

	// OnJobDone, when set, is called once per terminal transition. The CLI
	// uses it to tick the progress bar.
	OnJobDone func(domain.JobResult)
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(cfg Config, resolver ports.Resolver, fetcher ports.Fetcher, ledger ports.Ledger, logger *log.Logger) *Orchestrator {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	return &Orchestrator{
		cfg:      cfg,
		resolver: resolver,
		fetcher:  fetcher,
		ledger:   ledger,
		logger:   logger,
	}
}

// Run processes the job list with at most cfg.Workers jobs in flight. A
// job's own transitions are strictly sequential; no ordering holds between
// jobs. Per-job failures never abort the batch.
func (o *Orchestrator) Run(ctx context.Context, jobs []domain.Job) domain.BatchResult {
	result := domain.BatchResult{
		Total:   len(jobs),
		Results: make([]domain.JobResult, 0, len(jobs)),
	}

	queue := make(chan domain.Job, len(jobs))
	for _, job := range jobs {
		queue <- job
	}
	close(queue)

	done := make(chan domain.JobResult, len(jobs))
	var wg sync.WaitGroup
	for i := 0; i < o.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				done <- o.runJob(ctx, job)
			}
		}()
	}
	wg.Wait()
	close(done)

	for r := range done {
		switch r.State {
		case domain.StateSucceeded:
			result.Succeeded++
		case domain.StateSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
		result.Results = append(result.Results, r)
	}
	return result
}

// runJob executes one job's state machine. A panic anywhere inside the job
// is captured as that job's failure so sibling workers keep running.
func (o *Orchestrator) runJob(ctx context.Context, job domain.Job) (res domain.JobResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Printf("[JOB %s] PANIC: %v", job.ID, r)
			res = terminal(job, domain.StateFetchFailed, fmt.Sprintf("panic: %v", r), "")
		}
		if o.OnJobDone != nil {
			o.OnJobDone(res)
		}
	}()

	o.logger.Printf("[JOB %s] Resolving VOD %s", job.ID, job.TargetID)
	meta, err := o.resolver.Resolve(ctx, job.TargetID)
	if err != nil {
		o.logger.Printf("[JOB %s] ERROR: %v", job.ID, err)
		return terminal(job, domain.StateResolvingFailed, err.Error(), "")
	}

	filename := naming.Filename(meta.UploadDate, meta.Channel, meta.Title, job.TargetID, meta.Ext)
	destPath := filepath.Join(o.cfg.OutputDir, filename)

	if o.ledger.Exists(destPath) {
		o.logger.Printf("[JOB %s] Already downloaded: %s", job.ID, filename)
		return terminal(job, domain.StateSkipped, "", destPath)
	}

	o.logger.Printf("[JOB %s] Downloading: %s (%s)", job.ID, meta.Title, job.TargetID)
	if err := o.fetcher.Fetch(ctx, job, destPath); err != nil {
		o.logger.Printf("[JOB %s] ERROR: %v", job.ID, err)
		return terminal(job, domain.StateFetchFailed, err.Error(), "")
	}

	entry := domain.LedgerEntry{
		VodID:        job.TargetID,
		Title:        meta.Title,
		Channel:      meta.Channel,
		Date:         meta.UploadDate,
		DownloadedAt: time.Now().Format("2006-01-02 15:04:05"),
		URL:          meta.URL,
	}
	if err := o.ledger.Append(entry); err != nil {
		// The media file is in place, but the ledger row is the durable
		// record; surface the job as failed so the operator notices.
		o.logger.Printf("[JOB %s] ERROR: %v", job.ID, err)
		return terminal(job, domain.StateFetchFailed, err.Error(), destPath)
	}

	o.logger.Printf("[JOB %s] Successfully downloaded: %s", job.ID, filename)
	return terminal(job, domain.StateSucceeded, "", destPath)
}

func terminal(job domain.Job, state domain.JobState, reason, path string) domain.JobResult {
	return domain.JobResult{
		Job:         job,
		State:       state,
		Reason:      reason,
		Path:        path,
		CompletedAt: time.Now(),
	}
}
