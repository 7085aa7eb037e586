package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"vodfetch/internal/adapters/csvledger"
	"vodfetch/internal/adapters/ytdlp"
	"vodfetch/internal/config"
	"vodfetch/internal/core/domain"
	"vodfetch/internal/joblist"
	"vodfetch/internal/service"
)

const ledgerFilename = "vod_records.csv"

var (
	outputDir string
	workers   int
	quality   string
	start     string
	end       string
)

var rootCmd = &cobra.Command{
	Use:   "vodfetch <urls-file>",
	Short: "Bulk-download Twitch VODs via yt-dlp",
	Long: `vodfetch reads a list of Twitch VOD URLs (one per line, with optional
HH:MM:SS start/end offsets) and downloads each recording through yt-dlp
using a bounded pool of workers.

Completed downloads are recorded in a CSV ledger next to the media files,
and files already present are skipped, so interrupted batches can be
re-run safely. Individual job failures never abort the batch; only a
missing yt-dlp binary does.`,
	Args:         cobra.ExactArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	// Load .env before flag defaults are resolved from the environment.
	// It's okay if .env doesn't exist.
	_ = godotenv.Load()

	rootCmd.Flags().StringVarP(&outputDir, "output", "o", config.OutputDir(), "output directory for downloaded VODs")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", config.Workers(), "number of concurrent downloads")
	rootCmd.Flags().StringVarP(&quality, "quality", "q", config.Quality(), "video quality (best, worst, 720p, ...)")
	rootCmd.Flags().StringVarP(&start, "start", "s", "", "default start offset when a line omits one (HH:MM:SS)")
	rootCmd.Flags().StringVarP(&end, "end", "e", "", "default end offset when a line omits one (HH:MM:SS)")
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("Received interrupt signal, cancelling...")
		cancel()
	}()

	client := ytdlp.NewClient()
	if err := client.CheckAvailable(ctx); err != nil {
		return err
	}

	defaults := joblist.Defaults{Quality: quality, Start: start, End: end}
	jobs, invalid, err := joblist.Load(args[0], defaults)
	if err != nil {
		return err
	}
	for _, r := range invalid {
		logger.Printf("Skipping invalid line: %s", r.Reason)
	}
	logger.Printf("Found %d VODs to process", len(jobs))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	ledger, err := csvledger.Open(filepath.Join(outputDir, ledgerFilename))
	if err != nil {
		return err
	}

	orch := service.NewOrchestrator(
		service.Config{OutputDir: outputDir, Workers: workers},
		client, client, ledger, logger,
	)

	bar := progressbar.Default(int64(len(jobs)), "downloading")
	orch.OnJobDone = func(domain.JobResult) { _ = bar.Add(1) }

	result := orch.Run(ctx, jobs)

	// Fold pre-failed invalid lines into the summary.
	result.Total += len(invalid)
	result.Failed += len(invalid)
	result.Results = append(result.Results, invalid...)

	fmt.Printf("\nDownloaded %d out of %d VODs (%d already present, %d failed)\n",
		result.Succeeded, result.Total, result.Skipped, result.Failed)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
