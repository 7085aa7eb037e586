// Package config resolves environment defaults for the CLI flags.
// Variables can come from the process environment or a .env file loaded at
// startup.
package config

import (
	"os"
	"strconv"
)

const (
	DefaultOutputDir = "./downloads"
	DefaultWorkers   = 3
	DefaultQuality   = "best"
)

// OutputDir returns VODFETCH_OUTPUT_DIR, falling back to DefaultOutputDir.
func OutputDir() string {
	if env := os.Getenv("VODFETCH_OUTPUT_DIR"); env != "" {
		return env
	}
	return DefaultOutputDir
}

// Quality returns VODFETCH_QUALITY, falling back to DefaultQuality.
func Quality() string {
	if env := os.Getenv("VODFETCH_QUALITY"); env != "" {
		return env
	}
	return DefaultQuality
}

// Workers returns VODFETCH_WORKERS, falling back to DefaultWorkers.
func Workers() int {
	if env := os.Getenv("VODFETCH_WORKERS"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			return n
		}
	}
	return DefaultWorkers
}
