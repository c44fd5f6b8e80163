// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation for both the shardset and shardpush binaries.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings for the shardset prep pipeline. It is
// populated by [DefaultConfig] and then mutated by [ParseFlags] before being
// passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	InputDir  string // Dataset root holding train/validation/test.
	OutputDir string // Destination for shards and side files.

	// Sharding.
	TargetShardSize int64 // Default: 420 MiB. Byte budget per shard.
	SampleSize      int   // Default: 100. Max examples sampled for size estimation.

	// Image re-encoding.
	JPEGQuality int // Default: 95. Used for JPEG output and unknown-format fallback.

	// Behavior flags.
	DryRun       bool
	SkipExisting bool // Default: false. Existing shard files are overwritten so a shard set stays self-consistent.

	// Display and logging.
	Verbose        bool
	ShowSplitStats bool      // Default: true. Per-split example/byte statistics.
	ColorMode      ColorMode // Default: "auto".
	LogFile        string    // Optional log file path.
	CheckOnly      bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with defaults matching the reference
// conversion behavior (420 MiB shards, 100-example size sample, JPEG 95).
func DefaultConfig() Config {
	return Config{
		TargetShardSize: 420 * 1024 * 1024,
		SampleSize:      100,
		JPEGQuality:     95,
		DryRun:          false,
		SkipExisting:    false,
		Verbose:         false,
		ShowSplitStats:  true,
		ColorMode:       ColorAuto,
		CheckOnly:       false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks numeric ranges and required paths. CheckOnly mode needs
// only the input directory; a full run needs both input and output.
func (c *Config) Validate() error {
	if c.TargetShardSize <= 0 {
		return errors.New("target shard size must be positive")
	}
	if c.SampleSize <= 0 {
		return errors.New("sample size must be positive")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be 1-100 (got %d)", c.JPEGQuality)
	}

	if c.CheckOnly {
		if c.InputDir == "" {
			return errors.New("need input_dir for --check")
		}
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need exactly input_dir and output_dir")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory. This prevents shards and side files from
// being scanned as dataset content on a later run. Both arguments must be
// absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
