// Package pipeline orchestrates the conversion run: split scanning, label
// indexing, side-file generation, and per-split shard writing.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/cheggaaa/pb.v1"

	"github.com/backmassage/shardset/internal/card"
	"github.com/backmassage/shardset/internal/config"
	"github.com/backmassage/shardset/internal/dataset"
	"github.com/backmassage/shardset/internal/display"
	"github.com/backmassage/shardset/internal/imaging"
	"github.com/backmassage/shardset/internal/logging"
	"github.com/backmassage/shardset/internal/shard"
)

// shardDirName is the subdirectory of OutputDir holding the parquet files;
// side files (label_mapping.json, README.md) live at OutputDir itself.
const shardDirName = "data"

// Run is the top-level entry point. It scans the splits, builds the label
// index, writes the side files, then embeds and shards each split in order.
// The first error aborts the run; there is no partial-failure recovery.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	// --- Scan splits ---
	splitStats, err := scanSplits(cfg, log)
	if err != nil {
		return stats, err
	}
	for _, s := range splitStats {
		stats.SourceBytes += s.NumBytes
	}

	// --- Label index ---
	trainDir := filepath.Join(cfg.InputDir, "train")
	labels, err := dataset.Labels(trainDir)
	if err != nil {
		return stats, fmt.Errorf("%w: %s", err, trainDir)
	}
	idx := dataset.NewLabelIndex(labels)

	preview := labels
	if len(preview) > 5 {
		preview = preview[:5]
	}
	log.Info("Found %d unique labels: %v...", idx.Len(), preview)
	log.Info("")

	// --- Side files ---
	shardDir := filepath.Join(cfg.OutputDir, shardDirName)
	if cfg.DryRun {
		log.Warn("[DRY] Would write %s and update %s",
			filepath.Join(cfg.OutputDir, "label_mapping.json"),
			filepath.Join(cfg.OutputDir, "README.md"))
	} else {
		if err := os.MkdirAll(shardDir, 0o755); err != nil {
			return stats, err
		}
		if err := idx.WriteMapping(filepath.Join(cfg.OutputDir, "label_mapping.json")); err != nil {
			return stats, err
		}
		if err := card.Update(filepath.Join(cfg.OutputDir, "README.md"), card.Info{
			Labels: labels,
			Splits: splitStats,
		}); err != nil {
			return stats, err
		}
	}

	// --- Embed and shard each split ---
	for _, split := range dataset.SplitNames {
		if err := processSplit(ctx, cfg, log, split, idx, shardDir, &stats); err != nil {
			return stats, err
		}
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// scanSplits logs per-split statistics and returns them for the dataset
// card. A missing split degrades to zero examples with a warning; only the
// label index step treats a missing train directory as fatal.
func scanSplits(cfg *config.Config, log *logging.Logger) ([]card.SplitStat, error) {
	log.Info("Dataset statistics:")

	splitStats := make([]card.SplitStat, 0, len(dataset.SplitNames))
	var totalBytes int64
	var totalExamples int

	for _, split := range dataset.SplitNames {
		dir := filepath.Join(cfg.InputDir, split)
		size, err := dataset.DirectorySize(dir)
		if err != nil {
			return nil, err
		}
		count, err := dataset.CountExamples(dir)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			log.Warn("  %s: directory missing, treated as empty split", split)
		} else if cfg.ShowSplitStats {
			log.Info("  %s: %d examples, %s", split, count, display.FormatMB(size))
		}
		splitStats = append(splitStats, card.SplitStat{Name: split, NumBytes: size, NumExamples: count})
		totalBytes += size
		totalExamples += count
	}

	if cfg.ShowSplitStats {
		log.Info("  total: %d examples, %s", totalExamples, display.FormatMB(totalBytes))
	}
	log.Info("")
	return splitStats, nil
}

// processSplit estimates the shard count for one split from a capped
// sample, then writes its examples as contiguous shards.
func processSplit(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	split string,
	idx dataset.LabelIndex,
	shardDir string,
	stats *RunStats,
) error {
	examples, err := dataset.Examples(filepath.Join(cfg.InputDir, split))
	if err != nil {
		return err
	}
	if len(examples) == 0 {
		log.Debug(cfg.Verbose, "Skipping %s split (no examples)", split)
		return nil
	}
	stats.Splits++

	// --- Estimate shard count from a capped sample ---
	avgSize, sampleN, err := sampleAverageSize(ctx, cfg, examples)
	if err != nil {
		return err
	}
	estimated := shard.EstimateTotal(avgSize, len(examples))
	numShards := shard.NumShards(estimated, cfg.TargetShardSize)

	log.Info("Saving %s split into %d shard(s)...", split, numShards)
	log.Info("  Estimated total split size: %s", display.FormatMB(estimated))
	log.Info("  Average image size: %s", display.FormatKB(avgSize))
	if sampleN*10 < len(examples) {
		log.Outlier("  Size estimate for %s rests on %d of %d examples; actual shard sizes may deviate from the %s target",
			split, sampleN, len(examples), display.FormatBytes(cfg.TargetShardSize))
	}

	// --- Write contiguous shards ---
	var bar *pb.ProgressBar
	if !cfg.DryRun {
		bar = pb.StartNew(len(examples))
	}

	for i, r := range shard.Boundaries(len(examples), numShards) {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := shard.FileName(split, i, numShards)
		path := filepath.Join(shardDir, name)

		if cfg.DryRun {
			log.Shard("[DRY] Would write %s (%d examples)", name, r.Len())
			stats.Shards++
			stats.Examples += r.Len()
			continue
		}

		if cfg.SkipExisting {
			if _, err := os.Stat(path); err == nil {
				log.Warn("Skip (exists): %s", name)
				stats.SkippedShards++
				bar.Add(r.Len())
				continue
			}
		}

		rows, err := embedRange(ctx, cfg, idx, examples, r, bar)
		if err != nil {
			return err
		}
		if err := shard.Write(path, rows); err != nil {
			os.Remove(path)
			return err
		}

		written := int64(0)
		if fi, err := os.Stat(path); err == nil {
			written = fi.Size()
		}
		stats.Shards++
		stats.Examples += r.Len()
		stats.WrittenBytes += written
		log.Shard("Wrote %s (%d examples, %s)", name, r.Len(), display.FormatBytes(written))
	}

	if bar != nil {
		bar.Finish()
	}
	log.Info("")
	return nil
}

// sampleAverageSize re-encodes up to cfg.SampleSize examples and returns
// the truncated mean encoded size plus the sample count. The sample is the
// split's leading slice; examples are already in deterministic order.
func sampleAverageSize(ctx context.Context, cfg *config.Config, examples []dataset.Example) (int64, int, error) {
	n := cfg.SampleSize
	if n > len(examples) {
		n = len(examples)
	}

	var total int64
	for _, ex := range examples[:n] {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		data, _, err := imaging.Reencode(ex.Path, cfg.JPEGQuality)
		if err != nil {
			return 0, 0, fmt.Errorf("sample %s: %w", ex.Path, err)
		}
		total += int64(len(data))
	}
	return total / int64(n), n, nil
}

// embedRange re-encodes the examples of one shard range into parquet rows.
// The embedded path is the bare file name; the label folder is represented
// only by the integer class id.
func embedRange(
	ctx context.Context,
	cfg *config.Config,
	idx dataset.LabelIndex,
	examples []dataset.Example,
	r shard.Range,
	bar *pb.ProgressBar,
) ([]shard.Row, error) {
	rows := make([]shard.Row, 0, r.Len())
	for _, ex := range examples[r.Start:r.End] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, _, err := imaging.Reencode(ex.Path, cfg.JPEGQuality)
		if err != nil {
			return nil, fmt.Errorf("embed %s: %w", ex.Path, err)
		}
		rows = append(rows, shard.Row{
			Image: shard.ImageValue{Bytes: data, Path: filepath.Base(ex.Path)},
			Label: int64(idx.NameToID[ex.Label]),
		})
		if bar != nil {
			bar.Increment()
		}
	}
	return rows, nil
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	if cfg.DryRun {
		log.Info("Done (dry run): %d splits, %d examples, %d shards planned",
			stats.Splits, stats.Examples, stats.Shards)
		return
	}
	log.Success("Done: %d splits, %d examples, %d shards (%s written)",
		stats.Splits, stats.Examples, stats.Shards, display.FormatBytes(stats.WrittenBytes))
	if stats.SkippedShards > 0 {
		log.Info("  Kept %d existing shard file(s)", stats.SkippedShards)
	}
}
