// Package check provides dataset diagnostics (--check mode): split layout,
// label folders, and decodability of a sampled image per split.
package check

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/backmassage/shardset/internal/config"
	"github.com/backmassage/shardset/internal/dataset"
	"github.com/backmassage/shardset/internal/display"
	"github.com/backmassage/shardset/internal/imaging"
)

// ErrTrainMissing mirrors dataset.ErrTrainMissing for callers that only
// import check.
var ErrTrainMissing = dataset.ErrTrainMissing

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: verifies the training split,
// reports label and per-split statistics, and decodes one sampled image per
// present split. Returns false when the dataset cannot be converted.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Dataset Check ===")
	log.Info("Root: %s", cfg.InputDir)

	ok := checkTrainSplit(cfg, log)
	checkSplitCounts(cfg, log)
	if ok {
		ok = checkSampleDecodes(cfg, log)
	}

	if ok {
		log.Success("Dataset looks convertible")
	} else {
		log.Error("Dataset is not convertible in its current layout")
	}
	return ok
}

// checkTrainSplit verifies the training directory exists and holds at
// least one label folder.
func checkTrainSplit(cfg *config.Config, log Logger) bool {
	trainDir := filepath.Join(cfg.InputDir, "train")
	labels, err := dataset.Labels(trainDir)
	if errors.Is(err, dataset.ErrTrainMissing) {
		log.Error("Training directory missing: %s", trainDir)
		return false
	}
	if err != nil {
		log.Error("Cannot read training directory: %v", err)
		return false
	}
	if len(labels) == 0 {
		log.Error("Training directory holds no label folders: %s", trainDir)
		return false
	}
	log.Success("Training split: %d label folder(s)", len(labels))
	return true
}

// checkSplitCounts reports example counts and byte sizes per split;
// missing splits are informational only.
func checkSplitCounts(cfg *config.Config, log Logger) {
	for _, split := range dataset.SplitNames {
		dir := filepath.Join(cfg.InputDir, split)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			log.Warn("%s split missing (treated as empty)", split)
			continue
		}
		count, err := dataset.CountExamples(dir)
		if err != nil {
			log.Error("%s split unreadable: %v", split, err)
			continue
		}
		size, err := dataset.DirectorySize(dir)
		if err != nil {
			log.Error("%s split unreadable: %v", split, err)
			continue
		}
		log.Info("%s split: %d examples, %s", split, count, display.FormatMB(size))
	}
}

// checkSampleDecodes re-encodes the first example of each present split to
// surface decode problems before a full run.
func checkSampleDecodes(cfg *config.Config, log Logger) bool {
	ok := true
	for _, split := range dataset.SplitNames {
		examples, err := dataset.Examples(filepath.Join(cfg.InputDir, split))
		if err != nil {
			log.Error("%s split unreadable: %v", split, err)
			ok = false
			continue
		}
		if len(examples) == 0 {
			continue
		}
		data, format, err := imaging.Reencode(examples[0].Path, cfg.JPEGQuality)
		if err != nil {
			log.Error("%s sample decode failed (%s): %v", split, examples[0].Path, err)
			ok = false
			continue
		}
		log.Debug(cfg.Verbose, "%s sample: %s re-encoded as %s (%s)",
			split, filepath.Base(examples[0].Path), format, display.FormatBytes(int64(len(data))))
		log.Success("%s sample decodes (%s)", split, format)
	}
	return ok
}
