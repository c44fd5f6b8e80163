// Package dataset scans folder-organized image classification datasets
// (<root>/{train,validation,test}/<label>/<image>) and builds the label
// index used to turn folder names into dense integer class ids.
package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SplitNames lists the recognized dataset splits, in processing order.
var SplitNames = []string{"train", "validation", "test"}

// ErrTrainMissing is returned when the training split directory is absent.
// Validation and test splits may be absent; training may not.
var ErrTrainMissing = errors.New("training directory not found")

// Supported image file extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
}

// IsImageFile reports whether name has a supported image extension
// (case-insensitive).
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Example is one dataset entry: the image's path on disk and the name of
// the label folder it was found under.
type Example struct {
	Path  string
	Label string
}

// DirectorySize returns the total byte size of all files under path.
// A missing path is treated as an empty split and yields 0 without error.
func DirectorySize(path string) (int64, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, nil
	}
	var total int64
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// CountExamples returns the number of entries across all label folders
// under path. A missing path yields 0 without error. Stray files at the
// split root are not examples and are not counted.
func CountExamples(path string) (int, error) {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		children, err := os.ReadDir(filepath.Join(path, e.Name()))
		if err != nil {
			return 0, err
		}
		count += len(children)
	}
	return count, nil
}

// Labels returns the label folder names under trainDir, sorted
// lexicographically. The position of each name is its class id.
// Returns ErrTrainMissing when trainDir does not exist.
func Labels(trainDir string) ([]string, error) {
	entries, err := os.ReadDir(trainDir)
	if os.IsNotExist(err) {
		return nil, ErrTrainMissing
	}
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			labels = append(labels, e.Name())
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// Examples lists the image files of one split, sorted by label folder and
// then file name so processing order is deterministic across platforms.
// A missing split yields an empty slice without error.
func Examples(splitDir string) ([]Example, error) {
	entries, err := os.ReadDir(splitDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var examples []Example
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		label := e.Name()
		files, err := os.ReadDir(filepath.Join(splitDir, label))
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if f.IsDir() || !IsImageFile(f.Name()) {
				continue
			}
			examples = append(examples, Example{
				Path:  filepath.Join(splitDir, label, f.Name()),
				Label: label,
			})
		}
	}

	// ReadDir returns sorted entries, so examples are already ordered by
	// label and then file name; the sort keeps that guarantee explicit.
	sort.Slice(examples, func(i, j int) bool { return examples[i].Path < examples[j].Path })
	return examples, nil
}
