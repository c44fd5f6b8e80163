package hub

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/shardset/internal/dataset"
	"github.com/backmassage/shardset/internal/display"
)

// Logger is the minimal logging interface needed by PushImageFolder.
// Defined here (rather than importing the logging package) so that hub
// stays dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// LabelFromFilename derives an example's label from its file name: the
// stem up to the last underscore, or the whole stem when there is none.
// E.g. "blue_eyes_003.jpg" → "blue_eyes", "cat.png" → "cat".
func LabelFromFilename(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if i := strings.LastIndex(stem, "_"); i > 0 {
		return stem[:i]
	}
	return stem
}

// PushImageFolder uploads every image under dir to the dataset repo in a
// single commit, together with a metadata.csv assigning each file the
// label derived from its name. dryRun logs the plan without any network
// calls.
func PushImageFolder(ctx context.Context, c *Client, dir, repoID, message string, dryRun, verbose bool, log Logger) error {
	paths, err := discoverImages(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no image files found under %s", dir)
	}

	metadata, err := buildMetadata(paths)
	if err != nil {
		return err
	}

	log.Info("Found %d images under %s", len(paths), dir)
	if dryRun {
		for _, rel := range paths {
			log.Debug(verbose, "  %s (label %q)", rel, LabelFromFilename(rel))
		}
		log.Warn("[DRY] Would push %d files + metadata.csv to %s", len(paths), repoID)
		return nil
	}

	files := make([]CommitFile, 0, len(paths)+1)
	var totalBytes int64
	for _, rel := range paths {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		totalBytes += int64(len(data))
		files = append(files, CommitFile{Path: rel, Content: data})
	}
	files = append(files, CommitFile{Path: "metadata.csv", Content: metadata})

	if err := c.CreateRepo(ctx, repoID); err != nil {
		return err
	}
	if err := c.Commit(ctx, repoID, message, files); err != nil {
		return err
	}

	log.Success("Pushed %d files (%s) to %s", len(files), display.FormatBytes(totalBytes), repoID)
	return nil
}

// discoverImages walks dir and returns slash-separated paths of image
// files relative to dir, sorted lexicographically.
func discoverImages(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !dataset.IsImageFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// buildMetadata renders the imagefolder metadata.csv: one row per file
// with its file name and derived label.
func buildMetadata(paths []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"file_name", "label"}); err != nil {
		return nil, err
	}
	for _, rel := range paths {
		if err := w.Write([]string{rel, LabelFromFilename(rel)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
