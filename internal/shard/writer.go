package shard

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ImageValue is the embedded image column: raw encoded bytes plus the
// original file name (without its label folder).
type ImageValue struct {
	Bytes []byte `parquet:"bytes"`
	Path  string `parquet:"path"`
}

// Row is one dataset example as stored in a shard.
type Row struct {
	Image ImageValue `parquet:"image"`
	Label int64      `parquet:"label"`
}

// Write writes rows as one snappy-compressed parquet file at path.
// The file is written whole; a failed write leaves no usable shard, so
// the caller removes the path on error.
func Write(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := parquet.NewGenericWriter[Row](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close %s: %w", path, err)
	}
	return f.Close()
}

// Read loads every row of one shard file, in order.
func Read(path string) ([]Row, error) {
	return parquet.ReadFile[Row](path)
}
