package shard

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestWriteRead_PreservesOrderAndContent(t *testing.T) {
	rows := []Row{
		{Image: ImageValue{Bytes: []byte{0xFF, 0xD8, 0x01}, Path: "a_0.jpg"}, Label: 0},
		{Image: ImageValue{Bytes: []byte{0x89, 0x50, 0x4E}, Path: "a_1.png"}, Label: 0},
		{Image: ImageValue{Bytes: []byte{0x42, 0x4D}, Path: "b_0.bmp"}, Label: 1},
	}

	path := filepath.Join(t.TempDir(), FileName("train", 0, 1))
	if err := Write(path, rows); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i].Image.Path != rows[i].Image.Path {
			t.Errorf("row %d path: got %q, want %q", i, got[i].Image.Path, rows[i].Image.Path)
		}
		if got[i].Label != rows[i].Label {
			t.Errorf("row %d label: got %d, want %d", i, got[i].Label, rows[i].Label)
		}
		if !bytes.Equal(got[i].Image.Bytes, rows[i].Image.Bytes) {
			t.Errorf("row %d bytes differ", i)
		}
	}
}

func TestWrite_EmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName("test", 0, 1))
	if err := Write(path, nil); err != nil {
		t.Fatalf("Write empty: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read empty: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d rows, want 0", len(got))
	}
}
